package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// withServices swaps the package services for the duration of a test.
func withServices(t *testing.T, s *Services) {
	t.Helper()
	old := services
	services = s
	t.Cleanup(func() { services = old })
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vidchat version")
}

func TestIngestCmd(t *testing.T) {
	assistant := &fakeAssistant{
		session: &fakeSession{id: "s1", modelID: "nomic-embed-text", chunks: 12},
	}
	withServices(t, &Services{
		Assistant:   assistant,
		Transcripts: &fakeTranscripts{texts: map[string]string{"talk": "transcript text"}},
		Languages:   []string{"en"},
	})

	out, err := executeCommand(t, "ingest", "talk")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 12 chunks with nomic-embed-text.")
	assert.Equal(t, []string{"transcript text"}, assistant.ingested)
	assert.Equal(t, 1, assistant.persisted)
}

func TestIngestCmd_MissingTranscript(t *testing.T) {
	withServices(t, &Services{
		Assistant:   &fakeAssistant{session: &fakeSession{}},
		Transcripts: &fakeTranscripts{texts: map[string]string{}},
	})

	_, err := executeCommand(t, "ingest", "unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transcript found")
}

func TestAskCmd(t *testing.T) {
	withServices(t, &Services{
		Assistant: &fakeAssistant{
			session: &fakeSession{answer: "The cat sat on the mat.", context: "A cat sat."},
		},
	})

	out, err := executeCommand(t, "ask", "what did the cat do?")
	require.NoError(t, err)
	assert.Contains(t, out, "The cat sat on the mat.")
	assert.NotContains(t, out, "--- context ---")
}

func TestAskCmd_ShowContext(t *testing.T) {
	withServices(t, &Services{
		Assistant: &fakeAssistant{
			session: &fakeSession{answer: "The cat sat on the mat.", context: "A cat sat."},
		},
	})

	out, err := executeCommand(t, "ask", "--show-context", "what did the cat do?")
	require.NoError(t, err)
	assert.Contains(t, out, "--- context ---")
	assert.Contains(t, out, "A cat sat.")
	assert.Contains(t, out, "The cat sat on the mat.")

	askShowContext = false
}

func TestAskCmd_NothingIngested(t *testing.T) {
	withServices(t, &Services{
		Assistant: &fakeAssistant{restoreErr: domain.ErrEmptyIndex},
	})

	_, err := executeCommand(t, "ask", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transcript indexed yet")
}

func TestAskCmd_ServiceNotConfigured(t *testing.T) {
	withServices(t, nil)

	_, err := executeCommand(t, "ask", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestDoctorCmd_Unconfigured(t *testing.T) {
	withServices(t, &Services{})

	_, err := executeCommand(t, "doctor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestIngestCmd_PersistFailure(t *testing.T) {
	withServices(t, &Services{
		Assistant: &fakeAssistant{
			session:    &fakeSession{chunks: 1, modelID: "m"},
			persistErr: errors.New("disk full"),
		},
		Transcripts: &fakeTranscripts{texts: map[string]string{"talk": "text"}},
	})

	_, err := executeCommand(t, "ingest", "talk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
