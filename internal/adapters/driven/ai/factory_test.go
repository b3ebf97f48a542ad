package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/config/file"
)

func TestCreateEmbeddingService_DefaultsToOllama(t *testing.T) {
	svc, err := CreateEmbeddingService(configfile.GatewayConfig{})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "nomic-embed-text", svc.ModelName())
}

func TestCreateEmbeddingService_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := CreateEmbeddingService(configfile.GatewayConfig{
		Provider:  configfile.ProviderOpenAI,
		APIKeyEnv: "OPENAI_API_KEY",
	})
	require.Error(t, err)
}

func TestCreateEmbeddingService_AnthropicUnsupported(t *testing.T) {
	_, err := CreateEmbeddingService(configfile.GatewayConfig{
		Provider: configfile.ProviderAnthropic,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support embeddings")
}

func TestCreateEmbeddingService_UnknownProvider(t *testing.T) {
	_, err := CreateEmbeddingService(configfile.GatewayConfig{Provider: "bedrock"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported embedding provider")
}

func TestCreateLLMService_DefaultsToOllama(t *testing.T) {
	svc, err := CreateLLMService(configfile.GatewayConfig{})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()
}

func TestCreateLLMService_Anthropic(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	svc, err := CreateLLMService(configfile.GatewayConfig{
		Provider:  configfile.ProviderAnthropic,
		APIKeyEnv: "ANTHROPIC_API_KEY",
		Model:     "claude-3-5-haiku-latest",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "claude-3-5-haiku-latest", svc.ModelName())
}

func TestCreateLLMService_UnknownProvider(t *testing.T) {
	_, err := CreateLLMService(configfile.GatewayConfig{Provider: "bedrock"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
