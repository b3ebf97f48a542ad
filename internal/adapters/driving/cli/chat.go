package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vidchat-dev/vidchat-cli/internal/adapters/driving/tui"
	"github.com/vidchat-dev/vidchat-cli/internal/logger"
)

var chatWatch bool

var chatCmd = &cobra.Command{
	Use:   "chat [transcript]",
	Short: "Chat interactively about a transcript",
	Long: `Ingests the transcript and opens an interactive chat view.

Controls:
  Enter  - Ask the typed question
  Ctrl+T - Toggle retrieved-context display
  ↑/↓    - Scroll history
  Ctrl+C - Quit

With --watch, the transcript file is monitored and re-ingested on change;
the active session is swapped only after a successful rebuild.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVarP(&chatWatch, "watch", "w", false, "re-ingest when the transcript file changes")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat view: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if services == nil || services.Assistant == nil {
		return errors.New("assistant service not configured")
	}

	ctx := cmd.Context()
	id := args[0]

	text, err := loadTranscript(ctx, id)
	if err != nil {
		return err
	}

	session, err := services.Assistant.Ingest(ctx, text)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	p := tea.NewProgram(tui.New(ctx, session), tea.WithAltScreen())

	if chatWatch {
		stop, err := watchTranscript(ctx, id, p)
		if err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}

// watchTranscript re-ingests the transcript whenever its file changes and
// sends the fresh session into the running program. The id must be a
// direct file path; editors typically replace files, so the parent
// directory is watched and events filtered by name.
func watchTranscript(ctx context.Context, id string, p *tea.Program) (func(), error) {
	path, err := filepath.Abs(id)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("--watch needs a transcript file path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				logger.Info("transcript changed, re-ingesting %s", path)

				text, ok2, err := services.Transcripts.Fetch(ctx, path, services.Languages)
				if err == nil && !ok2 {
					err = fmt.Errorf("transcript disappeared: %s", path)
				}
				if err != nil {
					p.Send(tui.ReingestFailedMsg{Err: err})
					continue
				}

				session, err := services.Assistant.Ingest(ctx, text)
				if err != nil {
					p.Send(tui.ReingestFailedMsg{Err: err})
					continue
				}
				p.Send(tui.SessionReplacedMsg{Session: session})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
