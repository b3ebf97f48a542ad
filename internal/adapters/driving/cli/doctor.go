package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
)

// doctorTimeout bounds each gateway health check.
const doctorTimeout = 10 * time.Second

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the configured model gateways are reachable",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Embedding == nil || services.LLM == nil {
		return errors.New("gateways not configured")
	}

	healthy := true

	checks := []struct {
		name  string
		model string
		ping  func(context.Context) error
	}{
		{"embedding", services.Embedding.ModelName(), services.Embedding.Ping},
		{"llm", services.LLM.ModelName(), services.LLM.Ping},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
		err := check.ping(ctx)
		cancel()

		if err != nil {
			healthy = false
			cmd.Printf("FAIL  %s (%s): %v\n", check.name, check.model, err)
		} else {
			cmd.Printf("OK    %s (%s)\n", check.name, check.model)
		}
	}

	if !healthy {
		return errors.New("one or more gateways are unreachable")
	}
	return nil
}
