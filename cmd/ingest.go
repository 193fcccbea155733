package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/ingest"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var ingestFlags struct {
	provider string
	project  string
}

// ingestCmd normalizes a raw webhook payload from stdin and prints the
// canonical run. Nothing is persisted; it exists to debug provider payloads.
var ingestCmd = &cobra.Command{
	Use:           "ingest",
	Short:         "Normalize a webhook payload from stdin and print the canonical run",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("read stdin")
		}

		run, err := ingest.Normalize(entity.Provider(ingestFlags.provider), raw, entity.NewID(ingestFlags.project))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFlags.provider, "provider", "P", string(entity.ProviderGeneric), "Payload provider (github, gitlab, generic)")
	ingestCmd.Flags().StringVar(&ingestFlags.project, "project", "", "Project id to stamp on the normalized run")
}
