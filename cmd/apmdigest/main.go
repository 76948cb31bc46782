package main

import (
	"os"

	"github.com/spf13/cobra"

	"apmdigest/internal/interfaces/cli/catalog"
	"apmdigest/internal/interfaces/cli/preview"
	"apmdigest/internal/interfaces/cli/run"
	"apmdigest/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "apmdigest",
		Short:   "Audio Project Manager activity digest mailer",
		Long:    `apmdigest mails each Audio Project Manager user a localized daily digest of passage state changes in their projects.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		run.NewCommand(),
		preview.NewCommand(),
		catalog.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
