package main

import (
	"os"

	"github.com/spf13/cobra"

	"subtrack/internal/interfaces/cli/migrate"
	"subtrack/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "subtrack",
		Short: "Subtrack - subscription billing and renewal reminders",
		Long:  `Subtrack tracks recurring subscriptions, advances their billing cycles, and emails renewal reminders.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
