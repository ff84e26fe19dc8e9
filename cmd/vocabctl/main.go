package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd собирает дерево команд vocabctl
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vocabctl",
		Short:         "Утилиты обслуживания vocab-api",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newConvertCmd())
	root.AddCommand(newTopMissedCmd())
	root.AddCommand(newMigrateCmd())
	return root
}
