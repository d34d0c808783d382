package cmd

import (
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run a quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
