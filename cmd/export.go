package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/export"
	"github.com/finlitapp/finlit/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export progression data as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		quizzes, err := content.LoadDefault()
		if err != nil {
			return fmt.Errorf("load built-in quizzes: %w", err)
		}

		state, err := appstate.LoadState(cmd.Context(), st, quizzes)
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}

		data, err := export.Export(state.Ledger, state.Badges, time.Now())
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" && len(args) == 1 {
			out = args[0]
		}
		if out == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "exported to", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
}
