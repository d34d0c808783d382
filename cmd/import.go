package cmd

import (
	"fmt"
	"os"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/export"
	"github.com/finlitapp/finlit/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import progression data from a JSON export",
	Long:  "Import replaces the current progression state with the contents of a previously exported file. The file is validated in full before anything is applied.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		catalog, err := badges.Catalog()
		if err != nil {
			return fmt.Errorf("load badge catalog: %w", err)
		}

		imported, err := export.Import(raw, catalog, st.EventRepo())
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		quizzes, err := content.LoadDefault()
		if err != nil {
			return fmt.Errorf("load built-in quizzes: %w", err)
		}

		// Imported state replaces whatever the latest snapshot held,
		// including any in-flight attempt.
		state := appstate.NewState(st, quizzes, imported.Ledger, imported.Badges)
		if err := state.Save(cmd.Context()); err != nil {
			return fmt.Errorf("save imported state: %w", err)
		}

		fmt.Printf("imported: level %d, %d XP, %d badges\n",
			imported.Ledger.Level(), imported.Ledger.XP(), imported.Badges.UnlockedCount())
		return nil
	},
}
