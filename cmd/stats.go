package cmd

import (
	"fmt"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print progression statistics",
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

		ledger := state.Ledger
		fmt.Printf("Level %d (%d XP, next level at %d XP)\n",
			ledger.Level(), ledger.XP(), ledger.NextThreshold())
		fmt.Printf("Streak: %d days\n", ledger.StreakDays())
		fmt.Printf("Quizzes passed: %d\n", len(ledger.CompletedQuizzes()))
		fmt.Printf("Modules completed: %d\n", len(ledger.CompletedModules()))
		fmt.Printf("Tracks completed: %d\n", len(ledger.CompletedTracks()))
		fmt.Printf("Badges unlocked: %d of %d\n",
			state.Badges.UnlockedCount(), len(state.Badges.Catalog()))
		return nil
	},
}
