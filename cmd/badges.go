package cmd

import (
	"fmt"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/store"
	"github.com/spf13/cobra"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges with unlock status",
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

		unlockedAt := make(map[string]string)
		for _, u := range state.Badges.Unlocked() {
			unlockedAt[u.Badge.ID] = u.UnlockedAt.Format("2006-01-02")
		}

		for _, badge := range state.Badges.Catalog() {
			status := "locked"
			if date, ok := unlockedAt[badge.ID]; ok {
				status = "unlocked " + date
			}
			fmt.Printf("%-24s %-10s %-20s %s\n",
				badge.Name, badge.Rarity.DisplayName(), status, badge.Description)
		}
		return nil
	},
}
