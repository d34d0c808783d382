package cmd

import (
	"fmt"

	"github.com/finlitapp/finlit/internal/app"
	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, loads quiz content and progression state, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	quizzes, err := loadQuizzes(cmd)
	if err != nil {
		return err
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

	state, err := appstate.LoadState(ctx, st, quizzes)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	return app.Run(state)
}

// loadQuizzes combines the embedded packs with any --packs directory.
func loadQuizzes(cmd *cobra.Command) ([]content.Quiz, error) {
	quizzes, err := content.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load built-in quizzes: %w", err)
	}

	if dir, _ := cmd.Flags().GetString("packs"); dir != "" {
		extra, err := content.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("load quiz packs from %s: %w", dir, err)
		}
		quizzes = append(quizzes, extra...)
	}
	return quizzes, nil
}
