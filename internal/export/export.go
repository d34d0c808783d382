// Package export implements the progression data round trip: a
// pretty-printed JSON envelope that can be written out, carried to
// another machine, and imported back without loss.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/progress"
	"github.com/finlitapp/finlit/internal/store"
)

// Version is the envelope format version, bumped on breaking changes.
// Imports from a newer major version are rejected.
const Version = "1.0.0"

// Envelope is the on-disk export format.
type Envelope struct {
	Version           string                    `json:"version"`
	ExportedAt        string                    `json:"exportedAt"`
	ProgressionLedger *store.LedgerSnapshotData `json:"progressionLedger"`
	Badges            *store.BadgesSnapshotData `json:"badges"`
}

// Export serializes the ledger and badge state into a pretty-printed
// JSON envelope.
func Export(ledger *progress.Ledger, badgeSvc *badges.Service, now time.Time) ([]byte, error) {
	env := Envelope{
		Version:           Version,
		ExportedAt:        now.UTC().Format(time.RFC3339),
		ProgressionLedger: ledger.SnapshotData(),
		Badges:            badgeSvc.SnapshotData(),
	}

	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return append(out, '\n'), nil
}
