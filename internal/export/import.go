package export

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/mod/semver"

	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/progress"
	"github.com/finlitapp/finlit/internal/store"
)

// Imported is the fully-built state produced by a successful import.
// The caller swaps it in atomically; nothing here touches live state.
type Imported struct {
	Ledger *progress.Ledger
	Badges *badges.Service
}

// Import validates raw against the envelope schema and rebuilds the
// ledger and badge state from it. Validation is all-or-nothing: any
// shape, version, or timestamp problem fails the whole import and the
// caller's existing state is left as it was.
func Import(raw []byte, catalog []badges.Badge, events store.EventRepo) (*Imported, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("import is not valid JSON: %w", err)
	}

	compiled, err := envelopeSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("import failed validation: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode import: %w", err)
	}

	if err := checkVersion(env.Version); err != nil {
		return nil, err
	}
	if err := checkTimestamps(&env); err != nil {
		return nil, err
	}

	ledger := progress.FromSnapshot(env.ProgressionLedger, events)
	badgeSvc := badges.NewService(catalog, events)
	badgeSvc.Restore(env.Badges)

	return &Imported{Ledger: ledger, Badges: badgeSvc}, nil
}

// checkVersion rejects envelopes written by a newer major version of
// the format; those may carry fields this build doesn't understand.
func checkVersion(version string) error {
	v := "v" + version
	if !semver.IsValid(v) {
		return fmt.Errorf("import has invalid version %q", version)
	}
	if semver.Compare(semver.Major(v), semver.Major("v"+Version)) > 0 {
		return fmt.Errorf("import version %s is newer than supported %s", version, Version)
	}
	return nil
}

// checkTimestamps ensures every timestamp string in the envelope parses,
// before any state is built from it.
func checkTimestamps(env *Envelope) error {
	if _, err := time.Parse(time.RFC3339, env.ExportedAt); err != nil {
		return fmt.Errorf("import has invalid exportedAt: %w", err)
	}
	if env.ProgressionLedger != nil && env.ProgressionLedger.LastActivity != "" {
		if _, err := time.Parse(time.RFC3339, env.ProgressionLedger.LastActivity); err != nil {
			return fmt.Errorf("import has invalid last_activity: %w", err)
		}
	}
	if env.Badges != nil {
		for _, u := range env.Badges.Unlocked {
			if _, err := time.Parse(time.RFC3339, u.UnlockedAt); err != nil {
				return fmt.Errorf("import has invalid unlocked_at for badge %s: %w", u.BadgeID, err)
			}
		}
	}
	return nil
}
