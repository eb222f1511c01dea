// Package admin provides administrative operations for database management.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/arena/internal/store"
)

// ResetTimeout is the maximum duration for database reset operations.
const ResetTimeout = 30 * time.Second

// resetOrder lists the data tables children first, so each truncate only
// touches rows nothing else references any more.
var resetOrder = []string{
	"athlete_history",
	"athlete_achievements",
	"athlete_points",
	"athlete_participation",
	"athletes",
	"representative_requests",
	"disciplines",
}

// Resetter empties the dashboard tables. The schema and the goose version
// table are left alone.
type Resetter struct {
	DB store.DBTX
}

// ResetAll truncates every data table.
// This is a destructive operation - use with caution.
func (r *Resetter) ResetAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	for _, table := range resetOrder {
		if _, err := r.DB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// Tables returns the tables ResetAll empties, in order.
func Tables() []string {
	return append([]string(nil), resetOrder...)
}
