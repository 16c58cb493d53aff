package cli

import (
	"context"
	"fmt"
)

// Sets lists the known alumni sets, newest first, so the user can pick a
// set ID for the edit form.
func (a *App) Sets(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	cohorts, err := a.store.ListCohorts(ctx)
	if err != nil {
		printlnFn("Could not list sets:", err)
		return err
	}
	if len(cohorts) == 0 {
		printlnFn("No sets found")
		return nil
	}
	for _, c := range cohorts {
		printlnFn(fmt.Sprintf("%-36s  %s", c.ID, c.Label()))
	}
	return nil
}
