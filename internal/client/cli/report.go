package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/client/export"
)

// Report builds a caregiver report and stores it in the configured sink.
func (a *App) Report(ctx context.Context) error {
	st := a.currentStore(ctx)
	if st == nil {
		return nil
	}
	r := export.Build(st, a.displayName(), time.Now())
	loc, err := export.Deliver(ctx, a.sink, r)
	if err != nil {
		a.logger.Error(ctx, "report failed", "error", err)
		fmt.Fprintln(a.out, "Could not create the report:", err)
		return err
	}
	fmt.Fprintln(a.out, "Report ready:", loc)
	return nil
}
