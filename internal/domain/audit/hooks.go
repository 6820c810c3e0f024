package audit

import (
	"context"

	"stockroom/internal/domain/inventory"
)

// Attach records every successful mutation of svc in j.
func Attach(svc *inventory.Service, j *Journal) {
	hooks := svc.Hooks()
	hooks.OnAfterCreate(j.recordChange(ActionCreate))
	hooks.OnAfterUpdate(j.recordChange(ActionUpdate))
	hooks.OnAfterDelete(j.recordChange(ActionDelete))
}

func (j *Journal) recordChange(action Action) func(context.Context, inventory.Change) error {
	return func(ctx context.Context, c inventory.Change) error {
		return j.Record(ctx, action, c.ItemID(), c.Before, c.After)
	}
}
