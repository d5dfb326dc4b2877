// internal/access/policy.go

// Package access decides which client records an actor may see and change.
// The same checks run on every mutating operation server-side; any client-side
// filtering is advisory only.
package access

import (
	"fmt"

	"alamin-service/internal/domain/client"
	"alamin-service/internal/domain/user"
	xerrors "alamin-service/internal/pkg/errors"
)

// CanView reports whether the actor may see (and therefore modify) a record.
// Managers see everything. Staff see only records they created, compared
// case-insensitively. A record with no owner is manager-only.
func CanView(actor user.Actor, c client.Client) bool {
	if actor.IsManager() {
		return true
	}
	if c.AddedBy == "" {
		return false
	}
	return user.SameUsername(c.AddedBy, actor.Username)
}

// Filter returns the subset of clients visible to the actor, preserving
// order.
func Filter(actor user.Actor, clients []client.Client) []client.Client {
	if actor.IsManager() {
		return clients
	}

	visible := make([]client.Client, 0, len(clients))
	for _, c := range clients {
		if CanView(actor, c) {
			visible = append(visible, c)
		}
	}
	return visible
}

// Authorize fails with ErrForbidden when the record is outside the actor's
// visible set.
func Authorize(actor user.Actor, c client.Client) error {
	if !CanView(actor, c) {
		return fmt.Errorf("%w: client %d is not accessible to %s", xerrors.ErrForbidden, c.ID, actor.Username)
	}
	return nil
}
