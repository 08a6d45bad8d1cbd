package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"doodlepair/internal/pkg/errs"
	"doodlepair/internal/pkg/logx"
)

// creationBackoff is how long Ensure waits before re-reading after a create
// failure, giving the winning writer's transaction time to commit.
const creationBackoff = 50 * time.Millisecond

// fallbackName is used when neither a name hint nor an email hint is available.
const fallbackName = "User"

// Provisioner turns a verified external identity into a stable user record,
// creating it exactly once even under concurrent first-contact requests.
type Provisioner struct {
	store Store

	// creationMu serializes the check-create sequence across all identities.
	// Creation is rare and brief, so one process-wide guard suffices; the
	// storage unique constraint remains the actual source of truth.
	creationMu sync.Mutex
}

// NewProvisioner returns a Provisioner backed by the given store.
func NewProvisioner(store Store) *Provisioner {
	return &Provisioner{store: store}
}

// Ensure returns the user record for the given identity, creating it if
// needed. nameHint and emailHint seed the display name of a new record and
// are ignored for existing ones.
func (p *Provisioner) Ensure(ctx context.Context, id, nameHint, emailHint string) (*User, *errs.CustomError) {
	// Fast path: the record exists for every request but the first.
	existing, err := p.store.Get(ctx, id)
	if err != nil {
		logx.Error(err, "Failed to look up user", "user_id", id)
		return nil, errs.NewError(errs.ErrProvisioningFailed)
	}
	if existing != nil {
		return existing, nil
	}

	p.creationMu.Lock()
	defer p.creationMu.Unlock()

	// Re-check under the guard: a concurrent first request may have created
	// the record between our read and the lock acquisition.
	existing, err = p.store.Get(ctx, id)
	if err != nil {
		logx.Error(err, "Failed to re-check user under creation guard", "user_id", id)
		return nil, errs.NewError(errs.ErrProvisioningFailed)
	}
	if existing != nil {
		return existing, nil
	}

	newUser := &User{
		ID:    id,
		Name:  deriveName(nameHint, emailHint),
		Email: emailHint,
	}

	if createErr := p.store.Create(ctx, newUser); createErr != nil {
		// A writer in another process may have won the unique-identity race.
		// Back off briefly so its transaction commits, then re-read.
		time.Sleep(creationBackoff)

		existing, err = p.store.Get(ctx, id)
		if err == nil && existing != nil {
			return existing, nil
		}

		logx.Error(createErr, "Failed to create user and re-read found nothing", "user_id", id)
		return nil, errs.NewError(errs.ErrProvisioningFailed)
	}

	logx.Info("Provisioned new user", "user_id", id)
	return newUser, nil
}

// deriveName picks a display name: the name hint when present, else the local
// part of the email hint, else a generic placeholder.
func deriveName(nameHint, emailHint string) string {
	if nameHint != "" {
		return nameHint
	}

	if at := strings.Index(emailHint, "@"); at > 0 {
		return emailHint[:at]
	}

	return fallbackName
}
