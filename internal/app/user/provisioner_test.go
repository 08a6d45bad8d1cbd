package user_test

import (
	"context"
	"sync"
	"testing"

	"doodlepair/internal/app/db/memdb"
	"doodlepair/internal/app/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCreatesOnFirstContact(t *testing.T) {
	store := memdb.NewStore()
	p := user.NewProvisioner(store)

	u, cerr := p.Ensure(context.Background(), "ext-1", "Alice", "alice@example.com")
	require.Nil(t, cerr)
	assert.Equal(t, "ext-1", u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)

	stored, err := store.Get(context.Background(), "ext-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Alice", stored.Name)
}

func TestEnsureReturnsExistingRecordUnchanged(t *testing.T) {
	store := memdb.NewStore()
	p := user.NewProvisioner(store)

	_, cerr := p.Ensure(context.Background(), "ext-1", "Alice", "alice@example.com")
	require.Nil(t, cerr)

	// Later hints must not overwrite the stored record.
	u, cerr := p.Ensure(context.Background(), "ext-1", "Someone Else", "other@example.com")
	require.Nil(t, cerr)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestEnsureDerivesNameFromEmailLocalPart(t *testing.T) {
	store := memdb.NewStore()
	p := user.NewProvisioner(store)

	u, cerr := p.Ensure(context.Background(), "ext-2", "", "carol.smith@example.com")
	require.Nil(t, cerr)
	assert.Equal(t, "carol.smith", u.Name)
}

func TestEnsureFallsBackToPlaceholderName(t *testing.T) {
	store := memdb.NewStore()
	p := user.NewProvisioner(store)

	u, cerr := p.Ensure(context.Background(), "ext-3", "", "")
	require.Nil(t, cerr)
	assert.Equal(t, "User", u.Name)
}

func TestEnsureConcurrentFirstContactCreatesOneRecord(t *testing.T) {
	store := memdb.NewStore()
	p := user.NewProvisioner(store)

	const callers = 16

	names := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			u, cerr := p.Ensure(context.Background(), "ext-race", "Alice", "alice@example.com")
			if cerr != nil {
				t.Errorf("caller %d: unexpected provisioning error: %v", slot, cerr)
				return
			}
			names[slot] = u.Name
		}(i)
	}
	wg.Wait()

	// Every caller observed the single persisted record.
	stored, err := store.Get(context.Background(), "ext-race")
	require.NoError(t, err)
	require.NotNil(t, stored)
	for _, name := range names {
		assert.Equal(t, stored.Name, name)
	}
}

func TestEnsureRecoversWhenAnotherWriterWins(t *testing.T) {
	store := memdb.NewStore()

	// Pre-create behind the provisioner's back to simulate a concurrent
	// writer in another process winning the unique-identity race.
	losing := user.NewProvisioner(&racingStore{Store: store, winner: &user.User{
		ID:    "ext-4",
		Name:  "First Writer",
		Email: "first@example.com",
	}})

	u, cerr := losing.Ensure(context.Background(), "ext-4", "Second Writer", "")
	require.Nil(t, cerr)
	assert.Equal(t, "First Writer", u.Name, "the losing writer must adopt the winner's record")
}

// racingStore hides the winner's record from reads until Create is attempted,
// reproducing the window between a duplicate-key failure and the re-read.
type racingStore struct {
	*memdb.Store
	winner  *user.User
	planted bool
}

func (s *racingStore) Get(ctx context.Context, id string) (*user.User, error) {
	if !s.planted {
		return nil, nil
	}
	return s.Store.Get(ctx, id)
}

func (s *racingStore) Create(ctx context.Context, u *user.User) error {
	if !s.planted && u.ID == s.winner.ID {
		s.planted = true
		if err := s.Store.Create(ctx, s.winner); err != nil {
			return err
		}
		return s.Store.Create(ctx, u)
	}
	return s.Store.Create(ctx, u)
}
