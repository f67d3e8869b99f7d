package repo_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/repo"
)

func TestUserRepo_LookupsAreCaseInsensitive(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()
	u := mustCreateUser(t, r)

	byName, err := r.Users.GetByUsername(ctx, strings.ToUpper(u.Username))
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := r.Users.GetByEmail(ctx, strings.ToUpper(u.Email))
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	r, store := newTestRepos(t)
	u := mustCreateUser(t, r)

	err := store.InTx(context.Background(), func(tx repo.Repos) error {
		_, err := tx.Users.Create(context.Background(), domain.User{
			Username: "someone-else", Email: strings.ToUpper(u.Email), PasswordHash: []byte("x"),
		})
		return err
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_UpdateProfile(t *testing.T) {
	r, _ := newTestRepos(t)
	u := mustCreateUser(t, r)

	u.FirstName, u.LastName = "Juan", "Dela Cruz"
	got, err := r.Users.UpdateProfile(context.Background(), u)

	require.NoError(t, err)
	assert.Equal(t, "Juan", got.FirstName)
	assert.Equal(t, "Dela Cruz", got.LastName)
}

func TestSavedRepo_SaveIsIdempotent(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()
	u := mustCreateUser(t, r)
	d := mustCreateDestination(t, r, "1000")

	require.NoError(t, r.Saved.Save(ctx, u.ID, d.ID))
	require.NoError(t, r.Saved.Save(ctx, u.ID, d.ID))

	n, err := r.Saved.CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	saved, err := r.Saved.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, d.ID, saved[0].Destination.ID)

	require.NoError(t, r.Saved.Remove(ctx, u.ID, d.ID))
	assert.ErrorIs(t, r.Saved.Remove(ctx, u.ID, d.ID), domain.ErrNotFound)
}

func TestExpenseRepo_CreateAndList(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()
	it := mustCreateItinerary(t, r, mustCreateUser(t, r))

	for _, amt := range []string{"1000", "500"} {
		_, err := r.Expenses.Create(ctx, domain.Expense{
			ItineraryID: it.ID, Category: domain.ExpenseFood, Description: "meal", Amount: dec(amt), Date: date(2025, 6, 2),
		})
		require.NoError(t, err)
	}

	expenses, err := r.Expenses.ListByItinerary(ctx, it.ID)

	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, domain.ExpenseFood, expenses[0].Category)
}
