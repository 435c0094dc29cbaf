package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uuzor/mocalake/internal/status"
	"github.com/uuzor/mocalake/models"
)

func newTestSQLite(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStorage_UserRoundTrip(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	mocaID := "moca-1"
	created, err := store.CreateUser(ctx, models.InsertUser{
		WalletAddress: "0xabc",
		MocaID:        &mocaID,
		Username:      strPtr("alice"),
	})
	require.NoError(t, err)

	fetched, err := store.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", fetched.WalletAddress)
	require.NotNil(t, fetched.MocaID)
	assert.Equal(t, "moca-1", *fetched.MocaID)
	require.NotNil(t, fetched.Username)
	assert.Equal(t, "alice", *fetched.Username)
	assert.Equal(t, 0, fetched.ReputationScore)
	assert.False(t, fetched.VerifiedFan)

	byWallet, err := store.GetUserByWalletAddress(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byWallet.ID)

	_, err = store.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, status.ErrUserNotFound)
}

func TestSQLiteStorage_UniqueWallet(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, models.InsertUser{WalletAddress: "0xabc"})
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, models.InsertUser{WalletAddress: "0xabc"})
	assert.ErrorIs(t, err, status.ErrDuplicateWallet)
}

func TestSQLiteStorage_UpdateUser(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, models.InsertUser{WalletAddress: "0xabc"})
	require.NoError(t, err)

	score := 150
	verified := true
	updated, err := store.UpdateUser(ctx, user.ID, models.UserUpdate{
		ReputationScore: &score,
		VerifiedFan:     &verified,
	})
	require.NoError(t, err)
	assert.Equal(t, 150, updated.ReputationScore)
	assert.True(t, updated.VerifiedFan)
	assert.Equal(t, "0xabc", updated.WalletAddress)

	_, err = store.UpdateUser(ctx, "missing", models.UserUpdate{ReputationScore: &score})
	assert.ErrorIs(t, err, status.ErrUserNotFound)
}

func TestSQLiteStorage_EventsOrderedByDateDesc(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	for _, offset := range []time.Duration{24 * time.Hour, 72 * time.Hour, 48 * time.Hour} {
		_, err := store.CreateEvent(ctx, models.InsertEvent{
			Title:       "Show",
			ArtistName:  "Artist",
			Venue:       "Venue",
			EventDate:   base.Add(offset),
			TicketPrice: 10,
			MaxTickets:  10,
		})
		require.NoError(t, err)
	}

	events, err := store.GetAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.True(t, events[0].EventDate.After(events[1].EventDate))
	assert.True(t, events[1].EventDate.After(events[2].EventDate))
}

func TestSQLiteStorage_ReserveTicketSlot(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	event, err := store.CreateEvent(ctx, models.InsertEvent{
		Title:       "Small Show",
		ArtistName:  "Artist",
		Venue:       "Club",
		EventDate:   time.Now().Add(24 * time.Hour),
		TicketPrice: 20,
		MaxTickets:  2,
	})
	require.NoError(t, err)

	reserved, err := store.ReserveTicketSlot(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reserved.SoldTickets)

	reserved, err = store.ReserveTicketSlot(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reserved.SoldTickets)

	_, err = store.ReserveTicketSlot(ctx, event.ID)
	assert.ErrorIs(t, err, status.ErrSoldOut)

	_, err = store.ReserveTicketSlot(ctx, "missing")
	assert.ErrorIs(t, err, status.ErrEventNotFound)

	require.NoError(t, store.ReleaseTicketSlot(ctx, event.ID))
	current, err := store.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.SoldTickets)
}

func TestSQLiteStorage_TicketRoundTrip(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	event, err := store.CreateEvent(ctx, models.InsertEvent{
		Title:       "Show",
		ArtistName:  "Artist",
		Venue:       "Venue",
		EventDate:   time.Now().Add(24 * time.Hour),
		TicketPrice: 30,
		MaxTickets:  10,
	})
	require.NoError(t, err)

	user, err := store.CreateUser(ctx, models.InsertUser{WalletAddress: "0xabc"})
	require.NoError(t, err)

	ticket, err := store.CreateTicket(ctx, models.InsertTicket{
		EventID:       event.ID,
		OwnerID:       user.ID,
		PurchasePrice: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, models.IssuancePending, ticket.IssuanceStatus)
	assert.False(t, ticket.IsUsed)
	assert.Nil(t, ticket.TokenID)

	fetched, err := store.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, fetched.PurchasePrice)

	used := true
	statusIssued := models.IssuanceIssued
	updated, err := store.UpdateTicket(ctx, ticket.ID, models.TicketUpdate{
		IsUsed:         &used,
		IssuanceStatus: &statusIssued,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsUsed)
	assert.Equal(t, models.IssuanceIssued, updated.IssuanceStatus)

	byUser, err := store.GetTicketsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)

	byEvent, err := store.GetTicketsByEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, byEvent, 1)
}

func TestSQLiteStorage_FanCredentials(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	// Credential rows persist even when the user id is unknown; the
	// reputation update is where missing users get skipped.
	cred, err := store.CreateFanCredential(ctx, models.InsertFanCredential{
		UserID:         "unknown-user",
		ArtistName:     "Artist",
		CredentialType: models.CredentialEarlySupporter,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, cred.ID)

	byUser, err := store.GetFanCredentialsByUser(ctx, "unknown-user")
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, models.CredentialEarlySupporter, byUser[0].CredentialType)
}
