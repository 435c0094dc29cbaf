package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uuzor/mocalake/internal/status"
	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/storage"
)

func TestRegister(t *testing.T) {
	svc := NewUserService(storage.NewMemStorage())
	ctx := context.Background()

	user, err := svc.Register(ctx, models.InsertUser{WalletAddress: "0xabc"})
	require.NoError(t, err)
	assert.Equal(t, "0xabc", user.WalletAddress)

	_, err = svc.Register(ctx, models.InsertUser{})
	assert.ErrorIs(t, err, status.ErrValidation)

	_, err = svc.Register(ctx, models.InsertUser{WalletAddress: "0xabc"})
	assert.ErrorIs(t, err, status.ErrDuplicateWallet)
}

func TestConnectWallet_CreatesThenReuses(t *testing.T) {
	svc := NewUserService(storage.NewMemStorage())
	ctx := context.Background()

	first, err := svc.ConnectWallet(ctx, "0xabc", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Nil(t, first.MocaID)

	second, err := svc.ConnectWallet(ctx, "0xabc", nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestConnectWallet_BackfillsMocaID(t *testing.T) {
	svc := NewUserService(storage.NewMemStorage())
	ctx := context.Background()

	user, err := svc.ConnectWallet(ctx, "0xabc", nil)
	require.NoError(t, err)
	require.Nil(t, user.MocaID)

	mocaID := "moca-77"
	updated, err := svc.ConnectWallet(ctx, "0xabc", &mocaID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID)
	require.NotNil(t, updated.MocaID)
	assert.Equal(t, "moca-77", *updated.MocaID)
}

func TestConnectWallet_Validation(t *testing.T) {
	svc := NewUserService(storage.NewMemStorage())

	_, err := svc.ConnectWallet(context.Background(), "", nil)
	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestGetUserByWallet(t *testing.T) {
	svc := NewUserService(storage.NewMemStorage())
	ctx := context.Background()

	created, err := svc.Register(ctx, models.InsertUser{WalletAddress: "0xdef"})
	require.NoError(t, err)

	found, err := svc.GetUserByWallet(ctx, "0xdef")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetUserByWallet(ctx, "0xmissing")
	assert.ErrorIs(t, err, status.ErrUserNotFound)
}
