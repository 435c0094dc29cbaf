package services

import (
	"context"
	"fmt"

	"github.com/uuzor/mocalake/internal/status"
	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/storage"
)

type UserService struct {
	store storage.Storage
}

func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Register(ctx context.Context, in models.InsertUser) (*models.User, error) {
	if in.WalletAddress == "" {
		return nil, fmt.Errorf("%w: wallet address required", status.ErrValidation)
	}
	return s.store.CreateUser(ctx, in)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) GetUserByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	return s.store.GetUserByWalletAddress(ctx, walletAddress)
}

// ConnectWallet is the idempotent upsert behind wallet connection: the
// first call creates the user, later calls return the same user and
// backfill mocaId when one arrives.
func (s *UserService) ConnectWallet(ctx context.Context, walletAddress string, mocaID *string) (*models.User, error) {
	if walletAddress == "" {
		return nil, fmt.Errorf("%w: wallet address required", status.ErrValidation)
	}

	user, err := s.store.GetUserByWalletAddress(ctx, walletAddress)
	if err == status.ErrUserNotFound {
		return s.store.CreateUser(ctx, models.InsertUser{
			WalletAddress: walletAddress,
			MocaID:        mocaID,
		})
	}
	if err != nil {
		return nil, err
	}

	if mocaID != nil && (user.MocaID == nil || *user.MocaID != *mocaID) {
		updated, err := s.store.UpdateUser(ctx, user.ID, models.UserUpdate{MocaID: mocaID})
		if err != nil {
			return user, nil
		}
		return updated, nil
	}
	return user, nil
}
