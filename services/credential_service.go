package services

import (
	"context"
	"fmt"
	"log"

	"github.com/uuzor/mocalake/internal/status"
	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/monitoring"
	"github.com/uuzor/mocalake/notify"
	"github.com/uuzor/mocalake/storage"
)

// Reputation points awarded per credential type.
const (
	pointsEarlySupporter = 100
	pointsAttendance     = 50
	pointsDefault        = 25
)

type CredentialService struct {
	store    storage.Storage
	notifier *notify.Notifier
}

func NewCredentialService(store storage.Storage, notifier *notify.Notifier) *CredentialService {
	return &CredentialService{store: store, notifier: notifier}
}

// Record persists the credential and then applies the reputation bump
// to the owning user. The reputation step is best-effort: a user that
// cannot be resolved leaves the credential in place and skips scoring.
func (s *CredentialService) Record(ctx context.Context, in models.InsertFanCredential) (*models.FanCredential, error) {
	if in.UserID == "" || in.ArtistName == "" || in.CredentialType == "" {
		return nil, fmt.Errorf("%w: user id, artist name and credential type required", status.ErrValidation)
	}

	credential, err := s.store.CreateFanCredential(ctx, in)
	if err != nil {
		return nil, err
	}

	points := reputationPoints(in.CredentialType)
	user, err := s.store.GetUser(ctx, in.UserID)
	if err != nil {
		log.Printf("credential %s recorded for unknown user %s, reputation skipped", credential.ID, in.UserID)
	} else {
		score := user.ReputationScore + points
		verified := true
		if _, err := s.store.UpdateUser(ctx, user.ID, models.UserUpdate{
			ReputationScore: &score,
			VerifiedFan:     &verified,
		}); err != nil {
			log.Printf("reputation update failed for user %s: %v", user.ID, err)
		}
	}

	monitoring.TrackCredential(in.CredentialType, points)
	s.notifier.CredentialRecorded(in.UserID, in.CredentialType, points)

	return credential, nil
}

// Verify reports whether the user holds a credential matching both
// artist name and type exactly (case-sensitive).
func (s *CredentialService) Verify(ctx context.Context, userID, artistName, credentialType string) (bool, error) {
	if userID == "" || artistName == "" || credentialType == "" {
		return false, fmt.Errorf("%w: user id, artist name and credential type required", status.ErrValidation)
	}
	credentials, err := s.store.GetFanCredentialsByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, credential := range credentials {
		if credential.ArtistName == artistName && credential.CredentialType == credentialType {
			return true, nil
		}
	}
	return false, nil
}

func (s *CredentialService) CredentialsByUser(ctx context.Context, userID string) ([]models.FanCredential, error) {
	return s.store.GetFanCredentialsByUser(ctx, userID)
}

func reputationPoints(credentialType string) int {
	switch credentialType {
	case models.CredentialEarlySupporter:
		return pointsEarlySupporter
	case models.CredentialAttendance:
		return pointsAttendance
	default:
		return pointsDefault
	}
}
