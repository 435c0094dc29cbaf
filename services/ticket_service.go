package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uuzor/mocalake/cache"
	"github.com/uuzor/mocalake/internal/status"
	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/monitoring"
	"github.com/uuzor/mocalake/notify"
	"github.com/uuzor/mocalake/storage"
)

// Resale of a ticket credential is capped at 10% above face value. The
// cap is carried in the credential subject as data only; nothing here
// enforces it.
var resaleMarkup = decimal.NewFromFloat(1.1)

const (
	defaultTicketType = "general"
	defaultSeatInfo   = "General Admission"
	wireDateFormat    = "2006-01-02"
)

type TicketService struct {
	store    storage.Storage
	cache    *cache.EventCache
	notifier *notify.Notifier
}

func NewTicketService(store storage.Storage, eventCache *cache.EventCache, notifier *notify.Notifier) *TicketService {
	return &TicketService{store: store, cache: eventCache, notifier: notifier}
}

// PurchaseResult pairs the persisted ticket with the credential subject
// the caller forwards to the external issuance service.
type PurchaseResult struct {
	Ticket            *models.Ticket            `json:"ticket"`
	CredentialSubject *models.CredentialSubject `json:"credentialSubject"`
}

// Purchase runs the inventory workflow: resolve event, check capacity,
// resolve user, reserve a slot (atomic check-and-increment), persist
// the ticket with the price snapshotted, and build the credential
// subject bound to the buyer's DID. A failed ticket insert releases
// the reserved slot.
func (s *TicketService) Purchase(ctx context.Context, eventID, userID, userDID string) (*PurchaseResult, error) {
	start := time.Now()

	if eventID == "" || userID == "" || userDID == "" {
		return nil, fmt.Errorf("%w: event id, user id and user did required", status.ErrValidation)
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Early capacity check so a sold-out event conflicts before user
	// resolution. The reservation below is the authoritative one.
	if event.SoldTickets >= event.MaxTickets {
		monitoring.TrackPurchase(eventID, "sold_out")
		return nil, status.ErrSoldOut
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	event, err = s.store.ReserveTicketSlot(ctx, eventID)
	if err != nil {
		if err == status.ErrSoldOut {
			monitoring.TrackPurchase(eventID, "sold_out")
		}
		return nil, err
	}

	ticket, err := s.store.CreateTicket(ctx, models.InsertTicket{
		EventID:       event.ID,
		OwnerID:       user.ID,
		PurchasePrice: event.TicketPrice,
	})
	if err != nil {
		if releaseErr := s.store.ReleaseTicketSlot(ctx, eventID); releaseErr != nil {
			return nil, fmt.Errorf("create ticket: %w (release failed: %v)", err, releaseErr)
		}
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.cache.Invalidate(ctx)

	subject := buildCredentialSubject(ticket, event, userDID, time.Now())

	monitoring.TrackPurchase(eventID, "success")
	monitoring.ObservePurchaseDuration(eventID, time.Since(start))
	s.notifier.TicketPurchased(user.ID, ticket, event.Title)

	return &PurchaseResult{Ticket: ticket, CredentialSubject: subject}, nil
}

func (s *TicketService) Get(ctx context.Context, id string) (*models.Ticket, error) {
	return s.store.GetTicket(ctx, id)
}

func (s *TicketService) TicketsByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	return s.store.GetTicketsByUser(ctx, userID)
}

func (s *TicketService) TicketsByEvent(ctx context.Context, eventID string) ([]models.Ticket, error) {
	return s.store.GetTicketsByEvent(ctx, eventID)
}

// Create is the direct ticket-creation path (admin tooling). It goes
// through the same atomic reservation as Purchase.
func (s *TicketService) Create(ctx context.Context, in models.InsertTicket) (*models.Ticket, error) {
	if in.EventID == "" || in.OwnerID == "" {
		return nil, fmt.Errorf("%w: event id and owner id required", status.ErrValidation)
	}
	if _, err := s.store.ReserveTicketSlot(ctx, in.EventID); err != nil {
		return nil, err
	}
	ticket, err := s.store.CreateTicket(ctx, in)
	if err != nil {
		if releaseErr := s.store.ReleaseTicketSlot(ctx, in.EventID); releaseErr != nil {
			return nil, fmt.Errorf("create ticket: %w (release failed: %v)", err, releaseErr)
		}
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	s.cache.Invalidate(ctx)
	return ticket, nil
}

func (s *TicketService) Update(ctx context.Context, id string, upd models.TicketUpdate) (*models.Ticket, error) {
	return s.store.UpdateTicket(ctx, id, upd)
}

// Redeem flips isUsed once. Redeeming an already-redeemed ticket is
// rejected rather than treated as a no-op.
func (s *TicketService) Redeem(ctx context.Context, id string) (*models.Ticket, error) {
	ticket, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.IsUsed {
		return nil, status.ErrTicketRedeemed
	}
	used := true
	return s.store.UpdateTicket(ctx, id, models.TicketUpdate{IsUsed: &used})
}

// MarkIssued records a completed external issuance, backfilling the
// minted token reference.
func (s *TicketService) MarkIssued(ctx context.Context, id string, tokenID *string) (*models.Ticket, error) {
	issued := models.IssuanceIssued
	return s.store.UpdateTicket(ctx, id, models.TicketUpdate{
		TokenID:        tokenID,
		IssuanceStatus: &issued,
	})
}

func (s *TicketService) MarkIssuanceFailed(ctx context.Context, id string) (*models.Ticket, error) {
	failed := models.IssuanceFailed
	return s.store.UpdateTicket(ctx, id, models.TicketUpdate{IssuanceStatus: &failed})
}

// ReissueCredentialSubject rebuilds the credential subject for a ticket
// whose external issuance did not complete. It mutates nothing, so
// callers can retry it any number of times.
func (s *TicketService) ReissueCredentialSubject(ctx context.Context, ticketID, userDID string) (*models.CredentialSubject, error) {
	if userDID == "" {
		return nil, fmt.Errorf("%w: user did required", status.ErrValidation)
	}
	ticket, err := s.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	event, err := s.store.GetEvent(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}
	return buildCredentialSubject(ticket, event, userDID, ticket.PurchasedAt), nil
}

func buildCredentialSubject(ticket *models.Ticket, event *models.Event, userDID string, purchasedAt time.Time) *models.CredentialSubject {
	price := decimal.NewFromInt(int64(ticket.PurchasePrice))
	maxResale := price.Mul(resaleMarkup).Floor()

	eventDate := event.EventDate.UTC().Format(wireDateFormat)
	return &models.CredentialSubject{
		TicketID:          ticket.ID,
		EventName:         event.Title,
		ArtistName:        event.ArtistName,
		EventDate:         eventDate,
		Venue:             event.Venue,
		TicketType:        defaultTicketType,
		PurchasePrice:     strconv.Itoa(ticket.PurchasePrice),
		OriginalBuyer:     userDID,
		Transferable:      false,
		PurchaseTimestamp: purchasedAt.UTC().Format(wireDateFormat),
		ValidUntil:        eventDate,
		SeatInfo:          defaultSeatInfo,
		IsUsed:            ticket.IsUsed,
		MaxResalePrice:    maxResale.String(),
	}
}
