package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uuzor/mocalake/internal/status"
	"github.com/uuzor/mocalake/models"
)

// MemStorage keeps everything in maps behind one RWMutex. Capacity
// reservations run under the write lock, so the soldTickets invariant
// holds under concurrent purchases without any conditional SQL.
type MemStorage struct {
	mu          sync.RWMutex
	users       map[string]models.User
	events      map[string]models.Event
	tickets     map[string]models.Ticket
	credentials map[string]models.FanCredential
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:       make(map[string]models.User),
		events:      make(map[string]models.Event),
		tickets:     make(map[string]models.Ticket),
		credentials: make(map[string]models.FanCredential),
	}
}

func (s *MemStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, status.ErrUserNotFound
	}
	return &user, nil
}

func (s *MemStorage) GetUserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.WalletAddress == walletAddress {
			u := user
			return &u, nil
		}
	}
	return nil, status.ErrUserNotFound
}

func (s *MemStorage) CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.WalletAddress == in.WalletAddress {
			return nil, status.ErrDuplicateWallet
		}
	}

	user := models.User{
		ID:            uuid.NewString(),
		WalletAddress: in.WalletAddress,
		MocaID:        in.MocaID,
		Username:      in.Username,
		CreatedAt:     time.Now().UTC(),
	}
	s.users[user.ID] = user
	return &user, nil
}

func (s *MemStorage) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, status.ErrUserNotFound
	}
	if upd.MocaID != nil {
		user.MocaID = upd.MocaID
	}
	if upd.Username != nil {
		user.Username = upd.Username
	}
	if upd.ReputationScore != nil {
		user.ReputationScore = *upd.ReputationScore
	}
	if upd.VerifiedFan != nil {
		user.VerifiedFan = *upd.VerifiedFan
	}
	s.users[id] = user
	return &user, nil
}

func (s *MemStorage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, status.ErrEventNotFound
	}
	return &event, nil
}

func (s *MemStorage) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].EventDate.After(events[j].EventDate)
	})
	return events, nil
}

func (s *MemStorage) CreateEvent(ctx context.Context, in models.InsertEvent) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := models.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		ArtistName:  in.ArtistName,
		Venue:       in.Venue,
		EventDate:   in.EventDate,
		TicketPrice: in.TicketPrice,
		MaxTickets:  in.MaxTickets,
		ImageURL:    in.ImageURL,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}
	s.events[event.ID] = event
	return &event, nil
}

func (s *MemStorage) UpdateEvent(ctx context.Context, id string, upd models.EventUpdate) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return nil, status.ErrEventNotFound
	}
	if upd.ContractAddress != nil {
		event.ContractAddress = upd.ContractAddress
	}
	if upd.ImageURL != nil {
		event.ImageURL = upd.ImageURL
	}
	if upd.TicketPrice != nil {
		event.TicketPrice = *upd.TicketPrice
	}
	s.events[id] = event
	return &event, nil
}

func (s *MemStorage) ReserveTicketSlot(ctx context.Context, eventID string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return nil, status.ErrEventNotFound
	}
	if event.SoldTickets >= event.MaxTickets {
		return nil, status.ErrSoldOut
	}
	event.SoldTickets++
	s.events[eventID] = event
	return &event, nil
}

func (s *MemStorage) ReleaseTicketSlot(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return status.ErrEventNotFound
	}
	if event.SoldTickets > 0 {
		event.SoldTickets--
		s.events[eventID] = event
	}
	return nil
}

func (s *MemStorage) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, status.ErrTicketNotFound
	}
	return &ticket, nil
}

func (s *MemStorage) GetTicketsByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := []models.Ticket{}
	for _, ticket := range s.tickets {
		if ticket.OwnerID == userID {
			tickets = append(tickets, ticket)
		}
	}
	sortTicketsByPurchaseDesc(tickets)
	return tickets, nil
}

func (s *MemStorage) GetTicketsByEvent(ctx context.Context, eventID string) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := []models.Ticket{}
	for _, ticket := range s.tickets {
		if ticket.EventID == eventID {
			tickets = append(tickets, ticket)
		}
	}
	sortTicketsByPurchaseDesc(tickets)
	return tickets, nil
}

func (s *MemStorage) CreateTicket(ctx context.Context, in models.InsertTicket) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := models.Ticket{
		ID:             uuid.NewString(),
		EventID:        in.EventID,
		OwnerID:        in.OwnerID,
		PurchasePrice:  in.PurchasePrice,
		IssuanceStatus: models.IssuancePending,
		PurchasedAt:    time.Now().UTC(),
	}
	s.tickets[ticket.ID] = ticket
	return &ticket, nil
}

func (s *MemStorage) UpdateTicket(ctx context.Context, id string, upd models.TicketUpdate) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, status.ErrTicketNotFound
	}
	if upd.TokenID != nil {
		ticket.TokenID = upd.TokenID
	}
	if upd.IsUsed != nil {
		ticket.IsUsed = *upd.IsUsed
	}
	if upd.IssuanceStatus != nil {
		ticket.IssuanceStatus = *upd.IssuanceStatus
	}
	s.tickets[id] = ticket
	return &ticket, nil
}

func (s *MemStorage) GetFanCredential(ctx context.Context, id string) (*models.FanCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	credential, ok := s.credentials[id]
	if !ok {
		return nil, status.ErrCredentialNotFound
	}
	return &credential, nil
}

func (s *MemStorage) GetFanCredentialsByUser(ctx context.Context, userID string) ([]models.FanCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	credentials := []models.FanCredential{}
	for _, credential := range s.credentials {
		if credential.UserID == userID {
			credentials = append(credentials, credential)
		}
	}
	sort.Slice(credentials, func(i, j int) bool {
		return credentials[i].IssuedAt.After(credentials[j].IssuedAt)
	})
	return credentials, nil
}

func (s *MemStorage) CreateFanCredential(ctx context.Context, in models.InsertFanCredential) (*models.FanCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	credential := models.FanCredential{
		ID:             uuid.NewString(),
		UserID:         in.UserID,
		ArtistName:     in.ArtistName,
		CredentialType: in.CredentialType,
		CredentialData: in.CredentialData,
		IssuedAt:       time.Now().UTC(),
	}
	s.credentials[credential.ID] = credential
	return &credential, nil
}

func (s *MemStorage) Close() error {
	return nil
}

func sortTicketsByPurchaseDesc(tickets []models.Ticket) {
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].PurchasedAt.After(tickets[j].PurchasedAt)
	})
}
