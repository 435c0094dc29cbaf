package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/dbx"
	_ "modernc.org/sqlite"

	"github.com/uuzor/mocalake/internal/status"
	"github.com/uuzor/mocalake/models"
)

// SQLiteStorage is the persistent backend. Timestamps are stored as
// unix seconds and booleans as integers; the conditional UPDATE in
// ReserveTicketSlot is what keeps soldTickets <= maxTickets under
// concurrent purchases.
type SQLiteStorage struct {
	db *dbx.DB
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL UNIQUE,
		moca_id TEXT UNIQUE,
		username TEXT,
		reputation_score INTEGER NOT NULL DEFAULT 0,
		verified_fan INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		artist_name TEXT NOT NULL,
		venue TEXT NOT NULL,
		event_date INTEGER NOT NULL,
		ticket_price INTEGER NOT NULL,
		max_tickets INTEGER NOT NULL,
		sold_tickets INTEGER NOT NULL DEFAULT 0,
		image_url TEXT,
		contract_address TEXT,
		created_by TEXT REFERENCES users(id),
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL REFERENCES events(id),
		owner_id TEXT NOT NULL REFERENCES users(id),
		token_id TEXT UNIQUE,
		purchase_price INTEGER NOT NULL,
		is_used INTEGER NOT NULL DEFAULT 0,
		issuance_status TEXT NOT NULL DEFAULT 'pending',
		purchased_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS fan_credentials (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		artist_name TEXT NOT NULL,
		credential_type TEXT NOT NULL,
		credential_data TEXT,
		issued_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_owner ON tickets(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_event ON tickets(event_id)`,
	`CREATE INDEX IF NOT EXISTS idx_credentials_user ON fan_credentials(user_id)`,
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := dbx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Foreign keys stay declarative: credential recording is
	// best-effort and must succeed even for an unresolvable user.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.NewQuery(pragma).Execute(); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	for _, stmt := range schemaStatements {
		if _, err := db.NewQuery(stmt).Execute(); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &SQLiteStorage{db: db}, nil
}

type userRow struct {
	ID              string  `db:"id"`
	WalletAddress   string  `db:"wallet_address"`
	MocaID          *string `db:"moca_id"`
	Username        *string `db:"username"`
	ReputationScore int     `db:"reputation_score"`
	VerifiedFan     int     `db:"verified_fan"`
	CreatedAt       int64   `db:"created_at"`
}

func (r userRow) toModel() *models.User {
	return &models.User{
		ID:              r.ID,
		WalletAddress:   r.WalletAddress,
		MocaID:          r.MocaID,
		Username:        r.Username,
		ReputationScore: r.ReputationScore,
		VerifiedFan:     r.VerifiedFan != 0,
		CreatedAt:       time.Unix(r.CreatedAt, 0).UTC(),
	}
}

type eventRow struct {
	ID              string  `db:"id"`
	Title           string  `db:"title"`
	Description     *string `db:"description"`
	ArtistName      string  `db:"artist_name"`
	Venue           string  `db:"venue"`
	EventDate       int64   `db:"event_date"`
	TicketPrice     int     `db:"ticket_price"`
	MaxTickets      int     `db:"max_tickets"`
	SoldTickets     int     `db:"sold_tickets"`
	ImageURL        *string `db:"image_url"`
	ContractAddress *string `db:"contract_address"`
	CreatedBy       *string `db:"created_by"`
	CreatedAt       int64   `db:"created_at"`
}

func (r eventRow) toModel() *models.Event {
	return &models.Event{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		ArtistName:      r.ArtistName,
		Venue:           r.Venue,
		EventDate:       time.Unix(r.EventDate, 0).UTC(),
		TicketPrice:     r.TicketPrice,
		MaxTickets:      r.MaxTickets,
		SoldTickets:     r.SoldTickets,
		ImageURL:        r.ImageURL,
		ContractAddress: r.ContractAddress,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       time.Unix(r.CreatedAt, 0).UTC(),
	}
}

type ticketRow struct {
	ID             string  `db:"id"`
	EventID        string  `db:"event_id"`
	OwnerID        string  `db:"owner_id"`
	TokenID        *string `db:"token_id"`
	PurchasePrice  int     `db:"purchase_price"`
	IsUsed         int     `db:"is_used"`
	IssuanceStatus string  `db:"issuance_status"`
	PurchasedAt    int64   `db:"purchased_at"`
}

func (r ticketRow) toModel() *models.Ticket {
	return &models.Ticket{
		ID:             r.ID,
		EventID:        r.EventID,
		OwnerID:        r.OwnerID,
		TokenID:        r.TokenID,
		PurchasePrice:  r.PurchasePrice,
		IsUsed:         r.IsUsed != 0,
		IssuanceStatus: r.IssuanceStatus,
		PurchasedAt:    time.Unix(r.PurchasedAt, 0).UTC(),
	}
}

type credentialRow struct {
	ID             string  `db:"id"`
	UserID         string  `db:"user_id"`
	ArtistName     string  `db:"artist_name"`
	CredentialType string  `db:"credential_type"`
	CredentialData *string `db:"credential_data"`
	IssuedAt       int64   `db:"issued_at"`
}

func (r credentialRow) toModel() *models.FanCredential {
	return &models.FanCredential{
		ID:             r.ID,
		UserID:         r.UserID,
		ArtistName:     r.ArtistName,
		CredentialType: r.CredentialType,
		CredentialData: r.CredentialData,
		IssuedAt:       time.Unix(r.IssuedAt, 0).UTC(),
	}
}

func (s *SQLiteStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	var row userRow
	err := s.db.Select("*").From("users").Where(dbx.HashExp{"id": id}).WithContext(ctx).One(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteStorage) GetUserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	var row userRow
	err := s.db.Select("*").From("users").Where(dbx.HashExp{"wallet_address": walletAddress}).WithContext(ctx).One(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by wallet: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteStorage) CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error) {
	id := uuid.NewString()
	_, err := s.db.Insert("users", dbx.Params{
		"id":             id,
		"wallet_address": in.WalletAddress,
		"moca_id":        in.MocaID,
		"username":       in.Username,
		"created_at":     time.Now().Unix(),
	}).WithContext(ctx).Execute()
	if err != nil {
		if isUniqueViolation(err) {
			return nil, status.ErrDuplicateWallet
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return s.GetUser(ctx, id)
}

func (s *SQLiteStorage) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	params := dbx.Params{}
	if upd.MocaID != nil {
		params["moca_id"] = upd.MocaID
	}
	if upd.Username != nil {
		params["username"] = upd.Username
	}
	if upd.ReputationScore != nil {
		params["reputation_score"] = *upd.ReputationScore
	}
	if upd.VerifiedFan != nil {
		params["verified_fan"] = boolToInt(*upd.VerifiedFan)
	}
	if len(params) > 0 {
		if _, err := s.db.Update("users", params, dbx.HashExp{"id": id}).WithContext(ctx).Execute(); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}
	return s.GetUser(ctx, id)
}

func (s *SQLiteStorage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var row eventRow
	err := s.db.Select("*").From("events").Where(dbx.HashExp{"id": id}).WithContext(ctx).One(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteStorage) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	var rows []eventRow
	err := s.db.Select("*").From("events").OrderBy("event_date DESC").WithContext(ctx).All(&rows)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, *row.toModel())
	}
	return events, nil
}

func (s *SQLiteStorage) CreateEvent(ctx context.Context, in models.InsertEvent) (*models.Event, error) {
	id := uuid.NewString()
	_, err := s.db.Insert("events", dbx.Params{
		"id":           id,
		"title":        in.Title,
		"description":  in.Description,
		"artist_name":  in.ArtistName,
		"venue":        in.Venue,
		"event_date":   in.EventDate.Unix(),
		"ticket_price": in.TicketPrice,
		"max_tickets":  in.MaxTickets,
		"image_url":    in.ImageURL,
		"created_by":   in.CreatedBy,
		"created_at":   time.Now().Unix(),
	}).WithContext(ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return s.GetEvent(ctx, id)
}

func (s *SQLiteStorage) UpdateEvent(ctx context.Context, id string, upd models.EventUpdate) (*models.Event, error) {
	params := dbx.Params{}
	if upd.ContractAddress != nil {
		params["contract_address"] = upd.ContractAddress
	}
	if upd.ImageURL != nil {
		params["image_url"] = upd.ImageURL
	}
	if upd.TicketPrice != nil {
		params["ticket_price"] = *upd.TicketPrice
	}
	if len(params) > 0 {
		if _, err := s.db.Update("events", params, dbx.HashExp{"id": id}).WithContext(ctx).Execute(); err != nil {
			return nil, fmt.Errorf("update event: %w", err)
		}
	}
	return s.GetEvent(ctx, id)
}

func (s *SQLiteStorage) ReserveTicketSlot(ctx context.Context, eventID string) (*models.Event, error) {
	res, err := s.db.NewQuery(
		"UPDATE events SET sold_tickets = sold_tickets + 1 WHERE id = {:id} AND sold_tickets < max_tickets",
	).Bind(dbx.Params{"id": eventID}).WithContext(ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("reserve ticket slot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reserve ticket slot: %w", err)
	}
	if affected == 0 {
		// Either the event is missing or it is full.
		if _, err := s.GetEvent(ctx, eventID); err != nil {
			return nil, err
		}
		return nil, status.ErrSoldOut
	}
	return s.GetEvent(ctx, eventID)
}

func (s *SQLiteStorage) ReleaseTicketSlot(ctx context.Context, eventID string) error {
	res, err := s.db.NewQuery(
		"UPDATE events SET sold_tickets = sold_tickets - 1 WHERE id = {:id} AND sold_tickets > 0",
	).Bind(dbx.Params{"id": eventID}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("release ticket slot: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		if _, err := s.GetEvent(ctx, eventID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStorage) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	var row ticketRow
	err := s.db.Select("*").From("tickets").Where(dbx.HashExp{"id": id}).WithContext(ctx).One(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteStorage) GetTicketsByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	return s.listTickets(ctx, dbx.HashExp{"owner_id": userID})
}

func (s *SQLiteStorage) GetTicketsByEvent(ctx context.Context, eventID string) ([]models.Ticket, error) {
	return s.listTickets(ctx, dbx.HashExp{"event_id": eventID})
}

func (s *SQLiteStorage) listTickets(ctx context.Context, cond dbx.HashExp) ([]models.Ticket, error) {
	var rows []ticketRow
	err := s.db.Select("*").From("tickets").Where(cond).OrderBy("purchased_at DESC").WithContext(ctx).All(&rows)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	tickets := make([]models.Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, *row.toModel())
	}
	return tickets, nil
}

func (s *SQLiteStorage) CreateTicket(ctx context.Context, in models.InsertTicket) (*models.Ticket, error) {
	id := uuid.NewString()
	_, err := s.db.Insert("tickets", dbx.Params{
		"id":              id,
		"event_id":        in.EventID,
		"owner_id":        in.OwnerID,
		"purchase_price":  in.PurchasePrice,
		"issuance_status": models.IssuancePending,
		"purchased_at":    time.Now().Unix(),
	}).WithContext(ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	return s.GetTicket(ctx, id)
}

func (s *SQLiteStorage) UpdateTicket(ctx context.Context, id string, upd models.TicketUpdate) (*models.Ticket, error) {
	params := dbx.Params{}
	if upd.TokenID != nil {
		params["token_id"] = upd.TokenID
	}
	if upd.IsUsed != nil {
		params["is_used"] = boolToInt(*upd.IsUsed)
	}
	if upd.IssuanceStatus != nil {
		params["issuance_status"] = *upd.IssuanceStatus
	}
	if len(params) > 0 {
		if _, err := s.db.Update("tickets", params, dbx.HashExp{"id": id}).WithContext(ctx).Execute(); err != nil {
			return nil, fmt.Errorf("update ticket: %w", err)
		}
	}
	return s.GetTicket(ctx, id)
}

func (s *SQLiteStorage) GetFanCredential(ctx context.Context, id string) (*models.FanCredential, error) {
	var row credentialRow
	err := s.db.Select("*").From("fan_credentials").Where(dbx.HashExp{"id": id}).WithContext(ctx).One(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return row.toModel(), nil
}

func (s *SQLiteStorage) GetFanCredentialsByUser(ctx context.Context, userID string) ([]models.FanCredential, error) {
	var rows []credentialRow
	err := s.db.Select("*").From("fan_credentials").Where(dbx.HashExp{"user_id": userID}).
		OrderBy("issued_at DESC").WithContext(ctx).All(&rows)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	credentials := make([]models.FanCredential, 0, len(rows))
	for _, row := range rows {
		credentials = append(credentials, *row.toModel())
	}
	return credentials, nil
}

func (s *SQLiteStorage) CreateFanCredential(ctx context.Context, in models.InsertFanCredential) (*models.FanCredential, error) {
	id := uuid.NewString()
	_, err := s.db.Insert("fan_credentials", dbx.Params{
		"id":              id,
		"user_id":         in.UserID,
		"artist_name":     in.ArtistName,
		"credential_type": in.CredentialType,
		"credential_data": in.CredentialData,
		"issued_at":       time.Now().Unix(),
	}).WithContext(ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("insert credential: %w", err)
	}
	return s.GetFanCredential(ctx, id)
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
