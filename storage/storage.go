// Package storage provides durable CRUD access to the four core
// entities over two interchangeable backends: an in-memory store for
// tests and ephemeral runs, and a SQLite store for everything else.
// Callers hold the interface and never know which backend is active.
package storage

import (
	"context"

	"github.com/uuzor/mocalake/models"
)

type Storage interface {
	// Users
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error)
	CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error)
	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)

	// Events
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, in models.InsertEvent) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, upd models.EventUpdate) (*models.Event, error)

	// ReserveTicketSlot increments soldTickets if and only if capacity
	// remains, as a single atomic step. It returns the event as of the
	// reservation, status.ErrSoldOut when full, or
	// status.ErrEventNotFound. ReleaseTicketSlot undoes one
	// reservation after a failed purchase; it never drops below zero.
	ReserveTicketSlot(ctx context.Context, eventID string) (*models.Event, error)
	ReleaseTicketSlot(ctx context.Context, eventID string) error

	// Tickets
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	GetTicketsByUser(ctx context.Context, userID string) ([]models.Ticket, error)
	GetTicketsByEvent(ctx context.Context, eventID string) ([]models.Ticket, error)
	CreateTicket(ctx context.Context, in models.InsertTicket) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, id string, upd models.TicketUpdate) (*models.Ticket, error)

	// Fan credentials (append-only)
	GetFanCredential(ctx context.Context, id string) (*models.FanCredential, error)
	GetFanCredentialsByUser(ctx context.Context, userID string) ([]models.FanCredential, error)
	CreateFanCredential(ctx context.Context, in models.InsertFanCredential) (*models.FanCredential, error)

	Close() error
}
