package models

import (
	"time"
)

// Issuance tracks whether the external credential service has minted a
// credential for the ticket. Tickets start out pending and stay valid
// either way; issuance can be retried per ticket id.
const (
	IssuancePending = "pending"
	IssuanceIssued  = "issued"
	IssuanceFailed  = "failed"
)

type Ticket struct {
	ID             string    `json:"id"`
	EventID        string    `json:"eventId"`
	OwnerID        string    `json:"ownerId"`
	TokenID        *string   `json:"tokenId"`
	PurchasePrice  int       `json:"purchasePrice"`
	IsUsed         bool      `json:"isUsed"`
	IssuanceStatus string    `json:"issuanceStatus"`
	PurchasedAt    time.Time `json:"purchasedAt"`
}

// InsertTicket snapshots the event price at purchase time; the price is
// never recomputed from the event afterwards.
type InsertTicket struct {
	EventID       string `json:"eventId"`
	OwnerID       string `json:"ownerId"`
	PurchasePrice int    `json:"purchasePrice"`
}

// TicketUpdate carries a partial update; nil fields are left untouched.
type TicketUpdate struct {
	TokenID        *string `json:"tokenId"`
	IsUsed         *bool   `json:"isUsed"`
	IssuanceStatus *string `json:"issuanceStatus"`
}
