package models

import (
	"time"
)

// Reputation-bearing credential types. Any other value is accepted as a
// free-form tag and scored at the base rate.
const (
	CredentialEarlySupporter = "early_supporter"
	CredentialAttendance     = "attendance"
	CredentialVIP            = "vip"
)

type FanCredential struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ArtistName     string    `json:"artistName"`
	CredentialType string    `json:"credentialType"`
	CredentialData *string   `json:"credentialData"`
	IssuedAt       time.Time `json:"issuedAt"`
}

type InsertFanCredential struct {
	UserID         string  `json:"userId"`
	ArtistName     string  `json:"artistName"`
	CredentialType string  `json:"credentialType"`
	CredentialData *string `json:"credentialData"`
}

// CredentialSubject is handed to the external credential-issuance
// service. Field names are part of that service's contract and must not
// change.
type CredentialSubject struct {
	TicketID          string `json:"ticketId"`
	EventName         string `json:"eventName"`
	ArtistName        string `json:"artistName"`
	EventDate         string `json:"eventDate"`
	Venue             string `json:"venue"`
	TicketType        string `json:"ticketType"`
	PurchasePrice     string `json:"purchasePrice"`
	OriginalBuyer     string `json:"originalBuyer"`
	Transferable      bool   `json:"transferable"`
	PurchaseTimestamp string `json:"purchaseTimestamp"`
	ValidUntil        string `json:"validUntil"`
	SeatInfo          string `json:"seatInfo"`
	IsUsed            bool   `json:"isUsed"`
	MaxResalePrice    string `json:"maxResalePrice"`
}
