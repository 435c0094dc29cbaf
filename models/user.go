package models

import (
	"time"
)

type User struct {
	ID              string    `json:"id"`
	WalletAddress   string    `json:"walletAddress"`
	MocaID          *string   `json:"mocaId"`
	Username        *string   `json:"username"`
	ReputationScore int       `json:"reputationScore"`
	VerifiedFan     bool      `json:"verifiedFan"`
	CreatedAt       time.Time `json:"createdAt"`
}

// InsertUser is the caller-supplied projection of User. Defaults
// (reputationScore=0, verifiedFan=false) are assigned by the store.
type InsertUser struct {
	WalletAddress string  `json:"walletAddress"`
	MocaID        *string `json:"mocaId"`
	Username      *string `json:"username"`
}

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	MocaID          *string
	Username        *string
	ReputationScore *int
	VerifiedFan     *bool
}
