package models

import (
	"time"
)

type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	ArtistName      string    `json:"artistName"`
	Venue           string    `json:"venue"`
	EventDate       time.Time `json:"eventDate"`
	TicketPrice     int       `json:"ticketPrice"`
	MaxTickets      int       `json:"maxTickets"`
	SoldTickets     int       `json:"soldTickets"`
	ImageURL        *string   `json:"imageUrl"`
	ContractAddress *string   `json:"contractAddress"`
	CreatedBy       *string   `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

type InsertEvent struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ArtistName  string    `json:"artistName"`
	Venue       string    `json:"venue"`
	EventDate   time.Time `json:"eventDate"`
	TicketPrice int       `json:"ticketPrice"`
	MaxTickets  int       `json:"maxTickets"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedBy   *string   `json:"createdBy"`
}

// EventUpdate carries a partial update; nil fields are left untouched.
// SoldTickets is deliberately absent: the counter only moves through
// the store's reserve/release operations.
type EventUpdate struct {
	ContractAddress *string `json:"contractAddress"`
	ImageURL        *string `json:"imageUrl"`
	TicketPrice     *int    `json:"ticketPrice"`
}
