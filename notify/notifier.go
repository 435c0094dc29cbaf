// Package notify publishes realtime updates to per-user PubNub
// channels so the frontend can react to purchases and credential
// grants without polling. All methods are safe on a nil receiver.
package notify

import (
	"fmt"
	"log"
	"time"

	pubnub "github.com/pubnub/go"

	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/utils"
)

type Notifier struct {
	pn      *pubnub.PubNub
	breaker *utils.CircuitBreaker
}

func NewNotifier(pn *pubnub.PubNub) *Notifier {
	return &Notifier{
		pn:      pn,
		breaker: utils.NewCircuitBreaker("pubnub", 5, 30*time.Second),
	}
}

func (n *Notifier) TicketPurchased(userID string, ticket *models.Ticket, eventTitle string) {
	n.publish(userID, map[string]any{
		"type":       "ticket_purchased",
		"ticket_id":  ticket.ID,
		"event_id":   ticket.EventID,
		"event_name": eventTitle,
		"price":      ticket.PurchasePrice,
	})
}

func (n *Notifier) CredentialRecorded(userID, credentialType string, points int) {
	n.publish(userID, map[string]any{
		"type":            "credential_recorded",
		"credential_type": credentialType,
		"points":          points,
	})
}

func (n *Notifier) publish(userID string, message map[string]any) {
	if n == nil || n.pn == nil {
		return
	}
	channel := fmt.Sprintf("user-%s", userID)
	err := n.breaker.Execute(func() error {
		_, _, err := n.pn.Publish().
			Channel(channel).
			Message(message).
			Execute()
		return err
	})
	if err != nil {
		log.Printf("notify publish to %s failed: %v", channel, err)
	}
}
