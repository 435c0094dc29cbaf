package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The issuance service matches subject fields by name; a renamed key
// breaks minting silently, so the wire shape is pinned here.
func TestCredentialSubject_WireShape(t *testing.T) {
	subject := CredentialSubject{
		TicketID:          "t1",
		EventName:         "Moca Live",
		ArtistName:        "Moca",
		EventDate:         "2026-11-20",
		Venue:             "Grand Hall",
		TicketType:        "general",
		PurchasePrice:     "150",
		OriginalBuyer:     "did:moca:buyer",
		Transferable:      false,
		PurchaseTimestamp: "2026-09-01",
		ValidUntil:        "2026-11-20",
		SeatInfo:          "General Admission",
		IsUsed:            false,
		MaxResalePrice:    "165",
	}

	data, err := json.Marshal(subject)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	keys := []string{
		"ticketId", "eventName", "artistName", "eventDate", "venue",
		"ticketType", "purchasePrice", "originalBuyer", "transferable",
		"purchaseTimestamp", "validUntil", "seatInfo", "isUsed",
		"maxResalePrice",
	}
	require.Len(t, raw, len(keys))
	for _, key := range keys {
		assert.Contains(t, raw, key)
	}

	// Prices travel as strings, flags as booleans.
	assert.Equal(t, "150", raw["purchasePrice"])
	assert.Equal(t, "165", raw["maxResalePrice"])
	assert.Equal(t, false, raw["transferable"])
	assert.Equal(t, false, raw["isUsed"])
}
