// Package status defines the stable error taxonomy shared by the
// storage, service and handler layers. Handlers map these to HTTP
// codes; everything else matches with errors.Is.
package status

import "errors"

var (
	ErrUserNotFound       = errors.New("user: not found")
	ErrEventNotFound      = errors.New("event: not found")
	ErrTicketNotFound     = errors.New("ticket: not found")
	ErrCredentialNotFound = errors.New("credential: not found")

	// Conflict family.
	ErrSoldOut         = errors.New("event: sold out")
	ErrTicketRedeemed  = errors.New("ticket: already redeemed")
	ErrDuplicateWallet = errors.New("user: wallet address already registered")

	ErrValidation = errors.New("request: invalid")

	// Configuration errors surface at the operation that needs the
	// missing value, except the token issuer which fails at startup.
	ErrSigningKey = errors.New("auth: signing key missing or malformed")

	// External credential-issuance service failed; opaque to this core.
	ErrUpstream = errors.New("issuance: upstream service failed")
)
