// Package auth issues the short-lived assertion that authorizes
// credential issuance against the external identity service.
package auth

import (
	"crypto/rsa"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/uuzor/mocalake/internal/status"
)

// Key identifier pinned by the external verifier's JWKS.
const keyID = "6386cb4d-c0de-4629-a412-8dcf6f50f805"

const (
	tokenTTL   = time.Hour
	tokenScope = "issue verify"
)

type TokenIssuer struct {
	key *rsa.PrivateKey
}

// NewTokenIssuer parses the PEM-encoded RSA private key up front, so a
// misconfigured key fails loudly at startup instead of on the first
// request. Keys pasted through env vars often carry literal "\n"
// sequences; those are normalized before parsing.
func NewTokenIssuer(privateKeyPEM string) (*TokenIssuer, error) {
	if strings.TrimSpace(privateKeyPEM) == "" {
		return nil, status.ErrSigningKey
	}
	normalized := strings.ReplaceAll(privateKeyPEM, `\n`, "\n")
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(normalized))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrSigningKey, err)
	}
	return &TokenIssuer{key: key}, nil
}

// Issue signs a one-hour RS256 assertion with payload
// {partnerId, scope: "issue verify"} under the pinned key id.
func (i *TokenIssuer) Issue(partnerID string) (string, error) {
	if partnerID == "" {
		return "", fmt.Errorf("%w: partner id required", status.ErrValidation)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"partnerId": partnerID,
		"scope":     tokenScope,
		"iat":       jwt.NewNumericDate(now),
		"exp":       jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = keyID

	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
