package handlers

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"testing"

	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uuzor/mocalake/auth"
)

func newAuthRouter(t *testing.T) *echo.Echo {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	issuer, err := auth.NewTokenIssuer(string(keyPEM))
	require.NoError(t, err)

	e := echo.New()
	e.POST("/api/auth/jwt", NewAuthHandler(issuer).IssueToken)
	return e
}

func TestIssueTokenEndpoint(t *testing.T) {
	e := newAuthRouter(t)

	rec := postJSON(t, e, "/api/auth/jwt", map[string]string{"partnerId": "partner-1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
}

func TestIssueTokenEndpoint_MissingPartnerID(t *testing.T) {
	e := newAuthRouter(t)

	rec := postJSON(t, e, "/api/auth/jwt", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueTokenEndpoint_NoSigningKey(t *testing.T) {
	e := echo.New()
	e.POST("/api/auth/jwt", NewAuthHandler(nil).IssueToken)

	rec := postJSON(t, e, "/api/auth/jwt", map[string]string{"partnerId": "partner-1"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "configuration_error", body["code"])
}
