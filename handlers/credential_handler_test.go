package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/services"
	"github.com/uuzor/mocalake/storage"
)

func newCredentialRouter(t *testing.T) (*echo.Echo, *models.User, storage.Storage) {
	t.Helper()
	store := storage.NewMemStorage()

	user, err := store.CreateUser(context.Background(), models.InsertUser{WalletAddress: "0xfan"})
	require.NoError(t, err)

	h := NewCredentialHandler(services.NewCredentialService(store, nil))

	e := echo.New()
	e.POST("/api/credentials", h.Record)
	e.POST("/api/credentials/verify", h.Verify)
	e.GET("/api/credentials/user/:userId", h.CredentialsByUser)

	return e, user, store
}

func postJSON(t *testing.T, e *echo.Echo, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecordEndpoint(t *testing.T) {
	e, user, store := newCredentialRouter(t)

	rec := postJSON(t, e, "/api/credentials", map[string]string{
		"userId":         user.ID,
		"artistName":     "Moca",
		"credentialType": "early_supporter",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var credential models.FanCredential
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &credential))
	assert.NotEmpty(t, credential.ID)
	assert.Equal(t, "early_supporter", credential.CredentialType)

	updated, err := store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.ReputationScore)
	assert.True(t, updated.VerifiedFan)
}

func TestRecordEndpoint_Validation(t *testing.T) {
	e, user, _ := newCredentialRouter(t)

	rec := postJSON(t, e, "/api/credentials", map[string]string{"userId": user.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["code"])
}

func TestVerifyEndpoint(t *testing.T) {
	e, user, _ := newCredentialRouter(t)

	rec := postJSON(t, e, "/api/credentials", map[string]string{
		"userId":         user.ID,
		"artistName":     "Moca",
		"credentialType": "attendance",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, e, "/api/credentials/verify", map[string]string{
		"userId":         user.ID,
		"artistName":     "Moca",
		"credentialType": "attendance",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var verified map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verified))
	assert.True(t, verified["verified"])

	rec = postJSON(t, e, "/api/credentials/verify", map[string]string{
		"userId":         user.ID,
		"artistName":     "Other",
		"credentialType": "attendance",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verified))
	assert.False(t, verified["verified"])
}

func TestCredentialsByUserEndpoint(t *testing.T) {
	e, user, _ := newCredentialRouter(t)

	for _, credentialType := range []string{"early_supporter", "attendance"} {
		rec := postJSON(t, e, "/api/credentials", map[string]string{
			"userId":         user.ID,
			"artistName":     "Moca",
			"credentialType": credentialType,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/credentials/user/"+user.ID, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var credentials []models.FanCredential
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &credentials))
	assert.Len(t, credentials, 2)
}
