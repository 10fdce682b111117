package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minibooks/minibooks/internal/platform/httpx"
	"github.com/minibooks/minibooks/internal/shared"
)

func newTestServer(t *testing.T, repo Repository, redactDetail bool) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	handler := NewHandler(logger, NewService(repo, nil), redactDetail)
	r := chi.NewRouter()
	r.Route("/api", handler.Routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) httpx.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var body httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandlerCreateAndGet(t *testing.T) {
	srv := newTestServer(t, newMemRepo(), false)

	resp := postJSON(t, srv.URL+"/api/accounts", validRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created AccountView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, "1000", created.Code)
	assert.Equal(t, "0", created.Balance)

	getResp, err := http.Get(srv.URL + "/api/accounts/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var fetched AccountView
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&fetched))
	getResp.Body.Close()
	assert.Equal(t, created.ID, fetched.ID)
}

func TestHandlerValidationFailureShape(t *testing.T) {
	srv := newTestServer(t, newMemRepo(), false)

	resp, err := http.Get(srv.URL + "/api/accounts/not-a-uuid")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, shared.CodeValidation, body.Code)
	assert.NotEmpty(t, body.Detail)
}

func TestHandlerNotFound(t *testing.T) {
	srv := newTestServer(t, newMemRepo(), false)

	resp, err := http.Get(srv.URL + "/api/accounts/" + uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, shared.CodeNotFound, body.Code)
}

func TestHandlerDeleteIsIdempotent(t *testing.T) {
	srv := newTestServer(t, newMemRepo(), false)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/accounts/"+uuid.NewString(), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHandlerCategoriesEndpoint(t *testing.T) {
	srv := newTestServer(t, newMemRepo(), false)

	resp, err := http.Get(srv.URL + "/api/account-types/EQUITY/categories")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tokens []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
	resp.Body.Close()
	assert.Equal(t, []string{"OWNER_EQUITY", "RETAINED_EARNINGS"}, tokens)

	resp, err = http.Get(srv.URL + "/api/account-types/BOGUS/categories")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// failingRepo simulates a storage outage.
type failingRepo struct {
	*memRepo
}

func (failingRepo) FindAll(ctx context.Context) ([]Account, error) {
	return nil, shared.DatabaseError(errors.New("connection refused: 10.0.0.7:5432"))
}

func TestHandlerRedactsStorageDetailInProduction(t *testing.T) {
	repo := failingRepo{newMemRepo()}

	srv := newTestServer(t, repo, true)
	resp, err := http.Get(srv.URL + "/api/accounts")
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, shared.CodeDatabase, body.Code)
	assert.Empty(t, body.Detail)

	srv = newTestServer(t, repo, false)
	resp, err = http.Get(srv.URL + "/api/accounts")
	require.NoError(t, err)
	body = decodeError(t, resp)
	assert.Contains(t, body.Detail, "connection refused")
}

func TestHandlerAdjustBalance(t *testing.T) {
	repo := newMemRepo()
	srv := newTestServer(t, repo, false)

	resp := postJSON(t, srv.URL+"/api/accounts", validRequest())
	var created AccountView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/accounts/"+created.ID+"/balance", map[string]string{"amount": "12.50"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adjusted AccountView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&adjusted))
	resp.Body.Close()
	assert.True(t, decimal.RequireFromString(adjusted.Balance).Equal(decimal.RequireFromString("12.50")))
}
