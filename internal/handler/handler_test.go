package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmatsui/bookkeeping-service/internal/middleware"
	"github.com/dmatsui/bookkeeping-service/internal/models"
	"github.com/dmatsui/bookkeeping-service/internal/repository"
	"github.com/dmatsui/bookkeeping-service/internal/seed"
	"github.com/dmatsui/bookkeeping-service/internal/service"
	"github.com/dmatsui/bookkeeping-service/internal/testutil"
)

const testOrg = int64(1)

const testChart = `
categories:
  - name: Ordinary Deposit
  - name: Sales Revenue
accounts:
  - name: Main Bank
    offset_category: Ordinary Deposit
`

type testServer struct {
	router  *mux.Router
	svc     *service.Service
	account *models.Account
	sales   int64
}

// newTestServer wires the real stack over an in-memory database. The
// auth middleware is replaced by a fixed-tenant injector.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := repository.NewRepository(testutil.OpenDB(t))
	chart, err := seed.Parse(strings.NewReader(testChart))
	require.NoError(t, err)
	require.NoError(t, seed.Apply(repo, testOrg, chart))

	account, err := repo.FindAccountByName(testOrg, "Main Bank")
	require.NoError(t, err)
	categories, err := repo.ListCategories(testOrg)
	require.NoError(t, err)
	var sales int64
	for _, c := range categories {
		if c.Name == "Sales Revenue" {
			sales = c.ID
		}
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := service.NewService(repo, logger)
	h := NewHandler(svc)

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithOrganization(req.Context(), testOrg)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.HandleFunc("/accounts", h.Accounts).Methods("GET")
	r.HandleFunc("/transactions/import", h.Import).Methods("POST")
	r.HandleFunc("/transactions/imported", h.List).Methods("GET")
	r.HandleFunc("/transactions/imported/{id}", h.Get).Methods("GET")
	r.HandleFunc("/transactions/imported/{id}/post", h.Post).Methods("POST")
	r.HandleFunc("/transactions/imported/{id}/reverse", h.Reverse).Methods("POST")
	r.HandleFunc("/transactions/imported/{id}/delete", h.Delete).Methods("POST")

	return &testServer{router: r, svc: svc, account: account, sales: sales}
}

func (s *testServer) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func multipartUpload(t *testing.T, accountID int64, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("account_id", fmt.Sprintf("%d", accountID)))
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

const statementCSV = "date,description,deposit,withdrawal\n" +
	"2024-01-05,ATM,0,3000\n" +
	"2024/01/06,Deposit,5000,0\n"

func (s *testServer) importStatement(t *testing.T) int64 {
	t.Helper()
	body, contentType := multipartUpload(t, s.account.ID, "statement.csv", statementCSV)
	req := httptest.NewRequest(http.MethodPost, "/transactions/import", body)
	req.Header.Set("Content-Type", contentType)
	rec, resp := s.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(2), resp["imported"])

	listing, err := s.svc.ListImportedTransactions(testOrg, service.ListOptions{})
	require.NoError(t, err)
	require.Len(t, listing.Transactions, 2)
	return listing.Transactions[0].ID
}

func TestImportEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.importStatement(t)
}

func TestImportEndpoint_MissingFile(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("account_id", "1"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/transactions/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec, resp := s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "select an account and a file")
}

func TestListEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.importStatement(t)

	req := httptest.NewRequest(http.MethodGet, "/transactions/imported?status=0", nil)
	rec, resp := s.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp["transactions"], 2)
	assert.Len(t, resp["accounts"], 1)
}

func TestGetEndpoint(t *testing.T) {
	s := newTestServer(t)
	id := s.importStatement(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/transactions/imported/%d", id), nil)
	rec, resp := s.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, resp["transaction"])
	assert.Len(t, resp["categories"], 2)
	assert.Nil(t, resp["selected_category_id"])
}

func TestPostEndpoint(t *testing.T) {
	s := newTestServer(t)
	id := s.importStatement(t)

	body, err := json.Marshal(map[string]any{"category_id": s.sales})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/transactions/imported/%d/post", id), bytes.NewReader(body))
	rec, resp := s.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, resp["journal_entry"])

	// Posting the same row again conflicts.
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/transactions/imported/%d/post", id), bytes.NewReader(body))
	rec, _ = s.do(t, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPostEndpoint_MissingCategory(t *testing.T) {
	s := newTestServer(t)
	id := s.importStatement(t)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/transactions/imported/%d/post", id), strings.NewReader("{}"))
	rec, resp := s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "category is required")
}

func TestReverseEndpoint(t *testing.T) {
	s := newTestServer(t)
	id := s.importStatement(t)

	body, err := json.Marshal(map[string]any{"category_id": s.sales})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/transactions/imported/%d/post", id), bytes.NewReader(body))
	rec, _ := s.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/transactions/imported/%d/reverse", id), nil)
	rec, resp := s.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])

	txn, err := s.svc.GetImportedTransaction(testOrg, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnclassified, txn.Status)
}

func TestDeleteEndpoint(t *testing.T) {
	s := newTestServer(t)
	id := s.importStatement(t)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/transactions/imported/%d/delete", id), nil)
	rec, resp := s.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Transaction deleted", resp["message"])
}

func TestDeleteEndpoint_UnknownID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/transactions/imported/999/delete", nil)
	rec, resp := s.do(t, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, resp["success"])
}

func TestEndpoints_RequireOrganization(t *testing.T) {
	s := newTestServer(t)

	// A router without the tenant injector rejects the request.
	bare := mux.NewRouter()
	h := NewHandler(s.svc)
	bare.HandleFunc("/accounts", h.Accounts).Methods("GET")

	rec := httptest.NewRecorder()
	bare.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
