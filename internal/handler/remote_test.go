package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/handler"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/cache"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/client"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/resilience"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/service"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	testSecret = "a-test-secret-of-enough-length"
	cookieName = "finance_session"
)

// fakeRemote is an in-memory stand-in for the remote finance API, speaking
// its wire format.
type fakeRemote struct {
	mu sync.Mutex

	token        string
	transactions []map[string]any
	lastPayload  map[string]any
	calls        map[string]int
	failAll      bool
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("remote-key"))
	if err != nil {
		t.Fatal(err)
	}
	return &fakeRemote{
		token: token,
		calls: map[string]int{},
		transactions: []map[string]any{
			{"id": "t1", "amount": 1000, "type": "INCOME", "categoryId": "salary", "description": "Salário", "createdAt": "2024-05-01T09:00:00.000Z"},
			{"id": "t2", "amount": "-50.00", "type": "EXPENSE", "categoryId": "food", "description": "Feira", "createdAt": "2024-05-02T09:00:00.000Z"},
			{"id": "t3", "amount": -30, "type": "EXPENSE", "description": "Padaria", "createdAt": "2024-05-03T09:00:00.000Z"},
		},
	}
}

func (f *fakeRemote) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeRemote) payloadAmount() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	amount, _ := f.lastPayload["amount"].(float64)
	return amount
}

func (f *fakeRemote) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.calls[req.Method+" "+req.URL.Path]++
			fail := f.failAll
			f.mu.Unlock()
			if fail {
				remoteJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body struct{ Email, Password string }
		json.NewDecoder(req.Body).Decode(&body)
		if body.Password != "secret" {
			remoteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		remoteJSON(w, http.StatusOK, map[string]string{"token": f.token, "message": "Login successful"})
	})
	r.Post("/auth/register", func(w http.ResponseWriter, req *http.Request) {
		remoteJSON(w, http.StatusCreated, map[string]string{"message": "User created. Check your e-mail."})
	})

	r.Group(func(r chi.Router) {
		r.Use(f.requireToken)

		r.Get("/auth/me", func(w http.ResponseWriter, req *http.Request) {
			remoteJSON(w, http.StatusOK, map[string]string{"id": "u1", "username": "ana", "email": "ana@example.com"})
		})
		r.Get("/finance/currencies", func(w http.ResponseWriter, req *http.Request) {
			remoteJSON(w, http.StatusOK, map[string]any{"currencies": []string{"USD", "EUR", "BRL", "GBP"}})
		})
		r.Get("/finance/accounts", func(w http.ResponseWriter, req *http.Request) {
			remoteJSON(w, http.StatusOK, []map[string]any{{"id": "acc-1", "name": "Carteira", "balance": 920, "currency": "BRL"}})
		})
		r.Get("/finance/accounts/{id}", func(w http.ResponseWriter, req *http.Request) {
			if chi.URLParam(req, "id") != "acc-1" {
				remoteJSON(w, http.StatusNotFound, map[string]string{"message": "Account not found"})
				return
			}
			remoteJSON(w, http.StatusOK, map[string]any{"id": "acc-1", "name": "Carteira", "balance": "920.00", "currency": "brl"})
		})
		r.Get("/finance/accounts/{id}/transactions", func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			remoteJSON(w, http.StatusOK, map[string]any{"transactions": f.transactions})
		})
		r.Post("/finance/accounts/{id}/transactions", func(w http.ResponseWriter, req *http.Request) {
			var p map[string]any
			json.NewDecoder(req.Body).Decode(&p)
			f.mu.Lock()
			defer f.mu.Unlock()
			f.lastPayload = p
			typ := "INCOME"
			if amount, _ := p["amount"].(float64); amount < 0 {
				typ = "EXPENSE"
			}
			tx := map[string]any{"id": "t-new", "amount": p["amount"], "type": typ, "description": p["description"], "createdAt": time.Now().UTC().Format(time.RFC3339)}
			f.transactions = append(f.transactions, tx)
			remoteJSON(w, http.StatusCreated, tx)
		})
		r.Get("/finance/accounts/{id}/categories", func(w http.ResponseWriter, req *http.Request) {
			remoteJSON(w, http.StatusOK, map[string]any{"categories": []map[string]any{
				{"id": "food", "name": "Mercado", "domain": "EXPENSE"},
				{"id": "salary", "name": "Salário", "domain": "INCOME"},
			}})
		})
	})

	return r
}

func (f *fakeRemote) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer "+f.token {
			remoteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, req)
	})
}

func remoteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// newBFA wires the whole BFA against remote, the way main does.
func newBFA(t *testing.T, remote *fakeRemote) http.Handler {
	t.Helper()
	srv := httptest.NewServer(remote.routes())
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: time.Millisecond, MaxConcurrency: 10}
	cb := resilience.NewCircuitBreaker(client.ServiceName, client.IsClientError)
	gateway := client.NewGatewayClient(srv.Client(), srv.URL, cb, cfg, metrics)

	readCache := cache.New[any](time.Minute)
	t.Cleanup(readCache.Close)
	store := session.NewStore(time.Hour)
	t.Cleanup(store.Close)
	codec, err := session.NewCodec(testSecret)
	if err != nil {
		t.Fatal(err)
	}

	financeSvc := service.NewFinanceService(gateway, readCache, service.FinanceOptions{RecentTransactions: 3}, metrics, logger)
	authSvc := service.NewAuthService(gateway, store, metrics, logger)
	return handler.NewRouter(financeSvc, authSvc, handler.SessionCookie{Name: cookieName, Codec: codec}, gateway, metrics, logger)
}

func do(t *testing.T, h http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/auth/login", `{"email":"ana@example.com","password":"secret"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	c := sessionCookie(rec)
	if c == nil || c.Value == "" {
		t.Fatal("login: expected a session cookie")
	}
	return c
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}
