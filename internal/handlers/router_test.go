package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trinitynoble/BudgetBuddyProject/internal/auth"
	"github.com/trinitynoble/BudgetBuddyProject/internal/middleware"
	"github.com/trinitynoble/BudgetBuddyProject/internal/models"
	"github.com/trinitynoble/BudgetBuddyProject/internal/service"
	"github.com/trinitynoble/BudgetBuddyProject/internal/storage"
)

func newTestRouter() http.Handler {
	users := storage.NewMemoryUserStore()
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	userSvc := service.NewUserService(users, tokens, bcrypt.MinCost)

	txSvc := service.NewLedgerService("transactions", storage.NewMemoryRecordStore().WithUsers(users))
	budgetSvc := service.NewLedgerService("budget", storage.NewMemoryRecordStore().WithUsers(users))

	return NewRouter(RouterConfig{
		Auth:         NewAuthHandler(userSvc),
		Transactions: NewRecordHandler("transactions", txSvc),
		Budget:       NewRecordHandler("budget", budgetSvc),
		AuthMW:       middleware.NewAuthMiddleware(userSvc),
		CORSOrigin:   "http://localhost:3000",
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func registerAndLogin(t *testing.T, router http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/register", "", map[string]string{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"phone":      "1234567890",
		"password":   "pw123456",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", email, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/login", "", map[string]string{
		"email":    email,
		"password": "pw123456",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body = %s", email, rec.Code, rec.Body.String())
	}

	var result struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &result)
	if result.Token == "" {
		t.Fatal("login returned empty token")
	}
	return result.Token
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRegister_Statuses(t *testing.T) {
	router := newTestRouter()

	payload := map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"phone":      "1234567890",
		"password":   "pw123456",
	}

	if rec := doJSON(t, router, http.MethodPost, "/api/register", "", payload); rec.Code != http.StatusCreated {
		t.Errorf("register: status = %d, want 201", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/register", "", payload); rec.Code != http.StatusConflict {
		t.Errorf("duplicate register: status = %d, want 409", rec.Code)
	}

	payload["email"] = "not-an-email"
	if rec := doJSON(t, router, http.MethodPost, "/api/register", "", payload); rec.Code != http.StatusBadRequest {
		t.Errorf("bad email register: status = %d, want 400", rec.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter()
	registerAndLogin(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &body)
	if body.Error != "invalid email or password" {
		t.Errorf("error = %q, want generic credentials message", body.Error)
	}
}

func TestProfile(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "ada@example.com")

	if rec := doJSON(t, router, http.MethodGet, "/api/profile", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("profile without token: status = %d, want 401", rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var profile struct {
		Email        string `json:"email"`
		PasswordHash string `json:"password_hash"`
	}
	decodeBody(t, rec, &profile)
	if profile.Email != "ada@example.com" {
		t.Errorf("email = %q, want ada@example.com", profile.Email)
	}
	if profile.PasswordHash != "" {
		t.Error("profile response leaked password hash")
	}
}

func TestForgotPassword_RevokesOldToken(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/forgot-password", "", map[string]string{
		"email":        "ada@example.com",
		"new_password": "fresh-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("forgot-password: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if rec := doJSON(t, router, http.MethodGet, "/api/profile", token, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("profile with pre-reset token: status = %d, want 401", rec.Code)
	}
}

// Mirrors the core cross-user flow for both resources.
func TestOwnershipFlow(t *testing.T) {
	for _, resource := range []string{"transactions", "budget"} {
		t.Run(resource, func(t *testing.T) {
			router := newTestRouter()
			tokenA := registerAndLogin(t, router, "a@x.com")
			tokenB := registerAndLogin(t, router, "b@x.com")
			base := "/api/" + resource

			rec := doJSON(t, router, http.MethodPost, base, tokenA, map[string]interface{}{
				"amount":      50,
				"description": "coffee",
				"date":        "2024-01-01",
			})
			if rec.Code != http.StatusCreated {
				t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
			}

			var created models.Record
			decodeBody(t, rec, &created)
			if created.ID == 0 || created.UserID == "" {
				t.Fatalf("create returned incomplete record: %+v", created)
			}
			if created.Amount != 50 || created.Description != "coffee" || created.Date != "2024-01-01" {
				t.Errorf("create echoed %+v, want payload back", created)
			}

			// B's list excludes A's record.
			rec = doJSON(t, router, http.MethodGet, base, tokenB, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("list: status = %d", rec.Code)
			}
			var listB []models.Record
			decodeBody(t, rec, &listB)
			if len(listB) != 0 {
				t.Errorf("other user's list has %d records, want 0", len(listB))
			}

			itemPath := fmt.Sprintf("%s/%d", base, created.ID)

			// Reads as the wrong user are indistinguishable from absent.
			if rec := doJSON(t, router, http.MethodGet, itemPath, tokenB, nil); rec.Code != http.StatusNotFound {
				t.Errorf("cross-user read: status = %d, want 404", rec.Code)
			}

			// Writes as the wrong user are forbidden.
			update := map[string]interface{}{"amount": 1, "description": "hijack", "date": "2024-01-02"}
			if rec := doJSON(t, router, http.MethodPut, itemPath, tokenB, update); rec.Code != http.StatusForbidden {
				t.Errorf("cross-user update: status = %d, want 403", rec.Code)
			}
			if rec := doJSON(t, router, http.MethodDelete, itemPath, tokenB, nil); rec.Code != http.StatusForbidden {
				t.Errorf("cross-user delete: status = %d, want 403", rec.Code)
			}

			// The owner can still do all of it.
			if rec := doJSON(t, router, http.MethodGet, itemPath, tokenA, nil); rec.Code != http.StatusOK {
				t.Errorf("owner read: status = %d, want 200", rec.Code)
			}
			if rec := doJSON(t, router, http.MethodPut, itemPath, tokenA, update); rec.Code != http.StatusOK {
				t.Errorf("owner update: status = %d, want 200", rec.Code)
			}
			if rec := doJSON(t, router, http.MethodDelete, itemPath, tokenA, nil); rec.Code != http.StatusOK {
				t.Errorf("owner delete: status = %d, want 200", rec.Code)
			}

			// Deleting again is not found, both times.
			if rec := doJSON(t, router, http.MethodDelete, itemPath, tokenA, nil); rec.Code != http.StatusNotFound {
				t.Errorf("double delete: status = %d, want 404", rec.Code)
			}
			if rec := doJSON(t, router, http.MethodDelete, itemPath, tokenA, nil); rec.Code != http.StatusNotFound {
				t.Errorf("triple delete: status = %d, want 404", rec.Code)
			}
		})
	}
}

func TestRecentAndSearch(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "ada@example.com")

	for _, item := range []map[string]interface{}{
		{"amount": 50, "description": "Groceries", "date": "2025-01-15"},
		{"amount": 1200, "description": "Rent", "date": "2025-02-01"},
	} {
		if rec := doJSON(t, router, http.MethodPost, "/api/transactions", token, item); rec.Code != http.StatusCreated {
			t.Fatalf("create: status = %d", rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/transactions/recent", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("recent: status = %d", rec.Code)
	}
	var recent models.Record
	decodeBody(t, rec, &recent)
	if recent.Description != "Rent" {
		t.Errorf("recent = %q, want the latest record", recent.Description)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/transactions/search?query=groc", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: status = %d", rec.Code)
	}
	var found []models.Record
	decodeBody(t, rec, &found)
	if len(found) != 1 || found[0].Description != "Groceries" {
		t.Errorf("search = %+v, want only Groceries", found)
	}

	// The query parameter is required.
	if rec := doJSON(t, router, http.MethodGet, "/api/transactions/search", token, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("search without query: status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/api/budget/search?query=", token, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("search with empty query: status = %d, want 400", rec.Code)
	}
}

func TestInvalidRecordID(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "ada@example.com")

	if rec := doJSON(t, router, http.MethodGet, "/api/transactions/abc", token, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBudgetAndTransactionsAreSeparate(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/budget", token, map[string]interface{}{
		"amount": 300, "description": "Dining out", "date": "2025-03-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget item: status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/transactions", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list transactions: status = %d", rec.Code)
	}
	var txs []models.Record
	decodeBody(t, rec, &txs)
	if len(txs) != 0 {
		t.Errorf("transactions list has %d records after budget create, want 0", len(txs))
	}
}
