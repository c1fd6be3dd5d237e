package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/trinitynoble/BudgetBuddyProject/internal/apperr"
	"github.com/trinitynoble/BudgetBuddyProject/internal/auth"
	"github.com/trinitynoble/BudgetBuddyProject/internal/logger"
	"github.com/trinitynoble/BudgetBuddyProject/internal/middleware"
	"github.com/trinitynoble/BudgetBuddyProject/internal/models"
	"github.com/trinitynoble/BudgetBuddyProject/internal/service"
)

// RecordHandler serves one owner-scoped resource. The server mounts
// two instances, one for transactions and one for budget items.
type RecordHandler struct {
	ledger *service.LedgerService
	log    *logger.Logger
}

func NewRecordHandler(name string, ledger *service.LedgerService) *RecordHandler {
	return &RecordHandler{
		ledger: ledger,
		log:    logger.New(name + "-handler"),
	}
}

// Routes returns the resource's sub-router. Callers mount it behind
// the auth middleware.
func (h *RecordHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/recent", h.Recent)
	r.Get("/search", h.Search)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

func (h *RecordHandler) caller(w http.ResponseWriter, r *http.Request) *auth.Identity {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		writeError(w, apperr.ErrMissingToken)
	}
	return identity
}

func recordID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := h.caller(w, r)
	if identity == nil {
		return
	}

	records, err := h.ledger.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) Recent(w http.ResponseWriter, r *http.Request) {
	identity := h.caller(w, r)
	if identity == nil {
		return
	}

	rec, err := h.ledger.Latest(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := h.caller(w, r)
	if identity == nil {
		return
	}

	var in models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	rec, err := h.ledger.Create(r.Context(), identity.UserID, &in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := h.caller(w, r)
	if identity == nil {
		return
	}

	id, ok := recordID(r)
	if !ok {
		badRequest(w, "invalid record id")
		return
	}

	rec, err := h.ledger.Get(r.Context(), id, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := h.caller(w, r)
	if identity == nil {
		return
	}

	id, ok := recordID(r)
	if !ok {
		badRequest(w, "invalid record id")
		return
	}

	var in models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	rec, err := h.ledger.Update(r.Context(), id, identity.UserID, &in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := h.caller(w, r)
	if identity == nil {
		return
	}

	id, ok := recordID(r)
	if !ok {
		badRequest(w, "invalid record id")
		return
	}

	if err := h.ledger.Delete(r.Context(), id, identity.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *RecordHandler) Search(w http.ResponseWriter, r *http.Request) {
	identity := h.caller(w, r)
	if identity == nil {
		return
	}

	records, err := h.ledger.Search(r.Context(), identity.UserID, r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}
