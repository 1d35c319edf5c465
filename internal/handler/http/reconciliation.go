package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/reconciliation"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type ReconciliationHandler interface {
	GetMy(w http.ResponseWriter, r *http.Request)
	GetSubject(w http.ResponseWriter, r *http.Request)
	Evaluate(w http.ResponseWriter, r *http.Request)
}

type reconciliationHandlerImpl struct {
	reconciliationService reconciliation.ReconciliationService
}

func NewReconciliationHandler(reconciliationService reconciliation.ReconciliationService) ReconciliationHandler {
	return &reconciliationHandlerImpl{
		reconciliationService: reconciliationService,
	}
}

// GetMy implements ReconciliationHandler.
func (h *reconciliationHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		slog.Error("Failed to get JWT claims", "error", err)
		response.Unauthorized(w, "Unauthorized")
		return
	}

	h.reconcile(w, r, claims.SubjectID)
}

// GetSubject implements ReconciliationHandler.
func (h *reconciliationHandlerImpl) GetSubject(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")
	if subjectID == "" {
		response.BadRequest(w, "Subject ID is required", nil)
		return
	}

	h.reconcile(w, r, subjectID)
}

func (h *reconciliationHandlerImpl) reconcile(w http.ResponseWriter, r *http.Request, subjectID string) {
	query := r.URL.Query()
	req := reconciliation.ReconcileRequest{
		SubjectID: subjectID,
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		ShowToday: getBoolQueryParam(r, "show_today", false),
	}

	result, err := h.reconciliationService.Reconcile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Evaluate implements ReconciliationHandler.
func (h *reconciliationHandlerImpl) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req reconciliation.EvaluateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Evaluate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reconciliationService.Evaluate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}
