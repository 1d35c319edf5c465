package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/allowance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
)

type AllowanceHandler interface {
	GetMyBreakdown(w http.ResponseWriter, r *http.Request)
	EvaluateBreakdown(w http.ResponseWriter, r *http.Request)
}

type allowanceHandlerImpl struct {
	allowanceService allowance.AllowanceService
}

func NewAllowanceHandler(allowanceService allowance.AllowanceService) AllowanceHandler {
	return &allowanceHandlerImpl{
		allowanceService: allowanceService,
	}
}

// GetMyBreakdown implements AllowanceHandler.
func (h *allowanceHandlerImpl) GetMyBreakdown(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		slog.Error("Failed to get JWT claims", "error", err)
		response.Unauthorized(w, "Unauthorized")
		return
	}

	req := allowance.BreakdownRequest{
		SubjectID: claims.SubjectID,
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.allowanceService.MyBreakdown(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EvaluateBreakdown implements AllowanceHandler.
func (h *allowanceHandlerImpl) EvaluateBreakdown(w http.ResponseWriter, r *http.Request) {
	var req allowance.EvaluateBreakdownRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EvaluateBreakdown decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.allowanceService.EvaluateBreakdown(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
