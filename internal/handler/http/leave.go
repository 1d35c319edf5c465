package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	PendingCount(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *leaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	var req leave.DecideRequest

	// Body is optional for approvals
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.Approve = approve

	grant, err := h.leaveService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if approve {
		response.SuccessWithMessage(w, "Leave grant approved successfully", grant)
		return
	}
	response.SuccessWithMessage(w, "Leave grant rejected successfully", grant)
}

// PendingCount implements LeaveHandler.
func (h *leaveHandlerImpl) PendingCount(w http.ResponseWriter, r *http.Request) {
	badge, err := h.leaveService.PendingBadge(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, badge)
}
