package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/tripmate/pkg/middleware"
	"github.com/wayfarer-app/tripmate/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListByTrip)
	r.Get("/balances", h.Balances)
	r.Get("/plan", h.Plan)
	r.Post("/{id}/pay", h.MarkPaid)
	r.Post("/{id}/confirm", h.Confirm)
	r.Post("/{id}/reject", h.Reject)

	return r
}

// Balances handles GET /settlements/balances?trip_id={tripId}
// @Summary      Get every member's net balance on a trip
// @Tags         settlements
// @Produce      json
// @Param        trip_id query int true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]BalanceResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /settlements/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(r.URL.Query().Get("trip_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	balances, err := h.service.GetBalances(r.Context(), tripID, userID)
	if err != nil {
		if errors.Is(err, ErrNotTripMember) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get balances")
		return
	}

	responses := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = b.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// Plan handles GET /settlements/plan?trip_id={tripId}
// @Summary      Get the suggested payments that zero out a trip's balances
// @Tags         settlements
// @Produce      json
// @Param        trip_id query int true "Trip ID"
// @Success      200 {object} response.APIResponse{data=PlanResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /settlements/plan [get]
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(r.URL.Query().Get("trip_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	plan, err := h.service.GetPlan(r.Context(), tripID, userID)
	if err != nil {
		if errors.Is(err, ErrNotTripMember) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute settlement plan")
		return
	}

	response.JSON(w, http.StatusOK, PlanToResponse(plan))
}

// Create handles POST /settlements
// @Summary      Record a payment to another trip member
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        settlement body CreateSettlementRequest true "Settlement data"
// @Success      201 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	settlement, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotTripMember):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrSelfSettlement):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create settlement")
		}
		return
	}

	response.JSON(w, http.StatusCreated, settlement.ToResponse())
}

// ListByTrip handles GET /settlements?trip_id={tripId}
// @Summary      List recorded settlements for a trip
// @Tags         settlements
// @Produce      json
// @Param        trip_id query int true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /settlements [get]
func (h *Handler) ListByTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(r.URL.Query().Get("trip_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	settlements, err := h.service.ListByTrip(r.Context(), tripID, userID)
	if err != nil {
		if errors.Is(err, ErrNotTripMember) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list settlements")
		return
	}

	responses := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		responses[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// MarkPaid handles POST /settlements/{id}/pay
// @Summary      Mark a settlement as paid
// @Tags         settlements
// @Param        id path int true "Settlement ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /settlements/{id}/pay [post]
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.MarkPaid, "Settlement marked as paid")
}

// Confirm handles POST /settlements/{id}/confirm
// @Summary      Confirm receipt of a settlement
// @Tags         settlements
// @Param        id path int true "Settlement ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /settlements/{id}/confirm [post]
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Confirm, "Settlement confirmed")
}

// Reject handles POST /settlements/{id}/reject
// @Summary      Reject a settlement
// @Tags         settlements
// @Param        id path int true "Settlement ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /settlements/{id}/reject [post]
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Reject, "Settlement rejected")
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, userID int64) error, message string) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid settlement ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := fn(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, ErrSettlementNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotSender), errors.Is(err, ErrNotRecipient):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidTransition):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to update settlement")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": message})
}
