package expense

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/tripmate/internal/expense/split"
	"github.com/wayfarer-app/tripmate/pkg/middleware"
	"github.com/wayfarer-app/tripmate/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListByTrip)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	r.Post("/splits/{splitId}/pay", h.MarkSplitPaid)
	r.Post("/splits/{splitId}/confirm", h.ConfirmSplit)
	r.Post("/splits/{splitId}/dispute", h.DisputeSplit)

	return r
}

// Create handles POST /expenses
// @Summary      Create an expense and split it among participants
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        expense body CreateExpenseRequest true "Expense data"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	expense, splits, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotTripMember), errors.Is(err, ErrParticipantNotMember):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrPercentagesSum), errors.Is(err, ErrAmountsSum):
			response.UnprocessableEntity(w, err.Error())
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNoParticipants),
			errors.Is(err, split.ErrUnknownType),
			errors.Is(err, split.ErrMissingPercentage), errors.Is(err, split.ErrNegativePercentage),
			errors.Is(err, split.ErrMissingAmount), errors.Is(err, split.ErrNegativeAmount):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create expense")
		}
		return
	}

	response.JSON(w, http.StatusCreated, expenseWithSplitsResponse(expense, splits))
}

// Get handles GET /expenses/{id}
// @Summary      Get an expense with its splits
// @Tags         expenses
// @Produce      json
// @Param        id path int true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	expense, splits, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrExpenseNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotTripMember):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to get expense")
		}
		return
	}

	response.JSON(w, http.StatusOK, expenseWithSplitsResponse(expense, splits))
}

// ListByTrip handles GET /expenses?trip_id={tripId}
// @Summary      List expenses for a trip
// @Tags         expenses
// @Produce      json
// @Param        trip_id query int true "Trip ID"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /expenses [get]
func (h *Handler) ListByTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(r.URL.Query().Get("trip_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	userID, _ := middleware.GetUserID(r.Context())

	expenses, total, err := h.service.ListByTrip(r.Context(), tripID, userID, page, perPage)
	if err != nil {
		if errors.Is(err, ErrNotTripMember) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list expenses")
		return
	}

	responses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = e.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, responses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Delete handles DELETE /expenses/{id}
// @Summary      Delete an expense
// @Tags         expenses
// @Param        id path int true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /expenses/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, ErrExpenseNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotPayer):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidSplitTransition):
			response.Conflict(w, "Expense has splits that were already paid or confirmed")
		default:
			response.InternalError(w, "Failed to delete expense")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

// MarkSplitPaid handles POST /expenses/splits/{splitId}/pay
// @Summary      Mark your share of an expense as paid
// @Tags         expenses
// @Param        splitId path int true "Split ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /expenses/splits/{splitId}/pay [post]
func (h *Handler) MarkSplitPaid(w http.ResponseWriter, r *http.Request) {
	h.transitionSplit(w, r, h.service.MarkSplitPaid, "Split marked as paid")
}

// ConfirmSplit handles POST /expenses/splits/{splitId}/confirm
// @Summary      Confirm receipt of a paid share
// @Tags         expenses
// @Param        splitId path int true "Split ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /expenses/splits/{splitId}/confirm [post]
func (h *Handler) ConfirmSplit(w http.ResponseWriter, r *http.Request) {
	h.transitionSplit(w, r, h.service.ConfirmSplit, "Split confirmed")
}

// DisputeSplit handles POST /expenses/splits/{splitId}/dispute
// @Summary      Dispute your share of an expense
// @Tags         expenses
// @Accept       json
// @Param        splitId path int true "Split ID"
// @Param        dispute body DisputeSplitRequest true "Dispute reason"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /expenses/splits/{splitId}/dispute [post]
func (h *Handler) DisputeSplit(w http.ResponseWriter, r *http.Request) {
	splitID, err := strconv.ParseInt(chi.URLParam(r, "splitId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid split ID")
		return
	}

	var req DisputeSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Reason == "" {
		response.BadRequest(w, "Dispute reason is required")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.service.DisputeSplit(r.Context(), splitID, userID, req.Reason); err != nil {
		h.writeSplitError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Split disputed"})
}

func (h *Handler) transitionSplit(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, splitID, userID int64) error, message string) {
	splitID, err := strconv.ParseInt(chi.URLParam(r, "splitId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid split ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := fn(r.Context(), splitID, userID); err != nil {
		h.writeSplitError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) writeSplitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSplitNotFound), errors.Is(err, ErrExpenseNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotSplitOwner), errors.Is(err, ErrNotPayer):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrInvalidSplitTransition):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, "Failed to update split")
	}
}

func expenseWithSplitsResponse(expense *Expense, splits []*Split) *ExpenseResponse {
	resp := expense.ToResponse()
	resp.Splits = make([]*SplitResponse, len(splits))
	for i, s := range splits {
		resp.Splits[i] = s.ToResponse()
	}
	return resp
}
