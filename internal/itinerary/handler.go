package itinerary

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/tripmate/pkg/middleware"
	"github.com/wayfarer-app/tripmate/pkg/response"
)

// Handler handles HTTP requests for itinerary operations
type Handler struct {
	service *Service
}

// NewHandler creates a new itinerary handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for itinerary endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListByTrip)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /itinerary
// @Summary      Add an item to a trip's itinerary
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        item body CreateItemRequest true "Item data"
// @Success      201 {object} response.APIResponse{data=Item}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /itinerary [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" {
		response.BadRequest(w, "Title is required")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	item, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeItemError(w, err, "Failed to create itinerary item")
		return
	}

	response.JSON(w, http.StatusCreated, item)
}

// ListByTrip handles GET /itinerary?trip_id={tripId}
// @Summary      List a trip's itinerary ordered by day and start time
// @Tags         itinerary
// @Produce      json
// @Param        trip_id query int true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]Item}
// @Failure      403 {object} response.APIResponse
// @Router       /itinerary [get]
func (h *Handler) ListByTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(r.URL.Query().Get("trip_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	items, err := h.service.ListByTrip(r.Context(), tripID, userID)
	if err != nil {
		h.writeItemError(w, err, "Failed to list itinerary items")
		return
	}

	response.JSON(w, http.StatusOK, items)
}

// Update handles PUT /itinerary/{id}
// @Summary      Update an itinerary item
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        id path int true "Item ID"
// @Param        item body UpdateItemRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=Item}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	item, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		h.writeItemError(w, err, "Failed to update itinerary item")
		return
	}

	response.JSON(w, http.StatusOK, item)
}

// Delete handles DELETE /itinerary/{id}
// @Summary      Delete an itinerary item
// @Tags         itinerary
// @Param        id path int true "Item ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		h.writeItemError(w, err, "Failed to delete itinerary item")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Itinerary item deleted successfully"})
}

func (h *Handler) writeItemError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrItemNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotTripMember), errors.Is(err, ErrNotCreator):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrInvalidDay), errors.Is(err, ErrInvalidTimeRange):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
