package poll

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/tripmate/pkg/middleware"
	"github.com/wayfarer-app/tripmate/pkg/response"
)

// Handler handles HTTP requests for poll operations
type Handler struct {
	service *Service
}

// NewHandler creates a new poll handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for poll endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListByTrip)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/vote", h.Vote)
	r.Post("/{id}/close", h.Close)

	return r
}

// Create handles POST /polls
// @Summary      Create a poll for a trip
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        poll body CreatePollRequest true "Poll data"
// @Success      201 {object} response.APIResponse{data=PollResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /polls [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Question == "" {
		response.BadRequest(w, "Question is required")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	poll, options, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotTripMember):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrTooFewOptions), errors.Is(err, ErrDuplicateOption):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create poll")
		}
		return
	}

	response.JSON(w, http.StatusCreated, poll.ToResponse(options, nil))
}

// Get handles GET /polls/{id}
// @Summary      Get a poll with options, tallies and your vote
// @Tags         polls
// @Produce      json
// @Param        id path int true "Poll ID"
// @Success      200 {object} response.APIResponse{data=PollResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /polls/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid poll ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	poll, options, vote, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		h.writePollError(w, err, "Failed to get poll")
		return
	}

	var myVote *int64
	if vote != nil {
		myVote = &vote.OptionID
	}

	response.JSON(w, http.StatusOK, poll.ToResponse(options, myVote))
}

// ListByTrip handles GET /polls?trip_id={tripId}
// @Summary      List polls for a trip
// @Tags         polls
// @Produce      json
// @Param        trip_id query int true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]PollResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /polls [get]
func (h *Handler) ListByTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(r.URL.Query().Get("trip_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	polls, err := h.service.ListByTrip(r.Context(), tripID, userID)
	if err != nil {
		if errors.Is(err, ErrNotTripMember) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list polls")
		return
	}

	responses := make([]*PollResponse, len(polls))
	for i, p := range polls {
		responses[i] = p.ToResponse(nil, nil)
	}

	response.JSON(w, http.StatusOK, responses)
}

// Vote handles POST /polls/{id}/vote
// @Summary      Vote on an open poll
// @Tags         polls
// @Accept       json
// @Param        id path int true "Poll ID"
// @Param        vote body VoteRequest true "Chosen option"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /polls/{id}/vote [post]
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid poll ID")
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.service.Vote(r.Context(), id, userID, &req); err != nil {
		h.writePollError(w, err, "Failed to vote")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Vote recorded"})
}

// Close handles POST /polls/{id}/close
// @Summary      Close a poll and return the final tallies
// @Tags         polls
// @Produce      json
// @Param        id path int true "Poll ID"
// @Success      200 {object} response.APIResponse{data=PollResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /polls/{id}/close [post]
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid poll ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	poll, options, err := h.service.Close(r.Context(), id, userID)
	if err != nil {
		h.writePollError(w, err, "Failed to close poll")
		return
	}

	response.JSON(w, http.StatusOK, poll.ToResponse(options, nil))
}

// Delete handles DELETE /polls/{id}
// @Summary      Delete a poll
// @Tags         polls
// @Param        id path int true "Poll ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /polls/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid poll ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		h.writePollError(w, err, "Failed to delete poll")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Poll deleted successfully"})
}

func (h *Handler) writePollError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPollNotFound), errors.Is(err, ErrOptionNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotTripMember), errors.Is(err, ErrNotCreator):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrPollClosed):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
