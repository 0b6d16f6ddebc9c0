package trip

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/tripmate/pkg/middleware"
	"github.com/wayfarer-app/tripmate/pkg/response"
)

// Handler handles HTTP requests for trip operations
type Handler struct {
	service *Service
}

// NewHandler creates a new trip handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for trip endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/invitations/{token}/accept", h.AcceptInvitation)
	r.Post("/invitations/{token}/decline", h.DeclineInvitation)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/invitations", h.Invite)
	r.Delete("/{id}/members/{userId}", h.RemoveMember)

	return r
}

// Create handles POST /trips
// @Summary      Create a new trip
// @Description  Create a trip; the creator becomes its organizer
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body CreateTripRequest true "Trip creation request"
// @Success      201 {object} response.APIResponse{data=TripResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /trips [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.Destination == "" {
		response.UnprocessableEntity(w, "Name and destination are required")
		return
	}

	trip, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidDateRange) {
			response.UnprocessableEntity(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, trip.ToResponse())
}

// GetByID handles GET /trips/{id}
// @Summary      Get trip by ID
// @Description  Get a trip with its member list
// @Tags         trips
// @Produce      json
// @Param        id path int true "Trip ID"
// @Success      200 {object} response.APIResponse{data=TripResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	trip, members, err := h.service.GetByID(r.Context(), tripID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTripNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotMember):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to get trip")
		}
		return
	}

	resp := trip.ToResponse()
	resp.Members = make([]*MemberResponse, len(members))
	for i, m := range members {
		resp.Members[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// List handles GET /trips
// @Summary      List the authenticated user's trips
// @Tags         trips
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]TripResponse}
// @Router       /trips [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	trips, total, err := h.service.ListByUserID(r.Context(), userID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list trips")
		return
	}

	tripResponses := make([]*TripResponse, len(trips))
	for i, t := range trips {
		tripResponses[i] = t.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, tripResponses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Update handles PUT /trips/{id}
// @Summary      Update a trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        id path int true "Trip ID"
// @Param        request body UpdateTripRequest true "Trip update request"
// @Success      200 {object} response.APIResponse{data=TripResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	var req UpdateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	trip, err := h.service.Update(r.Context(), tripID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTripNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotMember), errors.Is(err, ErrNotOrganizer):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidDateRange):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalError(w, "Failed to update trip")
		}
		return
	}

	response.JSON(w, http.StatusOK, trip.ToResponse())
}

// Delete handles DELETE /trips/{id}
// @Summary      Delete a trip
// @Tags         trips
// @Param        id path int true "Trip ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /trips/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), tripID, userID); err != nil {
		switch {
		case errors.Is(err, ErrNotMember), errors.Is(err, ErrNotOrganizer):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to delete trip")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Trip deleted"})
}

// Invite handles POST /trips/{id}/invitations
// @Summary      Invite a user to a trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        id path int true "Trip ID"
// @Param        request body InviteMemberRequest true "Invitation request"
// @Success      201 {object} response.APIResponse{data=InvitationResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /trips/{id}/invitations [post]
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	var req InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	member, err := h.service.Invite(r.Context(), tripID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTripNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotMember):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrAlreadyMember):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to invite member")
		}
		return
	}

	response.JSON(w, http.StatusCreated, &InvitationResponse{
		TripID:      member.TripID,
		UserID:      member.UserID,
		InviteToken: member.InviteToken,
	})
}

// AcceptInvitation handles POST /trips/invitations/{token}/accept
// @Summary      Accept a trip invitation
// @Tags         trips
// @Produce      json
// @Param        token path string true "Invitation token"
// @Success      200 {object} response.APIResponse{data=MemberResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /trips/invitations/{token}/accept [post]
func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	userID, _ := middleware.GetUserID(r.Context())

	member, err := h.service.AcceptInvitation(r.Context(), token, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvitationNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAlreadyJoined):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to accept invitation")
		}
		return
	}

	response.JSON(w, http.StatusOK, member.ToResponse())
}

// DeclineInvitation handles POST /trips/invitations/{token}/decline
// @Summary      Decline a trip invitation
// @Tags         trips
// @Param        token path string true "Invitation token"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/invitations/{token}/decline [post]
func (h *Handler) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.service.DeclineInvitation(r.Context(), token, userID); err != nil {
		switch {
		case errors.Is(err, ErrInvitationNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAlreadyJoined):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to decline invitation")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Invitation declined"})
}

// RemoveMember handles DELETE /trips/{id}/members/{userId}
// @Summary      Remove a member from a trip
// @Tags         trips
// @Param        id path int true "Trip ID"
// @Param        userId path int true "User ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}
	targetID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	requesterID, _ := middleware.GetUserID(r.Context())

	if err := h.service.RemoveMember(r.Context(), tripID, targetID, requesterID); err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotMember), errors.Is(err, ErrNotOrganizer):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to remove member")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed"})
}
