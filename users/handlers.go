package users

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/auth"
	"github.com/AlexWarnes/fStopandGo-api/validation"
)

// UserHandlers provides the HTTP handlers for /api/users.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// requester extracts the authenticated username installed by the JWT
// middleware. Its absence on a protected route is a middleware wiring bug.
func requester(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
		return "", false
	}
	return username, true
}

// pathID parses the {id} route parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid user id", err))
		return 0, false
	}
	return id, true
}

// HandleCreateUser godoc
// @Summary Register a new user
// @Description Registers a new user. The password is validated, hashed, and never returned.
// @Tags Users
// @Accept json
// @Produce json
// @Param userBody body users.CreateUserRequest true "Registration details"
// @Success 201 {object} auth.User "User created"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request body"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure, located at a field"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/users [post]
func (h *UserHandlers) HandleCreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := validation.DecodeBody(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if err := req.Validate(); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		// auth.User omits the hashed password from serialization.
		auth.WriteJSON(w, http.StatusCreated, user)
	}
}

// HandleListUsers godoc
// @Summary List users
// @Description Returns the requester's own record when filtered by their username. Listing all users is not available.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param username query string false "Username filter; must equal the authenticated username"
// @Success 200 {array} auth.User
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Filter names a different user"
// @Failure 404 {object} apperror.ErrorResponse "No filter given"
// @Router /api/users [get]
func (h *UserHandlers) HandleListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := requester(w, r)
		if !ok {
			return
		}

		list, err := h.service.List(r.Context(), username, r.URL.Query().Get("username"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, list)
	}
}

// HandleGetUser godoc
// @Summary Get a user by id
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} auth.User
// @Failure 400 {object} apperror.ErrorResponse "Invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Not the requester's record"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /api/users/{id} [get]
func (h *UserHandlers) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := requester(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		user, err := h.service.Get(r.Context(), id, username)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, user)
	}
}

// HandleUpdateUser godoc
// @Summary Update a user
// @Description Updates the requester's own record. Only username, password, and email are updateable; a new password is rehashed.
// @Tags Users
// @Accept json
// @Security BearerAuth
// @Param id path int true "User id"
// @Param userBody body users.UpdateUserRequest true "Fields to update; body id must match path id"
// @Success 204 "Updated"
// @Failure 400 {object} apperror.ErrorResponse "Invalid id or id mismatch"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Not the requester's record"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure"
// @Router /api/users/{id} [put]
func (h *UserHandlers) HandleUpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := requester(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req UpdateUserRequest
		if err := validation.DecodeBody(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if req.ID == nil || *req.ID != id {
			auth.WriteError(w, r, apperror.NewBadRequestError("Request path id and request body id must match", nil))
			return
		}
		if err := req.Validate(); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Update(r.Context(), id, username, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusNoContent, nil)
	}
}

// HandleDeleteUser godoc
// @Summary Delete a user
// @Description Deletes the requester's own record.
// @Tags Users
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 204 "Deleted"
// @Failure 400 {object} apperror.ErrorResponse "Invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Not the requester's record"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /api/users/{id} [delete]
func (h *UserHandlers) HandleDeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := requester(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := h.service.Delete(r.Context(), id, username); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusNoContent, nil)
	}
}
