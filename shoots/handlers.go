package shoots

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/auth"
	"github.com/AlexWarnes/fStopandGo-api/validation"
)

// ShootHandlers provides the HTTP handlers for /api/shoots.
type ShootHandlers struct {
	service *ShootService
}

// NewShootHandlers creates new ShootHandlers.
func NewShootHandlers(service *ShootService) *ShootHandlers {
	return &ShootHandlers{service: service}
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
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid shoot id", err))
		return 0, false
	}
	return id, true
}

// HandleCreateShoot godoc
// @Summary Create a shoot
// @Description Creates a shoot owned by the authenticated user. Any owner field in the body is ignored.
// @Tags Shoots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shootBody body shoots.CreateShootRequest true "Shoot details"
// @Success 201 {object} shoots.Shoot "Shoot created"
// @Failure 400 {object} apperror.ErrorResponse "Malformed request body"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure, located at a field"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/shoots [post]
func (h *ShootHandlers) HandleCreateShoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := requester(w, r)
		if !ok {
			return
		}

		var req CreateShootRequest
		if err := validation.DecodeBody(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if err := req.Validate(); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		shoot, err := h.service.Create(r.Context(), username, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, shoot)
	}
}

// HandleListShoots godoc
// @Summary List shoots by owner
// @Description Returns the shoots owned by the user named in the owner filter, which must be the authenticated user.
// @Tags Shoots
// @Produce json
// @Security BearerAuth
// @Param owner query string false "Owner username filter"
// @Success 200 {array} shoots.Shoot "Matching shoots"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Filter names another user"
// @Failure 404 {object} apperror.ErrorResponse "No owner filter provided"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/shoots [get]
func (h *ShootHandlers) HandleListShoots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := requester(w, r)
		if !ok {
			return
		}

		list, err := h.service.List(r.Context(), username, r.URL.Query().Get("owner"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, list)
	}
}

// HandleGetShoot godoc
// @Summary Get a shoot
// @Description Returns one shoot by id if it belongs to the authenticated user.
// @Tags Shoots
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shoot id"
// @Success 200 {object} shoots.Shoot "The shoot"
// @Failure 400 {object} apperror.ErrorResponse "Invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Shoot belongs to another user"
// @Failure 404 {object} apperror.ErrorResponse "Shoot not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/shoots/{id} [get]
func (h *ShootHandlers) HandleGetShoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := requester(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		shoot, err := h.service.Get(r.Context(), username, id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, shoot)
	}
}

// HandleUpdateShoot godoc
// @Summary Update a shoot
// @Description Updates the allow-listed fields of a shoot owned by the authenticated user. The body id must match the path id.
// @Tags Shoots
// @Accept json
// @Security BearerAuth
// @Param id path int true "Shoot id"
// @Param shootBody body shoots.UpdateShootRequest true "Fields to update"
// @Success 204 "Shoot updated"
// @Failure 400 {object} apperror.ErrorResponse "Malformed body or id mismatch"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Shoot missing or owned by another user"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure, located at a field"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/shoots/{id} [put]
func (h *ShootHandlers) HandleUpdateShoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := requester(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req UpdateShootRequest
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

		if err := h.service.Update(r.Context(), username, id, req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusNoContent, nil)
	}
}

// HandleDeleteShoot godoc
// @Summary Delete a shoot
// @Description Deletes a shoot owned by the authenticated user.
// @Tags Shoots
// @Security BearerAuth
// @Param id path int true "Shoot id"
// @Success 204 "Shoot deleted"
// @Failure 400 {object} apperror.ErrorResponse "Invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Shoot belongs to another user"
// @Failure 404 {object} apperror.ErrorResponse "Shoot not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/shoots/{id} [delete]
func (h *ShootHandlers) HandleDeleteShoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := requester(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := h.service.Delete(r.Context(), username, id); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusNoContent, nil)
	}
}
