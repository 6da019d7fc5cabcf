package http

import (
	"net/http"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// GetMe godoc
// @Summary      Gets the authenticated user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /api/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	user, err := h.service.GetByID(r.Context(), identity.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: codeUserNotFound, Message: "user not found"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}
