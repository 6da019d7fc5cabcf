package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Options     []string   `json:"options" validate:"required,min=2,max=20,dive,max=200"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Description  Creates a poll owned by the authenticated user. Blank options are ignored; at least two must remain.
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        poll  body      createPollRequest  true  "Poll"
// @Success      201   {object}  domain.Poll
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/polls [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req createPollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	input := ports.CreatePollInput{
		Title:       req.Title,
		Description: req.Description,
		Options:     req.Options,
		ExpiresAt:   req.ExpiresAt,
	}

	poll, err := h.service.Create(r.Context(), identity, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, poll)
}

// ListPolls godoc
// @Summary      Lists polls
// @Description  Newest first, ten per page. q filters by title.
// @Tags         polls
// @Produce      json
// @Param        page  query     int     false  "Page number, starting at 1"
// @Param        q     query     string  false  "Title search"
// @Success      200   {array}   domain.Poll
// @Failure      400   {object}  errorResponse
// @Router       /api/polls [get]
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			writeBadRequest(w, "page must be a positive integer")
			return
		}
		page = p
	}

	polls, err := h.service.ListPolls(r.Context(), ports.ListPollsInput{
		Page:  page,
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}

	writeJSON(w, http.StatusOK, polls)
}

// GetPoll godoc
// @Summary      Gets a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      string  true  "Poll ID"
// @Success      200  {object}  domain.Poll
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id} [get]
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.service.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	poll, err := h.service.Close(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}
