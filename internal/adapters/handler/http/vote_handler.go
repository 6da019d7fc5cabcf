package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
	metrics *Metrics
}

// NewVoteHandler builds the vote endpoints. metrics may be nil.
func NewVoteHandler(service ports.VoteService, metrics *Metrics) *VoteHandler {
	return &VoteHandler{
		service: service,
		metrics: metrics,
	}
}

type voteRequest struct {
	OptionID string `json:"option_id" validate:"required,uuid"`
}

// VoteOnPoll godoc
// @Summary      Votes on a poll
// @Description  Records the authenticated user's single vote and returns it with the updated poll.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Poll ID"
// @Param        vote  body      voteRequest  true  "Chosen option"
// @Success      201   {object}  ports.VoteResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse  "already_voted or poll_closed"
// @Failure      503   {object}  errorResponse
// @Router       /api/polls/{id}/votes [post]
func (h *VoteHandler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, domain.ErrInvalidPollID)
		return
	}

	var req voteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.metrics.ObserveVote(codeInvalidRequest)
		writeBadRequest(w, err.Error())
		return
	}
	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		h.fail(w, r, domain.ErrInvalidOption)
		return
	}

	result, err := h.service.Submit(r.Context(), identity, ports.VoteInput{
		PollID:   pollID,
		OptionID: optionID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.metrics.ObserveVote(voteOutcomeRecorded)
	writeJSON(w, http.StatusCreated, result)
}

// GetMyVote godoc
// @Summary      Gets the caller's vote on a poll
// @Tags         votes
// @Produce      json
// @Param        id   path      string  true  "Poll ID"
// @Success      200  {object}  domain.Vote
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/my-vote [get]
func (h *VoteHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrInvalidPollID)
		return
	}

	vote, err := h.service.GetMyVote(r.Context(), identity, pollID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, vote)
}

func (h *VoteHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	_, code := errorStatus(err)
	h.metrics.ObserveVote(code)
	writeError(w, r, err)
}
