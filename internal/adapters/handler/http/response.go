package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

const (
	codeInvalidRequest   = "invalid_request"
	codeInvalidOption    = "invalid_option"
	codeUnauthenticated  = "unauthenticated"
	codeForbidden        = "forbidden"
	codePollNotFound     = "poll_not_found"
	codeVoteNotFound     = "vote_not_found"
	codeUserNotFound     = "user_not_found"
	codeAlreadyVoted     = "already_voted"
	codePollClosed       = "poll_closed"
	codeStoreUnavailable = "store_unavailable"
	codeInternal         = "internal"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errorStatus maps an error to its HTTP status and stable code. Specific
// outcomes are checked before the generic store failure so a wrapped
// duplicate is never reported as unavailable.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPollID), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, codeInvalidRequest
	case errors.Is(err, domain.ErrInvalidOption), errors.Is(err, domain.ErrUnknownOption):
		return http.StatusBadRequest, codeInvalidOption
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, codeUnauthenticated
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, codeForbidden
	case errors.Is(err, domain.ErrPollNotFound), errors.Is(err, domain.ErrUnknownPoll):
		return http.StatusNotFound, codePollNotFound
	case errors.Is(err, domain.ErrVoteNotFound):
		return http.StatusNotFound, codeVoteNotFound
	case errors.Is(err, domain.ErrAlreadyVoted), errors.Is(err, domain.ErrDuplicateVote):
		return http.StatusConflict, codeAlreadyVoted
	case errors.Is(err, domain.ErrPollClosed):
		return http.StatusConflict, codePollClosed
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, codeStoreUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Str("code", code).Msg("request failed")
		message = http.StatusText(status)
	}

	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: codeInvalidRequest, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
