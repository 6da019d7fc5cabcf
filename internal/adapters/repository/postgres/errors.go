package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/lib/pq"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

const (
	codeForeignKeyViolation = "23503"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
	codeAdminShutdown       = "57P01"
	codeCrashShutdown       = "57P02"
	codeCannotConnectNow    = "57P03"

	votePollConstraint = "votes_poll_id_fkey"
)

// isTransient reports whether err comes from losing the connection or from a
// conflict PostgreSQL expects the client to retry.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Fatal() {
			return true
		}
		switch pqErr.Code {
		case codeSerializationFail, codeDeadlockDetected, codeAdminShutdown, codeCrashShutdown, codeCannotConnectNow:
			return true
		}
		// connection_exception and insufficient_resources classes
		class := string(pqErr.Code.Class())
		return class == "08" || class == "53"
	}

	return false
}

// wrapStoreError wraps err with domain.ErrStoreUnavailable when it is
// transient so callers can answer 503 instead of 500.
func wrapStoreError(msg string, err error) error {
	if isTransient(err) {
		return storeUnavailable(msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func storeUnavailable(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrStoreUnavailable, err)
}

// foreignKeyOutcome maps a vote insert foreign key violation to the ledger
// outcome it represents. ok is false for any other error.
func foreignKeyOutcome(err error) (outcome error, ok bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != codeForeignKeyViolation {
		return nil, false
	}
	if pqErr.Constraint == votePollConstraint || strings.Contains(pqErr.Message, votePollConstraint) {
		return domain.ErrUnknownPoll, true
	}
	return domain.ErrUnknownOption, true
}
