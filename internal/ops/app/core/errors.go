package core

import (
	"errors"
	"fmt"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
)

var (
	ErrParseCmd = errors.New("cannot parse arguments")
	ErrHelp     = errors.New("")

	ErrOrderNotFound    = errors.New("no such order")
	ErrEmployeeNotFound = errors.New("no such employee")
	ErrNoCurrentPeriod  = errors.New("no open pay period")

	ErrStoreUnavailable   = errors.New("record store request failed")
	ErrBillingUnavailable = errors.New("billing request failed")

	ErrBadSignature = errors.New("webhook signature verification failed")
	ErrInvalidInput = errors.New("invalid input")
)

// AmbiguousTrackingError is returned when a short tracking code matches more
// than one order. The caller must show every candidate, never pick one.
type AmbiguousTrackingError struct {
	Code    string
	Matches []models.TrackingMatch
}

func (e *AmbiguousTrackingError) Error() string {
	return fmt.Sprintf("tracking code %q matches %d orders", e.Code, len(e.Matches))
}
