package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
)

// ErrCapabilityUnavailable indicates no live lookup is configured at all.
var ErrCapabilityUnavailable = errors.New("lookup capability unavailable")

// ErrNoMatch indicates a lookup succeeded but produced zero records.
var ErrNoMatch = errors.New("no match")

// TransportError wraps a connection or timeout failure against the external
// service.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError is a non-success response from the external service.
type RemoteError struct {
	Op     string
	Status int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error during %s: status %d", e.Op, e.Status)
}

// ScoreProvider searches an external source for sheet music matching the
// given parameters. Implementations may return any of the taxonomy errors
// above; the Finder converts all of them into the fallback path.
type ScoreProvider interface {
	Search(ctx context.Context, params domain.SearchParameters) ([]domain.ScoreRecord, error)
}

// Page is one raw document returned by a page-listing lookup.
type Page struct {
	Title      string
	RawContent string
}

// PageSource is the minimal collaborator the live path needs: a plain-text
// query in, raw pages out. A nil PageSource is a first-class input meaning
// the capability is not installed.
type PageSource interface {
	Lookup(ctx context.Context, query string) ([]Page, error)
}
