// Package contentstore implements the section accessors: the database-backed
// authoritative store, a namespaced local file store with a byte quota, an HTTP
// client for a remote content API, and a composition that uses the local store
// as a fallback cache.
package contentstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

// Accessor reads and writes whole sections by name.
type Accessor interface {
	// Get returns the section and true, or false when it was never saved or
	// the name is not a known section.
	Get(ctx context.Context, name string) (content.Section, bool, error)
	// Set replaces the whole section payload.
	Set(ctx context.Context, name string, data content.Section) error
}

var (
	// ErrUnreachable is returned when the backing store cannot be contacted.
	ErrUnreachable = errors.New("content store unreachable")
	// ErrQuotaExceeded is returned by the local store when a write would exceed its byte quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded: free up space by removing unused content or media")
	// ErrUnknownSection is returned when writing a section outside the fixed set.
	ErrUnknownSection = errors.New("unknown content section")
)

// BackendError carries a non-success response from a remote content API.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("content backend returned status %d", e.Status)
	}
	return fmt.Sprintf("content backend returned status %d: %s", e.Status, e.Message)
}

func checkSection(name string) error {
	if !content.IsKnownSection(name) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	return nil
}
