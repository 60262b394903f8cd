package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup matches no document, or a
	// replace/delete affects none.
	ErrNotFound = errors.New("document not found")

	// ErrImageNotFound is returned when an image delete affects zero
	// documents. Callers treat it as a signal to abort the surrounding
	// operation before touching the owning content record.
	ErrImageNotFound = errors.New("image not found")

	// ErrNoneDeleted is returned when a bulk delete affects zero documents.
	// The whole batch fails, even if only some of the ids were absent.
	ErrNoneDeleted = errors.New("no documents deleted")

	// ErrInvalidID is returned when a caller-supplied storage id is not a
	// valid object id hex string.
	ErrInvalidID = errors.New("invalid storage id")
)

// ImagePhase names the half of a two-step image replace that failed. The
// delete of the old binary and the store of the new one are separate writes
// with no transaction between them, so callers need to know which one broke.
type ImagePhase string

const (
	PhaseDelete ImagePhase = "delete"
	PhaseStore  ImagePhase = "store"
)

// ImagePhaseError tags an image-pipeline failure with the phase it happened
// in. It unwraps to the underlying error so sentinel checks keep working.
type ImagePhaseError struct {
	Phase ImagePhase
	Err   error
}

func (e *ImagePhaseError) Error() string {
	return fmt.Sprintf("image %s phase: %v", e.Phase, e.Err)
}

func (e *ImagePhaseError) Unwrap() error { return e.Err }
