package blueprint

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownBlueprint   = errors.New("unknown blueprint")
	ErrDuplicateBlueprint = errors.New("blueprint already registered")
	ErrMissingArgument    = errors.New("missing blueprint argument")
	ErrInvalidArgument    = errors.New("invalid blueprint argument")
	ErrCursorCommitted    = errors.New("cursor already committed")
	ErrBatchValidation    = errors.New("batch validation failed")
)

// EntryFailure identifies one staged entry that failed validation.
type EntryFailure struct {
	Index       int
	Blueprint   string
	Description string
	Err         error
}

func (f EntryFailure) String() string {
	return fmt.Sprintf("entry %d (%s): %v", f.Index, f.Blueprint, f.Err)
}

// BatchCommitError reports every staged entry that failed validation during
// Commit. When it is returned, nothing from the batch was persisted.
type BatchCommitError struct {
	Failures []EntryFailure
}

func (e *BatchCommitError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.String()
	}
	return fmt.Sprintf("%s: %s", ErrBatchValidation, strings.Join(msgs, "; "))
}

func (e *BatchCommitError) Unwrap() error { return ErrBatchValidation }
