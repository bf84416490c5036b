package notify

import (
	"fmt"

	"github.com/gi8lino/jirahook/internal/jira"
)

// BuildError reports a payload that could not be turned into a message.
type BuildError struct {
	Err     error
	Payload []byte // serialized copy of the event
}

// newBuildError wraps err together with the raw event.
func newBuildError(err error, ev *jira.Event) *BuildError {
	return &BuildError{Err: err, Payload: ev.Raw()}
}

// Error returns the failure followed by the payload.
func (e *BuildError) Error() string {
	return fmt.Sprintf("%s %s", e.Err, e.Payload)
}

func (e *BuildError) Unwrap() error { return e.Err }
