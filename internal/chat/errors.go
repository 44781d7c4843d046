package chat

import "errors"

type ErrorKind int

const (
	KindMissingInput ErrorKind = iota
	KindMissingCredential
	KindUpstreamFailure
	KindDisallowedStatement
	KindExecutionFailure
)

// Error carries the pipeline failure taxonomy. Handlers map the kind to an
// HTTP status; the message is safe to show to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func KindOf(err error) (ErrorKind, bool) {
	var pipelineErr *Error
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Kind, true
	}
	return 0, false
}
