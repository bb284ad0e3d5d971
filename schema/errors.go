package schema

import "fmt"

// ValidationError is a local rejection that never reaches the network.
type ValidationError struct {
	Op      string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// TransportError means the request could not be sent or the response could
// not be read or decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError means the report service answered but signalled failure,
// either with a non-success status or with an error field in the body.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: remote error (status %d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: remote error (status %d): %s", e.Op, e.StatusCode, e.Message)
}

// ExportError wraps any failure while retrieving or saving an artifact.
type ExportError struct {
	Format ExportFormat
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
