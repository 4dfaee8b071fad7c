package board

import "fmt"

// AuthError indicates the API token was rejected.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("board auth rejected: %s", e.Detail)
}

// NotFoundError indicates the requested board does not exist or is not visible.
type NotFoundError struct {
	BoardID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("board %s not found", e.BoardID)
}

// TransportError wraps a network or decoding failure talking to the API.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("board %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// WriteError carries the server's error payload for a failed mutation.
type WriteError struct {
	RecordID string
	ColumnID string
	Payload  string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write record %s column %s: %s", e.RecordID, e.ColumnID, e.Payload)
}
