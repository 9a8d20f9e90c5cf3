package api

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure
type Kind string

const (
	// KindConfiguration covers contradictory flags, a missing app and a nonexistent root
	KindConfiguration Kind = "configuration"
	// KindRepository covers failed git prerequisite checks
	KindRepository Kind = "repository"
	// KindArchival covers i/o failures while packaging or hashing the source tree
	KindArchival Kind = "archival"
	// KindTransfer covers failures uploading the archive
	KindTransfer Kind = "transfer"
	// KindRemoteAPI covers failed calls to the platform api other than the upload
	KindRemoteAPI Kind = "remote-api"
	// KindRemoteBuild means the remote build reported failed; the message is the build's own diagnostics
	KindRemoteBuild Kind = "remote-build"
	// KindProtocol covers unexpected build states and broken output streams
	KindProtocol Kind = "protocol"
)

// Error is a classified pipeline failure; Error() returns the message verbatim
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf returns a new classified error with a formatted message
func Errorf(kind Kind, format string, a ...interface{}) error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, a...),
	}
}

// Wrap classifies err unless it already carries a kind; the first classification wins so messages surface unchanged
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return err
	}

	return &Error{
		Kind: kind,
		Err:  err,
	}
}

// KindOf returns the kind of a classified error or an empty kind
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return ""
}
