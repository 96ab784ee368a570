package yahoo

import (
	"errors"
	"fmt"
)

// Sentinels for each failure kind. Every typed error below matches exactly
// one of them through errors.Is.
var (
	ErrInvalidArgument = errors.New("yahoo: invalid argument")
	ErrTransport       = errors.New("yahoo: transport failure")
	ErrStatus          = errors.New("yahoo: unexpected status")
	ErrDecode          = errors.New("yahoo: decode failure")
	ErrRemote          = errors.New("yahoo: remote service error")
	ErrCardinality     = errors.New("yahoo: unexpected result count")
)

// TransportError reports a failure to obtain a response at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: performing request: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// StatusError reports a non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	// Body is a bounded excerpt of the response body.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status code: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status code: %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// DecodeError reports a body that does not match the wire schema. Step names
// the part of the document that failed, e.g. "quoteResponse.result[2]".
type DecodeError struct {
	Op   string
	Step string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding %s: %v", e.Op, e.Step, e.Err)
}

func (e *DecodeError) Unwrap() error        { return e.Err }
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// RemoteError carries an error the service reported inside a 2xx body.
type RemoteError struct {
	Op      string
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: service error: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: service error %s: %s", e.Op, e.Code, e.Message)
}

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

// CardinalityError reports a result list whose length breaks the operation's
// contract.
type CardinalityError struct {
	Op   string
	Want string
	Got  int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("%s: expected %s result(s), got %d", e.Op, e.Want, e.Got)
}

func (e *CardinalityError) Is(target error) bool { return target == ErrCardinality }

func invalidArgument(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrInvalidArgument, fmt.Sprintf(format, args...))
}
