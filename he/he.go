// Package he turns errors into HTTP responses.
package he

import (
	"errors"
	"fmt"
	"log"
	"net/http"
)

// HTTPError is an error that knows which status it should be sent as.
type HTTPError struct {
	code int
	err  error
}

func HTTPCodedErrorf(code int, f string, more ...any) *HTTPError {
	return &HTTPError{
		code: code,
		err:  fmt.Errorf(f, more...),
	}
}

// New attaches code to an existing error.
func New(code int, err error) *HTTPError {
	return &HTTPError{
		code: code,
		err:  err,
	}
}

func (e *HTTPError) Error() string {
	return e.err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.err
}

// Code returns the HTTP status for e.
func (e *HTTPError) Code() int {
	return e.code
}

// StatusOf returns the status err should be sent with: the code of the
// first HTTPError in its chain, or 500.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Code()
	}
	return http.StatusInternalServerError
}

// SendErrorToHTTPClient logs err and sends it to the client as "can't
// <while>: <err>".  Anything that isn't an HTTPError goes out as a 500 and
// it's on us.
func SendErrorToHTTPClient(w http.ResponseWriter, while string, err error) {
	code := StatusOf(err)
	txt := fmt.Sprintf("can't %s: %v", while, err)
	log.Printf("%d: %s", code, txt)
	http.Error(w, txt, code)
}
