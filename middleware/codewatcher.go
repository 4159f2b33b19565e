package middleware

import (
	"net/http"
)

var _ http.ResponseWriter = &codeWatcher{}

// codeWatcher is a http.ResponseWriter that captures the status code and
// byte count for logging.
type codeWatcher struct {
	code  *int
	bytes int
	w     http.ResponseWriter
}

func (cw *codeWatcher) Header() http.Header {
	return cw.w.Header()
}

func (cw *codeWatcher) Write(b []byte) (int, error) {
	n, err := cw.w.Write(b)
	cw.bytes += n
	return n, err
}

func (cw *codeWatcher) WriteHeader(statusCode int) {
	if cw.code == nil {
		cw.code = &statusCode
	}
	cw.w.WriteHeader(statusCode)
}

func (cw *codeWatcher) Code() int {
	if cw.code != nil {
		return *cw.code
	}
	return http.StatusOK
}

// Unwrap lets http.ResponseController reach the real writer.
func (cw *codeWatcher) Unwrap() http.ResponseWriter {
	return cw.w
}
