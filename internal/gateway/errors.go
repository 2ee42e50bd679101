package gateway

import (
	"errors"
	"net/http"
	"strconv"
)

var (
	ErrAuthentication = errors.New("no token found, please login again")
	ErrNoResponse     = errors.New("no response received from server")
	ErrUnknownRoute   = errors.New("unknown api route")
)

// HTTPError is a non-2xx backend response. Its message is the bare status
// code so callers can branch on values like "404".
type HTTPError struct {
	Route  Route
	Status int
	Body   []byte
}

func (err *HTTPError) Error() string {
	return strconv.Itoa(err.Status)
}

func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	status, ok := StatusCode(err)
	return ok && status == http.StatusNotFound
}
