package placafipe

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned when the client has no API token configured.
// It is a configuration error, not an upstream outage
var ErrMissingToken = errors.New("placafipe token not configured")

// codeOK is the response code PlacaFipe embeds in successful bodies
const codeOK = 1

// APIError is an upstream rejection, either a non-2xx status or a
// 2xx body carrying a non-success response code
type APIError struct {
	Message string
	Status  int
	Code    int // the embedded response code, 0 if absent
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("placafipe: %s (status %d, code %d)", e.Message, e.Status, e.Code)
	}

	return fmt.Sprintf("placafipe: %s (status %d)", e.Message, e.Status)
}
