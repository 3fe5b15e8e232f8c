package gateway

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrUnavailable wraps transport-level failures: the request never produced
// a backend response.
var ErrUnavailable = errors.New("backend unavailable")

// HTTPError maps a failed service call to the error a page surfaces. Backend
// failures pass through with the server's own status and message, transport
// failures become a 502, and anything else is a local validation failure
// that never reached the network. Every handler funnels errors through here
// so failure presentation stays in one place.
func HTTPError(err error) *echo.HTTPError {
	var be *BackendError
	if errors.As(err, &be) {
		return echo.NewHTTPError(be.StatusCode, be.Message)
	}
	if errors.Is(err, ErrUnavailable) {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream request failed")
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
