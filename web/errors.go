package web

import (
	"errors"
	"net/http"

	"github.com/unrolled/render"

	"github.com/djmorgan26/fantasy-football-assistant/controller"
	"github.com/djmorgan26/fantasy-football-assistant/db"
	"github.com/djmorgan26/fantasy-football-assistant/model"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/fetch"
)

type errorResponse struct {
	Error string `json:"error"`
}

func renderError(rnd *render.Render, w http.ResponseWriter, err error) {
	rnd.JSON(w, errorStatus(err), errorResponse{Error: err.Error()})
}

// errorStatus maps the error taxonomy onto HTTP status codes. Upstream
// availability problems become 503 so clients can tell them apart from
// bugs in this service.
func errorStatus(err error) int {
	var valErr *model.ValidationError
	var authErr *fetch.AuthError
	var notFoundErr *fetch.NotFoundError
	var rateErr *fetch.RateLimitError
	var connErr *fetch.ConnectionError
	var malformedErr *fetch.MalformedError

	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.Is(err, controller.ErrNotLeagueMember):
		return http.StatusForbidden
	case errors.As(err, &notFoundErr),
		errors.Is(err, db.ErrLeagueNotFound),
		errors.Is(err, db.ErrTeamNotFound),
		errors.Is(err, db.ErrTradeNotFound):
		return http.StatusNotFound
	case errors.As(err, &rateErr),
		errors.As(err, &connErr),
		errors.As(err, &malformedErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
