package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/selectshop/shop-api/internal/core/domain"
	"github.com/selectshop/shop-api/internal/infrastructure/kakao"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Collapses every token-verification failure into the same 403 so the
//     response never reveals whether a credential was malformed, forged, or
//     merely expired.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenSignatureInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrFolderNotFound):
		return http.StatusNotFound, "folder not found"
	case errors.Is(err, domain.ErrDuplicateFolder):
		return http.StatusConflict, "folder already exists"
	case errors.Is(err, kakao.ErrUnreachable):
		return http.StatusGatewayTimeout, "kakao login failed"
	case errors.Is(err, kakao.ErrRejected),
		errors.Is(err, kakao.ErrInvalidResponse),
		errors.Is(err, kakao.ErrProfileIncomplete):
		return http.StatusBadGateway, "kakao login failed"
	}

	// Unexpected error (storage failures included): log the real cause,
	// return a generic server error — never masked as an auth failure.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
