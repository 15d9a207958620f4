package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const notFoundHTML = `<!DOCTYPE html>
<html>
<head><title>404 Not Found</title></head>
<body>
<h1>404 - Not Found</h1>
<p>The page you requested does not exist.</p>
</body>
</html>
`

// ErrorHandler returns the central echo error handler. Unknown routes are
// answered according to the requested content type: JSON callers get a
// structured body, browsers get an HTML page, everyone else plain text.
// Other HTTP errors are rendered as JSON.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			message = fmt.Sprintf("%v", he.Message)
		}

		if code == http.StatusNotFound {
			writeNotFound(c)
			return
		}

		if code >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		}

		if err := c.JSON(code, map[string]string{"error": message}); err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}

func writeNotFound(c echo.Context) {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	switch {
	case strings.Contains(accept, echo.MIMEApplicationJSON):
		_ = c.JSON(http.StatusNotFound, map[string]string{
			"error": "endpoint not found",
			"path":  c.Request().URL.Path,
		})
	case strings.Contains(accept, echo.MIMETextHTML):
		_ = c.HTML(http.StatusNotFound, notFoundHTML)
	default:
		_ = c.String(http.StatusNotFound, "404 not found")
	}
}
