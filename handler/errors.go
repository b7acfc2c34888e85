package handler

import (
	"errors"
	"fmt"
	"net/http"

	"blog/domain"

	"github.com/labstack/echo/v4"
)

// ErrorHandler answers every failed request with a plain-text status.
// Missing posts are 404, echo errors keep their code, anything else is a 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		code = http.StatusNotFound
		msg = "Post not found."
	case errors.As(err, &he):
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}
	if code != http.StatusNotFound {
		c.Logger().Error(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.String(code, msg)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
