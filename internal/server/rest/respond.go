package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campdir/campdir/internal/common"
)

// tokenCookieName is the cookie carrying the session token alongside the
// JSON body.
const tokenCookieName = "token"

// respondWithToken returns the session token in the body and mirrors it into
// the httpOnly cookie. The cookie gains the Secure attribute only in
// production.
func (h *Handler) respondWithToken(c *gin.Context, token string) {
	c.SetCookie(tokenCookieName, token, int(h.cookieValidity.Seconds()), "/", "", h.production, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// writeBindError reports a malformed or incomplete request body.
func (h *Handler) writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}

// writeError converts a service error into the uniform envelope. Unmatched
// errors are logged with detail and surfaced as a generic internal error.
func (h *Handler) writeError(c *gin.Context, err error) {
	var status int
	var msg string

	switch {
	case errors.Is(err, common.ErrorValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		status, msg = http.StatusUnauthorized, common.ErrorUnauthorized.Error()
	case errors.Is(err, common.ErrorInvalidToken):
		status, msg = http.StatusUnauthorized, common.ErrorInvalidToken.Error()
	case errors.Is(err, common.ErrorInvalidResetToken):
		status, msg = http.StatusBadRequest, common.ErrorInvalidResetToken.Error()
	case errors.Is(err, common.ErrorEmailTaken):
		status, msg = http.StatusBadRequest, common.ErrorEmailTaken.Error()
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, common.ErrorNotFound.Error()
	case errors.Is(err, common.ErrorMailNotSent):
		status, msg = http.StatusInternalServerError, common.ErrorMailNotSent.Error()
	default:
		h.logger.Error(c.Request.Context(), "unhandled error", "error", err.Error())
		status, msg = http.StatusInternalServerError, common.ErrorInternal.Error()
	}

	c.JSON(status, gin.H{"success": false, "error": msg})
}
