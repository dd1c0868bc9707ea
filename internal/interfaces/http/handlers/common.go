package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/application/auth"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/interfaces/http/middleware"
	"github.com/turtacn/warrify/pkg/errors"
)

// callerFrom returns the authenticated caller. Routes using it sit behind
// the auth middleware, so a missing caller is a wiring bug.
func callerFrom(c *gin.Context) *auth.Claims {
	if claims := middleware.ClaimsFrom(c); claims != nil {
		return claims
	}
	return &auth.Claims{}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, nil, errors.New(errors.ErrCodeProductNotFound, "Product not found"))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// respondError maps err to its HTTP status and writes {"error": message}.
// Storage failures and unclassified errors are masked as "Server error";
// every 5xx is logged.
func respondError(c *gin.Context, log logging.Logger, err error) {
	var appErr *errors.AppError
	if !errors.As(err, &appErr) {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "Server error")
	}
	switch appErr.Code {
	case errors.ErrCodeDatabaseError, errors.ErrCodeCacheError:
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "Server error")
	}
	status := errors.HTTPStatusForCode(appErr.Code)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed",
			logging.String("route", c.FullPath()),
			logging.String("code", appErr.Code.String()),
			logging.Err(err))
	}
	_ = c.Error(err)
	middleware.WriteError(c, appErr)
}
