package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/application/account"
	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
)

type AccountHandler struct {
	service account.Service
	logger  logging.Logger
}

func NewAccountHandler(service account.Service, log logging.Logger) *AccountHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AccountHandler{service: service, logger: log}
}

func (h *AccountHandler) Profile(c *gin.Context) {
	p, err := h.service.Profile(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var patch warranty.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}
	u, err := h.service.UpdateProfile(c.Request.Context(), callerFrom(c).ID, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Stats is public, like the landing page counters it feeds.
func (h *AccountHandler) Stats(c *gin.Context) {
	st, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
