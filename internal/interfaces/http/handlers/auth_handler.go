package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/application/auth"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
)

type AuthHandler struct {
	service auth.Service
	logger  logging.Logger
}

func NewAuthHandler(service auth.Service, log logging.Logger) *AuthHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AuthHandler{service: service, logger: log}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req auth.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
