package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/application/notification"
	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

type NotificationHandler struct {
	service notification.Service
	logger  logging.Logger
}

func NewNotificationHandler(service notification.Service, log logging.Logger) *NotificationHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &NotificationHandler{service: service, logger: log}
}

type testReminderRequest struct {
	ProductID int64 `json:"productId"`
}

func caller(c *gin.Context) notification.Caller {
	cl := callerFrom(c)
	return notification.Caller{ID: cl.ID, Name: cl.Name, Email: cl.Email}
}

func (h *NotificationHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if entries == nil {
		entries = []*warranty.Notification{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *NotificationHandler) SendTest(c *gin.Context) {
	var req testReminderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ProductID <= 0 {
		respondError(c, h.logger, errors.New(errors.ErrCodeProductNotFound, "Product not found"))
		return
	}
	res, err := h.service.SendTestReminder(c.Request.Context(), caller(c), req.ProductID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SendClaim handles POST /api/products/send-claim-email.
func (h *NotificationHandler) SendClaim(c *gin.Context) {
	var req notification.ClaimEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ProductID <= 0 {
		respondError(c, h.logger, errors.New(errors.ErrCodeProductNotFound, "Product not found"))
		return
	}
	res, err := h.service.SendClaimEmail(c.Request.Context(), caller(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
