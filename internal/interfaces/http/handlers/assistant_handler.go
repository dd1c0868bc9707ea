package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/application/assistant"
	"github.com/turtacn/warrify/internal/application/insights"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
)

// AssistantHandler serves the chat assistant and the insight digest.
type AssistantHandler struct {
	assistant assistant.Service
	insights  insights.Service
	logger    logging.Logger
}

func NewAssistantHandler(a assistant.Service, i insights.Service, log logging.Logger) *AssistantHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AssistantHandler{assistant: a, insights: i, logger: log}
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}
	cl := callerFrom(c)
	reply, err := h.assistant.Chat(c.Request.Context(), assistant.Caller{ID: cl.ID, Name: cl.Name, Email: cl.Email}, req.Message)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *AssistantHandler) Insights(c *gin.Context) {
	report, err := h.insights.Generate(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
