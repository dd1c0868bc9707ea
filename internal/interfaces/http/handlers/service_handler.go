package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/intelligence/servicedir"
)

// ServiceCenterHandler exposes the brand support directory.
type ServiceCenterHandler struct {
	directory *servicedir.Directory
}

func NewServiceCenterHandler(dir *servicedir.Directory) *ServiceCenterHandler {
	if dir == nil {
		dir = servicedir.Default()
	}
	return &ServiceCenterHandler{directory: dir}
}

func (h *ServiceCenterHandler) Brands(c *gin.Context) {
	c.JSON(http.StatusOK, h.directory.Brands())
}

func (h *ServiceCenterHandler) Lookup(c *gin.Context) {
	e, ok := h.directory.Lookup(c.Param("brand"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found in directory"})
		return
	}
	c.JSON(http.StatusOK, e)
}
