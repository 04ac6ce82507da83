package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/kyomei/core/internal/pkg/response"
)

// Handler handles operator console HTTP requests.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts admin routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	admin := rg.Group("/admin", adminMW)

	admin.GET("/stats", h.stats)
}

// stats GET /admin/stats  [admin]
func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.GetStats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}
