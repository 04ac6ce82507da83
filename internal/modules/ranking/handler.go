package ranking

import (
	"github.com/gin-gonic/gin"
	"github.com/kyomei/core/internal/pkg/response"
)

// Handler handles ranking HTTP requests.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts ranking routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rankings", h.get)
}

// get GET /rankings
func (h *Handler) get(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}
