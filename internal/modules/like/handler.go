package like

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kyomei/core/internal/middleware"
	"github.com/kyomei/core/internal/pkg/response"
)

// Handler handles like (heart) HTTP requests.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts like routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	likes := rg.Group("/answers/:id/likes")

	likes.GET("", h.status)

	authed := likes.Group("", authMW)
	authed.POST("", h.add)
	authed.DELETE("", h.remove)

	likes.POST("/recount", adminMW, h.recount)
}

// add POST /answers/:id/likes  [auth]
func (h *Handler) add(c *gin.Context) {
	st, err := h.svc.Add(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errAnswerNotFound):
			response.NotFoundMsg(c, "回答が見つかりません")
		case errors.Is(err, errAlreadyLiked):
			response.BadRequest(c, "既にいいねしています")
		case errors.Is(err, errQuotaExceeded):
			response.BadRequest(c, "1つのトピックにつき最大3つまでしかいいねできません")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, st)
}

// remove DELETE /answers/:id/likes  [auth]
func (h *Handler) remove(c *gin.Context) {
	st, err := h.svc.Remove(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errAnswerNotFound):
			response.NotFoundMsg(c, "回答が見つかりません")
		case errors.Is(err, errNotLiked):
			response.NotFoundMsg(c, "いいねが見つかりません")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, st)
}

// status GET /answers/:id/likes
func (h *Handler) status(c *gin.Context) {
	st, err := h.svc.GetStatus(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errAnswerNotFound) {
			response.NotFoundMsg(c, "回答が見つかりません")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, st)
}

// recount POST /answers/:id/likes/recount  [admin]
func (h *Handler) recount(c *gin.Context) {
	count, err := h.svc.RecountAnswer(c.Param("id"))
	if err != nil {
		if errors.Is(err, errAnswerNotFound) {
			response.NotFoundMsg(c, "回答が見つかりません")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"likeCount": count})
}
