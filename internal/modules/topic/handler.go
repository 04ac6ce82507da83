package topic

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kyomei/core/internal/middleware"
	"github.com/kyomei/core/internal/pkg/pagination"
	"github.com/kyomei/core/internal/pkg/response"
)

// Handler handles topic HTTP requests.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts topic routes onto the given router group.
// Creation is restricted to operators; edits and deletion additionally
// check authorship in the service.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	topics := rg.Group("/topics")

	topics.GET("", h.list)
	topics.GET("/:id", h.get)
	topics.POST("", adminMW, h.create)
	topics.PATCH("/:id", authMW, h.update)
	topics.DELETE("/:id", authMW, h.remove)
}

// list GET /topics
func (h *Handler) list(c *gin.Context) {
	var q ListQuery
	_ = c.ShouldBindQuery(&q)

	views, p, err := h.svc.List(q, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, views, p)
}

// get GET /topics/:id
func (h *Handler) get(c *gin.Context) {
	view, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, errTopicNotFound) {
			response.NotFoundMsg(c, "トピックが見つかりません")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, view)
}

// create POST /topics  [admin]
func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "入力内容が正しくありません")
		return
	}

	view, err := h.svc.Create(middleware.CurrentUserID(c), req)
	if err != nil {
		if errors.Is(err, errBadTimeRange) {
			response.BadRequest(c, "終了日時は開始日時より後にしてください")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, view)
}

// update PATCH /topics/:id  [auth, author]
func (h *Handler) update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "入力内容が正しくありません")
		return
	}

	view, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, errTopicNotFound):
			response.NotFoundMsg(c, "トピックが見つかりません")
		case errors.Is(err, errNotAuthor):
			response.Forbidden(c, "このトピックを編集する権限がありません")
		case errors.Is(err, errTopicClosed):
			response.BadRequest(c, "終了したトピックは編集できません")
		case errors.Is(err, errBadStatus):
			response.BadRequest(c, "ステータスはCLOSEDにのみ変更できます")
		case errors.Is(err, errBadTimeRange):
			response.BadRequest(c, "終了日時は開始日時より後にしてください")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, view)
}

// remove DELETE /topics/:id  [auth, author]
func (h *Handler) remove(c *gin.Context) {
	err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errTopicNotFound):
			response.NotFoundMsg(c, "トピックが見つかりません")
		case errors.Is(err, errNotAuthor):
			response.Forbidden(c, "このトピックを削除する権限がありません")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.NoContent(c)
}
