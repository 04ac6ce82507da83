package answer

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kyomei/core/internal/middleware"
	"github.com/kyomei/core/internal/pkg/pagination"
	"github.com/kyomei/core/internal/pkg/response"
)

// Handler handles answer HTTP requests.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts answer routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/topics/:id/answers", h.listByTopic)
	rg.POST("/topics/:id/answers", authMW, h.submit)

	rg.GET("/answers/mine", authMW, h.mine)
	rg.GET("/answers/:id/replies", h.listReplies)
	rg.POST("/answers/:id/replies", authMW, h.reply)
}

// submit POST /topics/:id/answers  [auth]
func (h *Handler) submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "回答は1〜1000文字で入力してください")
		return
	}

	a, err := h.svc.Submit(middleware.CurrentUserID(c), c.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, errTopicNotFound):
			response.NotFoundMsg(c, "トピックが見つかりません")
		case errors.Is(err, errTopicClosed):
			response.BadRequest(c, "このトピックは終了しています")
		case errors.Is(err, errTopicExpired):
			response.BadRequest(c, "回答期限が過ぎています")
		case errors.Is(err, errQuotaExceeded):
			response.BadRequest(c, "1つのトピックにつき最大3件まで回答できます")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, a)
}

// listByTopic GET /topics/:id/answers
func (h *Handler) listByTopic(c *gin.Context) {
	var q ListQuery
	_ = c.ShouldBindQuery(&q)

	answers, p, err := h.svc.ListByTopic(c.Param("id"), q, pagination.FromContext(c))
	if err != nil {
		if errors.Is(err, errTopicNotFound) {
			response.NotFoundMsg(c, "トピックが見つかりません")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Paged(c, answers, p)
}

// mine GET /answers/mine  [auth]
func (h *Handler) mine(c *gin.Context) {
	answers, p, err := h.svc.Mine(middleware.CurrentUserID(c), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, answers, p)
}

// reply POST /answers/:id/replies  [auth]
func (h *Handler) reply(c *gin.Context) {
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "返信は1〜500文字で入力してください")
		return
	}

	r, err := h.svc.Reply(middleware.CurrentUserID(c), c.Param("id"), req.Content)
	if err != nil {
		if errors.Is(err, errAnswerNotFound) {
			response.NotFoundMsg(c, "回答が見つかりません")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, r)
}

// listReplies GET /answers/:id/replies
func (h *Handler) listReplies(c *gin.Context) {
	replies, err := h.svc.ListReplies(c.Param("id"))
	if err != nil {
		if errors.Is(err, errAnswerNotFound) {
			response.NotFoundMsg(c, "回答が見つかりません")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, replies)
}
