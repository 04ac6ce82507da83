package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kyomei/core/internal/middleware"
	"github.com/kyomei/core/internal/pkg/response"
)

// Handler handles user HTTP requests.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts user routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	users := rg.Group("/users")

	users.POST("/register", h.register)
	users.POST("/login", h.login)
	users.GET("/me", authMW, h.me)
	users.PATCH("/me", authMW, h.updateMe)
}

// register POST /users/register
func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "ユーザー名とパスワードを正しく入力してください")
		return
	}

	u, err := h.svc.Register(req)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			response.Conflict(c, "このユーザー名は既に使われています")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, u)
}

// login POST /users/login
func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "ユーザー名とパスワードを入力してください")
		return
	}

	result, err := h.svc.Login(req, c.ClientIP())
	if err != nil {
		if errors.Is(err, errBadCredential) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

// me GET /users/me  [auth]
func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.MeWithStats(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFoundMsg(c, "ユーザーが見つかりません")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, u)
}

// updateMe PATCH /users/me  [auth]
func (h *Handler) updateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "入力内容が正しくありません")
		return
	}

	u, err := h.svc.UpdateMe(middleware.CurrentUserID(c), req)
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFoundMsg(c, "ユーザーが見つかりません")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, u)
}
