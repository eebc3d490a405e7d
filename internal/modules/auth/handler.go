package auth

import (
	"errors"

	"github.com/drink365/estate-tax-app/internal/middleware"
	"github.com/drink365/estate-tax-app/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the auth endpoints. extra middlewares (e.g. the login
// rate limiter) run before the login handler only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, optionalGuard gin.HandlerFunc, loginMW ...gin.HandlerFunc) {
	a := rg.Group("/auth")

	login := append(append([]gin.HandlerFunc{}, loginMW...), h.login)
	a.POST("/login", login...)
	a.POST("/logout", h.logout)
	a.GET("/session", optionalGuard, h.session)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, u, err := h.svc.Login(dto.Username, dto.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			response.Forbidden(c, "查無此使用者")
		case errors.Is(err, errWrongPassword):
			response.Forbidden(c, "帳密錯誤")
		case errors.Is(err, errOutsideWindow):
			response.Forbidden(c, "權限尚未啟用或已過期")
		default:
			response.InternalError(c, err)
		}
		return
	}

	credential := middleware.FormatCredential(u.Username, token)
	c.SetCookie(middleware.SessionCookie, credential,
		int(h.svc.reg.TTL().Seconds()), "/", "", false, true)
	response.OK(c, loginResponse{Token: token, Username: u.Username, Name: u.Name})
}

// logout reads the credential straight from the request: ending an already
// dead session is fine and must not error.
func (h *Handler) logout(c *gin.Context) {
	account, token := middleware.ParseCredential(middleware.ExtractCredential(c))
	if account != "" {
		if err := h.svc.Logout(account, token); err != nil {
			response.InternalError(c, err)
			return
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.NoContent(c)
}

func (h *Handler) session(c *gin.Context) {
	if !middleware.IsAuthenticated(c) {
		response.OK(c, nil)
		return
	}
	u, err := h.svc.Profile(middleware.CurrentAccount(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, sessionResponse{Username: u.Username, Name: u.Name})
}
