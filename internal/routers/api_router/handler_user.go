package api_router

import (
	"github.com/haierkeys/fast-note-service/internal/app"
	"github.com/haierkeys/fast-note-service/internal/dto"
	pkgapp "github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"
	apperrors "github.com/haierkeys/fast-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler user API router handler
// UserHandler 用户 API 路由处理器
// Uses App Container to inject dependencies, supports unified error handling
// 使用 App Container 注入依赖，支持统一错误处理
type UserHandler struct {
	*Handler
}

// NewUserHandler creates UserHandler instance
// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(a),
	}
}

// registerBindError maps a failed registration binding to the matching error code
func registerBindError(errs pkgapp.ValidErrors) *code.Code {
	switch {
	case errs.Failed("email", "required") || errs.Failed("password", "required"):
		return code.ErrorInvalidParams.WithDetails("Email and password are required.")
	case errs.Failed("email", "loose_email"):
		return code.ErrorUserEmailInvalid
	case errs.Failed("password", "min"):
		return code.ErrorUserPasswordTooShort
	}
	return code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()...)
}

// Register user registration
// @Summary User registration
// @Description Create an account and start a session. Registration may be disabled in server settings.
// @Description 注册账号并写入会话 Cookie，注册功能可能在服务器设置中被禁用。
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserCreateRequest true "Register Parameters"
// @Success 200 {object} map[string]any "{success, message, user:{id,email}}"
// @Failure 400 {object} pkgapp.ErrorRes "Invalid Parameters"
// @Failure 403 {object} pkgapp.ErrorRes "Registration Disabled"
// @Failure 409 {object} pkgapp.ErrorRes "User Already Exists"
// @Router /api/user [post]
func (h *UserHandler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserCreateRequest{}

	// Parameter binding and validation
	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("UserHandler.Register.BindAndValid errs", zap.Error(errs))
		response.ToResponse(registerBindError(errs))
		return
	}

	ctx := c.Request.Context()

	auth, err := h.App.UserService.Register(ctx, params)
	if err != nil {
		h.logError(ctx, "UserHandler.Register", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.SetSessionCookie(c, h.App.CookieConfig(), auth.Token)
	response.ToResponse(code.SuccessCreate.WithData(gin.H{"user": auth.User}))
}

// Login user login
// @Summary User login
// @Description Verify credentials and start a session carried by an http-only cookie.
// @Description 校验账号密码并写入会话 Cookie。
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserLoginRequest true "Login Parameters"
// @Success 200 {object} map[string]any "{success, message, user:{id,email}}"
// @Failure 400 {object} pkgapp.ErrorRes "Invalid Parameters"
// @Failure 401 {object} pkgapp.ErrorRes "Wrong Password"
// @Failure 404 {object} pkgapp.ErrorRes "No Account"
// @Router /api/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserLoginRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("UserHandler.Login.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()...))
		return
	}

	ctx := c.Request.Context()

	auth, err := h.App.UserService.Login(ctx, params)
	if err != nil {
		h.logError(ctx, "UserHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.SetSessionCookie(c, h.App.CookieConfig(), auth.Token)
	response.ToResponse(code.SuccessLogin.WithData(gin.H{"user": auth.User}))
}

// Logout 删除会话 Cookie
// @Summary User logout
// @Tags User
// @Produce json
// @Success 200 {object} map[string]any "{success, message}"
// @Router /api/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	pkgapp.ClearSessionCookie(c, h.App.CookieConfig())
	pkgapp.NewResponse(c).ToResponse(code.SuccessLogout)
}

// VerifyToken reports whether the session cookie holds a valid token; it never fails
// @Summary Verify session
// @Tags User
// @Produce json
// @Success 200 {object} map[string]bool "{valid}"
// @Router /api/verify-token [post]
func (h *UserHandler) VerifyToken(c *gin.Context) {
	token := pkgapp.SessionToken(c, h.App.CookieConfig())
	_, ok := h.App.TokenManager.Verify(token)
	pkgapp.NewResponse(c).ToResponseRaw(gin.H{"valid": ok})
}
