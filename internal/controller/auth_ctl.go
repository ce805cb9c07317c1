package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marinemarket_v1/internal/api/dto"
	"marinemarket_v1/internal/middleware"
	"marinemarket_v1/internal/service"
)

type AuthController struct {
	userSvc *service.UserService
}

func NewAuthController(userSvc *service.UserService) *AuthController {
	return &AuthController{userSvc: userSvc}
}

// Register 注册
// @Summary 用户注册
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.UserInfo "新用户"
// @Failure 409 {object} map[string]interface{} "用户名或邮箱已占用"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	info, err := c.userSvc.Register(ctx.Request.Context(), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, info)
}

// Login 登录
// @Summary 用户登录
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse "Token 对"
// @Failure 401 {object} map[string]interface{} "用户名或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.userSvc.Login(ctx.Request.Context(), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Refresh 刷新 Token
// @Summary 刷新 Token
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "refresh token"
// @Success 200 {object} dto.RefreshTokenResponse "新 Token 对"
// @Failure 401 {object} map[string]interface{} "Token 无效"
// @Router /api/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.userSvc.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Profile 当前用户信息
// @Summary 当前用户信息
// @Tags Auth (认证)
// @Produce json
// @Success 200 {object} dto.UserInfo "用户信息"
// @Security BearerAuth
// @Router /api/auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	info, err := c.userSvc.GetProfile(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}
