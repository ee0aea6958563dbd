package storefront

import (
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest 注册请求
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

// UserLogin 登录；成功后已保存的优惠码会带令牌重新校验
func (h *Handler) UserLogin(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := sess.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// UserSignup 注册（需验证邮箱后登录）
func (h *Handler) UserSignup(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := sess.Auth.Signup(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// UserLogout 退出登录
func (h *Handler) UserLogout(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	sess.Auth.Logout(c.Request.Context())
	response.Success(c, gin.H{"authenticated": false})
}

// GetCurrentUser 当前用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var user *models.User
	if sess.Auth.IsAuthenticated() {
		user = sess.Auth.User()
	}
	response.Success(c, gin.H{
		"authenticated": user != nil,
		"user":          user,
	})
}

// RefreshCurrentUser 重新加载用户资料（如邮箱验证后）
func (h *Handler) RefreshCurrentUser(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	user, err := sess.Auth.RefreshProfile(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"authenticated": true, "user": user})
}
