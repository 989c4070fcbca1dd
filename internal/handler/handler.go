package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/user/mflix/internal/config"
	"github.com/user/mflix/internal/middleware"
	"github.com/user/mflix/internal/model"
	"github.com/user/mflix/internal/repository"
	"github.com/user/mflix/internal/service"
)

// UserStore 用户存储接口
type UserStore interface {
	Create(username, email, password string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	CheckPassword(user *model.User, password string) bool
}

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
	Users  UserStore
	Movies *service.MovieService
	Schema graphql.Schema
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 创建电影服务
	movies := service.NewMovieService(repos.Movie)

	// 构建 GraphQL Schema（只在启动时执行一次）
	schema, err := NewMovieSchema(movies)
	if err != nil {
		panic(fmt.Sprintf("GraphQL Schema 初始化失败: %v", err))
	}

	return &Handler{
		Repos:  repos,
		Config: cfg,
		Users:  repos.User,
		Movies: movies,
		Schema: schema,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
	}

	// 注入用户信息
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			res["UserInfo"] = su
		}
	}

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// isXHR 判断是否为 AJAX 请求（返回 JSON 而非页面）
func isXHR(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// ==================== 认证 ====================

// signupRequest 注册请求
type signupRequest struct {
	Username string `form:"username" json:"username" binding:"required,min=2,max=30"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

// loginRequest 登录请求
type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// SignupPage 注册页面
func (h *Handler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", h.RenderData(c, gin.H{
		"Title": "注册 - " + h.Config.SiteName,
	}))
}

// Signup 注册处理
// 用户名/邮箱冲突返回 400，不会创建新记录
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "用户名、邮箱和密码均为必填，密码至少 6 个字符"})
		return
	}

	user, err := h.Users.Create(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "用户名或邮箱已被注册"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"user": gin.H{
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "登录 - " + h.Config.SiteName,
		"Redirect": c.Query("redirect"),
	}))
}

// Login 登录处理
// 成功时签发 1 小时有效期的 JWT，同时写入 Cookie 并返回令牌
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "用户名和密码均为必填"})
		return
	}

	user, err := h.Users.FindByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	if user == nil || !h.Users.CheckPassword(user, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户名或密码错误"})
		return
	}

	token, err := middleware.GenerateToken(user.Username, user.Email, h.Config.AppSecret, h.Config.TokenExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败，请重试"})
		return
	}

	// 设置 Cookie (JWT)
	c.SetCookie("token", token, int(h.Config.TokenExpiry.Seconds()), "/", "", false, true)

	// 保存 UserInfo 到 Session，供页面渲染使用
	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	session.Save()

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	// 清理 Session
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}
