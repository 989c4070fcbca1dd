package router

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/mflix/internal/handler"
	"github.com/user/mflix/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	secret := h.Config.AppSecret

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/signup")
	})

	// ==================== 认证 ====================
	r.GET("/signup", h.SignupPage)
	r.POST("/signup", h.Signup)
	r.GET("/login", middleware.OptionalAuth(secret), h.LoginPage)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	// ==================== 电影 ====================
	// 读接口可匿名访问；所有写入口（含表单页）统一要求登录
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(secret))
	{
		api.GET("/Movies", h.ListMovies)
		api.GET("/Movies/:id", h.MovieDetail)

		api.GET("/Movies/add", middleware.RequireAuth(secret), h.AddMoviePage)
		api.POST("/Movies", middleware.RequireAuth(secret), h.CreateMovie)
		api.GET("/Movies/:id/update", middleware.RequireAuth(secret), h.UpdateMoviePage)
		api.PUT("/Movies/:id", middleware.RequireAuth(secret), h.UpdateMovie)
		api.DELETE("/Movies/:id", middleware.RequireAuth(secret), h.DeleteMovie)
	}

	// ==================== GraphQL 查询端点 ====================
	r.GET("/graphql", h.GraphQL)
	r.POST("/graphql", h.GraphQL)
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	// 获取布局和局部模板
	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"formatDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"join": func(values []string) string {
			return strings.Join(values, " / ")
		},
	}

	// 注册所有页面模板
	pages := []string{
		"index", "movie", "add_movie", "update_movie",
		"signup", "login",
		"error", "404",
	}

	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r
}
