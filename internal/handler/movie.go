package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/mflix/internal/model"
	"github.com/user/mflix/internal/repository"
	"github.com/user/mflix/internal/service"
)

// ListMovies 电影列表
// AJAX 请求返回 JSON，其余渲染页面；page/perPage 非整数时渲染去重后的错误列表
func (h *Handler) ListMovies(c *gin.Context) {
	if errs := service.ValidateListQuery(c.Query("page"), c.Query("perPage")); errs != nil {
		if isXHR(c) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		c.HTML(http.StatusBadRequest, "error.html", h.RenderData(c, gin.H{
			"Title":  "参数错误 - " + h.Config.SiteName,
			"Errors": errs,
		}))
		return
	}

	q := service.NormalizeListQuery(c.Query("page"), c.Query("perPage"), c.Query("title"))

	result, err := h.Movies.List(q)
	if err != nil {
		log.Printf("查询电影列表失败: %v", err)
		h.internalError(c)
		return
	}

	pagination := service.BuildPagination(result)

	if isXHR(c) {
		c.JSON(http.StatusOK, gin.H{
			"movies":     result.Movies,
			"pagination": pagination,
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", h.RenderData(c, gin.H{
		"Title":      "电影列表 - " + h.Config.SiteName,
		"Movies":     result.Movies,
		"Pagination": pagination,
		"Keyword":    q.Title,
		"PerPage":    q.PerPage,
	}))
}

// AddMoviePage 新增电影表单页
func (h *Handler) AddMoviePage(c *gin.Context) {
	c.HTML(http.StatusOK, "add_movie.html", h.RenderData(c, gin.H{
		"Title": "添加电影 - " + h.Config.SiteName,
		"Movie": &model.MovieForm{},
	}))
}

// CreateMovie 创建电影并跳转回列表页
func (h *Handler) CreateMovie(c *gin.Context) {
	var form model.MovieForm
	if err := c.ShouldBind(&form); err != nil {
		if isXHR(c) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []service.FieldError{
				{Field: "movie", Message: "标题和剧情简介为必填项"},
			}})
			return
		}
		c.HTML(http.StatusBadRequest, "error.html", h.RenderData(c, gin.H{
			"Title":  "参数错误 - " + h.Config.SiteName,
			"Errors": []service.FieldError{{Field: "movie", Message: "标题和剧情简介为必填项"}},
		}))
		return
	}

	movie := form.Movie(time.Now())
	if err := h.Movies.Create(movie); err != nil {
		log.Printf("创建电影失败: %v", err)
		h.internalError(c)
		return
	}

	c.Redirect(http.StatusFound, "/api/Movies?page=1&perPage=8&title=")
}

// MovieDetail 电影详情
func (h *Handler) MovieDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	movie, err := h.Movies.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.notFound(c)
			return
		}
		log.Printf("查询电影 %d 失败: %v", id, err)
		h.internalError(c)
		return
	}

	if isXHR(c) {
		c.JSON(http.StatusOK, movie)
		return
	}

	c.HTML(http.StatusOK, "movie.html", h.RenderData(c, gin.H{
		"Title": movie.Title + " - " + h.Config.SiteName,
		"Movie": movie,
	}))
}

// UpdateMoviePage 编辑电影表单页（回填扁平字段）
func (h *Handler) UpdateMoviePage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	movie, err := h.Movies.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.notFound(c)
			return
		}
		log.Printf("查询电影 %d 失败: %v", id, err)
		h.internalError(c)
		return
	}

	c.HTML(http.StatusOK, "update_movie.html", h.RenderData(c, gin.H{
		"Title":   "编辑电影 - " + h.Config.SiteName,
		"Movie":   model.FlattenMovie(movie),
		"MovieID": movie.ID,
	}))
}

// UpdateMovie 整体替换电影的全部字段，返回电影 ID
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "电影未找到"})
		return
	}

	var form model.MovieForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []service.FieldError{
			{Field: "movie", Message: "标题和剧情简介为必填项"},
		}})
		return
	}

	movie := form.Movie(time.Now())
	if err := h.Movies.Replace(id, movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "电影未找到"})
			return
		}
		log.Printf("更新电影 %d 失败: %v", id, err)
		h.internalError(c)
		return
	}

	c.JSON(http.StatusOK, id)
}

// DeleteMovie 删除电影
// 删除不存在的 ID 返回 404，不视为异常
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "电影未找到"})
		return
	}

	if err := h.Movies.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "电影未找到"})
			return
		}
		log.Printf("删除电影 %d 失败: %v", id, err)
		h.internalError(c)
		return
	}

	log.Printf("电影 %d 已删除", id)
	c.JSON(http.StatusOK, gin.H{"message": "电影已删除"})
}

// notFound 404 响应（页面或 JSON）
func (h *Handler) notFound(c *gin.Context) {
	if isXHR(c) {
		c.JSON(http.StatusNotFound, gin.H{"message": "电影未找到"})
		return
	}
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": "电影未找到 - " + h.Config.SiteName,
	}))
}

// internalError 500 响应，不向调用方暴露内部细节
func (h *Handler) internalError(c *gin.Context) {
	if isXHR(c) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.HTML(http.StatusInternalServerError, "error.html", h.RenderData(c, gin.H{
		"Title":  "服务器内部错误 - " + h.Config.SiteName,
		"Errors": []service.FieldError{{Field: "server", Message: "服务器内部错误，请稍后重试"}},
	}))
}
