package service

import (
	"errors"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/user/mflix/internal/model"
)

const (
	defaultPage    = 1
	defaultPerPage = 8
	maxPerPage     = 24
	// maxPagesToShow 分页导航窗口大小
	maxPagesToShow = 15
)

// ListQuery 归一化后的列表查询参数
type ListQuery struct {
	Page    int
	PerPage int
	Title   string
}

// NormalizeListQuery 将原始查询参数归一化为可用的分页参数
// 规则：page 缺省/非法取 1；perPage 缺省/非法取 8，达到 24 重置为 8，
// 再取最近的 4 的倍数（居中时向上取）；title 缺省为空串（不过滤）。
// 本函数不会失败，总能给出可用的默认值
func NormalizeListQuery(rawPage, rawPerPage, rawTitle string) ListQuery {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = defaultPage
	}

	perPage, err := strconv.Atoi(rawPerPage)
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage >= maxPerPage {
		perPage = defaultPerPage
	}
	if perPage%4 != 0 {
		perPage = int(math.Round(float64(perPage)/4)) * 4
	}
	if perPage < 4 {
		perPage = 4
	}
	// 22、23 向上取整会触顶 24，此时退到 20 保证结果严格小于上限
	if perPage >= maxPerPage {
		perPage = maxPerPage - 4
	}

	return ListQuery{
		Page:    page,
		PerPage: perPage,
		Title:   rawTitle,
	}
}

// FieldError 校验失败的字段及原因
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// rawListQuery 严格校验用的原始查询参数
type rawListQuery struct {
	Page    string `validate:"required,intstring"`
	PerPage string `validate:"required,intstring"`
}

var queryValidator = newQueryValidator()

func newQueryValidator() *validator.Validate {
	v := validator.New()
	// intstring: 字符串必须是整数
	v.RegisterValidation("intstring", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateListQuery 严格校验列表查询参数
// 返回按（字段，原因）去重后的错误列表；合法时返回 nil
func ValidateListQuery(rawPage, rawPerPage string) []FieldError {
	err := queryValidator.Struct(rawListQuery{Page: rawPage, PerPage: rawPerPage})
	if err == nil {
		return nil
	}

	var fieldErrs []FieldError
	seen := make(map[FieldError]bool)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "query", Message: "查询参数无效"}}
	}

	for _, fe := range verrs {
		field := "page"
		if fe.Field() == "PerPage" {
			field = "perPage"
		}

		msg := field + " 必须为整数"
		if fe.Tag() == "required" {
			msg = field + " 不能为空"
		}

		e := FieldError{Field: field, Message: msg}
		if !seen[e] {
			seen[e] = true
			fieldErrs = append(fieldErrs, e)
		}
	}

	return fieldErrs
}

// ListResult 一页电影及分页元信息
// Page 保留调用方原始请求的页码（不做夹取）
type ListResult struct {
	Movies     []model.Movie
	Page       int
	PerPage    int
	TotalPages int
	TotalCount int64
}

// List 查询一页电影
// 取结果时生效页码为 min(page, totalPages)，越界请求返回末页内容；
// 无匹配记录时 totalPages 为 0，直接返回空列表而不报错
func (s *MovieService) List(q ListQuery) (*ListResult, error) {
	count, err := s.countByTitle(q.Title)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(count) / float64(q.PerPage)))

	result := &ListResult{
		Movies:     []model.Movie{},
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalPages: totalPages,
		TotalCount: count,
	}

	current := q.Page
	if current > totalPages {
		current = totalPages
	}
	if current < 1 {
		// 没有任何匹配记录
		return result, nil
	}

	movies, err := s.store.FindPage(q.Title, (current-1)*q.PerPage, q.PerPage)
	if err != nil {
		return nil, err
	}
	result.Movies = movies

	return result, nil
}

// PageLink 分页导航中的单个页码
type PageLink struct {
	PageNumber int  `json:"pageNumber"`
	IsCurrent  bool `json:"isCurrent"`
}

// Pagination 分页导航数据
type Pagination struct {
	CurrentPage     int        `json:"currentPage"`
	TotalPages      int        `json:"totalPages"`
	TotalMovies     int64      `json:"totalMovies"`
	PerPage         int        `json:"perPage"`
	PaginationArray []PageLink `json:"paginationArray"`
	PreviousPage    *int       `json:"previousPage"`
	NextPage        *int       `json:"nextPage"`
}

// BuildPagination 根据当前页与总页数构造分页导航
// 窗口以当前页为中心，最多 15 个页码；靠近尾部时向左平移补足；
// totalPages 为 0 时窗口为空，前后页指针均为 nil
func BuildPagination(result *ListResult) Pagination {
	currentPage := result.Page
	totalPages := result.TotalPages

	startPage := currentPage - maxPagesToShow/2
	if startPage < 1 {
		startPage = 1
	}
	endPage := startPage + maxPagesToShow - 1
	if endPage > totalPages {
		endPage = totalPages
	}
	if endPage-startPage+1 < maxPagesToShow {
		startPage = endPage - maxPagesToShow + 1
		if startPage < 1 {
			startPage = 1
		}
	}

	links := make([]PageLink, 0, maxPagesToShow)
	for i := startPage; i <= endPage; i++ {
		links = append(links, PageLink{
			PageNumber: i,
			IsCurrent:  i == currentPage,
		})
	}

	p := Pagination{
		CurrentPage:     currentPage,
		TotalPages:      totalPages,
		TotalMovies:     result.TotalCount,
		PerPage:         result.PerPage,
		PaginationArray: links,
	}

	if currentPage > 1 {
		prev := currentPage - 1
		p.PreviousPage = &prev
	}
	if currentPage < totalPages {
		next := currentPage + 1
		p.NextPage = &next
	}

	return p
}
