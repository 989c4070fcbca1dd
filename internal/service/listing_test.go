package service

import (
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/mflix/internal/model"
	"github.com/user/mflix/internal/repository"
)

// fakeMovieStore 内存版电影存储，用于隔离测试服务层
type fakeMovieStore struct {
	movies     []model.Movie
	nextID     int
	countCalls int
	pageCalls  int
	lastTitle  string
}

func newFakeMovieStore(n int) *fakeMovieStore {
	s := &fakeMovieStore{nextID: 1}
	for i := 0; i < n; i++ {
		s.movies = append(s.movies, model.Movie{
			ID:    s.nextID,
			Title: "Movie " + string(rune('A'+i%26)),
			Plot:  "plot",
		})
		s.nextID++
	}
	return s
}

func (s *fakeMovieStore) filtered(title string) []model.Movie {
	out := make([]model.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		if title == "" || strings.Contains(strings.ToLower(m.Title), strings.ToLower(title)) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *fakeMovieStore) CountByTitle(title string) (int64, error) {
	s.countCalls++
	s.lastTitle = title
	return int64(len(s.filtered(title))), nil
}

func (s *fakeMovieStore) FindPage(title string, offset, limit int) ([]model.Movie, error) {
	s.pageCalls++
	all := s.filtered(title)
	if offset >= len(all) {
		return []model.Movie{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeMovieStore) FindByID(id int) (*model.Movie, error) {
	for i := range s.movies {
		if s.movies[i].ID == id {
			m := s.movies[i]
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeMovieStore) Create(movie *model.Movie) error {
	movie.ID = s.nextID
	s.nextID++
	s.movies = append(s.movies, *movie)
	return nil
}

func (s *fakeMovieStore) Replace(id int, movie *model.Movie) error {
	for i := range s.movies {
		if s.movies[i].ID == id {
			movie.ID = id
			s.movies[i] = *movie
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeMovieStore) Delete(id int) error {
	for i := range s.movies {
		if s.movies[i].ID == id {
			s.movies = append(s.movies[:i], s.movies[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func TestNormalizeListQuery_Defaults(t *testing.T) {
	q := NormalizeListQuery("", "", "")
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 8, q.PerPage)
	assert.Equal(t, "", q.Title)

	q = NormalizeListQuery("abc", "xyz", "batman")
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 8, q.PerPage)
	assert.Equal(t, "batman", q.Title)
}

func TestNormalizeListQuery_PerPageRules(t *testing.T) {
	// 达到上限重置为默认值
	assert.Equal(t, 8, NormalizeListQuery("1", "24", "").PerPage)
	assert.Equal(t, 8, NormalizeListQuery("1", "100", "").PerPage)

	// 4 的倍数保持不变
	assert.Equal(t, 12, NormalizeListQuery("1", "12", "").PerPage)
	assert.Equal(t, 20, NormalizeListQuery("1", "20", "").PerPage)

	// 取最近的 4 的倍数，居中时向上
	assert.Equal(t, 8, NormalizeListQuery("1", "7", "").PerPage)
	assert.Equal(t, 8, NormalizeListQuery("1", "9", "").PerPage)
	assert.Equal(t, 8, NormalizeListQuery("1", "6", "").PerPage) // 6 居中，向上取 8
	assert.Equal(t, 12, NormalizeListQuery("1", "10", "").PerPage)

	// 过小的值兜底为 4
	assert.Equal(t, 4, NormalizeListQuery("1", "1", "").PerPage)

	// 接近上限的值不允许越过 24
	assert.Equal(t, 20, NormalizeListQuery("1", "22", "").PerPage)
	assert.Equal(t, 20, NormalizeListQuery("1", "23", "").PerPage)
}

func TestNormalizeListQuery_PerPageProperty(t *testing.T) {
	// 对 [1,100) 内任意输入，结果必须是 4 的正倍数且严格小于 24
	for raw := 1; raw < 100; raw++ {
		q := NormalizeListQuery("1", strconv.Itoa(raw), "")
		assert.Greater(t, q.PerPage, 0, "perPage=%d", raw)
		assert.Zero(t, q.PerPage%4, "perPage=%d", raw)
		assert.Less(t, q.PerPage, 24, "perPage=%d", raw)
	}
}

func TestValidateListQuery(t *testing.T) {
	assert.Nil(t, ValidateListQuery("1", "8"))
	assert.Nil(t, ValidateListQuery("-3", "8"))

	errs := ValidateListQuery("abc", "8")
	require.Len(t, errs, 1)
	assert.Equal(t, "page", errs[0].Field)

	errs = ValidateListQuery("", "")
	require.Len(t, errs, 2)

	errs = ValidateListQuery("1.5", "x")
	require.Len(t, errs, 2)
}

func TestBuildPagination_Window(t *testing.T) {
	for totalPages := 0; totalPages <= 40; totalPages++ {
		for current := 1; current <= 50; current++ {
			p := BuildPagination(&ListResult{Page: current, PerPage: 8, TotalPages: totalPages})

			want := totalPages
			if want > 15 {
				want = 15
			}
			require.Len(t, p.PaginationArray, want, "current=%d total=%d", current, totalPages)

			// 窗口必须连续
			for i := 1; i < len(p.PaginationArray); i++ {
				require.Equal(t, p.PaginationArray[i-1].PageNumber+1, p.PaginationArray[i].PageNumber)
			}

			// 当前页在范围内时必须出现在窗口里
			if current >= 1 && current <= totalPages {
				found := false
				for _, link := range p.PaginationArray {
					if link.PageNumber == current {
						found = true
						require.True(t, link.IsCurrent)
					} else {
						require.False(t, link.IsCurrent)
					}
				}
				require.True(t, found, "current=%d total=%d", current, totalPages)
			}
		}
	}
}

func TestBuildPagination_Empty(t *testing.T) {
	p := BuildPagination(&ListResult{Page: 1, PerPage: 8, TotalPages: 0})
	assert.Empty(t, p.PaginationArray)
	assert.Nil(t, p.PreviousPage)
	assert.Nil(t, p.NextPage)
}

func TestBuildPagination_PrevNext(t *testing.T) {
	p := BuildPagination(&ListResult{Page: 1, PerPage: 8, TotalPages: 5})
	assert.Nil(t, p.PreviousPage)
	require.NotNil(t, p.NextPage)
	assert.Equal(t, 2, *p.NextPage)

	p = BuildPagination(&ListResult{Page: 5, PerPage: 8, TotalPages: 5})
	require.NotNil(t, p.PreviousPage)
	assert.Equal(t, 4, *p.PreviousPage)
	assert.Nil(t, p.NextPage)

	p = BuildPagination(&ListResult{Page: 3, PerPage: 8, TotalPages: 5})
	assert.Equal(t, 2, *p.PreviousPage)
	assert.Equal(t, 4, *p.NextPage)
}

func TestList_ClampsEffectivePage(t *testing.T) {
	store := newFakeMovieStore(42) // perPage=8 时共 6 页，末页 2 条
	svc := NewMovieService(store)

	result, err := svc.List(ListQuery{Page: 100, PerPage: 8})
	require.NoError(t, err)

	// 返回末页内容，但对外报告的页码保持请求原值
	assert.Equal(t, 100, result.Page)
	assert.Equal(t, 6, result.TotalPages)
	assert.Equal(t, int64(42), result.TotalCount)
	require.Len(t, result.Movies, 2)
	assert.Equal(t, 41, result.Movies[0].ID)
	assert.Equal(t, 42, result.Movies[1].ID)
}

func TestList_NoMatches(t *testing.T) {
	store := newFakeMovieStore(0)
	svc := NewMovieService(store)

	result, err := svc.List(ListQuery{Page: 1, PerPage: 8})
	require.NoError(t, err)
	assert.Empty(t, result.Movies)
	assert.Equal(t, 0, result.TotalPages)
	assert.Zero(t, store.pageCalls) // 无匹配时不应发起取页查询
}

func TestList_EmptyTitleMeansNoFilter(t *testing.T) {
	store := newFakeMovieStore(10)
	svc := NewMovieService(store)

	result, err := svc.List(ListQuery{Page: 1, PerPage: 8, Title: ""})
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.TotalCount)
	assert.Equal(t, "", store.lastTitle)
}

func TestList_TitleFilterIsCaseInsensitive(t *testing.T) {
	store := &fakeMovieStore{nextID: 1}
	store.movies = []model.Movie{
		{ID: 1, Title: "The Dark Knight"},
		{ID: 2, Title: "Batman Begins"},
		{ID: 3, Title: "Inception"},
	}
	svc := NewMovieService(store)

	result, err := svc.List(ListQuery{Page: 1, PerPage: 8, Title: "bat"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Movies, 1)
	assert.Equal(t, "Batman Begins", result.Movies[0].Title)
}
