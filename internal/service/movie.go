package service

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/user/mflix/internal/model"
	"github.com/user/mflix/internal/utils"
	"golang.org/x/sync/singleflight"
)

// MovieStore 电影存储接口
type MovieStore interface {
	CountByTitle(title string) (int64, error)
	FindPage(title string, offset, limit int) ([]model.Movie, error)
	FindByID(id int) (*model.Movie, error)
	Create(movie *model.Movie) error
	Replace(id int, movie *model.Movie) error
	Delete(id int) error
}

// MovieService 电影读写服务
// 读路径带缓存：详情走 LRU，列表总数走短 TTL 缓存并用 singleflight
// 合并并发的相同统计查询；任何写操作后统一失效
type MovieService struct {
	store  MovieStore
	detail *utils.TTLCache[int, *model.Movie]
	counts *gocache.Cache
	sf     singleflight.Group
}

// NewMovieService 创建电影服务
func NewMovieService(store MovieStore) *MovieService {
	return &MovieService{
		store:  store,
		detail: utils.NewTTLCache[int, *model.Movie](1000, 5*time.Minute),
		counts: gocache.New(time.Minute, 5*time.Minute),
	}
}

// countByTitle 带缓存的总数统计
func (s *MovieService) countByTitle(title string) (int64, error) {
	key := "count:" + title
	if v, ok := s.counts.Get(key); ok {
		return v.(int64), nil
	}

	// 合并并发的相同查询
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		count, err := s.store.CountByTitle(title)
		if err != nil {
			return nil, err
		}
		s.counts.Set(key, count, gocache.DefaultExpiration)
		return count, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(int64), nil
}

// Get 按 ID 查询电影详情
// 始终返回缓存条目的副本，调用方修改返回值不会影响后续读取
func (s *MovieService) Get(id int) (*model.Movie, error) {
	if movie, ok := s.detail.Get(id); ok {
		out := *movie
		return &out, nil
	}

	movie, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.detail.Set(id, movie)
	out := *movie
	return &out, nil
}

// Create 创建电影
func (s *MovieService) Create(movie *model.Movie) error {
	if err := s.store.Create(movie); err != nil {
		return err
	}
	s.invalidate(0)
	return nil
}

// Replace 按 ID 整体替换电影
func (s *MovieService) Replace(id int, movie *model.Movie) error {
	if err := s.store.Replace(id, movie); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// Delete 按 ID 删除电影
func (s *MovieService) Delete(id int) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// invalidate 写操作后的缓存失效
// 标题可能变化会影响任意过滤条件下的总数，因此总数缓存整体清空
func (s *MovieService) invalidate(id int) {
	if id > 0 {
		s.detail.Delete(id)
	}
	s.counts.Flush()
}
