package repository

import (
	"errors"

	"github.com/user/mflix/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// byTitle 构造标题子串过滤条件（大小写不敏感）；title 为空表示不过滤
func (r *MovieRepository) byTitle(title string) *gorm.DB {
	q := r.db.Model(&model.Movie{})
	if title != "" {
		q = q.Where("title ILIKE ?", "%"+title+"%")
	}
	return q
}

// CountByTitle 统计匹配标题过滤条件的电影总数
func (r *MovieRepository) CountByTitle(title string) (int64, error) {
	var count int64
	if err := r.byTitle(title).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPage 按 ID 升序取一页电影
func (r *MovieRepository) FindPage(title string, offset, limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.byTitle(title).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// Create 创建电影
func (r *MovieRepository) Create(movie *model.Movie) error {
	return r.db.Create(movie).Error
}

// Replace 按 ID 整体替换电影的全部字段
// 在事务内先对目标行加锁，避免与并发删除竞争后 Save 退化为插入
func (r *MovieRepository) Replace(id int, movie *model.Movie) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Movie
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&existing, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		movie.ID = id
		// Save 在主键已设置时会更新所有列，实现整体替换语义
		return tx.Save(movie).Error
	})
}

// Delete 按 ID 删除电影
func (r *MovieRepository) Delete(id int) error {
	res := r.db.Delete(&model.Movie{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
