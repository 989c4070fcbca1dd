package model

import (
	"time"

	"github.com/lib/pq"
)

// Movie 电影模型（sample_mflix 文档结构）
// title 和 plot 必填，其余字段均可为空
type Movie struct {
	ID               int            `json:"id" db:"id" gorm:"primaryKey"`
	Title            string         `json:"title" db:"title" gorm:"not null;index"`
	Plot             string         `json:"plot" db:"plot" gorm:"not null"`
	Fullplot         string         `json:"fullplot,omitempty" db:"fullplot"`
	Year             int            `json:"year,omitempty" db:"year"`
	Runtime          int            `json:"runtime,omitempty" db:"runtime"` // 片长（分钟）
	Released         *time.Time     `json:"released,omitempty" db:"released"`
	Rated            string         `json:"rated,omitempty" db:"rated"`
	Type             string         `json:"type,omitempty" db:"type"`
	Poster           string         `json:"poster,omitempty" db:"poster"`
	Genres           pq.StringArray `json:"genres,omitempty" db:"genres" gorm:"type:text[]"`
	Cast             pq.StringArray `json:"cast,omitempty" db:"cast_members" gorm:"column:cast_members;type:text[]"`
	Languages        pq.StringArray `json:"languages,omitempty" db:"languages" gorm:"type:text[]"`
	Directors        pq.StringArray `json:"directors,omitempty" db:"directors" gorm:"type:text[]"`
	Countries        pq.StringArray `json:"countries,omitempty" db:"countries" gorm:"type:text[]"`
	Imdb             Imdb           `json:"imdb" db:"imdb" gorm:"type:jsonb;serializer:json"`
	Awards           Awards         `json:"awards" db:"awards" gorm:"type:jsonb;serializer:json"`
	Tomatoes         Tomatoes       `json:"tomatoes" db:"tomatoes" gorm:"type:jsonb;serializer:json"`
	NumMflixComments int            `json:"num_mflix_comments,omitempty" db:"num_mflix_comments"`
	Lastupdated      time.Time      `json:"lastupdated" db:"lastupdated"` // 每次创建/更新时由服务端写入
}

// Imdb IMDb 评分信息
type Imdb struct {
	Rating float64 `json:"rating"`
	Votes  int     `json:"votes"`
	ID     int     `json:"id"`
}

// Awards 获奖信息
type Awards struct {
	Wins        int    `json:"wins"`
	Nominations int    `json:"nominations"`
	Text        string `json:"text"`
}

// TomatoesScore 烂番茄单侧评分（观众/影评人结构相同）
type TomatoesScore struct {
	Rating     float64 `json:"rating"`
	NumReviews int     `json:"numReviews"`
	Meter      int     `json:"meter"`
}

// Tomatoes 烂番茄评分信息
type Tomatoes struct {
	Viewer      TomatoesScore `json:"viewer"`
	Critic      TomatoesScore `json:"critic"`
	Fresh       int           `json:"fresh"`
	Rotten      int           `json:"rotten"`
	LastUpdated time.Time     `json:"lastUpdated"`
}
