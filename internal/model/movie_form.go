package model

import (
	"time"
)

// releasedLayout 表单中上映日期的格式（HTML date 输入）
const releasedLayout = "2006-01-02"

// MovieForm 电影表单的扁平字段集合
// 结构体标签即嵌套路径与表单字段名的双向映射表（如 imdb.rating ↔ imdbRating），
// 映射关系在编译期固定，不再做运行时动态拼装
type MovieForm struct {
	Title    string `form:"title" json:"title" binding:"required"`
	Plot     string `form:"plot" json:"plot" binding:"required"`
	Fullplot string `form:"fullplot" json:"fullplot"`
	Runtime  int    `form:"runtime" json:"runtime"`
	Year     int    `form:"year" json:"year"`
	Released string `form:"released" json:"released"`
	Rated    string `form:"rated" json:"rated"`
	Type     string `form:"type" json:"type"`
	Poster   string `form:"poster" json:"poster"`

	// 列表属性：表单只提交单个值时也会绑定为单元素切片
	Genres    []string `form:"genres" json:"genres"`
	Cast      []string `form:"casts" json:"casts"`
	Languages []string `form:"languages" json:"languages"`
	Directors []string `form:"directors" json:"directors"`
	Countries []string `form:"countries" json:"countries"`

	ImdbRating float64 `form:"imdbRating" json:"imdbRating"`
	ImdbVotes  int     `form:"imdbVotes" json:"imdbVotes"`
	ImdbID     int     `form:"imdbId" json:"imdbId"`

	AwardsWins        int    `form:"awardsWins" json:"awardsWins"`
	AwardsNominations int    `form:"awardsNominations" json:"awardsNominations"`
	AwardsText        string `form:"awardsText" json:"awardsText"`

	ViewerRating     float64 `form:"viewerRating" json:"viewerRating"`
	ViewerNumReviews int     `form:"viewerNumReviews" json:"viewerNumReviews"`
	ViewerMeter      int     `form:"viewerMeter" json:"viewerMeter"`
	CriticRating     float64 `form:"criticRating" json:"criticRating"`
	CriticNumReviews int     `form:"criticNumReviews" json:"criticNumReviews"`
	CriticMeter      int     `form:"criticMeter" json:"criticMeter"`
	TomatoesFresh    int     `form:"tomatoesFresh" json:"tomatoesFresh"`
	TomatoesRotten   int     `form:"tomatoesRotten" json:"tomatoesRotten"`
}

// Movie 将扁平表单还原为嵌套的电影文档
// lastupdated 与 tomatoes.lastUpdated 统一写入 now
func (f *MovieForm) Movie(now time.Time) *Movie {
	m := &Movie{
		Title:     f.Title,
		Plot:      f.Plot,
		Fullplot:  f.Fullplot,
		Runtime:   f.Runtime,
		Year:      f.Year,
		Rated:     f.Rated,
		Type:      f.Type,
		Poster:    f.Poster,
		Genres:    coerceList(f.Genres),
		Cast:      coerceList(f.Cast),
		Languages: coerceList(f.Languages),
		Directors: coerceList(f.Directors),
		Countries: coerceList(f.Countries),
		Imdb: Imdb{
			Rating: f.ImdbRating,
			Votes:  f.ImdbVotes,
			ID:     f.ImdbID,
		},
		Awards: Awards{
			Wins:        f.AwardsWins,
			Nominations: f.AwardsNominations,
			Text:        f.AwardsText,
		},
		Tomatoes: Tomatoes{
			Viewer: TomatoesScore{
				Rating:     f.ViewerRating,
				NumReviews: f.ViewerNumReviews,
				Meter:      f.ViewerMeter,
			},
			Critic: TomatoesScore{
				Rating:     f.CriticRating,
				NumReviews: f.CriticNumReviews,
				Meter:      f.CriticMeter,
			},
			Fresh:       f.TomatoesFresh,
			Rotten:      f.TomatoesRotten,
			LastUpdated: now,
		},
		Lastupdated: now,
	}

	if f.Released != "" {
		if t, err := time.Parse(releasedLayout, f.Released); err == nil {
			m.Released = &t
		}
	}

	return m
}

// FlattenMovie 将嵌套的电影文档展开为表单扁平字段（用于编辑表单回填）
func FlattenMovie(m *Movie) *MovieForm {
	f := &MovieForm{
		Title:     m.Title,
		Plot:      m.Plot,
		Fullplot:  m.Fullplot,
		Runtime:   m.Runtime,
		Year:      m.Year,
		Rated:     m.Rated,
		Type:      m.Type,
		Poster:    m.Poster,
		Genres:    m.Genres,
		Cast:      m.Cast,
		Languages: m.Languages,
		Directors: m.Directors,
		Countries: m.Countries,

		ImdbRating: m.Imdb.Rating,
		ImdbVotes:  m.Imdb.Votes,
		ImdbID:     m.Imdb.ID,

		AwardsWins:        m.Awards.Wins,
		AwardsNominations: m.Awards.Nominations,
		AwardsText:        m.Awards.Text,

		ViewerRating:     m.Tomatoes.Viewer.Rating,
		ViewerNumReviews: m.Tomatoes.Viewer.NumReviews,
		ViewerMeter:      m.Tomatoes.Viewer.Meter,
		CriticRating:     m.Tomatoes.Critic.Rating,
		CriticNumReviews: m.Tomatoes.Critic.NumReviews,
		CriticMeter:      m.Tomatoes.Critic.Meter,
		TomatoesFresh:    m.Tomatoes.Fresh,
		TomatoesRotten:   m.Tomatoes.Rotten,
	}

	if m.Released != nil {
		f.Released = m.Released.Format(releasedLayout)
	}

	return f
}

// coerceList 保证列表属性始终为有序切片，并剔除空白项
func coerceList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
