package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/user/mflix/internal/repository"
	"github.com/user/mflix/internal/service"
)

// NewMovieSchema 构建电影查询的 GraphQL Schema
// 只暴露读操作（movies / movieById），并直接调用数据层，
// 不经由 HTTP 自调用
func NewMovieSchema(movies *service.MovieService) (graphql.Schema, error) {
	imdbType := graphql.NewObject(graphql.ObjectConfig{
		Name: "IMDBRating",
		Fields: graphql.Fields{
			"rating": &graphql.Field{Type: graphql.Float},
			"votes":  &graphql.Field{Type: graphql.Int},
			"id":     &graphql.Field{Type: graphql.Int},
		},
	})

	awardsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Awards",
		Fields: graphql.Fields{
			"wins":        &graphql.Field{Type: graphql.Int},
			"nominations": &graphql.Field{Type: graphql.Int},
			"text":        &graphql.Field{Type: graphql.String},
		},
	})

	tomatoesScoreType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TomatoesScore",
		Fields: graphql.Fields{
			"rating":     &graphql.Field{Type: graphql.Float},
			"numReviews": &graphql.Field{Type: graphql.Int},
			"meter":      &graphql.Field{Type: graphql.Int},
		},
	})

	tomatoesType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TomatoesRating",
		Fields: graphql.Fields{
			"viewer":      &graphql.Field{Type: tomatoesScoreType},
			"critic":      &graphql.Field{Type: tomatoesScoreType},
			"fresh":       &graphql.Field{Type: graphql.Int},
			"rotten":      &graphql.Field{Type: graphql.Int},
			"lastUpdated": &graphql.Field{Type: graphql.DateTime},
		},
	})

	movieType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Movie",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"title":       &graphql.Field{Type: graphql.String},
			"plot":        &graphql.Field{Type: graphql.String},
			"fullplot":    &graphql.Field{Type: graphql.String},
			"year":        &graphql.Field{Type: graphql.Int},
			"runtime":     &graphql.Field{Type: graphql.Int},
			"released":    &graphql.Field{Type: graphql.DateTime},
			"rated":       &graphql.Field{Type: graphql.String},
			"type":        &graphql.Field{Type: graphql.String},
			"poster":      &graphql.Field{Type: graphql.String},
			"genres":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"cast":        &graphql.Field{Type: graphql.NewList(graphql.String)},
			"languages":   &graphql.Field{Type: graphql.NewList(graphql.String)},
			"directors":   &graphql.Field{Type: graphql.NewList(graphql.String)},
			"countries":   &graphql.Field{Type: graphql.NewList(graphql.String)},
			"imdb":        &graphql.Field{Type: imdbType},
			"awards":      &graphql.Field{Type: awardsType},
			"tomatoes":    &graphql.Field{Type: tomatoesType},
			"lastupdated": &graphql.Field{Type: graphql.DateTime},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"movies": &graphql.Field{
				Type: graphql.NewList(movieType),
				Args: graphql.FieldConfigArgument{
					"page":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"perPage": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 8},
					"title":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					perPage, _ := p.Args["perPage"].(int)
					title, _ := p.Args["title"].(string)

					q := service.NormalizeListQuery(strconv.Itoa(page), strconv.Itoa(perPage), title)
					result, err := movies.List(q)
					if err != nil {
						return nil, err
					}
					return result.Movies, nil
				},
			},
			"movieById": &graphql.Field{
				Type: movieType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := p.Args["id"].(int)
					if !ok {
						return nil, nil
					}

					movie, err := movies.Get(id)
					if errors.Is(err, repository.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return movie, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// graphqlRequest GraphQL 请求体
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// GraphQL 执行 GraphQL 查询
// 支持 POST JSON 请求体，也支持 GET ?query= 形式
func (h *Handler) GraphQL(c *gin.Context) {
	var req graphqlRequest

	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体必须为 JSON"})
		return
	}

	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少查询语句"})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.Schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})

	c.JSON(http.StatusOK, result)
}
