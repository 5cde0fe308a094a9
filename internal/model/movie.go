package model

// Movie 电影（来自 TMDB，按请求获取，不做本地持久化）
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	VoteCount   int     `json:"vote_count"`
	Overview    string  `json:"overview"`
	Popularity  float64 `json:"popularity"`
}

// PosterURL 返回海报完整地址，无海报时返回空字符串
func (m Movie) PosterURL(size string) string {
	if m.PosterPath == nil || *m.PosterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + *m.PosterPath
}

// Year 上映年份
func (m Movie) Year() string {
	if len(m.ReleaseDate) >= 4 {
		return m.ReleaseDate[:4]
	}
	return ""
}

// MoviePage 分页电影结果
type MoviePage struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

// Recommendation AI 推荐条目
type Recommendation struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}
