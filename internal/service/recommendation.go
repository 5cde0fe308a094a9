package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/cinewish/internal/model"
	"github.com/user/cinewish/internal/utils"
)

//go:generate mockgen -source=recommendation.go -destination=../mocks/recommendation_mock.go -package=mocks

// Recommender 首页 AI 推荐
type Recommender interface {
	Recommend(ctx context.Context, profile *model.UserProfile, candidates []model.Movie) ([]model.Recommendation, error)
}

// GeminiRecommender 从当前热门电影中挑选推荐，并给出理由
type GeminiRecommender struct {
	client *utils.GeminiClient
	limit  int
}

func NewGeminiRecommender(client *utils.GeminiClient, limit int) *GeminiRecommender {
	if limit <= 0 {
		limit = 3
	}
	return &GeminiRecommender{client: client, limit: limit}
}

// Recommend 未配置 Gemini 或没有候选时返回空结果
func (r *GeminiRecommender) Recommend(ctx context.Context, profile *model.UserProfile, candidates []model.Movie) ([]model.Recommendation, error) {
	if !r.client.Enabled() || len(candidates) == 0 {
		return nil, nil
	}

	text, err := r.client.GenerateJSON(ctx, r.buildPrompt(profile, candidates))
	if err != nil {
		return nil, err
	}

	var recs []model.Recommendation
	if err := json.Unmarshal([]byte(cleanJSON(text)), &recs); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}

	known := make(map[string]struct{}, len(candidates))
	for _, m := range candidates {
		known[strings.ToLower(m.Title)] = struct{}{}
	}

	result := make([]model.Recommendation, 0, r.limit)
	for _, rec := range recs {
		rec.Title = strings.TrimSpace(rec.Title)
		if rec.Title == "" {
			continue
		}
		// 只保留候选列表中的电影，避免模型编造片名
		if _, ok := known[strings.ToLower(rec.Title)]; !ok {
			continue
		}
		result = append(result, rec)
		if len(result) == r.limit {
			break
		}
	}
	return result, nil
}

func (r *GeminiRecommender) buildPrompt(profile *model.UserProfile, candidates []model.Movie) string {
	var wished, others []string
	for _, m := range candidates {
		line := fmt.Sprintf("- %s (%s, rating %.1f)", m.Title, m.Year(), m.VoteAverage)
		if profile != nil && profile.HasMovie(m.ID) {
			wished = append(wished, line)
		} else {
			others = append(others, line)
		}
	}

	var b strings.Builder
	b.WriteString("You are a movie recommendation assistant.\n")
	if profile != nil && profile.Name != "" {
		fmt.Fprintf(&b, "The viewer is %s and has %d movies on their wishlist.\n", profile.Name, len(profile.Wishlist))
	}
	if len(wished) > 0 {
		b.WriteString("Movies already on the viewer's wishlist:\n")
		b.WriteString(strings.Join(wished, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("Currently popular movies:\n")
	b.WriteString(strings.Join(others, "\n"))
	fmt.Fprintf(&b, "\n\nPick up to %d movies from the popular list that the viewer should watch next. ", r.limit)
	b.WriteString(`Respond with a JSON array of objects with keys "title" and "reason". `)
	b.WriteString("Use titles exactly as listed. Keep each reason under 25 words.")
	return b.String()
}

// cleanJSON 去掉模型可能包裹的 markdown 代码块
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
