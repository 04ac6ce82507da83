package ranking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kyomei/core/internal/models"
	"github.com/kyomei/core/internal/pkg/redis"
	"gorm.io/gorm"
)

const (
	cacheKey = "kyomei:ranking:weekly"
	cacheTTL = 60 * time.Second

	window  = 7 * 24 * time.Hour
	topSize = 5
	// this many leading tags are marked as trending
	trendingTags = 2
)

// UserRank is one row of the weekly user leaderboard: hearts on answers
// the user posted during the window.
type UserRank struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	AnswerCount int64  `json:"answerCount"`
	LikeCount   int64  `json:"likeCount"`
}

// TagRank is one row of the tag leaderboard.
type TagRank struct {
	Rank       int    `json:"rank"`
	Name       string `json:"name"`
	UsageCount int    `json:"usageCount"`
	Trend      string `json:"trend"`
}

// Result is the full rankings payload.
type Result struct {
	Users       []UserRank `json:"users"`
	Tags        []TagRank  `json:"tags"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// Service computes rankings, memoized in Redis for a short interval.
// The cache client may be nil, in which case every call recomputes.
type Service struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewService(db *gorm.DB, cache *redis.Client) *Service {
	return &Service{db: db, cache: cache}
}

// Get returns the current rankings, serving from cache when fresh.
func (s *Service) Get(ctx context.Context) (*Result, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != "" {
			var cached Result
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	result, err := s.compute()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, raw, cacheTTL)
		}
	}
	return result, nil
}

func (s *Service) compute() (*Result, error) {
	since := time.Now().Add(-window)

	// the board windows on when answers were posted, not on when hearts
	// arrived; like_count is transactionally consistent with the ledger
	type userRow struct {
		UserID      string
		Name        string
		Username    string
		AnswerCount int64
		LikeCount   int64
	}
	var userRows []userRow
	if err := s.db.Model(&models.AnswerModel{}).
		Select("answers.author_id AS user_id, users.name AS name, users.username AS username, COUNT(*) AS answer_count, COALESCE(SUM(answers.like_count), 0) AS like_count").
		Joins("JOIN users ON users.id = answers.author_id").
		Where("answers.created_at >= ?", since).
		Group("answers.author_id, users.name, users.username").
		Order("like_count DESC").
		Limit(topSize).
		Scan(&userRows).Error; err != nil {
		return nil, err
	}

	users := make([]UserRank, 0, len(userRows))
	for i, r := range userRows {
		name := r.Name
		if name == "" {
			name = r.Username
		}
		users = append(users, UserRank{
			Rank:        i + 1,
			UserID:      r.UserID,
			Name:        name,
			AnswerCount: r.AnswerCount,
			LikeCount:   r.LikeCount,
		})
	}

	var tagRows []models.TagModel
	if err := s.db.Where("usage_count > 0").
		Order("usage_count DESC").
		Order("name ASC").
		Limit(topSize).
		Find(&tagRows).Error; err != nil {
		return nil, err
	}

	tags := make([]TagRank, 0, len(tagRows))
	for i, t := range tagRows {
		trend := "stable"
		if i < trendingTags {
			trend = "up"
		}
		tags = append(tags, TagRank{
			Rank:       i + 1,
			Name:       t.Name,
			UsageCount: t.UsageCount,
			Trend:      trend,
		})
	}

	return &Result{Users: users, Tags: tags, GeneratedAt: time.Now()}, nil
}
