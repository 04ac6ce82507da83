package admin

import (
	"time"

	"github.com/kyomei/core/internal/models"
	"gorm.io/gorm"
)

// Stats is the operator console dashboard summary.
type Stats struct {
	Users        int64 `json:"users"`
	Topics       int64 `json:"topics"`
	ActiveTopics int64 `json:"activeTopics"`
	ClosedTopics int64 `json:"closedTopics"`
	Answers      int64 `json:"answers"`
	Replies      int64 `json:"replies"`
	Likes        int64 `json:"likes"`
	Tags         int64 `json:"tags"`

	RecentTopics []models.TopicModel `json:"recentTopics"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// GetStats counts the main entities. Topic activity resolves against the
// deadline, the same way the public listing does.
func (s *Service) GetStats() (*Stats, error) {
	now := time.Now()
	var stats Stats

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.UserModel{}, &stats.Users},
		{&models.TopicModel{}, &stats.Topics},
		{&models.AnswerModel{}, &stats.Answers},
		{&models.ReplyModel{}, &stats.Replies},
		{&models.LikeModel{}, &stats.Likes},
		{&models.TagModel{}, &stats.Tags},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(&models.TopicModel{}).
		Where("status = ? AND end_time > ?", models.TopicActive, now).
		Count(&stats.ActiveTopics).Error; err != nil {
		return nil, err
	}
	stats.ClosedTopics = stats.Topics - stats.ActiveTopics

	if err := s.db.Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentTopics).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
