package answer

import (
	"errors"
	"time"

	"github.com/kyomei/core/internal/models"
	"github.com/kyomei/core/internal/pkg/anonname"
	"github.com/kyomei/core/internal/pkg/pagination"
	"github.com/kyomei/core/internal/pkg/response"
	"gorm.io/gorm"
)

var (
	errTopicNotFound  = errors.New("topic not found")
	errTopicClosed    = errors.New("topic is closed")
	errTopicExpired   = errors.New("topic deadline has passed")
	errQuotaExceeded  = errors.New("answer quota exceeded")
	errAnswerNotFound = errors.New("answer not found")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Submit posts an answer to a topic under a freshly generated pseudonym.
// A manually closed topic rejects before the deadline check, so the two
// cases surface as distinct errors.
func (s *Service) Submit(userID, topicID, content string) (*models.AnswerModel, error) {
	var out models.AnswerModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var topic models.TopicModel
		if err := tx.First(&topic, "id = ?", topicID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTopicNotFound
			}
			return err
		}
		if topic.Status == models.TopicClosed {
			return errTopicClosed
		}
		if !topic.OpenForAnswers(time.Now()) {
			return errTopicExpired
		}

		var count int64
		if err := tx.Model(&models.AnswerModel{}).
			Where("topic_id = ? AND author_id = ?", topicID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= models.AnswerQuotaPerTopic {
			return errQuotaExceeded
		}

		out = models.AnswerModel{
			Content:    content,
			AuthorName: anonname.Generate(),
			TopicID:    topicID,
			AuthorID:   userID,
		}
		return tx.Create(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

var sortColumns = map[string]string{
	"likeCount": "like_count",
	"createdAt": "created_at",
}

// ListByTopic returns a topic's answers, sorted by heart count or recency.
func (s *Service) ListByTopic(topicID string, q ListQuery, page pagination.Query) ([]models.AnswerModel, response.Pagination, error) {
	var exists int64
	if err := s.db.Model(&models.TopicModel{}).Where("id = ?", topicID).Count(&exists).Error; err != nil {
		return nil, response.Pagination{}, err
	}
	if exists == 0 {
		return nil, response.Pagination{}, errTopicNotFound
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "like_count"
	}
	direction := "DESC"
	if q.Order == "asc" {
		direction = "ASC"
	}

	var answers []models.AnswerModel
	db := s.db.Model(&models.AnswerModel{}).
		Where("topic_id = ?", topicID).
		Order(column + " " + direction).
		Order("created_at DESC")
	p, err := pagination.Paginate(db, page, &answers)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return answers, p, nil
}

// Mine returns the caller's own answers across all topics, newest first.
func (s *Service) Mine(userID string, page pagination.Query) ([]models.AnswerModel, response.Pagination, error) {
	var answers []models.AnswerModel
	db := s.db.Model(&models.AnswerModel{}).
		Where("author_id = ?", userID).
		Preload("Topic").
		Order("created_at DESC")
	p, err := pagination.Paginate(db, page, &answers)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return answers, p, nil
}

// Reply adds a reply to an answer, again under a fresh pseudonym.
func (s *Service) Reply(userID, answerID, content string) (*models.ReplyModel, error) {
	var exists int64
	if err := s.db.Model(&models.AnswerModel{}).Where("id = ?", answerID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errAnswerNotFound
	}

	reply := models.ReplyModel{
		Content:    content,
		AuthorName: anonname.Generate(),
		AnswerID:   answerID,
		AuthorID:   userID,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// ListReplies returns an answer's replies in posting order.
func (s *Service) ListReplies(answerID string) ([]models.ReplyModel, error) {
	var exists int64
	if err := s.db.Model(&models.AnswerModel{}).Where("id = ?", answerID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errAnswerNotFound
	}

	var replies []models.ReplyModel
	if err := s.db.Where("answer_id = ?", answerID).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}
