package topic

import (
	"errors"
	"time"

	"github.com/kyomei/core/internal/models"
	"github.com/kyomei/core/internal/pkg/pagination"
	"github.com/kyomei/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errTopicNotFound = errors.New("topic not found")
	errNotAuthor     = errors.New("not the topic author")
	errTopicClosed   = errors.New("topic is closed")
	errBadStatus     = errors.New("invalid status transition")
	errBadTimeRange  = errors.New("end time must be after start time")
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// List returns topics matching the filters. Status filtering resolves
// against the deadline, so an ACTIVE row past its end time counts as
// CLOSED.
func (s *Service) List(q ListQuery, page pagination.Query) ([]View, response.Pagination, error) {
	now := time.Now()
	db := s.db.Model(&models.TopicModel{})

	switch q.Status {
	case string(models.TopicActive):
		db = db.Where("status = ? AND end_time > ?", models.TopicActive, now)
	case string(models.TopicClosed):
		db = db.Where("status = ? OR end_time <= ?", models.TopicClosed, now)
	}
	if q.Subject != "" {
		db = db.Where("subject = ?", q.Subject)
	}
	if q.Tag != "" {
		sub := s.db.Model(&models.TopicTagModel{}).
			Select("topic_tags.topic_id").
			Joins("JOIN tags ON tags.id = topic_tags.tag_id").
			Where("tags.name = ?", q.Tag)
		db = db.Where("id IN (?)", sub)
	}

	var topics []models.TopicModel
	p, err := pagination.Paginate(db.Order("created_at DESC"), page, &topics)
	if err != nil {
		return nil, response.Pagination{}, err
	}

	views, err := s.buildViews(topics, now)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return views, p, nil
}

// Get returns a single topic with its tags and bumps the view counter.
func (s *Service) Get(id string) (*View, error) {
	var topic models.TopicModel
	if err := s.db.Preload("Author").First(&topic, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errTopicNotFound
		}
		return nil, err
	}

	// the view counter is fire-and-forget; a failed bump never fails the read
	if err := s.db.Model(&models.TopicModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		s.log.Warn("view count bump failed", zap.String("topic", id), zap.Error(err))
	} else {
		topic.ViewCount++
	}

	views, err := s.buildViews([]models.TopicModel{topic}, time.Now())
	if err != nil {
		return nil, err
	}

	var answers []models.AnswerModel
	if err := s.db.Where("topic_id = ?", id).
		Order("like_count DESC").
		Order("created_at DESC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	views[0].Answers = answers
	return &views[0], nil
}

// Create posts a new topic, assigns its sequential display number and
// upserts its tags, all in one transaction.
func (s *Service) Create(authorID string, req CreateRequest) (*View, error) {
	start := time.Now()
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if !req.EndTime.After(start) {
		return nil, errBadTimeRange
	}

	var topic models.TopicModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var maxNumber int
		if err := tx.Model(&models.TopicModel{}).
			Select("COALESCE(MAX(number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		topic = models.TopicModel{
			Number:      maxNumber + 1,
			Title:       req.Title,
			Description: req.Description,
			Subject:     req.Subject,
			Status:      models.TopicActive,
			StartTime:   start,
			EndTime:     req.EndTime,
			AuthorID:    authorID,
		}
		if err := tx.Create(&topic).Error; err != nil {
			return err
		}
		return attachTags(tx, topic.ID, req.Tags)
	})
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews([]models.TopicModel{topic}, time.Now())
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Update edits a topic. Only the author may edit; a closed topic is
// terminal and rejects every edit, and the only allowed status change is
// closing.
func (s *Service) Update(userID, id string, req UpdateRequest) (*View, error) {
	var topic models.TopicModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&topic, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTopicNotFound
			}
			return err
		}
		if topic.AuthorID != userID {
			return errNotAuthor
		}
		if topic.Status == models.TopicClosed {
			return errTopicClosed
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
			topic.Title = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
			topic.Description = *req.Description
		}
		if req.Subject != nil {
			updates["subject"] = *req.Subject
			topic.Subject = *req.Subject
		}
		if req.EndTime != nil {
			if !req.EndTime.After(topic.StartTime) {
				return errBadTimeRange
			}
			updates["end_time"] = *req.EndTime
			topic.EndTime = *req.EndTime
		}
		if req.Status != nil {
			if *req.Status != string(models.TopicClosed) {
				return errBadStatus
			}
			updates["status"] = models.TopicClosed
			topic.Status = models.TopicClosed
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.TopicModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := detachTags(tx, id); err != nil {
				return err
			}
			if err := attachTags(tx, id, *req.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews([]models.TopicModel{topic}, time.Now())
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete removes a topic and everything hanging off it. Author only.
func (s *Service) Delete(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var topic models.TopicModel
		if err := tx.First(&topic, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTopicNotFound
			}
			return err
		}
		if topic.AuthorID != userID {
			return errNotAuthor
		}

		if err := tx.Where("topic_id = ?", id).Delete(&models.LikeModel{}).Error; err != nil {
			return err
		}
		answerIDs := tx.Model(&models.AnswerModel{}).Select("id").Where("topic_id = ?", id)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&models.ReplyModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&models.AnswerModel{}).Error; err != nil {
			return err
		}
		if err := detachTags(tx, id); err != nil {
			return err
		}
		return tx.Delete(&topic).Error
	})
}

// buildViews attaches tags and answer counts to topics and resolves the
// status field against the deadline.
func (s *Service) buildViews(topics []models.TopicModel, now time.Time) ([]View, error) {
	views := make([]View, 0, len(topics))
	if len(topics) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}

	var links []models.TopicTagModel
	if err := s.db.Preload("Tag").Where("topic_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, err
	}
	tagsByTopic := map[string][]models.TagModel{}
	for _, l := range links {
		if l.Tag != nil {
			tagsByTopic[l.TopicID] = append(tagsByTopic[l.TopicID], *l.Tag)
		}
	}

	type answerTally struct {
		TopicID string
		Count   int64
		Hearts  int64
	}
	var tallies []answerTally
	if err := s.db.Model(&models.AnswerModel{}).
		Select("topic_id, COUNT(*) AS count, COALESCE(SUM(like_count), 0) AS hearts").
		Where("topic_id IN ?", ids).
		Group("topic_id").
		Scan(&tallies).Error; err != nil {
		return nil, err
	}
	tallyByTopic := map[string]answerTally{}
	for _, c := range tallies {
		tallyByTopic[c.TopicID] = c
	}

	for _, t := range topics {
		if t.Status == models.TopicActive && now.After(t.EndTime) {
			t.Status = models.TopicClosed
		}
		tags := tagsByTopic[t.ID]
		if tags == nil {
			tags = []models.TagModel{}
		}
		tally := tallyByTopic[t.ID]
		views = append(views, View{
			TopicModel:  t,
			Tags:        tags,
			AnswerCount: tally.Count,
			LikeCount:   tally.Hearts,
		})
	}
	return views, nil
}

// attachTags upserts each tag by name, bumps its usage counter and links
// it to the topic.
func attachTags(tx *gorm.DB, topicID string, names []string) error {
	for _, name := range names {
		var tag models.TagModel
		if err := tx.Where("name = ?", name).
			FirstOrCreate(&tag, models.TagModel{Name: name}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TagModel{}).
			Where("id = ?", tag.ID).
			UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
			return err
		}
		link := models.TopicTagModel{TopicID: topicID, TagID: tag.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// detachTags unlinks all of a topic's tags, giving back their usage counts.
func detachTags(tx *gorm.DB, topicID string) error {
	var links []models.TopicTagModel
	if err := tx.Where("topic_id = ?", topicID).Find(&links).Error; err != nil {
		return err
	}
	for _, l := range links {
		if err := tx.Model(&models.TagModel{}).
			Where("id = ? AND usage_count > 0", l.TagID).
			UpdateColumn("usage_count", gorm.Expr("usage_count - 1")).Error; err != nil {
			return err
		}
	}
	return tx.Where("topic_id = ?", topicID).Delete(&models.TopicTagModel{}).Error
}
