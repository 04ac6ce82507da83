package like

import (
	"errors"

	"github.com/kyomei/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errAnswerNotFound = errors.New("answer not found")
	errAlreadyLiked   = errors.New("already liked")
	errNotLiked       = errors.New("like not found")
	errQuotaExceeded  = errors.New("like quota exceeded")
)

// Status is the authoritative endorsement state returned to the client,
// which reconciles its optimistic UI against it.
type Status struct {
	IsLiked        bool `json:"isLiked"`
	RemainingLikes int  `json:"remainingLikes"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Add grants a heart to an answer. The ledger insert, the quota check and
// the cached counter update run in one transaction. On MySQL the quota
// count locks the user's existing ledger rows for the topic (SELECT ...
// FOR UPDATE), so two concurrent adds against different answers cannot
// both slip under the cap; the composite unique index on
// (user_id, answer_id) backstops the per-answer race.
func (s *Service) Add(userID, answerID string) (*Status, error) {
	var st Status
	err := s.db.Transaction(func(tx *gorm.DB) error {
		answer, err := findAnswer(tx, answerID)
		if err != nil {
			return err
		}

		used := tx.Model(&models.LikeModel{}).
			Where("user_id = ? AND topic_id = ?", userID, answer.TopicID)
		if tx.Dialector.Name() == "mysql" {
			used = used.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var usedCount int64
		if err := used.Count(&usedCount).Error; err != nil {
			return err
		}

		var dup int64
		if err := tx.Model(&models.LikeModel{}).
			Where("user_id = ? AND answer_id = ?", userID, answerID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return errAlreadyLiked
		}
		if usedCount >= models.LikeQuotaPerTopic {
			return errQuotaExceeded
		}

		l := models.LikeModel{UserID: userID, AnswerID: answerID, TopicID: answer.TopicID}
		if err := tx.Create(&l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyLiked
			}
			return err
		}
		if err := tx.Model(&models.AnswerModel{}).
			Where("id = ?", answerID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return err
		}

		st = Status{IsLiked: true, RemainingLikes: remaining(usedCount + 1)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Remove withdraws a previously granted heart, returning the quota slot.
func (s *Service) Remove(userID, answerID string) (*Status, error) {
	var st Status
	err := s.db.Transaction(func(tx *gorm.DB) error {
		answer, err := findAnswer(tx, answerID)
		if err != nil {
			return err
		}

		result := tx.Where("user_id = ? AND answer_id = ?", userID, answerID).
			Delete(&models.LikeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNotLiked
		}
		// floor at zero; the ledger is the source of truth
		if err := tx.Model(&models.AnswerModel{}).
			Where("id = ? AND like_count > 0", answerID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
			return err
		}

		var usedCount int64
		if err := tx.Model(&models.LikeModel{}).
			Where("user_id = ? AND topic_id = ?", userID, answer.TopicID).
			Count(&usedCount).Error; err != nil {
			return err
		}
		st = Status{IsLiked: false, RemainingLikes: remaining(usedCount)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// GetStatus reports whether the user has endorsed this answer and how
// many hearts they have left in the topic. Unauthenticated callers get
// the full allowance.
func (s *Service) GetStatus(userID, answerID string) (*Status, error) {
	answer, err := findAnswer(s.db, answerID)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return &Status{IsLiked: false, RemainingLikes: models.LikeQuotaPerTopic}, nil
	}

	var dup int64
	if err := s.db.Model(&models.LikeModel{}).
		Where("user_id = ? AND answer_id = ?", userID, answerID).
		Count(&dup).Error; err != nil {
		return nil, err
	}
	var usedCount int64
	if err := s.db.Model(&models.LikeModel{}).
		Where("user_id = ? AND topic_id = ?", userID, answer.TopicID).
		Count(&usedCount).Error; err != nil {
		return nil, err
	}

	return &Status{IsLiked: dup > 0, RemainingLikes: remaining(usedCount)}, nil
}

// RecountAnswer recomputes an answer's cached like_count from the
// ledger. The ledger is authoritative; this is the repair procedure for
// a diverged counter.
func (s *Service) RecountAnswer(answerID string) (int, error) {
	var count int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findAnswer(tx, answerID); err != nil {
			return err
		}
		if err := tx.Model(&models.LikeModel{}).
			Where("answer_id = ?", answerID).
			Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&models.AnswerModel{}).
			Where("id = ?", answerID).
			UpdateColumn("like_count", count).Error
	})
	return int(count), err
}

func findAnswer(tx *gorm.DB, answerID string) (*models.AnswerModel, error) {
	var answer models.AnswerModel
	if err := tx.First(&answer, "id = ?", answerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

func remaining(used int64) int {
	r := models.LikeQuotaPerTopic - int(used)
	if r < 0 {
		r = 0
	}
	return r
}
