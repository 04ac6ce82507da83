package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeQuotaPerTopic is the heart allowance: a user may endorse at most
// this many answers within a single topic.
const LikeQuotaPerTopic = 3

// AnswerQuotaPerTopic caps how many answers a user may submit to one topic.
const AnswerQuotaPerTopic = 3

// LikeModel is one granted heart. The (user, answer) pair is unique; the
// topic id is denormalized so quota counting never needs a join.
//
// Rows are hard-deleted. A soft delete would leave the unique index
// occupied and block re-endorsing after a withdrawal.
type LikeModel struct {
	ID        string       `json:"id"        gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time    `json:"createdAt"`
	UserID    string       `json:"userId"   gorm:"uniqueIndex:idx_likes_user_answer;index:idx_likes_user_topic,priority:1;not null"`
	AnswerID  string       `json:"answerId" gorm:"uniqueIndex:idx_likes_user_answer;index;not null"`
	TopicID   string       `json:"topicId"  gorm:"index:idx_likes_user_topic,priority:2;not null"`
	User      *UserModel   `json:"-"        gorm:"foreignKey:UserID"`
	Answer    *AnswerModel `json:"-"        gorm:"foreignKey:AnswerID"`
}

func (LikeModel) TableName() string { return "likes" }

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
