package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagModel is a reusable label attached to topics, upserted on write.
type TagModel struct {
	Base
	Name       string `json:"name"       gorm:"uniqueIndex;not null"`
	UsageCount int    `json:"usageCount" gorm:"default:0"`
}

func (TagModel) TableName() string { return "tags" }

// TopicTagModel links a topic to a tag. Hard-deleted so the unique pair
// index stays free for re-tagging.
type TopicTagModel struct {
	ID        string      `json:"id"      gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time   `json:"createdAt"`
	TopicID   string      `json:"topicId" gorm:"uniqueIndex:idx_topic_tags_pair;not null"`
	TagID     string      `json:"tagId"   gorm:"uniqueIndex:idx_topic_tags_pair;index;not null"`
	Tag       *TagModel   `json:"tag,omitempty" gorm:"foreignKey:TagID"`
	Topic     *TopicModel `json:"-"       gorm:"foreignKey:TopicID"`
}

func (TopicTagModel) TableName() string { return "topic_tags" }

func (tt *TopicTagModel) BeforeCreate(tx *gorm.DB) error {
	if tt.ID == "" {
		tt.ID = uuid.New().String()
	}
	return nil
}
