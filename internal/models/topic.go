package models

import "time"

// TopicStatus is the administrative lifecycle state of a topic.
// The deadline (EndTime) is authoritative for submissions; a topic may
// still read ACTIVE after its deadline has passed.
type TopicStatus string

const (
	TopicActive TopicStatus = "ACTIVE"
	TopicClosed TopicStatus = "CLOSED"
)

// TopicModel is an operator-posted prompt users answer.
type TopicModel struct {
	Base
	Number      int         `json:"number"      gorm:"uniqueIndex;not null"` // sequential display number, assigned by the service
	Title       string      `json:"title"       gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	Subject     string      `json:"subject"     gorm:"index;not null"`
	Status      TopicStatus `json:"status"      gorm:"type:varchar(16);default:'ACTIVE';index"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     time.Time   `json:"endTime"     gorm:"not null"`
	ViewCount   int         `json:"viewCount"   gorm:"default:0"`
	AuthorID    string      `json:"authorId"    gorm:"index;not null"`
	Author      *UserModel  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (TopicModel) TableName() string { return "topics" }

// OpenForAnswers reports whether a submission is accepted at the given
// instant. Status is advisory; the deadline always wins.
func (t *TopicModel) OpenForAnswers(now time.Time) bool {
	if t.Status == TopicClosed {
		return false
	}
	return !now.After(t.EndTime)
}
