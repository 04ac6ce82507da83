package topic

import (
	"time"

	"github.com/kyomei/core/internal/models"
)

// CreateRequest is the payload for posting a new topic.
type CreateRequest struct {
	Title       string     `json:"title"       binding:"required,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Subject     string     `json:"subject"     binding:"required,max=100"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     time.Time  `json:"endTime"     binding:"required"`
	Tags        []string   `json:"tags"        binding:"max=3,dive,min=1,max=50"`
}

// UpdateRequest is the payload for editing a topic. Nil fields are left
// untouched.
type UpdateRequest struct {
	Title       *string    `json:"title"       binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	Subject     *string    `json:"subject"     binding:"omitempty,max=100"`
	EndTime     *time.Time `json:"endTime"`
	Status      *string    `json:"status"`
	Tags        *[]string  `json:"tags"        binding:"omitempty,max=3,dive,min=1,max=50"`
}

// ListQuery captures the list filters.
type ListQuery struct {
	Status  string `form:"status"`
	Subject string `form:"subject"`
	Tag     string `form:"tag"`
}

// View is a topic plus its tags and derived counters, with the status
// field resolved against the deadline. Answers are populated on the
// detail endpoint only.
type View struct {
	models.TopicModel
	Tags        []models.TagModel    `json:"tags"`
	AnswerCount int64                `json:"answerCount"`
	LikeCount   int64                `json:"likeCount"`
	Answers     []models.AnswerModel `json:"answers,omitempty"`
}
