package models

// AnswerModel is a user's answer to a topic, shown under a generated
// pseudonym instead of the author's real name.
//
// LikeCount caches the number of LikeModel rows referencing this answer;
// the two are only ever mutated inside the same transaction.
type AnswerModel struct {
	Base
	Content    string      `json:"content"    gorm:"type:text;not null"`
	AuthorName string      `json:"authorName" gorm:"not null"`
	LikeCount  int         `json:"likeCount"  gorm:"default:0"`
	TopicID    string      `json:"topicId"    gorm:"index;not null"`
	Topic      *TopicModel `json:"-"          gorm:"foreignKey:TopicID"`
	AuthorID   string      `json:"-"          gorm:"index;not null"`
	Author     *UserModel  `json:"-"          gorm:"foreignKey:AuthorID"`
}

func (AnswerModel) TableName() string { return "answers" }

// ReplyModel is a short follow-up comment on an answer.
type ReplyModel struct {
	Base
	Content    string       `json:"content"    gorm:"type:text;not null"`
	AuthorName string       `json:"authorName" gorm:"not null"`
	AnswerID   string       `json:"answerId"   gorm:"index;not null"`
	Answer     *AnswerModel `json:"-"          gorm:"foreignKey:AnswerID"`
	AuthorID   string       `json:"-"          gorm:"index;not null"`
}

func (ReplyModel) TableName() string { return "replies" }
