package answer

// SubmitRequest is the payload for posting an answer to a topic.
type SubmitRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// ReplyRequest is the payload for replying to an answer.
type ReplyRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// ListQuery captures the sort options for listing a topic's answers.
type ListQuery struct {
	SortBy string `form:"sortBy"`
	Order  string `form:"order"`
}
