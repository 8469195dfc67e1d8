package models

type PublishStatus string

const (
	Published   PublishStatus = "published"
	Unpublished PublishStatus = "unpublished"
)

type EvaluationListParams struct {
	Page
	Name          string        `json:"name,omitempty"`
	Creator       string        `json:"creator,omitempty"`
	PublishStatus PublishStatus `json:"publishStatus,omitempty"`
	StartTime     int64         `json:"start_time,omitempty"`
	EndTime       int64         `json:"end_time,omitempty"`
}

type Evaluation struct {
	ID                 int64         `json:"id"`
	Name               string        `json:"name"`
	Type               string        `json:"type"`
	Title              string        `json:"title"`
	Content            string        `json:"content"`
	Rating             int           `json:"rating"`
	ServiceRating      int           `json:"service_rating"`
	ProfessionalRating int           `json:"professional_rating"`
	AttitudeRating     int           `json:"attitude_rating"`
	EnvironmentRating  int           `json:"environment_rating"`
	TargetID           int64         `json:"target_id"`
	TargetName         string        `json:"target_name"`
	EvaluatorID        int64         `json:"evaluator_id"`
	EvaluatorName      string        `json:"evaluator_name"`
	PublishStatus      PublishStatus `json:"publishStatus"`
	Status             string        `json:"status"`
	ReviewerName       string        `json:"reviewer_name"`
	PublishTime        string        `json:"publish_time"`
	ReviewComment      string        `json:"review_comment"`
	HelpfulCount       int           `json:"helpful_count"`
	UnhelpfulCount     int           `json:"unhelpful_count"`
	ReplyCount         int           `json:"reply_count"`
	IsAnonymous        bool          `json:"is_anonymous"`
	IsRequired         bool          `json:"is_required"`
	IsPublished        bool          `json:"is_published"`
	CreatedAt          string        `json:"created_at"`
}

type EvaluationDataParams struct {
	Page                int    `json:"page,omitempty"`
	Size                int    `json:"size,omitempty"`
	ConsultantName      string `json:"consultantName,omitempty"`
	EvaluatorName       string `json:"evaluatorName,omitempty"`
	EvaluationStartTime int64  `json:"evaluationStartTime,omitempty"`
	EvaluationEndTime   int64  `json:"evaluationEndTime,omitempty"`
	EvaluationID        int64  `json:"evaluationId"`
}

type EvaluationDatum struct {
	ID              int64  `json:"id"`
	ConsultantName  string `json:"consultantName"`
	EvaluationTime  int64  `json:"evaluationTime"`
	EvaluationScore int    `json:"evaluationScore"`
	Comment         string `json:"comment,omitempty"`
	EvaluatorName   string `json:"evaluatorName"`
	EvaluatorID     int64  `json:"evaluatorId"`
	EvaluationID    int64  `json:"evaluationId"`
}

type EvaluationItem struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	IsRequired bool   `json:"is_required,omitempty"`
}

type CreateEvaluationParams struct {
	Name          string           `json:"name"`
	Items         []EvaluationItem `json:"items"`
	PublishStatus PublishStatus    `json:"publishStatus,omitempty"`
}
