package models

/*
	Questionnaires, FAQs, orders and feedback. These are thin list/delete
	surfaces on the backend.
*/

type QuestionnaireStatus string

const (
	QuestionnaireDraft       QuestionnaireStatus = "draft"
	QuestionnairePublished   QuestionnaireStatus = "published"
	QuestionnaireUnpublished QuestionnaireStatus = "unpublished"
)

type QuestionnaireListParams struct {
	Page
	Title   string              `json:"title,omitempty"`
	Status  QuestionnaireStatus `json:"status,omitempty"`
	Creator string              `json:"creator,omitempty"`
}

type Questionnaire struct {
	ID                       int64               `json:"id"`
	Title                    string              `json:"title"`
	Description              string              `json:"description"`
	IsAnonymous              bool                `json:"is_anonymous"`
	AllowMultipleSubmissions bool                `json:"allow_multiple_submissions"`
	StartTime                string              `json:"start_time"`
	EndTime                  string              `json:"end_time"`
	Status                   QuestionnaireStatus `json:"status"`
	CreatorID                int64               `json:"creator_id"`
	CreatorName              string              `json:"creator_name"`
	CreatedAt                string              `json:"created_at"`
	UpdatedAt                string              `json:"updated_at"`
}

type FAQListParams struct {
	Page
	Question   string `json:"question,omitempty"`
	Category   string `json:"category,omitempty"`
	Status     string `json:"status,omitempty"`
	IsFeatured *bool  `json:"is_featured,omitempty"`
	Keyword    string `json:"keyword,omitempty"`
}

type FAQ struct {
	ID          int64  `json:"id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	OrderIndex  int    `json:"order_index"`
	IsFeatured  bool   `json:"is_featured"`
	Tags        string `json:"tags"`
	Keywords    string `json:"keywords"`
	ViewCount   int    `json:"view_count"`
	CreatorID   int64  `json:"creator_id"`
	CreatorName string `json:"creator_name"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// FAQParams is the body of create and edit; ID is only sent on edit.
type FAQParams struct {
	ID         int64  `json:"id,omitempty"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category,omitempty"`
	Status     string `json:"status,omitempty"`
	OrderIndex int    `json:"order_index,omitempty"`
	IsFeatured bool   `json:"is_featured,omitempty"`
	Tags       string `json:"tags,omitempty"`
	Keywords   string `json:"keywords,omitempty"`
}

type ToggleFAQStatusParams struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type ConsultationOrderListParams struct {
	Page
	OrderCode       string `json:"order_code,omitempty"`
	Consultant      string `json:"consultant,omitempty"`
	Status          string `json:"status,omitempty"`
	CreateStartTime int64  `json:"create_start_time,omitempty"`
	CreateEndTime   int64  `json:"create_end_time,omitempty"`
}

type ConsultationOrder struct {
	ID                  int64       `json:"id"`
	OrderCode           string      `json:"order_code"`
	Consultant          string      `json:"consultant"`
	AppointmentTime     string      `json:"appointment_time"`
	ConsultationMethod  string      `json:"consultation_method"` // online, offline or phone
	ConsultationAddress string      `json:"consultation_address"`
	Situation           string      `json:"situation"`
	Customer            string      `json:"customer"`
	CustomerID          int64       `json:"customer_id"`
	Status              OrderStatus `json:"status"`
	CreatedAt           string      `json:"created_at"`
	UpdatedAt           string      `json:"updated_at"`
	CreateTime          int64       `json:"create_time"`
}

type Feedback struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Image          string `json:"image"`
	FeedbackUser   string `json:"feedback_user"`
	FeedbackUserID int64  `json:"feedback_user_id"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	FeedbackTime   int64  `json:"feedback_time"`
}

/*
	Navigation menus and the industry dictionary.
*/

type Menu struct {
	ID        int64  `json:"id,omitempty"`
	PID       int64  `json:"pid,omitempty"`
	Name      string `json:"name,omitempty"`
	Path      string `json:"path,omitempty"`
	Mark      string `json:"mark,omitempty"`
	Icon      string `json:"icon,omitempty"`
	Sort      int    `json:"sort,omitempty"`
	Show      int    `json:"show,omitempty"`
	Type      int    `json:"type,omitempty"`
	Component string `json:"component,omitempty"`
	Children  []Menu `json:"children,omitempty"`
}

type Industry struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}
