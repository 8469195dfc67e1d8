package models

type ActivityListParams struct {
	Page
	ActivityName    string `json:"activity_name,omitempty"`
	Creator         string `json:"creator,omitempty"`
	IsEnabled       *bool  `json:"is_enabled,omitempty"`
	CreateStartTime int64  `json:"create_start_time,omitempty"`
	CreateEndTime   int64  `json:"create_end_time,omitempty"`
}

type Activity struct {
	ID                   int64  `json:"id"`
	ActivityName         string `json:"activity_name"`
	ActivityContent      string `json:"activity_content"`
	Instructor           string `json:"instructor"`
	ActivityTime         string `json:"activity_time"`
	RegistrationDeadline string `json:"registration_deadline"`
	Duration             int    `json:"duration"`
	MinParticipants      int    `json:"min_participants"`
	MaxRegistrations     int    `json:"max_registrations"`
	IsEnabled            bool   `json:"is_enabled"`
	CreatorName          string `json:"creator_name"`
	CreatorID            int64  `json:"creator_id"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
	CreateTime           int64  `json:"create_time"`
	UpdateTime           int64  `json:"update_time"`
}

// ActivityParams is the body of create and edit; ID is only sent on edit.
type ActivityParams struct {
	ID                   int64  `json:"id,omitempty"`
	ActivityName         string `json:"activity_name"`
	ActivityContent      string `json:"activity_content"`
	Instructor           string `json:"instructor"`
	ActivityTime         string `json:"activity_time"`
	RegistrationDeadline string `json:"registration_deadline"`
	Duration             int    `json:"duration"`
	MinParticipants      int    `json:"min_participants"`
	MaxRegistrations     int    `json:"max_registrations"`
	IsEnabled            bool   `json:"is_enabled"`
}
