package models

type CounselorStatus string

const (
	CounselorEnabled  CounselorStatus = "enabled"
	CounselorDisabled CounselorStatus = "disabled"
)

type AuditStatus string

const (
	AuditApproved AuditStatus = "approved"
	AuditRejected AuditStatus = "rejected"
	AuditPending  AuditStatus = "pending"
)

// TimeSlot is a weekly availability window. Day is 0 (Sunday) through 6.
type TimeSlot struct {
	Day         int `json:"day"`
	StartHour   int `json:"startHour"`
	EndHour     int `json:"endHour"`
	StartMinute int `json:"startMinute,omitempty"`
	EndMinute   int `json:"endMinute,omitempty"`
}

type CounselorListParams struct {
	Page
	CounselorName string `json:"counselor_name,omitempty"`
	Creator       string `json:"creator,omitempty"`
	Status        string `json:"status,omitempty"`
}

type Counselor struct {
	ID                 int64           `json:"id"`
	CounselorName      string          `json:"counselor_name"`
	Phone              string          `json:"phone"`
	School             string          `json:"school"`
	Major              string          `json:"major"`
	PersonalIntro      string          `json:"personal_intro"`
	Avatar             string          `json:"avatar"`
	Credentials        []any           `json:"credentials"`
	ConsultingPrice    string          `json:"consulting_price"`
	ConsultingMethod   string          `json:"consulting_method"`
	Specializations    []string        `json:"specializations"`
	ExpertiseAreas     []string        `json:"expertise_areas"`
	ConsultingStatus   string          `json:"consulting_status"`
	Location           string          `json:"location"`
	TotalDuration      string          `json:"total_duration"`
	SettlementPrice    string          `json:"settlement_price"`
	SettlementWeight   string          `json:"settlement_weight"`
	DurationProof      []any           `json:"duration_proof"`
	AvailableTimeSlots []TimeSlot      `json:"available_time_slots"`
	IsOnline           bool            `json:"is_online"`
	Status             CounselorStatus `json:"status"`
	CreatorName        string          `json:"creator_name"`
	CreatorID          int64           `json:"creator_id"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
	CreateTime         int64           `json:"create_time"`
	UpdateTime         int64           `json:"update_time"`
}

// CounselorParams is the body of both create and edit; ID is only sent on edit.
type CounselorParams struct {
	ID                 int64      `json:"id,omitempty"`
	CounselorName      string     `json:"counselor_name"`
	Phone              string     `json:"phone"`
	School             string     `json:"school"`
	Major              string     `json:"major"`
	PersonalIntro      string     `json:"personal_intro"`
	Avatar             string     `json:"avatar"`
	Credentials        []any      `json:"credentials"`
	ConsultingPrice    float64    `json:"consulting_price"`
	ConsultingMethod   string     `json:"consulting_method"`
	Specializations    []string   `json:"specializations"`
	ExpertiseAreas     []string   `json:"expertise_areas"`
	ConsultingStatus   string     `json:"consulting_status"`
	Location           string     `json:"location"`
	TotalDuration      float64    `json:"total_duration"`
	SettlementPrice    float64    `json:"settlement_price"`
	SettlementWeight   float64    `json:"settlement_weight"`
	DurationProof      []any      `json:"duration_proof"`
	AvailableTimeSlots []TimeSlot `json:"available_time_slots"`
}

type ToggleCounselorStatusParams struct {
	ID     int64           `json:"id"`
	Status CounselorStatus `json:"status"`
}

type CounselingDurationListParams struct {
	Page
	CounselorID int64  `json:"counselor_id"`
	AuditStatus string `json:"audit_status,omitempty"`
	StartTime   int64  `json:"start_time,omitempty"`
	EndTime     int64  `json:"end_time,omitempty"`
}

type CounselingDuration struct {
	ID             int64       `json:"id"`
	CounselorID    int64       `json:"counselor_id"`
	Duration       string      `json:"duration"`
	Certificate    string      `json:"certificate"`
	AuditStatus    AuditStatus `json:"audit_status"`
	OperatorName   string      `json:"operator_name"`
	CreatorName    string      `json:"creator_name"`
	AuditTime      string      `json:"audit_time"`
	AuditComment   string      `json:"audit_comment"`
	CreatedAt      string      `json:"created_at"`
	UpdatedAt      string      `json:"updated_at"`
	CreateTime     int64       `json:"create_time"`
	AuditTimeStamp int64       `json:"audit_time_stamp"`
}

type CreateCounselingDurationParams struct {
	CounselorID int64   `json:"counselor_id"`
	Duration    float64 `json:"duration"`
	Certificate string  `json:"certificate"`
}

type AuditCounselingDurationParams struct {
	ID           int64       `json:"id"`
	AuditStatus  AuditStatus `json:"audit_status"`
	AuditComment string      `json:"audit_comment,omitempty"`
}

type City struct {
	Name string `json:"name"`
}

type CityList struct {
	List []City `json:"list"`
}

// ImportResult is whatever the import endpoint reports about the rows it took.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
