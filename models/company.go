package models

type CompanyStatus string

const (
	CompanyActive   CompanyStatus = "active"
	CompanyInactive CompanyStatus = "inactive"
)

type CompanyListParams struct {
	Page
	CompanyName     string `json:"company_name,omitempty"`
	Creator         string `json:"creator,omitempty"`
	CreateStartTime int64  `json:"create_start_time,omitempty"`
	CreateEndTime   int64  `json:"create_end_time,omitempty"`
}

type Company struct {
	ID                  int64         `json:"id"`
	CompanyName         string        `json:"company_name"`
	NotificationMethod  string        `json:"notification_method"`
	Banner              string        `json:"banner"`
	RechargeAmount      string        `json:"recharge_amount"`
	Balance             string        `json:"balance"`
	Creator             string        `json:"creator"`
	CreatorID           int64         `json:"creator_id"`
	Status              CompanyStatus `json:"status"`
	CreatedAt           string        `json:"created_at"`
	UpdatedAt           string        `json:"updated_at"`
	CreateTime          int64         `json:"create_time"`
	ConsultationAddress string        `json:"consultation_address,omitempty"`
}

type CreateCompanyParams struct {
	CompanyName         string  `json:"company_name"`
	NotificationMethod  string  `json:"notification_method,omitempty"`
	Banner              string  `json:"banner,omitempty"`
	RechargeAmount      float64 `json:"recharge_amount,omitempty"`
	ConsultationAddress string  `json:"consultation_address,omitempty"`
}

type UpdateCompanyParams struct {
	ID                  int64  `json:"id"`
	CompanyName         string `json:"company_name"`
	NotificationMethod  string `json:"notification_method,omitempty"`
	Banner              string `json:"banner,omitempty"`
	ConsultationAddress string `json:"consultation_address,omitempty"`
}

type RechargeStatus string

const (
	RechargeSuccess RechargeStatus = "success"
	RechargePending RechargeStatus = "pending"
	RechargeFailed  RechargeStatus = "failed"
)

type RechargeListParams struct {
	Page
	CompanyID int64 `json:"company_id"`
}

type Recharge struct {
	ID             int64          `json:"id"`
	CompanyID      int64          `json:"company_id"`
	CompanyName    string         `json:"company_name"`
	RechargeAmount string         `json:"recharge_amount"`
	RechargeTime   int64          `json:"recharge_time"`
	Operator       string         `json:"operator"`
	OperatorID     int64          `json:"operator_id"`
	Status         RechargeStatus `json:"status"`
	Remark         string         `json:"remark"`
	Certificate    string         `json:"certificate"`
	CreatedAt      string         `json:"created_at"`
}

type CreateRechargeParams struct {
	RechargeAmount float64 `json:"recharge_amount"`
	Certificate    string  `json:"certificate"`
	CompanyID      int64   `json:"company_id"`
}
