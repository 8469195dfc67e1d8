package models

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

type UserListParams struct {
	Page
	Username          string `json:"username,omitempty"`
	CompanyName       string `json:"company_name,omitempty"`
	RegisterStartTime int64  `json:"register_start_time,omitempty"`
	RegisterEndTime   int64  `json:"register_end_time,omitempty"`
}

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Nickname     string     `json:"nickname"`
	Avatar       string     `json:"avatar"`
	Gender       string     `json:"gender"`
	JobNumber    string     `json:"job_number"`
	Department   string     `json:"department"`
	Email        string     `json:"email"`
	InviteCode   string     `json:"invite_code"`
	CompanyName  string     `json:"company_name"`
	Status       UserStatus `json:"status"`
	IsSuperuser  bool       `json:"is_superuser"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
	RegisterTime int64      `json:"register_time"`
}

// AdminProfile is the signed-in operator. UserID is ID rendered as a string,
// which is what the console keys its session on.
type AdminProfile struct {
	ID       int64    `json:"id"`
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	RealName string   `json:"realName"`
	Avatar   string   `json:"avatar"`
	Roles    []string `json:"roles"`
	Desc     string   `json:"desc"`
	HomePath string   `json:"homePath"`
	Token    string   `json:"token"`
}

type UserExportParams struct {
	Username          string `json:"username,omitempty"`
	CompanyName       string `json:"company_name,omitempty"`
	RegisterStartTime int64  `json:"register_start_time,omitempty"`
	RegisterEndTime   int64  `json:"register_end_time,omitempty"`
}

// UserExport is returned at the root of the response, not under data.
type UserExport struct {
	BaseResult
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
	FileSize    int64  `json:"file_size"`
	ExportTime  string `json:"export_time"`
}
