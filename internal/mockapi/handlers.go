package mockapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/InsulaLabs/counsel/internal/sheet"
	"github.com/InsulaLabs/counsel/models"
)

func (s *Server) seed() {
	created, unix := s.stamp()

	s.admin = models.AdminProfile{
		ID:       1,
		Username: "admin",
		RealName: "Console Admin",
		Roles:    []string{"super"},
		HomePath: "/dashboard",
	}
	s.counselors = newCollection(func(c *models.Counselor) *int64 { return &c.ID },
		models.Counselor{CounselorName: "Lin Wei", Phone: "13800000001", School: "Fudan University", Major: "Clinical Psychology", ConsultingPrice: "300", ConsultingMethod: "online", Status: models.CounselorEnabled, CreatorName: "admin", CreatorID: 1, CreatedAt: created, CreateTime: unix},
		models.Counselor{CounselorName: "Zhao Min", Phone: "13800000002", School: "Peking University", Major: "Family Therapy", ConsultingPrice: "450", ConsultingMethod: "offline", Status: models.CounselorDisabled, CreatorName: "admin", CreatorID: 1, CreatedAt: created, CreateTime: unix},
	)
	s.durations = newCollection(func(d *models.CounselingDuration) *int64 { return &d.ID },
		models.CounselingDuration{CounselorID: 1, Duration: "120", AuditStatus: models.AuditPending, CreatorName: "admin", CreatedAt: created, CreateTime: unix},
	)
	s.companies = newCollection(func(c *models.Company) *int64 { return &c.ID },
		models.Company{CompanyName: "Northwind Ltd", NotificationMethod: "sms", RechargeAmount: "10000", Balance: "8200", Creator: "admin", CreatorID: 1, Status: models.CompanyActive, CreatedAt: created, CreateTime: unix},
	)
	s.recharges = newCollection(func(r *models.Recharge) *int64 { return &r.ID },
		models.Recharge{CompanyID: 1, CompanyName: "Northwind Ltd", RechargeAmount: "10000", RechargeTime: unix, Operator: "admin", OperatorID: 1, Status: models.RechargeSuccess, CreatedAt: created},
	)
	s.users = newCollection(func(u *models.User) *int64 { return &u.ID },
		models.User{Username: "chen.jie", Nickname: "Jie", CompanyName: "Northwind Ltd", Status: models.UserActive, CreatedAt: created, RegisterTime: unix},
		models.User{Username: "wang.fang", Nickname: "Fang", CompanyName: "Northwind Ltd", Status: models.UserInactive, CreatedAt: created, RegisterTime: unix},
	)
	s.activities = newCollection(func(a *models.Activity) *int64 { return &a.ID },
		models.Activity{ActivityName: "Stress Management Workshop", Instructor: "Lin Wei", Duration: 90, MinParticipants: 5, MaxRegistrations: 30, IsEnabled: true, CreatorName: "admin", CreatorID: 1, CreatedAt: created, CreateTime: unix},
	)
	s.evaluations = newCollection(func(e *models.Evaluation) *int64 { return &e.ID },
		models.Evaluation{Name: "Session feedback", Type: "rating", Title: "How was your session?", PublishStatus: models.Published, IsPublished: true, CreatedAt: created},
	)
	s.evaluationData = newCollection(func(d *models.EvaluationDatum) *int64 { return &d.ID },
		models.EvaluationDatum{ConsultantName: "Lin Wei", EvaluationTime: unix, EvaluationScore: 5, Comment: "Very helpful", EvaluatorName: "chen.jie", EvaluatorID: 1, EvaluationID: 1},
	)
	s.questionnaires = newCollection(func(q *models.Questionnaire) *int64 { return &q.ID },
		models.Questionnaire{Title: "Workplace wellbeing", Status: models.QuestionnairePublished, CreatorID: 1, CreatorName: "admin", CreatedAt: created},
	)
	s.faqs = newCollection(func(f *models.FAQ) *int64 { return &f.ID },
		models.FAQ{Question: "How do I book a session?", Answer: "<p>From the counselor page.</p>", Category: "booking", Status: "active", CreatorID: 1, CreatorName: "admin", CreatedAt: created},
	)
	s.orders = newCollection(func(o *models.ConsultationOrder) *int64 { return &o.ID },
		models.ConsultationOrder{OrderCode: "CO-0001", Consultant: "Lin Wei", ConsultationMethod: "online", Customer: "chen.jie", CustomerID: 1, Status: models.OrderPending, CreatedAt: created, CreateTime: unix},
	)
	s.feedback = newCollection(func(f *models.Feedback) *int64 { return &f.ID },
		models.Feedback{Title: "App crash", Content: "The booking page froze.", FeedbackUser: "wang.fang", FeedbackUserID: 2, CreatedAt: created, FeedbackTime: unix},
	)
	s.menus = newCollection(func(m *models.Menu) *int64 { return &m.ID },
		models.Menu{Name: "Counselors", Path: "/counselors", Sort: 1, Show: 1, Type: 1},
		models.Menu{PID: 1, Name: "Durations", Path: "/counselors/durations", Sort: 1, Show: 1, Type: 2},
		models.Menu{Name: "Companies", Path: "/companies", Sort: 2, Show: 1, Type: 1},
	)
	s.industries = newCollection(func(i *models.Industry) *int64 { return &i.ID },
		models.Industry{Name: "Technology", CreatedAt: unix, UpdatedAt: unix},
		models.Industry{Name: "Education", CreatedAt: unix, UpdatedAt: unix},
	)
	s.cities = []models.City{{Name: "Beijing"}, {Name: "Shanghai"}, {Name: "Shenzhen"}, {Name: "Chengdu"}}
}

func (s *Server) adminDetail(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.admin)
}

// counselors

func (s *Server) listCounselors(w http.ResponseWriter, r *http.Request) {
	var p models.CounselorListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.counselors.page(p.Page, func(c *models.Counselor) bool {
		return contains(c.CounselorName, p.CounselorName) &&
			contains(c.CreatorName, p.Creator) &&
			(p.Status == "" || string(c.Status) == p.Status)
	}))
}

func counselorFrom(p models.CounselorParams) models.Counselor {
	return models.Counselor{
		CounselorName:      p.CounselorName,
		Phone:              p.Phone,
		School:             p.School,
		Major:              p.Major,
		PersonalIntro:      p.PersonalIntro,
		Avatar:             p.Avatar,
		Credentials:        p.Credentials,
		ConsultingPrice:    strconv.FormatFloat(p.ConsultingPrice, 'f', -1, 64),
		ConsultingMethod:   p.ConsultingMethod,
		Specializations:    p.Specializations,
		ExpertiseAreas:     p.ExpertiseAreas,
		ConsultingStatus:   p.ConsultingStatus,
		Location:           p.Location,
		TotalDuration:      strconv.FormatFloat(p.TotalDuration, 'f', -1, 64),
		SettlementPrice:    strconv.FormatFloat(p.SettlementPrice, 'f', -1, 64),
		SettlementWeight:   strconv.FormatFloat(p.SettlementWeight, 'f', -1, 64),
		DurationProof:      p.DurationProof,
		AvailableTimeSlots: p.AvailableTimeSlots,
	}
}

func (s *Server) phoneTaken(phone string, except int64) bool {
	for _, c := range s.counselors.items {
		if c.Phone == phone && c.ID != except {
			return true
		}
	}
	return false
}

func (s *Server) createCounselor(w http.ResponseWriter, r *http.Request) {
	var p models.CounselorParams
	if !decode(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.CounselorName) == "" {
		writeError(w, http.StatusBadRequest, 40001, "counselor_name is required", requestID(r))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Phone != "" && s.phoneTaken(p.Phone, 0) {
		writeError(w, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "duplicate phone "+p.Phone, requestID(r))
		return
	}
	c := counselorFrom(p)
	c.Status = models.CounselorEnabled
	c.CreatedAt, c.CreateTime = s.stamp()
	c.CreatorName, c.CreatorID = s.admin.Username, s.admin.ID
	s.counselors.insert(c)
	writeOK(w, r, "counselor created")
}

func (s *Server) editCounselor(w http.ResponseWriter, r *http.Request) {
	var p models.CounselorParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.counselors.find(p.ID)
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "counselor not found", requestID(r))
		return
	}
	if p.Phone != "" && s.phoneTaken(p.Phone, p.ID) {
		writeError(w, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "duplicate phone "+p.Phone, requestID(r))
		return
	}
	updated := counselorFrom(p)
	updated.ID = existing.ID
	updated.Status = existing.Status
	updated.CreatedAt, updated.CreateTime = existing.CreatedAt, existing.CreateTime
	updated.CreatorName, updated.CreatorID = existing.CreatorName, existing.CreatorID
	updated.UpdatedAt, updated.UpdateTime = s.stamp()
	*existing = updated
	writeOK(w, r, "counselor updated")
}

func (s *Server) deleteCounselor(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "counselor", func(id int64) bool { return s.counselors.remove(id) })
}

func (s *Server) toggleCounselor(w http.ResponseWriter, r *http.Request) {
	var p models.ToggleCounselorStatusParams
	if !decode(w, r, &p) {
		return
	}
	if p.Status != models.CounselorEnabled && p.Status != models.CounselorDisabled {
		writeError(w, http.StatusBadRequest, 40002, "status must be enabled or disabled", requestID(r))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counselors.find(p.ID)
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "counselor not found", requestID(r))
		return
	}
	c.Status = p.Status
	writeOK(w, r, "status updated")
}

func (s *Server) listDurations(w http.ResponseWriter, r *http.Request) {
	var p models.CounselingDurationListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.durations.page(p.Page, func(d *models.CounselingDuration) bool {
		return d.CounselorID == p.CounselorID && (p.AuditStatus == "" || string(d.AuditStatus) == p.AuditStatus)
	}))
}

func (s *Server) createDuration(w http.ResponseWriter, r *http.Request) {
	var p models.CreateCounselingDurationParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.counselors.find(p.CounselorID); !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "counselor not found", requestID(r))
		return
	}
	d := models.CounselingDuration{
		CounselorID: p.CounselorID,
		Duration:    strconv.FormatFloat(p.Duration, 'f', -1, 64),
		Certificate: p.Certificate,
		AuditStatus: models.AuditPending,
		CreatorName: s.admin.Username,
	}
	d.CreatedAt, d.CreateTime = s.stamp()
	s.durations.insert(d)
	writeOK(w, r, "duration submitted")
}

func (s *Server) auditDuration(w http.ResponseWriter, r *http.Request) {
	var p models.AuditCounselingDurationParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.durations.find(p.ID)
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "duration not found", requestID(r))
		return
	}
	d.AuditStatus = p.AuditStatus
	d.AuditComment = p.AuditComment
	d.OperatorName = s.admin.Username
	d.AuditTime, d.AuditTimeStamp = s.stamp()
	writeOK(w, r, "duration audited")
}

func (s *Server) searchCities(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	out := models.CityList{List: []models.City{}}
	for _, c := range s.cities {
		if contains(c.Name, keyword) {
			out.List = append(out.List, c)
		}
	}
	writeData(w, r, out)
}

// importCounselors answers with the shapes the real import endpoint uses:
// {error, requestId} for unreadable input, the standard error envelope with
// 422 for rows that clash, and the standard envelope on success.
func (s *Server) importCounselors(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file is required", "requestId": rid})
		return
	}
	defer file.Close()

	summary, err := sheet.Inspect(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid spreadsheet", "requestId": rid})
		return
	}
	if len(summary.MissingColumns) > 0 {
		writeError(w, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "missing column "+strings.Join(summary.MissingColumns, ", "), rid)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range summary.Rows {
		if len(summary.DuplicatePhones[row.Phone]) > 0 || (row.Phone != "" && s.phoneTaken(row.Phone, 0)) {
			writeError(w, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, fmt.Sprintf("duplicate phone %s on row %d", row.Phone, row.Line), rid)
			return
		}
	}

	result := models.ImportResult{}
	created, unix := s.stamp()
	for _, row := range summary.Rows {
		if row.Name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: name is blank", row.Line))
			continue
		}
		s.counselors.insert(models.Counselor{
			CounselorName:    row.Name,
			Phone:            row.Phone,
			School:           row.Values["school"],
			Major:            row.Values["major"],
			ConsultingPrice:  row.Values["consulting_price"],
			ConsultingMethod: row.Values["consulting_method"],
			Location:         row.Values["location"],
			PersonalIntro:    row.Values["personal_intro"],
			Status:           models.CounselorEnabled,
			CreatorName:      s.admin.Username,
			CreatorID:        s.admin.ID,
			CreatedAt:        created,
			CreateTime:       unix,
		})
		result.Imported++
	}
	writeJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Message: "import succeeded", RID: rid, Data: result})
}

// companies

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	var p models.CompanyListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.companies.page(p.Page, func(c *models.Company) bool {
		return contains(c.CompanyName, p.CompanyName) && contains(c.Creator, p.Creator)
	}))
}

func (s *Server) createCompany(w http.ResponseWriter, r *http.Request) {
	var p models.CreateCompanyParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	amount := strconv.FormatFloat(p.RechargeAmount, 'f', 2, 64)
	c := models.Company{
		CompanyName:         p.CompanyName,
		NotificationMethod:  p.NotificationMethod,
		Banner:              p.Banner,
		RechargeAmount:      amount,
		Balance:             amount,
		Creator:             s.admin.Username,
		CreatorID:           s.admin.ID,
		Status:              models.CompanyActive,
		ConsultationAddress: p.ConsultationAddress,
	}
	c.CreatedAt, c.CreateTime = s.stamp()
	s.companies.insert(c)
	writeOK(w, r, "company created")
}

func (s *Server) editCompany(w http.ResponseWriter, r *http.Request) {
	var p models.UpdateCompanyParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies.find(p.ID)
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "company not found", requestID(r))
		return
	}
	c.CompanyName = p.CompanyName
	c.NotificationMethod = p.NotificationMethod
	c.Banner = p.Banner
	c.ConsultationAddress = p.ConsultationAddress
	c.UpdatedAt, _ = s.stamp()
	writeOK(w, r, "company updated")
}

func (s *Server) deleteCompany(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "company", func(id int64) bool { return s.companies.remove(id) })
}

func (s *Server) listRecharges(w http.ResponseWriter, r *http.Request) {
	var p models.RechargeListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.recharges.page(p.Page, func(rc *models.Recharge) bool { return rc.CompanyID == p.CompanyID }))
}

func (s *Server) createRecharge(w http.ResponseWriter, r *http.Request) {
	var p models.CreateRechargeParams
	if !decode(w, r, &p) {
		return
	}
	if p.RechargeAmount <= 0 {
		writeError(w, http.StatusBadRequest, 40003, "recharge_amount must be positive", requestID(r))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies.find(p.CompanyID)
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "company not found", requestID(r))
		return
	}
	balance, _ := strconv.ParseFloat(c.Balance, 64)
	c.Balance = strconv.FormatFloat(balance+p.RechargeAmount, 'f', 2, 64)

	created, unix := s.stamp()
	s.recharges.insert(models.Recharge{
		CompanyID:      c.ID,
		CompanyName:    c.CompanyName,
		RechargeAmount: strconv.FormatFloat(p.RechargeAmount, 'f', 2, 64),
		RechargeTime:   unix,
		Operator:       s.admin.Username,
		OperatorID:     s.admin.ID,
		Status:         models.RechargeSuccess,
		Certificate:    p.Certificate,
		CreatedAt:      created,
	})
	writeOK(w, r, "recharge recorded")
}

// users

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	var p models.UserListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.users.page(p.Page, func(u *models.User) bool {
		return contains(u.Username, p.Username) && contains(u.CompanyName, p.CompanyName)
	}))
}

func (s *Server) setUserStatus(status models.UserStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := queryID(w, r, "user_id")
		if !ok {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		u, found := s.users.find(id)
		if !found {
			writeError(w, http.StatusNotFound, http.StatusNotFound, "user not found", requestID(r))
			return
		}
		u.Status = status
		writeOK(w, r, "user "+string(status))
	}
}

// exportUsers answers at the root of the body rather than under data.
func (s *Server) exportUsers(w http.ResponseWriter, r *http.Request) {
	var p models.UserExportParams
	if !decode(w, r, &p) {
		return
	}
	created, unix := s.stamp()
	name := fmt.Sprintf("users-%d.xlsx", unix)
	writeJSON(w, http.StatusOK, models.UserExport{
		BaseResult:  models.BaseResult{Code: http.StatusOK, Message: "export ready", RID: requestID(r)},
		DownloadURL: "/downloads/" + name,
		Filename:    name,
		FileSize:    4096,
		ExportTime:  created,
	})
}

// activities

func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	var p models.ActivityListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.activities.page(p.Page, func(a *models.Activity) bool {
		return contains(a.ActivityName, p.ActivityName) &&
			contains(a.CreatorName, p.Creator) &&
			(p.IsEnabled == nil || a.IsEnabled == *p.IsEnabled)
	}))
}

func activityFrom(p models.ActivityParams) models.Activity {
	return models.Activity{
		ActivityName:         p.ActivityName,
		ActivityContent:      p.ActivityContent,
		Instructor:           p.Instructor,
		ActivityTime:         p.ActivityTime,
		RegistrationDeadline: p.RegistrationDeadline,
		Duration:             p.Duration,
		MinParticipants:      p.MinParticipants,
		MaxRegistrations:     p.MaxRegistrations,
		IsEnabled:            p.IsEnabled,
	}
}

func (s *Server) createActivity(w http.ResponseWriter, r *http.Request) {
	var p models.ActivityParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := activityFrom(p)
	a.CreatorName, a.CreatorID = s.admin.Username, s.admin.ID
	a.CreatedAt, a.CreateTime = s.stamp()
	s.activities.insert(a)
	writeOK(w, r, "activity created")
}

func (s *Server) editActivity(w http.ResponseWriter, r *http.Request) {
	var p models.ActivityParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.activities.find(p.ID)
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "activity not found", requestID(r))
		return
	}
	updated := activityFrom(p)
	updated.ID = existing.ID
	updated.CreatorName, updated.CreatorID = existing.CreatorName, existing.CreatorID
	updated.CreatedAt, updated.CreateTime = existing.CreatedAt, existing.CreateTime
	updated.UpdatedAt, updated.UpdateTime = s.stamp()
	*existing = updated
	writeOK(w, r, "activity updated")
}

func (s *Server) setActivityEnabled(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := queryID(w, r, "id")
		if !ok {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		a, found := s.activities.find(id)
		if !found {
			writeError(w, http.StatusNotFound, http.StatusNotFound, "activity not found", requestID(r))
			return
		}
		a.IsEnabled = enabled
		writeOK(w, r, "activity updated")
	}
}

func (s *Server) deleteActivity(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "activity", func(id int64) bool { return s.activities.remove(id) })
}

// evaluations

func (s *Server) listEvaluations(w http.ResponseWriter, r *http.Request) {
	var p models.EvaluationListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.evaluations.page(p.Page, func(e *models.Evaluation) bool {
		return contains(e.Name, p.Name) && (p.PublishStatus == "" || e.PublishStatus == p.PublishStatus)
	}))
}

func (s *Server) listEvaluationData(w http.ResponseWriter, r *http.Request) {
	var p models.EvaluationDataParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.evaluationData.page(models.Page{Page: p.Page, Size: p.Size}, func(d *models.EvaluationDatum) bool {
		return d.EvaluationID == p.EvaluationID &&
			contains(d.ConsultantName, p.ConsultantName) &&
			contains(d.EvaluatorName, p.EvaluatorName)
	}))
}

func (s *Server) createEvaluation(w http.ResponseWriter, r *http.Request) {
	var p models.CreateEvaluationParams
	if !decode(w, r, &p) {
		return
	}
	if n := utf8.RuneCountInString(p.Name); n < 2 || n > 200 || len(p.Items) == 0 {
		writeError(w, http.StatusBadRequest, 40004, "name must be 2-200 characters and items cannot be empty", requestID(r))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created, _ := s.stamp()
	for _, item := range p.Items {
		s.evaluations.insert(models.Evaluation{
			Name:          p.Name,
			Type:          item.Type,
			Title:         item.Title,
			IsRequired:    item.IsRequired,
			PublishStatus: p.PublishStatus,
			IsPublished:   p.PublishStatus == models.Published,
			CreatedAt:     created,
		})
	}
	writeOK(w, r, fmt.Sprintf("evaluation created with %d items", len(p.Items)))
}

// questionnaires, faqs, orders, feedback

func (s *Server) listQuestionnaires(w http.ResponseWriter, r *http.Request) {
	var p models.QuestionnaireListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.questionnaires.page(p.Page, func(q *models.Questionnaire) bool {
		return contains(q.Title, p.Title) && contains(q.CreatorName, p.Creator) && (p.Status == "" || q.Status == p.Status)
	}))
}

func (s *Server) deleteQuestionnaire(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "questionnaire", func(id int64) bool { return s.questionnaires.remove(id) })
}

// listFAQs nests the page in a second envelope, as the real endpoint does.
func (s *Server) listFAQs(w http.ResponseWriter, r *http.Request) {
	var p models.FAQListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	page := s.faqs.page(p.Page, func(f *models.FAQ) bool {
		return contains(f.Question, p.Question) &&
			contains(f.Category, p.Category) &&
			(p.Status == "" || f.Status == p.Status) &&
			(p.IsFeatured == nil || f.IsFeatured == *p.IsFeatured) &&
			(p.Keyword == "" || contains(f.Question, p.Keyword) || contains(f.Keywords, p.Keyword))
	})
	writeData(w, r, envelope{Code: http.StatusOK, Message: "success", RID: requestID(r), Data: page})
}

func faqFrom(p models.FAQParams) models.FAQ {
	status := p.Status
	if status == "" {
		status = "active"
	}
	return models.FAQ{
		Question:   p.Question,
		Answer:     p.Answer,
		Category:   p.Category,
		Status:     status,
		OrderIndex: p.OrderIndex,
		IsFeatured: p.IsFeatured,
		Tags:       p.Tags,
		Keywords:   p.Keywords,
	}
}

func (s *Server) createFAQ(w http.ResponseWriter, r *http.Request) {
	var p models.FAQParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f := faqFrom(p)
	f.CreatorID, f.CreatorName = s.admin.ID, s.admin.Username
	f.CreatedAt, _ = s.stamp()
	s.faqs.insert(f)
	writeOK(w, r, "faq created")
}

func (s *Server) editFAQ(w http.ResponseWriter, r *http.Request) {
	var p models.FAQParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.faqs.find(p.ID)
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "faq not found", requestID(r))
		return
	}
	updated := faqFrom(p)
	updated.ID = existing.ID
	updated.ViewCount = existing.ViewCount
	updated.CreatorID, updated.CreatorName, updated.CreatedAt = existing.CreatorID, existing.CreatorName, existing.CreatedAt
	updated.UpdatedAt, _ = s.stamp()
	*existing = updated
	writeOK(w, r, "faq updated")
}

func (s *Server) toggleFAQ(w http.ResponseWriter, r *http.Request) {
	var p models.ToggleFAQStatusParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.faqs.find(p.ID)
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "faq not found", requestID(r))
		return
	}
	f.Status = p.Status
	writeOK(w, r, "faq status updated")
}

func (s *Server) deleteFAQ(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "faq", func(id int64) bool { return s.faqs.remove(id) })
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	var p models.ConsultationOrderListParams
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.orders.page(p.Page, func(o *models.ConsultationOrder) bool {
		return contains(o.OrderCode, p.OrderCode) &&
			contains(o.Consultant, p.Consultant) &&
			(p.Status == "" || string(o.Status) == p.Status)
	}))
}

func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request) {
	var p models.Page
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, s.feedback.page(p, nil))
}

// menus and industries

func (s *Server) menuTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, buildTree(s.menus.items, 0))
}

func buildTree(menus []models.Menu, parent int64) []models.Menu {
	out := []models.Menu{}
	for _, m := range menus {
		if m.PID == parent {
			m.Children = buildTree(menus, m.ID)
			out = append(out, m)
		}
	}
	return out
}

func (s *Server) listMenus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, append([]models.Menu{}, s.menus.items...))
}

func (s *Server) createMenu(w http.ResponseWriter, r *http.Request) {
	var m models.Menu
	if !decode(w, r, &m) {
		return
	}
	if m.Name == "" {
		writeError(w, http.StatusBadRequest, 40005, "menu name is required", requestID(r))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m.Children = nil
	s.menus.insert(m)
	writeOK(w, r, "menu created")
}

func (s *Server) editMenu(w http.ResponseWriter, r *http.Request) {
	var m models.Menu
	if !decode(w, r, &m) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.menus.find(m.ID)
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "menu not found", requestID(r))
		return
	}
	m.Children = nil
	*existing = m
	writeOK(w, r, "menu updated")
}

func (s *Server) deleteMenu(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "menu", func(id int64) bool { return s.menus.remove(id) })
}

func (s *Server) listIndustries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, r, append([]models.Industry{}, s.industries.items...))
}

// deleteFrom handles the {id} body shared by every delete endpoint.
func (s *Server) deleteFrom(w http.ResponseWriter, r *http.Request, what string, remove func(int64) bool) {
	var p models.IDPayload
	if !decode(w, r, &p) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !remove(p.ID) {
		writeError(w, http.StatusNotFound, http.StatusNotFound, what+" not found", requestID(r))
		return
	}
	writeOK(w, r, what+" deleted")
}
