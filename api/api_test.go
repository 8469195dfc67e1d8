package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/internal/mockapi"
	"github.com/InsulaLabs/counsel/internal/sheet"
	"github.com/InsulaLabs/counsel/models"
	"github.com/InsulaLabs/counsel/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testToken = "s3cret"

type APISuite struct {
	suite.Suite
	ctx    context.Context
	mock   *mockapi.Server
	server *httptest.Server
	api    *API
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ctx = context.Background()
	s.mock = mockapi.New(mockapi.WithToken(testToken), mockapi.WithLogger(logger))
	s.server = httptest.NewServer(s.mock.Handler())

	c, err := client.NewClient(&client.Config{
		BaseURL: s.server.URL,
		Token:   client.StaticToken(testToken),
		Logger:  logger,
	})
	s.Require().NoError(err)
	s.api = New(c, upload.New(c, upload.WithLogger(logger)), logger)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) lastBody(path string) map[string]any {
	req, ok := s.mock.LastRequest(path)
	s.Require().True(ok, "no request to %s", path)
	var body map[string]any
	s.Require().NoError(json.Unmarshal(req.Body, &body))
	return body
}

func (s *APISuite) TestAdminProfileMapsUserID() {
	profile, err := s.api.AdminProfile(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), profile.ID)
	s.Equal("1", profile.UserID)
	s.Equal("admin", profile.Username)

	req, _ := s.mock.LastRequest("/admin/detail")
	s.Equal("Bearer "+testToken, req.Authorization)
	s.Equal(http.MethodPost, req.Method)
}

func (s *APISuite) TestCounselorLifecycle() {
	page, err := s.api.ListCounselors(s.ctx, models.CounselorListParams{Page: models.Page{Page: 1, Size: 10}})
	s.Require().NoError(err)
	s.Equal(2, page.Total)

	res, err := s.api.CreateCounselor(s.ctx, models.CounselorParams{
		CounselorName:      "Sun Li",
		Phone:              "13800000009",
		ConsultingPrice:    280,
		AvailableTimeSlots: []models.TimeSlot{{Day: 1, StartHour: 9, EndHour: 12}},
	})
	s.Require().NoError(err)
	s.Equal(http.StatusOK, res.Code)
	s.NotEmpty(res.RID)

	body := s.lastBody("/counselors/create")
	s.NotContains(body, "id")
	s.Equal("Sun Li", body["counselor_name"])

	page, err = s.api.ListCounselors(s.ctx, models.CounselorListParams{Page: models.Page{Page: 1, Size: 10}, CounselorName: "sun"})
	s.Require().NoError(err)
	s.Require().Len(page.List, 1)
	created := page.List[0]
	s.Equal("280", created.ConsultingPrice)

	_, err = s.api.ToggleCounselorStatus(s.ctx, models.ToggleCounselorStatusParams{ID: created.ID, Status: models.CounselorDisabled})
	s.Require().NoError(err)

	_, err = s.api.EditCounselor(s.ctx, models.CounselorParams{ID: created.ID, CounselorName: "Sun Li", Phone: "13800000001"})
	var apiErr *client.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusUnprocessableEntity, apiErr.StatusCode)
	s.Contains(apiErr.Message, "duplicate phone")
	s.NotEmpty(apiErr.RequestID)

	_, err = s.api.DeleteCounselor(s.ctx, created.ID)
	s.Require().NoError(err)
	_, err = s.api.DeleteCounselor(s.ctx, created.ID)
	s.ErrorIs(err, client.ErrNotFound)
}

func (s *APISuite) TestCounselingDurations() {
	_, err := s.api.CreateCounselingDuration(s.ctx, models.CreateCounselingDurationParams{CounselorID: 1, Duration: 1.5, Certificate: "cert.png"})
	s.Require().NoError(err)

	list, err := s.api.ListCounselingDurations(s.ctx, models.CounselingDurationListParams{Page: models.Page{Page: 1, Size: 10}, CounselorID: 1})
	s.Require().NoError(err)
	s.Require().Equal(2, list.Total)

	_, err = s.api.AuditCounselingDuration(s.ctx, models.AuditCounselingDurationParams{ID: list.List[1].ID, AuditStatus: models.AuditApproved})
	s.Require().NoError(err)

	list, err = s.api.ListCounselingDurations(s.ctx, models.CounselingDurationListParams{Page: models.Page{Page: 1, Size: 10}, CounselorID: 1, AuditStatus: string(models.AuditApproved)})
	s.Require().NoError(err)
	s.Equal(1, list.Total)
	s.Equal("1.5", list.List[0].Duration)
}

func (s *APISuite) TestSearchCitiesUsesGet() {
	cities, err := s.api.SearchCities(s.ctx, "shang")
	s.Require().NoError(err)
	s.Equal([]models.City{{Name: "Shanghai"}}, cities.List)

	req, _ := s.mock.LastRequest("/counselors/cities")
	s.Equal(http.MethodGet, req.Method)
	s.Equal("shang", req.Query.Get("keyword"))
}

func (s *APISuite) importSheet(rows [][]string) *upload.Outcome[models.ImportResult] {
	var buf bytes.Buffer
	s.Require().NoError(sheet.Write(&buf, []string{"counselor_name", "phone", "school"}, rows))
	out, err := s.api.ImportCounselors(s.ctx, upload.File{Name: "counselors.xlsx", Content: &buf})
	s.Require().NoError(err)
	return out
}

func (s *APISuite) TestImportCounselorsAccepted() {
	out := s.importSheet([][]string{
		{"Qian Yu", "13900000001", "Wuhan University"},
		{"", "13900000002", ""},
	})

	s.Equal(upload.KindSuccess, out.Kind)
	s.Equal(1, out.Data.Imported)
	s.Equal(1, out.Data.Skipped)
	s.Equal(http.StatusOK, out.Code)
	s.Equal("import succeeded", out.Message)
	s.NotEmpty(out.RequestID)

	req, _ := s.mock.LastRequest(ImportCounselorsPath)
	s.Contains(req.ContentType, "multipart/form-data")
	s.Equal("Bearer "+testToken, req.Authorization)
}

func (s *APISuite) TestImportCounselorsDuplicatePhone() {
	out := s.importSheet([][]string{{"Qian Yu", "13800000001", ""}})

	s.Equal(upload.KindRejected, out.Kind)
	s.Require().NotNil(out.Failure)
	s.Equal(http.StatusUnprocessableEntity, out.Failure.Code)
	s.Contains(out.Failure.Message, "duplicate phone 13800000001")
	s.NotEmpty(out.Failure.RequestID)
}

func (s *APISuite) TestImportCounselorsUnreadableFile() {
	out, err := s.api.ImportCounselors(s.ctx, upload.File{Name: "notes.txt", Content: bytes.NewReader([]byte("not a workbook"))})
	s.Require().NoError(err)
	s.Equal(upload.KindRejected, out.Kind)
	s.Equal(http.StatusBadRequest, out.Failure.Code)
	s.Equal("invalid spreadsheet", out.Failure.Message)
	s.NotEmpty(out.Failure.RequestID)
}

func (s *APISuite) TestCompaniesAndRecharges() {
	_, err := s.api.CreateCompany(s.ctx, models.CreateCompanyParams{CompanyName: "Contoso", RechargeAmount: 500})
	s.Require().NoError(err)

	companies, err := s.api.ListCompanies(s.ctx, models.CompanyListParams{Page: models.Page{Page: 1, Size: 10}, CompanyName: "contoso"})
	s.Require().NoError(err)
	s.Require().Len(companies.List, 1)
	id := companies.List[0].ID

	_, err = s.api.CreateRecharge(s.ctx, models.CreateRechargeParams{CompanyID: id, RechargeAmount: 250, Certificate: "receipt.png"})
	s.Require().NoError(err)

	recharges, err := s.api.ListRecharges(s.ctx, models.RechargeListParams{Page: models.Page{Page: 1, Size: 10}, CompanyID: id})
	s.Require().NoError(err)
	s.Require().Len(recharges.List, 1)
	s.Equal("250.00", recharges.List[0].RechargeAmount)

	_, err = s.api.EditCompany(s.ctx, models.UpdateCompanyParams{ID: id, CompanyName: "Contoso Group"})
	s.Require().NoError(err)
	_, err = s.api.DeleteCompany(s.ctx, id)
	s.Require().NoError(err)
}

func (s *APISuite) TestUserStatusTravelsInQuery() {
	_, err := s.api.DisableUser(s.ctx, 1)
	s.Require().NoError(err)

	req, _ := s.mock.LastRequest("/users/disable")
	s.Equal("1", req.Query.Get("user_id"))
	s.JSONEq(`{}`, string(req.Body))

	users, err := s.api.ListUsers(s.ctx, models.UserListParams{Page: models.Page{Page: 1, Size: 10}, Username: "chen"})
	s.Require().NoError(err)
	s.Require().Len(users.List, 1)
	s.Equal(models.UserInactive, users.List[0].Status)

	_, err = s.api.EnableUser(s.ctx, 1)
	s.Require().NoError(err)
}

func (s *APISuite) TestExportUsersReadsRootFields() {
	export, err := s.api.ExportUsers(s.ctx, models.UserExportParams{CompanyName: "Northwind"})
	s.Require().NoError(err)
	s.Contains(export.DownloadURL, "/downloads/users-")
	s.Equal(int64(4096), export.FileSize)
	s.Equal(http.StatusOK, export.Code)
}

func (s *APISuite) TestActivities() {
	_, err := s.api.CreateActivity(s.ctx, models.ActivityParams{ActivityName: "Mindfulness 101", Duration: 60})
	s.Require().NoError(err)

	_, err = s.api.EnableActivity(s.ctx, 2)
	s.Require().NoError(err)
	req, _ := s.mock.LastRequest("/activities/enable")
	s.Equal("2", req.Query.Get("id"))

	enabled := true
	list, err := s.api.ListActivities(s.ctx, models.ActivityListParams{Page: models.Page{Page: 1, Size: 10}, IsEnabled: &enabled})
	s.Require().NoError(err)
	s.Equal(2, list.Total)

	_, err = s.api.DisableActivity(s.ctx, 2)
	s.Require().NoError(err)
	_, err = s.api.EditActivity(s.ctx, models.ActivityParams{ID: 2, ActivityName: "Mindfulness 102"})
	s.Require().NoError(err)
	_, err = s.api.DeleteActivity(s.ctx, 2)
	s.Require().NoError(err)
}

func (s *APISuite) TestEvaluations() {
	res, err := s.api.CreateEvaluation(s.ctx, models.CreateEvaluationParams{
		Name:  "Workshop review",
		Items: []models.EvaluationItem{{Type: "rating", Title: "Overall"}},
	})
	s.Require().NoError(err)
	s.Equal("evaluation created with 1 items", res.Message)
	s.Equal("unpublished", s.lastBody("/evaluations/create")["publishStatus"])

	list, err := s.api.ListEvaluations(s.ctx, models.EvaluationListParams{Page: models.Page{Page: 1, Size: 10}})
	s.Require().NoError(err)
	s.Equal(2, list.Total)

	data, err := s.api.ListEvaluationData(s.ctx, models.EvaluationDataParams{Page: 1, Size: 10, EvaluationID: 1})
	s.Require().NoError(err)
	s.Require().Len(data.List, 1)
	s.Equal(5, data.List[0].EvaluationScore)
}

func (s *APISuite) TestFAQListUnwrapsNestedEnvelope() {
	_, err := s.api.CreateFAQ(s.ctx, models.FAQParams{Question: "Is it private?", Answer: "<p>Yes.</p>", Keywords: "privacy"})
	s.Require().NoError(err)

	faqs, err := s.api.ListFAQs(s.ctx, models.FAQListParams{Page: models.Page{Page: 1, Size: 10}, Keyword: "privacy"})
	s.Require().NoError(err)
	s.Require().Equal(1, faqs.Total)
	s.Equal("Is it private?", faqs.List[0].Question)

	_, err = s.api.ToggleFAQStatus(s.ctx, models.ToggleFAQStatusParams{ID: faqs.List[0].ID, Status: "inactive"})
	s.Require().NoError(err)
	_, err = s.api.EditFAQ(s.ctx, models.FAQParams{ID: faqs.List[0].ID, Question: "Is it confidential?"})
	s.Require().NoError(err)
	_, err = s.api.DeleteFAQ(s.ctx, faqs.List[0].ID)
	s.Require().NoError(err)
}

func (s *APISuite) TestReadOnlyLists() {
	questionnaires, err := s.api.ListQuestionnaires(s.ctx, models.QuestionnaireListParams{Page: models.Page{Page: 1, Size: 10}})
	s.Require().NoError(err)
	s.Equal(1, questionnaires.Total)
	_, err = s.api.DeleteQuestionnaire(s.ctx, questionnaires.List[0].ID)
	s.Require().NoError(err)

	orders, err := s.api.ListConsultationOrders(s.ctx, models.ConsultationOrderListParams{Page: models.Page{Page: 1, Size: 10}, OrderCode: "CO-"})
	s.Require().NoError(err)
	s.Equal(1, orders.Total)

	feedback, err := s.api.ListFeedback(s.ctx, models.Page{Page: 1, Size: 10})
	s.Require().NoError(err)
	s.Equal(1, feedback.Total)
}

func (s *APISuite) TestMenusAndIndustries() {
	tree, err := s.api.MenuTree(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tree, 2)
	s.Require().Len(tree[0].Children, 1)
	s.Equal("Durations", tree[0].Children[0].Name)

	_, err = s.api.CreateMenu(s.ctx, models.Menu{Name: "Orders", Path: "/orders"})
	s.Require().NoError(err)
	menus, err := s.api.ListMenus(s.ctx)
	s.Require().NoError(err)
	s.Len(menus, 4)

	_, err = s.api.EditMenu(s.ctx, models.Menu{ID: 4, Name: "Consultation orders", Path: "/orders"})
	s.Require().NoError(err)
	_, err = s.api.DeleteMenu(s.ctx, 4)
	s.Require().NoError(err)

	industries, err := s.api.ListIndustries(s.ctx)
	s.Require().NoError(err)
	s.Len(industries, 2)
}

func (s *APISuite) TestRateLimitedCallsAreRetried() {
	s.mock.Throttle(2, 0)

	page, err := s.api.ListFeedback(s.ctx, models.Page{Page: 1, Size: 10})
	s.Require().NoError(err)
	s.Equal(1, page.Total)
	s.Len(s.mock.Requests(), 3)
}

func (s *APISuite) TestRateLimitExhaustsRetries() {
	s.mock.Throttle(10, 0)

	_, err := s.api.ListFeedback(s.ctx, models.Page{Page: 1, Size: 10})
	var limited *client.ErrRateLimited
	s.Require().ErrorAs(err, &limited)
	s.Equal(10, limited.Limit)
	s.Equal(5, limited.Burst)
}

func (s *APISuite) TestUnauthorized() {
	c, err := client.NewClient(&client.Config{BaseURL: s.server.URL, Token: client.StaticToken("wrong")})
	s.Require().NoError(err)

	_, err = New(c, nil, nil).AdminProfile(s.ctx)
	s.ErrorIs(err, client.ErrUnauthorized)
}

func TestArgumentValidation(t *testing.T) {
	a := New(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"delete counselor", func() error { _, err := a.DeleteCounselor(ctx, 0); return err }, ErrInvalidID},
		{"edit counselor", func() error { _, err := a.EditCounselor(ctx, models.CounselorParams{CounselorName: "x"}); return err }, ErrInvalidID},
		{"create counselor", func() error { _, err := a.CreateCounselor(ctx, models.CounselorParams{}); return err }, ErrCounselorNameRequired},
		{"create company", func() error { _, err := a.CreateCompany(ctx, models.CreateCompanyParams{CompanyName: " "}); return err }, ErrCompanyNameRequired},
		{"enable user", func() error { _, err := a.EnableUser(ctx, -1); return err }, ErrInvalidID},
		{"recharge list", func() error { _, err := a.ListRecharges(ctx, models.RechargeListParams{}); return err }, ErrInvalidID},
		{"faq question", func() error { _, err := a.CreateFAQ(ctx, models.FAQParams{}); return err }, ErrQuestionRequired},
		{"evaluation name short", func() error {
			_, err := a.CreateEvaluation(ctx, models.CreateEvaluationParams{Name: "x", Items: []models.EvaluationItem{{Title: "ok"}}})
			return err
		}, ErrEvaluationName},
		{"evaluation no items", func() error {
			_, err := a.CreateEvaluation(ctx, models.CreateEvaluationParams{Name: "Review"})
			return err
		}, ErrEvaluationItems},
		{"evaluation item title", func() error {
			_, err := a.CreateEvaluation(ctx, models.CreateEvaluationParams{Name: "Review", Items: []models.EvaluationItem{{Title: "a"}}})
			return err
		}, ErrEvaluationItemTitle},
		{"import without uploader", func() error {
			_, err := a.ImportCounselors(ctx, upload.File{})
			return err
		}, ErrUploaderMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestEvaluationNameCountsCharacters(t *testing.T) {
	params := models.CreateEvaluationParams{Name: "评价", Items: []models.EvaluationItem{{Title: "总体"}}}
	require.NoError(t, validateEvaluation(&params))
	assert.Equal(t, models.Unpublished, params.PublishStatus)
}

func TestTimeoutSurfacesAsTransportError(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	c, err := client.NewClient(&client.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = New(c, nil, nil).ListFeedback(context.Background(), models.Page{Page: 1, Size: 10})
	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}
