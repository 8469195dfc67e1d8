package mockapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/InsulaLabs/counsel/internal/sheet"
	"github.com/InsulaLabs/counsel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(opts ...Option) *Server {
	opts = append([]Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }),
	}, opts...)
	return New(opts...)
}

func post(t *testing.T, h http.Handler, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		req.Header[k] = vs
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestPaging(t *testing.T) {
	c := newCollection(func(i *models.Industry) *int64 { return &i.ID },
		models.Industry{Name: "a"}, models.Industry{Name: "b"}, models.Industry{Name: "c"},
	)

	page := c.page(models.Page{Page: 2, Size: 2}, nil)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.List, 1)
	assert.Equal(t, "c", page.List[0].Name)
	assert.Equal(t, int64(3), page.List[0].ID)

	page = c.page(models.Page{Page: 5, Size: 2}, nil)
	assert.Empty(t, page.List)
	assert.NotNil(t, page.List)
}

func TestEnvelopeAndRequestID(t *testing.T) {
	h := newTestServer().Handler()

	rec := post(t, h, "/feedback/list", `{"page":1,"size":10}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.EqualValues(t, 200, body["code"])
	assert.Equal(t, "success", body["message"])
	assert.NotEmpty(t, body["rid"])
	assert.EqualValues(t, 1, body["data"].(map[string]any)["total"])
}

func TestBearerTokenRequired(t *testing.T) {
	h := newTestServer(WithToken("t0k")).Handler()

	rec := post(t, h, "/admin/detail", ``, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(t, h, "/admin/detail", ``, http.Header{"Authorization": {"Bearer t0k"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestThrottle(t *testing.T) {
	s := newTestServer()
	s.Throttle(1, 2*time.Second)
	h := s.Handler()

	rec := post(t, h, "/industry/list", ``, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))

	rec = post(t, h, "/industry/list", ``, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, s.Requests(), 2)
}

func TestMalformedBody(t *testing.T) {
	rec := post(t, newTestServer().Handler(), "/counselors/list", `{"page":"one"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownPath(t *testing.T) {
	rec := post(t, newTestServer().Handler(), "/nope", ``, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no such endpoint", decodeEnvelope(t, rec)["message"])
}

func importRequest(t *testing.T, rows [][]string) *http.Request {
	t.Helper()
	var wb bytes.Buffer
	require.NoError(t, sheet.Write(&wb, []string{"counselor_name", "phone"}, rows))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "counselors.xlsx")
	require.NoError(t, err)
	_, err = part.Write(wb.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/counselors/import-excel", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestImportRejectsDuplicatesWithinSheet(t *testing.T) {
	h := newTestServer().Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, importRequest(t, [][]string{
		{"A", "13700000000"},
		{"B", "13700000000"},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.EqualValues(t, 422, body["code"])
	assert.Equal(t, "duplicate phone 13700000000 on row 2", body["message"])
}

func TestImportAddsCounselors(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, importRequest(t, [][]string{{"A", "13700000000"}, {"B", "13700000001"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeEnvelope(t, rec)["data"].(map[string]any)["imported"])

	list := post(t, h, "/counselors/list", `{"page":1,"size":10}`, nil)
	assert.EqualValues(t, 4, decodeEnvelope(t, list)["data"].(map[string]any)["total"])
}

func TestImportWithoutFile(t *testing.T) {
	rec := post(t, newTestServer().Handler(), "/counselors/import-excel", ``, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "file is required", body["error"])
	assert.NotEmpty(t, body["requestId"])
}
