package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/config"
	"github.com/InsulaLabs/counsel/internal/mockapi"
	"github.com/InsulaLabs/counsel/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "s3cret"

func newBackend(t *testing.T) (*mockapi.Server, string) {
	t.Helper()
	backend := mockapi.New(
		mockapi.WithToken(testToken),
		mockapi.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	return backend, srv.URL
}

// run executes counselctl against baseURL with the given arguments.
func run(t *testing.T, baseURL string, args ...string) error {
	t.Helper()
	t.Setenv(config.BaseURLEnv, "")
	t.Setenv(config.DefaultTokenEnv, testToken)

	a := &app{}
	t.Cleanup(a.close)
	root := newRootCmd(a)
	root.SetArgs(append([]string{"--plain", "--log-level", "error", "--base-url", baseURL}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func writeWorkbook(t *testing.T, headers []string, rows [][]string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, sheet.Write(&buf, headers, rows))
	path := filepath.Join(t.TempDir(), "counselors.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func lastBody(t *testing.T, backend *mockapi.Server, path string) map[string]any {
	t.Helper()
	req, ok := backend.LastRequest(path)
	require.True(t, ok, "no request to %s", path)
	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	return body
}

func TestWhoami(t *testing.T) {
	backend, url := newBackend(t)
	require.NoError(t, run(t, url, "whoami"))

	req, ok := backend.LastRequest("/admin/detail")
	require.True(t, ok)
	assert.Equal(t, "Bearer "+testToken, req.Authorization)
}

func TestWrongTokenIsReportedAsSignedOut(t *testing.T) {
	_, url := newBackend(t)
	t.Setenv(config.BaseURLEnv, "")
	t.Setenv(config.DefaultTokenEnv, "nope")

	a := &app{}
	t.Cleanup(a.close)
	root := newRootCmd(a)
	root.SetArgs([]string{"--plain", "--log-level", "error", "--base-url", url, "whoami"})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Contains(t, describe(err), "not signed in")
}

func TestImportUploadsCheckedSheet(t *testing.T) {
	backend, url := newBackend(t)
	path := writeWorkbook(t, sheet.TemplateHeaders, [][]string{
		{"Sun Li", "13900000001", "Wuhan University"},
		{"He Yu", "13900000002", "Nankai University"},
	})

	require.NoError(t, run(t, url, "counselors", "import", path))

	req, ok := backend.LastRequest("/counselors/import-excel")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(req.ContentType, "multipart/form-data; boundary="))
}

func TestImportCheckStopsBeforeUpload(t *testing.T) {
	backend, url := newBackend(t)
	path := writeWorkbook(t, sheet.TemplateHeaders, [][]string{{"Sun Li", "13900000001"}})

	require.NoError(t, run(t, url, "counselors", "import", "--check", path))

	_, ok := backend.LastRequest("/counselors/import-excel")
	assert.False(t, ok)
}

func TestImportRefusesSheetWithoutPhoneColumn(t *testing.T) {
	backend, url := newBackend(t)
	path := writeWorkbook(t, []string{"name", "school"}, [][]string{{"Sun Li", "Wuhan University"}})

	err := run(t, url, "counselors", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be imported")

	_, ok := backend.LastRequest("/counselors/import-excel")
	assert.False(t, ok)
}

func TestImportRejectionBecomesError(t *testing.T) {
	_, url := newBackend(t)
	path := writeWorkbook(t, sheet.TemplateHeaders, [][]string{{"Sun Li", "13800000001"}})

	err := run(t, url, "counselors", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "13800000001")
	assert.Contains(t, err.Error(), "status 422")
}

func TestFAQAnswerFromMarkdown(t *testing.T) {
	backend, url := newBackend(t)
	md := filepath.Join(t.TempDir(), "answer.md")
	require.NoError(t, os.WriteFile(md, []byte("# Booking\n\nUse the *counselor* page.\n"), 0o600))

	require.NoError(t, run(t, url, "faqs", "create", "How do I book?", "--answer-md", md, "--category", "booking"))

	body := lastBody(t, backend, "/faqs/create")
	assert.Equal(t, "How do I book?", body["question"])
	assert.Contains(t, body["answer"], "<h1>Booking</h1>")
	assert.Contains(t, body["answer"], "<em>counselor</em>")
}

func TestFAQNeedsAnAnswer(t *testing.T) {
	backend, url := newBackend(t)
	err := run(t, url, "faqs", "create", "How do I book?")
	require.Error(t, err)

	_, ok := backend.LastRequest("/faqs/create")
	assert.False(t, ok)
}

func TestUserStatusCommands(t *testing.T) {
	backend, url := newBackend(t)
	require.NoError(t, run(t, url, "users", "disable", "1"))

	req, ok := backend.LastRequest("/users/disable")
	require.True(t, ok)
	assert.Equal(t, "1", req.Query.Get("user_id"))
}

func TestEvaluationCreateSendsItems(t *testing.T) {
	backend, url := newBackend(t)
	require.NoError(t, run(t, url, "evaluations", "create", "Quarterly review", "--item", "Overall", "--item", "Would recommend"))

	body := lastBody(t, backend, "/evaluations/create")
	assert.Equal(t, "unpublished", body["publishStatus"])
	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestGenericUploadFields(t *testing.T) {
	backend, url := newBackend(t)
	path := writeWorkbook(t, sheet.TemplateHeaders, [][]string{{"Sun Li", "13900000009"}})

	require.NoError(t, run(t, url, "upload", "/counselors/import-excel", path, "--field", "dry_run=true"))
	_, ok := backend.LastRequest("/counselors/import-excel")
	assert.True(t, ok)

	err := run(t, url, "upload", "/counselors/import-excel", path, "--field", "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestConfigGenerateRunsOffline(t *testing.T) {
	out := filepath.Join(t.TempDir(), "counsel.yaml")
	require.NoError(t, run(t, "", "config", "generate", "-o", out))

	cfg, err := config.LoadConfig(out)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTokenEnv, cfg.TokenEnv)

	err = run(t, "", "config", "generate", "-o", out)
	assert.ErrorIs(t, err, config.ErrConfigFileExists)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "7", want: 7},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseID(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
