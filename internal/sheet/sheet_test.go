package sheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workbook(t *testing.T, headers []string, rows [][]string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, headers, rows))
	return &buf
}

func TestInspectCleanSheet(t *testing.T) {
	buf := workbook(t, []string{"counselor_name", "phone", "school"}, [][]string{
		{"Lin Wei", "138 0000 0001", "Fudan"},
		{"Zhao Min", "138-0000-0002", "Tsinghua"},
	})

	s, err := Inspect(buf)
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", s.Sheet)
	assert.Equal(t, []string{"counselor_name", "phone", "school"}, s.Headers)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, 2, s.Rows[0].Line)
	assert.Equal(t, "Lin Wei", s.Rows[0].Name)
	assert.Equal(t, "13800000001", s.Rows[0].Phone)
	assert.Equal(t, "Fudan", s.Rows[0].Values["school"])
	assert.Empty(t, s.Problems())
	assert.True(t, s.Valid())
}

func TestInspectFindsProblems(t *testing.T) {
	buf := workbook(t, []string{"姓名", "手机号"}, [][]string{
		{"王芳", "13900000000"},
		{"", "13900000001"},
		{"", ""},
		{"李雷", "139 0000 0000"},
	})

	s, err := Inspect(buf)
	require.NoError(t, err)

	assert.Len(t, s.Rows, 3, "blank rows are skipped")
	assert.Equal(t, []int{3}, s.BlankNames)
	assert.Equal(t, map[string][]int{"13900000000": {2, 5}}, s.DuplicatePhones)
	assert.Equal(t, []string{
		"row 3: name is blank",
		"phone 13900000000 appears on rows 2, 5",
	}, s.Problems())
	assert.False(t, s.Valid())
}

func TestInspectMissingColumns(t *testing.T) {
	buf := workbook(t, []string{"school"}, nil)

	s, err := Inspect(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"counselor_name", "phone"}, s.MissingColumns)
	assert.Equal(t, []string{
		`missing column "counselor_name"`,
		`missing column "phone"`,
		"no data rows",
	}, s.Problems())
}

func TestInspectRejectsNonWorkbook(t *testing.T) {
	_, err := Inspect(strings.NewReader("name,phone\nLin,1\n"))
	require.Error(t, err)
}

func TestTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Template(&buf))

	s, err := Inspect(&buf)
	require.NoError(t, err)
	assert.Equal(t, TemplateHeaders, s.Headers)
	assert.Empty(t, s.MissingColumns)
	assert.Empty(t, s.Rows)
}
