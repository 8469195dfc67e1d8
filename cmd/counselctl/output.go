package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/InsulaLabs/counsel/api"
	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/config"
	"github.com/InsulaLabs/counsel/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// printTable writes rows as a bordered table, or as JSON with --json.
func (a *app) printTable(v any, headers []string, rows [][]string, total int) error {
	if a.flags.json {
		return printJSON(v)
	}
	if len(rows) == 0 {
		info("no records")
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Println(t.Render())
	if total > len(rows) {
		fmt.Println(dimStyle.Render(fmt.Sprintf("showing %d of %d", len(rows), total)))
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult reports a write call.
func (a *app) printResult(res *models.BaseResult, what string) error {
	if a.flags.json {
		return printJSON(res)
	}
	msg := what
	if res != nil && res.Message != "" {
		msg = fmt.Sprintf("%s (%s)", what, res.Message)
	}
	success("%s", msg)
	return nil
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

// ago renders a unix timestamp relative to now.
func ago(unix int64) string {
	if unix <= 0 {
		return "-"
	}
	return humanize.Time(time.Unix(unix, 0))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseID(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%q is not a valid id", s)
	}
	return v, nil
}

// describe turns an error into the line shown to the operator.
func describe(err error) string {
	var (
		apiErr  *client.APIError
		limited *client.ErrRateLimited
	)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "not signed in: set the token environment variable (" + config.DefaultTokenEnv + " by default)"
	case errors.Is(err, client.ErrForbidden):
		return "the signed-in operator may not do this"
	case errors.Is(err, config.ErrBaseURLMissing):
		return "no backend configured: pass --base-url, set " + config.BaseURLEnv + " or run 'counselctl config generate'"
	case errors.As(err, &limited):
		return fmt.Sprintf("rate limited by the backend, retry in %s", limited.RetryAfter)
	case errors.As(err, &apiErr):
		if apiErr.RequestID != "" {
			return fmt.Sprintf("%s (code %d, rid %s)", apiErr.Message, apiErr.Code, apiErr.RequestID)
		}
		return fmt.Sprintf("%s (code %d)", apiErr.Message, apiErr.Code)
	case errors.Is(err, api.ErrInvalidID):
		return "ids must be positive"
	}
	return err.Error()
}
