package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/InsulaLabs/counsel/internal/sheet"
	"github.com/InsulaLabs/counsel/models"
	"github.com/InsulaLabs/counsel/upload"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func counselorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "counselors",
		Aliases: []string{"counselor", "c"},
		Short:   "Manage counselors, their durations and imports",
	}
	cmd.AddCommand(
		counselorsListCmd(a),
		counselorsCreateCmd(a),
		counselorsEditCmd(a),
		counselorsDeleteCmd(a),
		counselorsStatusCmd(a),
		counselorsImportCmd(a),
		counselorsTemplateCmd(),
		counselorsCitiesCmd(a),
		durationsCmd(a),
	)
	return cmd
}

func addPageFlags(cmd *cobra.Command, p *models.Page) {
	cmd.Flags().IntVar(&p.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&p.Size, "size", 20, "Page size")
}

func counselorsListCmd(a *app) *cobra.Command {
	var params models.CounselorListParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List counselors",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.api.ListCounselors(cmd.Context(), params)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, c := range page.List {
				rows = append(rows, []string{id(c.ID), c.CounselorName, c.Phone, c.Location, string(c.Status), ago(c.CreateTime)})
			}
			return a.printTable(page, []string{"ID", "NAME", "PHONE", "LOCATION", "STATUS", "CREATED"}, rows, page.Total)
		},
	}
	addPageFlags(cmd, &params.Page)
	cmd.Flags().StringVar(&params.CounselorName, "name", "", "Filter by name")
	cmd.Flags().StringVar(&params.Creator, "creator", "", "Filter by creator")
	cmd.Flags().StringVar(&params.Status, "status", "", "Filter by status (enabled, disabled)")
	return cmd
}

func counselorFlags(cmd *cobra.Command, p *models.CounselorParams) {
	f := cmd.Flags()
	f.StringVar(&p.CounselorName, "name", "", "Counselor name")
	f.StringVar(&p.Phone, "phone", "", "Phone number")
	f.StringVar(&p.School, "school", "", "School")
	f.StringVar(&p.Major, "major", "", "Major")
	f.StringVar(&p.PersonalIntro, "intro", "", "Personal introduction")
	f.StringVar(&p.Avatar, "avatar", "", "Avatar URL")
	f.Float64Var(&p.ConsultingPrice, "price", 0, "Consulting price")
	f.StringVar(&p.ConsultingMethod, "method", "", "Consulting method")
	f.StringSliceVar(&p.Specializations, "specialization", nil, "Specialization, repeatable")
	f.StringSliceVar(&p.ExpertiseAreas, "expertise", nil, "Expertise area, repeatable")
	f.StringVar(&p.Location, "location", "", "City")
}

func counselorsCreateCmd(a *app) *cobra.Command {
	var params models.CounselorParams
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a counselor",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.CreateCounselor(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.printResult(res, "Counselor created")
		},
	}
	counselorFlags(cmd, &params)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
	return cmd
}

func counselorsEditCmd(a *app) *cobra.Command {
	var params models.CounselorParams
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a counselor's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if params.ID, err = parseID(args[0]); err != nil {
				return err
			}
			res, err := a.api.EditCounselor(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.printResult(res, "Counselor updated")
		},
	}
	counselorFlags(cmd, &params)
	return cmd
}

func counselorsDeleteCmd(a *app) *cobra.Command {
	return byIDCmd(a, "delete", "Delete a counselor", "Counselor deleted", func(ctx context.Context, id int64) (*models.BaseResult, error) {
		return a.api.DeleteCounselor(ctx, id)
	})
}

func counselorsStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "status <id> <enabled|disabled>",
		Short:     "Enable or disable a counselor",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(models.CounselorEnabled), string(models.CounselorDisabled)},
		RunE: func(cmd *cobra.Command, args []string) error {
			counselorID, err := parseID(args[0])
			if err != nil {
				return err
			}
			status := models.CounselorStatus(args[1])
			if status != models.CounselorEnabled && status != models.CounselorDisabled {
				return fmt.Errorf("status must be %s or %s", models.CounselorEnabled, models.CounselorDisabled)
			}
			res, err := a.api.ToggleCounselorStatus(cmd.Context(), models.ToggleCounselorStatusParams{ID: counselorID, Status: status})
			if err != nil {
				return err
			}
			return a.printResult(res, "Counselor "+string(status))
		},
	}
}

func counselorsImportCmd(a *app) *cobra.Command {
	var checkOnly bool
	cmd := &cobra.Command{
		Use:   "import <workbook.xlsx>",
		Short: "Import counselors from a spreadsheet",
		Long: `Import counselors from an xlsx workbook.

The sheet is checked locally first: it needs a name and a phone column, and
phones must be unique. Use --check to stop after the check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			summary, err := sheet.Inspect(bytes.NewReader(data))
			if err != nil {
				return err
			}
			if problems := summary.Problems(); len(problems) > 0 {
				for _, p := range problems {
					warn("%s", p)
				}
				if !summary.Valid() {
					return fmt.Errorf("%s cannot be imported", filepath.Base(path))
				}
			}
			info("%s: %d rows in sheet %q", filepath.Base(path), len(summary.Rows), summary.Sheet)
			if checkOnly {
				success("Sheet looks importable")
				return nil
			}

			outcome, err := a.api.ImportCounselors(cmd.Context(),
				upload.File{Name: filepath.Base(path), Content: bytes.NewReader(data)},
				upload.WithStatusText(fmt.Sprintf("importing %s (%s)…", filepath.Base(path), humanize.Bytes(uint64(len(data))))),
			)
			if err != nil {
				return err
			}
			if a.flags.json {
				return printJSON(outcome)
			}
			if !outcome.Succeeded() {
				return rejection(outcome.Failure)
			}
			success("Imported %d counselors, skipped %d", outcome.Data.Imported, outcome.Data.Skipped)
			for _, e := range outcome.Data.Errors {
				warn("%s", e)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check the sheet, do not upload it")
	return cmd
}

func counselorsTemplateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:         "template",
		Short:       "Write an empty import workbook",
		Annotations: offline,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := sheet.Template(f); err != nil {
				return err
			}
			success("Wrote %s with columns %s", path, strings.Join(sheet.TemplateHeaders, ", "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "counselors.xlsx", "Where to write the workbook")
	return cmd
}

func counselorsCitiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cities [keyword]",
		Short: "Search the city dictionary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}
			cities, err := a.api.SearchCities(cmd.Context(), keyword)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(cities.List))
			for _, c := range cities.List {
				rows = append(rows, []string{c.Name})
			}
			return a.printTable(cities, []string{"CITY"}, rows, 0)
		},
	}
}

func durationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "durations",
		Short: "List, submit and audit counseling durations",
	}

	var listParams models.CounselingDurationListParams
	list := &cobra.Command{
		Use:   "list <counselor-id>",
		Short: "List the durations submitted for a counselor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if listParams.CounselorID, err = parseID(args[0]); err != nil {
				return err
			}
			page, err := a.api.ListCounselingDurations(cmd.Context(), listParams)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, d := range page.List {
				rows = append(rows, []string{id(d.ID), d.Duration, string(d.AuditStatus), d.OperatorName, ago(d.CreateTime)})
			}
			return a.printTable(page, []string{"ID", "HOURS", "AUDIT", "OPERATOR", "SUBMITTED"}, rows, page.Total)
		},
	}
	addPageFlags(list, &listParams.Page)
	list.Flags().StringVar(&listParams.AuditStatus, "audit-status", "", "Filter by audit status")

	var createParams models.CreateCounselingDurationParams
	create := &cobra.Command{
		Use:   "create <counselor-id>",
		Short: "Submit hours for a counselor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if createParams.CounselorID, err = parseID(args[0]); err != nil {
				return err
			}
			res, err := a.api.CreateCounselingDuration(cmd.Context(), createParams)
			if err != nil {
				return err
			}
			return a.printResult(res, "Duration submitted")
		},
	}
	create.Flags().Float64Var(&createParams.Duration, "hours", 0, "Hours to add")
	create.Flags().StringVar(&createParams.Certificate, "certificate", "", "Certificate URL")
	create.MarkFlagRequired("hours")

	var auditParams models.AuditCounselingDurationParams
	audit := &cobra.Command{
		Use:   "audit <duration-id> <approved|rejected>",
		Short: "Approve or reject a submitted duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if auditParams.ID, err = parseID(args[0]); err != nil {
				return err
			}
			auditParams.AuditStatus = models.AuditStatus(args[1])
			res, err := a.api.AuditCounselingDuration(cmd.Context(), auditParams)
			if err != nil {
				return err
			}
			return a.printResult(res, "Duration "+args[1])
		},
	}
	audit.Flags().StringVar(&auditParams.AuditComment, "comment", "", "Audit comment")

	cmd.AddCommand(list, create, audit)
	return cmd
}

// rejection turns a rejected upload into the command's error.
func rejection(f *upload.Failure) error {
	if f == nil {
		return fmt.Errorf("%s", upload.DefaultFailureMessage)
	}
	if f.RequestID != "" {
		return fmt.Errorf("%s (status %d, code %d, rid %s)", f.Message, f.StatusCode, f.Code, f.RequestID)
	}
	return fmt.Errorf("%s (status %d, code %d)", f.Message, f.StatusCode, f.Code)
}
