package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/InsulaLabs/counsel/models"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
)

func questionnairesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "questionnaires",
		Aliases: []string{"questionnaire", "q"},
		Short:   "List and delete questionnaires",
	}

	var params models.QuestionnaireListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List questionnaires",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.api.ListQuestionnaires(cmd.Context(), params)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, q := range page.List {
				rows = append(rows, []string{id(q.ID), q.Title, string(q.Status), yesNo(q.IsAnonymous), q.CreatorName})
			}
			return a.printTable(page, []string{"ID", "TITLE", "STATUS", "ANONYMOUS", "CREATOR"}, rows, page.Total)
		},
	}
	addPageFlags(list, &params.Page)
	list.Flags().StringVar(&params.Title, "title", "", "Filter by title")

	cmd.AddCommand(list, byIDCmd(a, "delete", "Delete a questionnaire", "Questionnaire deleted", func(ctx context.Context, id int64) (*models.BaseResult, error) {
		return a.api.DeleteQuestionnaire(ctx, id)
	}))
	return cmd
}

func faqsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "faqs",
		Aliases: []string{"faq"},
		Short:   "Manage frequently asked questions",
	}

	var params models.FAQListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List FAQs",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.api.ListFAQs(cmd.Context(), params)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, f := range page.List {
				rows = append(rows, []string{id(f.ID), f.Question, f.Category, f.Status, yesNo(f.IsFeatured)})
			}
			return a.printTable(page, []string{"ID", "QUESTION", "CATEGORY", "STATUS", "FEATURED"}, rows, page.Total)
		},
	}
	addPageFlags(list, &params.Page)
	list.Flags().StringVar(&params.Keyword, "keyword", "", "Search question and answer")
	list.Flags().StringVar(&params.Category, "category", "", "Filter by category")

	var createParams models.FAQParams
	var createMD string
	create := &cobra.Command{
		Use:   "create <question>",
		Short: "Create a FAQ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			createParams.Question = args[0]
			if err := answerFromMarkdown(&createParams, createMD); err != nil {
				return err
			}
			res, err := a.api.CreateFAQ(cmd.Context(), createParams)
			if err != nil {
				return err
			}
			return a.printResult(res, "FAQ created")
		},
	}
	faqFlags(create, &createParams, &createMD)

	var editParams models.FAQParams
	var editMD string
	edit := &cobra.Command{
		Use:   "edit <id> <question>",
		Short: "Replace a FAQ",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if editParams.ID, err = parseID(args[0]); err != nil {
				return err
			}
			editParams.Question = args[1]
			if err := answerFromMarkdown(&editParams, editMD); err != nil {
				return err
			}
			res, err := a.api.EditFAQ(cmd.Context(), editParams)
			if err != nil {
				return err
			}
			return a.printResult(res, "FAQ updated")
		},
	}
	faqFlags(edit, &editParams, &editMD)

	status := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a FAQ's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			faqID, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.api.ToggleFAQStatus(cmd.Context(), models.ToggleFAQStatusParams{ID: faqID, Status: args[1]})
			if err != nil {
				return err
			}
			return a.printResult(res, "FAQ status set to "+args[1])
		},
	}

	cmd.AddCommand(list, create, edit, status, byIDCmd(a, "delete", "Delete a FAQ", "FAQ deleted", func(ctx context.Context, id int64) (*models.BaseResult, error) {
		return a.api.DeleteFAQ(ctx, id)
	}))
	return cmd
}

func faqFlags(cmd *cobra.Command, p *models.FAQParams, markdownPath *string) {
	f := cmd.Flags()
	f.StringVar(&p.Answer, "answer", "", "Answer as HTML")
	f.StringVar(markdownPath, "answer-md", "", "Read the answer from a markdown file")
	f.StringVar(&p.Category, "category", "", "Category")
	f.StringVar(&p.Status, "status", "", "Status")
	f.IntVar(&p.OrderIndex, "order", 0, "Sort position")
	f.BoolVar(&p.IsFeatured, "featured", false, "Feature the question")
	f.StringVar(&p.Tags, "tags", "", "Comma separated tags")
	f.StringVar(&p.Keywords, "keywords", "", "Comma separated search keywords")
	cmd.MarkFlagsMutuallyExclusive("answer", "answer-md")
}

// answerFromMarkdown renders the markdown file at path into the answer. The
// backend stores answers as HTML.
func answerFromMarkdown(p *models.FAQParams, path string) error {
	if path == "" {
		if strings.TrimSpace(p.Answer) == "" {
			return fmt.Errorf("an answer is required: use --answer or --answer-md")
		}
		return nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	p.Answer = buf.String()
	return nil
}

func ordersCmd(a *app) *cobra.Command {
	var params models.ConsultationOrderListParams
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "List consultation orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.api.ListConsultationOrders(cmd.Context(), params)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, o := range page.List {
				rows = append(rows, []string{o.OrderCode, o.Consultant, o.Customer, o.ConsultationMethod, string(o.Status), o.AppointmentTime})
			}
			return a.printTable(page, []string{"ORDER", "CONSULTANT", "CUSTOMER", "METHOD", "STATUS", "APPOINTMENT"}, rows, page.Total)
		},
	}
	addPageFlags(cmd, &params.Page)
	cmd.Flags().StringVar(&params.Consultant, "consultant", "", "Filter by consultant")
	cmd.Flags().StringVar(&params.Status, "status", "", "Filter by status")
	return cmd
}

func feedbackCmd(a *app) *cobra.Command {
	var page models.Page
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "List user feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.api.ListFeedback(cmd.Context(), page)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(out.List))
			for _, f := range out.List {
				rows = append(rows, []string{id(f.ID), f.Title, f.FeedbackUser, ago(f.FeedbackTime)})
			}
			return a.printTable(out, []string{"ID", "TITLE", "FROM", "WHEN"}, rows, out.Total)
		},
	}
	addPageFlags(cmd, &page)
	return cmd
}
