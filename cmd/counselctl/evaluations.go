package main

import (
	"strconv"

	"github.com/InsulaLabs/counsel/models"
	"github.com/spf13/cobra"
)

func evaluationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "evaluations",
		Aliases: []string{"evaluation", "eval"},
		Short:   "Manage evaluation forms and read their submissions",
	}

	var listParams models.EvaluationListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List evaluation forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.api.ListEvaluations(cmd.Context(), listParams)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, e := range page.List {
				rows = append(rows, []string{id(e.ID), e.Name, string(e.PublishStatus), e.EvaluatorName, e.CreatedAt})
			}
			return a.printTable(page, []string{"ID", "NAME", "PUBLISH", "EVALUATOR", "CREATED"}, rows, page.Total)
		},
	}
	addPageFlags(list, &listParams.Page)
	list.Flags().StringVar(&listParams.Name, "name", "", "Filter by name")

	var dataParams models.EvaluationDataParams
	data := &cobra.Command{
		Use:   "data <evaluation-id>",
		Short: "List the submissions of an evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if dataParams.EvaluationID, err = parseID(args[0]); err != nil {
				return err
			}
			page, err := a.api.ListEvaluationData(cmd.Context(), dataParams)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, d := range page.List {
				rows = append(rows, []string{id(d.ID), d.ConsultantName, d.EvaluatorName, strconv.Itoa(d.EvaluationScore), ago(d.EvaluationTime)})
			}
			return a.printTable(page, []string{"ID", "CONSULTANT", "EVALUATOR", "SCORE", "WHEN"}, rows, page.Total)
		},
	}
	data.Flags().IntVar(&dataParams.Page, "page", 1, "Page number")
	data.Flags().IntVar(&dataParams.Size, "size", 20, "Page size")
	data.Flags().StringVar(&dataParams.ConsultantName, "consultant", "", "Filter by consultant")

	var (
		items     []string
		itemType  string
		required  bool
		published bool
	)
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an evaluation form",
		Long: `Create an evaluation form. Give one --item per question; names and
item titles must be 2 to 200 characters long.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := models.CreateEvaluationParams{Name: args[0]}
			for _, title := range items {
				params.Items = append(params.Items, models.EvaluationItem{Type: itemType, Title: title, IsRequired: required})
			}
			if published {
				params.PublishStatus = models.Published
			}
			res, err := a.api.CreateEvaluation(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.printResult(res, "Evaluation created")
		},
	}
	create.Flags().StringArrayVar(&items, "item", nil, "Item title, repeatable")
	create.Flags().StringVar(&itemType, "type", "rating", "Item type")
	create.Flags().BoolVar(&required, "required", false, "Mark every item required")
	create.Flags().BoolVar(&published, "publish", false, "Publish right away")

	cmd.AddCommand(list, data, create)
	return cmd
}
