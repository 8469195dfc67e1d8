package main

import (
	"context"

	"github.com/InsulaLabs/counsel/models"
	"github.com/spf13/cobra"
)

func companiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "companies",
		Aliases: []string{"company"},
		Short:   "Manage client companies and their recharges",
	}

	var listParams models.CompanyListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.api.ListCompanies(cmd.Context(), listParams)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, c := range page.List {
				rows = append(rows, []string{id(c.ID), c.CompanyName, c.Balance, string(c.Status), c.Creator, ago(c.CreateTime)})
			}
			return a.printTable(page, []string{"ID", "NAME", "BALANCE", "STATUS", "CREATOR", "CREATED"}, rows, page.Total)
		},
	}
	addPageFlags(list, &listParams.Page)
	list.Flags().StringVar(&listParams.CompanyName, "name", "", "Filter by name")
	list.Flags().StringVar(&listParams.Creator, "creator", "", "Filter by creator")

	var createParams models.CreateCompanyParams
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			createParams.CompanyName = args[0]
			res, err := a.api.CreateCompany(cmd.Context(), createParams)
			if err != nil {
				return err
			}
			return a.printResult(res, "Company created")
		},
	}
	create.Flags().StringVar(&createParams.NotificationMethod, "notify", "", "Notification method")
	create.Flags().StringVar(&createParams.Banner, "banner", "", "Banner URL")
	create.Flags().Float64Var(&createParams.RechargeAmount, "recharge", 0, "Initial recharge amount")
	create.Flags().StringVar(&createParams.ConsultationAddress, "address", "", "Consultation address")

	var editParams models.UpdateCompanyParams
	edit := &cobra.Command{
		Use:   "edit <id> <name>",
		Short: "Update a company",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if editParams.ID, err = parseID(args[0]); err != nil {
				return err
			}
			editParams.CompanyName = args[1]
			res, err := a.api.EditCompany(cmd.Context(), editParams)
			if err != nil {
				return err
			}
			return a.printResult(res, "Company updated")
		},
	}
	edit.Flags().StringVar(&editParams.NotificationMethod, "notify", "", "Notification method")
	edit.Flags().StringVar(&editParams.Banner, "banner", "", "Banner URL")
	edit.Flags().StringVar(&editParams.ConsultationAddress, "address", "", "Consultation address")

	del := byIDCmd(a, "delete", "Delete a company", "Company deleted", func(ctx context.Context, id int64) (*models.BaseResult, error) {
		return a.api.DeleteCompany(ctx, id)
	})

	cmd.AddCommand(list, create, edit, del, rechargesCmd(a))
	return cmd
}

func rechargesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recharges",
		Short: "List and record company recharges",
	}

	var listParams models.RechargeListParams
	list := &cobra.Command{
		Use:   "list <company-id>",
		Short: "List a company's recharges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if listParams.CompanyID, err = parseID(args[0]); err != nil {
				return err
			}
			page, err := a.api.ListRecharges(cmd.Context(), listParams)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, r := range page.List {
				rows = append(rows, []string{id(r.ID), r.RechargeAmount, string(r.Status), r.Operator, ago(r.RechargeTime)})
			}
			return a.printTable(page, []string{"ID", "AMOUNT", "STATUS", "OPERATOR", "WHEN"}, rows, page.Total)
		},
	}
	addPageFlags(list, &listParams.Page)

	var createParams models.CreateRechargeParams
	create := &cobra.Command{
		Use:   "create <company-id>",
		Short: "Record a recharge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if createParams.CompanyID, err = parseID(args[0]); err != nil {
				return err
			}
			res, err := a.api.CreateRecharge(cmd.Context(), createParams)
			if err != nil {
				return err
			}
			return a.printResult(res, "Recharge recorded")
		},
	}
	create.Flags().Float64Var(&createParams.RechargeAmount, "amount", 0, "Amount recharged")
	create.Flags().StringVar(&createParams.Certificate, "certificate", "", "Payment certificate URL")
	create.MarkFlagRequired("amount")

	cmd.AddCommand(list, create)
	return cmd
}
