package main

import (
	"context"

	"github.com/InsulaLabs/counsel/models"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func usersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "List, enable, disable and export end users",
	}

	var listParams models.UserListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.api.ListUsers(cmd.Context(), listParams)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, u := range page.List {
				rows = append(rows, []string{id(u.ID), u.Username, u.Nickname, u.CompanyName, string(u.Status), ago(u.RegisterTime)})
			}
			return a.printTable(page, []string{"ID", "USERNAME", "NICKNAME", "COMPANY", "STATUS", "REGISTERED"}, rows, page.Total)
		},
	}
	addPageFlags(list, &listParams.Page)
	list.Flags().StringVar(&listParams.Username, "username", "", "Filter by username")
	list.Flags().StringVar(&listParams.CompanyName, "company", "", "Filter by company")

	enable := byIDCmd(a, "enable", "Enable a user", "User enabled", func(ctx context.Context, id int64) (*models.BaseResult, error) {
		return a.api.EnableUser(ctx, id)
	})
	disable := byIDCmd(a, "disable", "Disable a user", "User disabled", func(ctx context.Context, id int64) (*models.BaseResult, error) {
		return a.api.DisableUser(ctx, id)
	})

	var exportParams models.UserExportParams
	export := &cobra.Command{
		Use:   "export",
		Short: "Ask the backend for a user export and print its download link",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.api.ExportUsers(cmd.Context(), exportParams)
			if err != nil {
				return err
			}
			if a.flags.json {
				return printJSON(out)
			}
			success("Export ready: %s (%s)", out.Filename, humanize.Bytes(uint64(max(out.FileSize, 0))))
			info("%s", out.DownloadURL)
			return nil
		},
	}
	export.Flags().StringVar(&exportParams.Username, "username", "", "Only users matching this username")
	export.Flags().StringVar(&exportParams.CompanyName, "company", "", "Only users of this company")

	cmd.AddCommand(list, enable, disable, export)
	return cmd
}
