package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/InsulaLabs/counsel/models"
	"github.com/spf13/cobra"
)

func menusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "menus",
		Aliases: []string{"menu"},
		Short:   "Manage console navigation menus and read the industry list",
	}

	tree := &cobra.Command{
		Use:   "tree",
		Short: "Print the menu tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			menus, err := a.api.MenuTree(cmd.Context())
			if err != nil {
				return err
			}
			if a.flags.json {
				return printJSON(menus)
			}
			printMenus(menus, 0)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List menus flat",
		RunE: func(cmd *cobra.Command, args []string) error {
			menus, err := a.api.ListMenus(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(menus))
			for _, m := range menus {
				rows = append(rows, []string{id(m.ID), id(m.PID), m.Name, m.Path, fmt.Sprint(m.Sort)})
			}
			return a.printTable(menus, []string{"ID", "PARENT", "NAME", "PATH", "SORT"}, rows, 0)
		},
	}

	var createMenu models.Menu
	create := &cobra.Command{
		Use:   "create <name> <path>",
		Short: "Add a menu entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			createMenu.Name, createMenu.Path = args[0], args[1]
			res, err := a.api.CreateMenu(cmd.Context(), createMenu)
			if err != nil {
				return err
			}
			return a.printResult(res, "Menu created")
		},
	}
	menuFlags(create, &createMenu)

	var editMenu models.Menu
	edit := &cobra.Command{
		Use:   "edit <id> <name> <path>",
		Short: "Replace a menu entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if editMenu.ID, err = parseID(args[0]); err != nil {
				return err
			}
			editMenu.Name, editMenu.Path = args[1], args[2]
			res, err := a.api.EditMenu(cmd.Context(), editMenu)
			if err != nil {
				return err
			}
			return a.printResult(res, "Menu updated")
		},
	}
	menuFlags(edit, &editMenu)

	industries := &cobra.Command{
		Use:   "industries",
		Short: "List the industry dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.api.ListIndustries(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, in := range list {
				rows = append(rows, []string{id(in.ID), in.Name})
			}
			return a.printTable(list, []string{"ID", "NAME"}, rows, 0)
		},
	}

	cmd.AddCommand(tree, list, create, edit, industries,
		byIDCmd(a, "delete", "Delete a menu entry", "Menu deleted", func(ctx context.Context, id int64) (*models.BaseResult, error) {
			return a.api.DeleteMenu(ctx, id)
		}),
	)
	return cmd
}

func menuFlags(cmd *cobra.Command, m *models.Menu) {
	f := cmd.Flags()
	f.Int64Var(&m.PID, "parent", 0, "Parent menu id")
	f.StringVar(&m.Icon, "icon", "", "Icon name")
	f.StringVar(&m.Mark, "mark", "", "Permission mark")
	f.StringVar(&m.Component, "component", "", "Front-end component")
	f.IntVar(&m.Sort, "sort", 0, "Sort position")
	f.IntVar(&m.Show, "show", 1, "1 to show, 2 to hide")
	f.IntVar(&m.Type, "type", 1, "Menu type")
}

func printMenus(menus []models.Menu, depth int) {
	for _, m := range menus {
		fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth), m.Name, dimStyle.Render(fmt.Sprintf("%s #%d", m.Path, m.ID)))
		printMenus(m.Children, depth+1)
	}
}
