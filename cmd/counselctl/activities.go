package main

import (
	"context"

	"github.com/InsulaLabs/counsel/models"
	"github.com/spf13/cobra"
)

func activitiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activities",
		Aliases: []string{"activity"},
		Short:   "Manage group activities",
	}

	var listParams models.ActivityListParams
	var enabledOnly, disabledOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case enabledOnly:
				v := true
				listParams.IsEnabled = &v
			case disabledOnly:
				v := false
				listParams.IsEnabled = &v
			}
			page, err := a.api.ListActivities(cmd.Context(), listParams)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.List))
			for _, act := range page.List {
				rows = append(rows, []string{id(act.ID), act.ActivityName, act.Instructor, act.ActivityTime, yesNo(act.IsEnabled)})
			}
			return a.printTable(page, []string{"ID", "NAME", "INSTRUCTOR", "WHEN", "ENABLED"}, rows, page.Total)
		},
	}
	addPageFlags(list, &listParams.Page)
	list.Flags().StringVar(&listParams.ActivityName, "name", "", "Filter by name")
	list.Flags().BoolVar(&enabledOnly, "enabled", false, "Only enabled activities")
	list.Flags().BoolVar(&disabledOnly, "disabled", false, "Only disabled activities")
	list.MarkFlagsMutuallyExclusive("enabled", "disabled")

	var createParams models.ActivityParams
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			createParams.ActivityName = args[0]
			res, err := a.api.CreateActivity(cmd.Context(), createParams)
			if err != nil {
				return err
			}
			return a.printResult(res, "Activity created")
		},
	}
	activityFlags(create, &createParams)

	var editParams models.ActivityParams
	edit := &cobra.Command{
		Use:   "edit <id> <name>",
		Short: "Replace an activity's details",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if editParams.ID, err = parseID(args[0]); err != nil {
				return err
			}
			editParams.ActivityName = args[1]
			res, err := a.api.EditActivity(cmd.Context(), editParams)
			if err != nil {
				return err
			}
			return a.printResult(res, "Activity updated")
		},
	}
	activityFlags(edit, &editParams)

	cmd.AddCommand(list, create, edit,
		byIDCmd(a, "enable", "Enable an activity", "Activity enabled", func(ctx context.Context, id int64) (*models.BaseResult, error) {
			return a.api.EnableActivity(ctx, id)
		}),
		byIDCmd(a, "disable", "Disable an activity", "Activity disabled", func(ctx context.Context, id int64) (*models.BaseResult, error) {
			return a.api.DisableActivity(ctx, id)
		}),
		byIDCmd(a, "delete", "Delete an activity", "Activity deleted", func(ctx context.Context, id int64) (*models.BaseResult, error) {
			return a.api.DeleteActivity(ctx, id)
		}),
	)
	return cmd
}

func activityFlags(cmd *cobra.Command, p *models.ActivityParams) {
	f := cmd.Flags()
	f.StringVar(&p.ActivityContent, "content", "", "Description")
	f.StringVar(&p.Instructor, "instructor", "", "Instructor")
	f.StringVar(&p.ActivityTime, "time", "", "Start time")
	f.StringVar(&p.RegistrationDeadline, "deadline", "", "Registration deadline")
	f.IntVar(&p.Duration, "duration", 0, "Duration in minutes")
	f.IntVar(&p.MinParticipants, "min", 0, "Minimum participants")
	f.IntVar(&p.MaxRegistrations, "max", 0, "Maximum registrations")
	f.BoolVar(&p.IsEnabled, "enable", false, "Enable the activity right away")
}
