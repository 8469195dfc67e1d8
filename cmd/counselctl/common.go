package main

import (
	"context"

	"github.com/InsulaLabs/counsel/models"
	"github.com/spf13/cobra"
)

// byIDCmd builds the many "<verb> <id>" commands that send one id and print
// the write result.
func byIDCmd(a *app, use, short, done string, call func(ctx context.Context, id int64) (*models.BaseResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := call(cmd.Context(), recordID)
			if err != nil {
				return err
			}
			return a.printResult(res, done)
		},
	}
}
