package main

import (
	"fmt"

	"github.com/InsulaLabs/counsel/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or generate the console configuration",
	}
	cmd.AddCommand(configGenerateCmd(), configShowCmd(a))
	return cmd
}

func configGenerateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:         "generate",
		Short:       "Write a starter configuration file",
		Annotations: offline,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GenerateConfig(path)
			if err != nil {
				return err
			}
			success("Wrote %s", path)
			info("baseURL: %s", cfg.BaseURL)
			info("the token is read from $%s", cfg.TokenEnv)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", defaultConfigFile, "Where to write the file")
	return cmd
}

func configShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.json {
				return printJSON(a.cfg)
			}
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.AdminProfile(cmd.Context())
			if err != nil {
				return err
			}
			if a.flags.json {
				return printJSON(p)
			}
			success("Signed in as %s (%s)", p.Username, p.RealName)
			info("user id: %s", p.UserID)
			if len(p.Roles) > 0 {
				info("roles:   %v", p.Roles)
			}
			return nil
		},
	}
}
