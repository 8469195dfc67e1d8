package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		a.close()
		errorMsg("%s", describe(err))
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "counselctl",
		Short: "Admin console for the counseling services backend",
		Long: `counselctl manages counselors, companies, users, activities, evaluations,
questionnaires, FAQs, orders and feedback on the counseling services backend.

The backend address comes from the config file, COUNSEL_BASE_URL or --base-url.
The bearer token is read from the environment variable named by tokenEnv
(COUNSEL_TOKEN unless configured otherwise).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.configPath, "config", "", "Path to the console configuration file (default ./counsel.yaml when present)")
	flags.StringVar(&a.flags.baseURL, "base-url", "", "Backend base URL, overrides config and environment")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&a.flags.plain, "plain", false, "Disable the spinner and colours")
	flags.BoolVar(&a.flags.json, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		configCmd(a),
		whoamiCmd(a),
		counselorsCmd(a),
		companiesCmd(a),
		usersCmd(a),
		activitiesCmd(a),
		evaluationsCmd(a),
		questionnairesCmd(a),
		faqsCmd(a),
		ordersCmd(a),
		feedbackCmd(a),
		menusCmd(a),
		uploadCmd(a),
		mockCmd(a),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Annotations: offline,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("counselctl", version)
		},
	}
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func warn(format string, args ...any) {
	fmt.Printf("%s %s\n", color.YellowString("⚠"), fmt.Sprintf(format, args...))
}

func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("✗"), fmt.Sprintf(format, args...))
}
