package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Terminal studio for PRISM role profiles",
	Long: "PRISM builds role profiles: pick a profession, department and role, rate SKIVE " +
		"competencies, write day-to-day activities, KRAs and objectives, and view the archetype.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to prism.yaml (default $XDG_CONFIG_HOME/prism/prism.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PRISM_DB env var)")
	rootCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(taxonomyCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}
