// Package cmd defines the command-line interface for year2018.
package cmd

import (
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(mergesCmd)
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(hoursCmd)
	rootCmd.AddCommand(commitsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("name", "", "Display name of the user (defaults to the most readable author name)")
	rootCmd.PersistentFlags().StringSliceP("email", "e", nil, "Email of the user, repeatable (defaults to git config user.email)")
	rootCmd.PersistentFlags().StringSliceP("repo", "r", nil, "Repository path or remote URL, repeatable")
	rootCmd.PersistentFlags().String("scan-dir", "", "Directory whose child repositories are read when no --repo is given (defaults to the parent directory)")
	rootCmd.PersistentFlags().String("base-dir", "", "Directory that relative repo paths and clones resolve against (defaults to the working directory)")
	rootCmd.PersistentFlags().IntP("year", "y", 0, "Calendar year to report on (defaults to the most recent year)")
	rootCmd.PersistentFlags().String("start", "", "Start date (YYYY-MM-DD or RFC3339), instead of --year")
	rootCmd.PersistentFlags().String("end", "", "End date, exclusive (YYYY-MM-DD or RFC3339), instead of --year")
	rootCmd.PersistentFlags().String("timezone", "", "IANA time zone for days and hours (defaults to local time)")
	rootCmd.PersistentFlags().Bool("encrypt", false, "Mask names and repository names in the output")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of repositories read concurrently")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of rows to display")
	rootCmd.PersistentFlags().String("languages-file", "", "YAML file that extends the language and ignored directory tables")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or dot")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
