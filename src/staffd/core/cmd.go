// Package core provides the command and server functionality for staffd.
package core

import (
	"fmt"
	"os"

	"github.com/bitswalk/staffdb/src/common/cli"
	"github.com/bitswalk/staffdb/src/common/logs"
	"github.com/bitswalk/staffdb/src/common/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// VersionInfo holds version information - set at build time via ldflags
	VersionInfo = version.New()

	// Global logger instance
	log = logs.NewDefault()

	// Configuration file path
	cfgFile string
)

// Linker variables - these are set via ldflags at build time
// They must be initialized as empty strings or literals for ldflags to work
var (
	Version        = "dev"
	ReleaseVersion = "0.0.0"
	BuildDate      = "unknown"
	GitCommit      = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "staffd",
	Short: "Department and employee records server",
	Long: `staffd serves department and employee records over HTTP.

Records live in an in-memory SQLite store that is loaded from disk on
start and persisted back on shutdown. Snapshots can be pushed to local
or S3-compatible storage with the backup commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute runs the root command
func Execute() {
	// Populate VersionInfo from linker variables
	VersionInfo.Version = Version
	VersionInfo.ReleaseVersion = ReleaseVersion
	VersionInfo.BuildDate = BuildDate
	VersionInfo.GitCommit = GitCommit

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Configuration file flag
	cli.RegisterConfigFlag(rootCmd, &cfgFile, "/etc/staffdb/staffd.yaml")

	// Logging flags (using common helper)
	cli.RegisterLogFlags(rootCmd, logs.OutputStderr)

	// Server flags
	rootCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	rootCmd.Flags().StringP("bind", "b", "0.0.0.0", "Address to bind to")

	// Database flags, shared with the backup commands
	rootCmd.PersistentFlags().String("db-driver", "sqlite3", "SQLite driver: 'sqlite3' (cgo) or 'sqlite' (pure Go)")
	rootCmd.PersistentFlags().String("db-path", "~/.staffd/staffd.db", "Path to persist database on shutdown")
	rootCmd.PersistentFlags().Bool("db-load", true, "Load the persisted database on start")

	// Storage flags
	rootCmd.PersistentFlags().String("storage-type", "local", "Backup storage backend type: 'local' or 's3'")
	rootCmd.PersistentFlags().String("storage-path", "~/.staffd/backups", "Local storage path (for local backend)")

	// S3 Storage flags
	rootCmd.PersistentFlags().String("s3-endpoint", "", "S3-compatible storage endpoint URL")
	rootCmd.PersistentFlags().String("s3-region", "us-east-1", "S3 region")
	rootCmd.PersistentFlags().String("s3-bucket", "staffd-backups", "S3 bucket for backups")
	rootCmd.PersistentFlags().String("s3-access-key", "", "S3 access key ID")
	rootCmd.PersistentFlags().String("s3-secret-key", "", "S3 secret access key")
	rootCmd.PersistentFlags().Bool("s3-path-style", true, "Use path-style addressing for S3")

	// Bind flags to viper
	_ = cli.BindFlag(rootCmd, "port", "server.port")
	_ = cli.BindFlag(rootCmd, "bind", "server.bind")
	_ = cli.BindPersistentFlag(rootCmd, "db-driver", "database.driver")
	_ = cli.BindPersistentFlag(rootCmd, "db-path", "database.path")
	_ = cli.BindPersistentFlag(rootCmd, "db-load", "database.load_on_start")
	_ = cli.BindPersistentFlag(rootCmd, "storage-type", "storage.type")
	_ = cli.BindPersistentFlag(rootCmd, "storage-path", "storage.local.path")
	_ = cli.BindPersistentFlag(rootCmd, "s3-endpoint", "storage.s3.endpoint")
	_ = cli.BindPersistentFlag(rootCmd, "s3-region", "storage.s3.region")
	_ = cli.BindPersistentFlag(rootCmd, "s3-bucket", "storage.s3.bucket")
	_ = cli.BindPersistentFlag(rootCmd, "s3-access-key", "storage.s3.access_key_id")
	_ = cli.BindPersistentFlag(rootCmd, "s3-secret-key", "storage.s3.secret_access_key")
	_ = cli.BindPersistentFlag(rootCmd, "s3-path-style", "storage.s3.use_path_style")

	// Set defaults
	setDefaults(viper.GetViper())

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(backupCmd)
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	opts := cli.DefaultConfigOptions("staffd", "STAFFD")
	opts.SearchPaths = append(opts.SearchPaths, "~/.staffd")
	opts.ConfigFile = cfgFile

	if err := cli.InitConfig(opts); err != nil {
		return err
	}

	// Initialize logger using common helper
	log = cli.InitLogger("staffd")

	return nil
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), VersionInfo.Full())
	},
}
