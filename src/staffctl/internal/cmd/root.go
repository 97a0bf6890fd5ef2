// Package cmd implements the staffctl commands.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bitswalk/staffdb/src/common/cli"
	"github.com/bitswalk/staffdb/src/common/logs"
	"github.com/bitswalk/staffdb/src/common/output"
	"github.com/bitswalk/staffdb/src/common/version"
	"github.com/bitswalk/staffdb/src/staffctl/internal/client"
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

	// Output format (auto, table, json or yaml)
	outputFormat string

	// API client instance
	apiClient *client.Client
)

// Linker variables - set via ldflags at build time
var (
	Version        = "dev"
	ReleaseVersion = "0.0.0"
	BuildDate      = "unknown"
	GitCommit      = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "staffctl",
	Short: "staffd CLI client",
	Long: `staffctl is the command-line client for staffd.

It manages departments and employees through the staffd REST API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config init for version command without --server flag
		if cmd.Name() == "version" && !cmd.Flags().Changed("server") {
			return nil
		}
		return initConfig()
	},
}

// Execute runs the root command
func Execute() {
	VersionInfo.Version = Version
	VersionInfo.ReleaseVersion = ReleaseVersion
	VersionInfo.BuildDate = BuildDate
	VersionInfo.GitCommit = GitCommit

	if err := rootCmd.Execute(); err != nil {
		output.PrintError(err)
		os.Exit(1)
	}
}

func init() {
	cli.RegisterConfigFlag(rootCmd, &cfgFile, "~/.config/staffdb/staffctl.yaml")

	rootCmd.PersistentFlags().StringP("server", "s", "", "staffd server URL (default: http://localhost:8080)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(output.FormatAuto), "Output format: auto, table, json, yaml")

	cli.RegisterLogFlags(rootCmd, logs.OutputStderr)

	_ = viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))

	viper.SetDefault("server.url", "http://localhost:8080")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(departmentCmd)
	rootCmd.AddCommand(employeeCmd)

	registerCompletions()
}

func registerCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return output.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = departmentEmployeesCmd.RegisterFlagCompletionFunc("source", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"memory", "storage"}, cobra.ShellCompDirectiveNoFileComp
	})

	departmentGetCmd.ValidArgsFunction = completionDepartmentIDs
	departmentUpdateCmd.ValidArgsFunction = completionDepartmentIDs
	departmentDeleteCmd.ValidArgsFunction = completionDepartmentIDs
	departmentEmployeesCmd.ValidArgsFunction = completionDepartmentIDs
	_ = employeeCreateCmd.RegisterFlagCompletionFunc("department-id", completionDepartmentIDs)
	_ = employeeUpdateCmd.RegisterFlagCompletionFunc("department-id", completionDepartmentIDs)
}

func initConfig() error {
	opts := cli.DefaultConfigOptions("staffctl", "STAFFCTL")
	opts.SearchPaths = append(opts.SearchPaths, "~/.staffctl")
	opts.ConfigFile = cfgFile

	if err := cli.InitConfig(opts); err != nil {
		return err
	}

	log = cli.InitLogger("staffctl")
	return nil
}

// getClient returns the API client, creating it if needed
func getClient() *client.Client {
	if apiClient == nil {
		serverURL := viper.GetString("server.url")
		log.Debug("Using server", "url", serverURL)
		apiClient = client.New(serverURL)
	}
	return apiClient
}

// getOutputFormat returns the current output format
func getOutputFormat() string {
	return outputFormat
}

// parseID parses a positive integer id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

// stringIfChanged returns a pointer to the flag value if the flag was set
func stringIfChanged(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// completionDepartmentIDs completes department ids, showing names as descriptions
func completionDepartmentIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	resp, err := getClient().ListDepartments(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	suggestions := make([]string, len(resp.Departments))
	for i, d := range resp.Departments {
		suggestions[i] = strconv.FormatInt(d.ID, 10) + "\t" + d.Name
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
