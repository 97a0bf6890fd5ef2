package cmd

import (
	"context"
	"fmt"

	"github.com/bitswalk/staffdb/src/common/output"
	"github.com/bitswalk/staffdb/src/staffctl/internal/client"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Shows the staffctl client version and optionally the server version.`,
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("server", false, "Also show server version")
}

func runVersion(cmd *cobra.Command, args []string) error {
	showServer, _ := cmd.Flags().GetBool("server")

	format, err := output.ParseFormat(getOutputFormat())
	if err != nil {
		return err
	}

	if format == output.FormatJSON || format == output.FormatYAML {
		result := map[string]interface{}{
			"client": VersionInfo.Map(),
		}
		if showServer {
			if err := initConfig(); err != nil {
				return err
			}
			serverInfo, err := fetchServerVersion()
			if err != nil {
				result["server_error"] = err.Error()
			} else {
				result["server"] = serverInfo
			}
		}
		if format == output.FormatJSON {
			return output.PrintJSON(result)
		}
		return output.PrintYAML(result)
	}

	output.PrintMessage("Client: " + VersionInfo.Full())

	if showServer {
		if err := initConfig(); err != nil {
			return err
		}
		serverInfo, err := fetchServerVersion()
		if err != nil {
			output.PrintMessage(fmt.Sprintf("\nServer: error: %v", err))
		} else {
			output.PrintMessage(fmt.Sprintf("\nServer: %s", serverInfo.Version))
			output.PrintMessage(fmt.Sprintf("  Version:    %s", serverInfo.ReleaseVersion))
			output.PrintMessage(fmt.Sprintf("  Build Date: %s", serverInfo.BuildDate))
			output.PrintMessage(fmt.Sprintf("  Git Commit: %s", serverInfo.GitCommit))
			output.PrintMessage(fmt.Sprintf("  Go Version: %s", serverInfo.GoVersion))
		}
	}

	return nil
}

func fetchServerVersion() (*client.VersionResponse, error) {
	return getClient().Version(context.Background())
}
