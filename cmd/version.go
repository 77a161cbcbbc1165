package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/stacktrail/guardrail/internal/checker"
	"github.com/stacktrail/guardrail/internal/shared/constants"
)

// Version information (injected at build time via -ldflags)
// These default values indicate a development build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// versionInfo is the machine-readable form printed with -o json|yaml.
type versionInfo struct {
	Version        string `json:"version" yaml:"version"`
	GitCommit      string `json:"git_commit" yaml:"git_commit"`
	BuildDate      string `json:"build_date" yaml:"build_date"`
	GoVersion      string `json:"go_version" yaml:"go_version"`
	Platform       string `json:"platform" yaml:"platform"`
	ScannerAgent   string `json:"scanner_user_agent" yaml:"scanner_user_agent"`
	CheckTimeout   string `json:"default_check_timeout" yaml:"default_check_timeout"`
	ExpiryWarnDays int    `json:"cert_expiry_warning_days" yaml:"cert_expiry_warning_days"`
}

func currentVersionInfo() versionInfo {
	return versionInfo{
		Version:        Version,
		GitCommit:      GitCommit,
		BuildDate:      BuildDate,
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		ScannerAgent:   checker.UserAgent,
		CheckTimeout:   constants.DefaultCheckTimeout.String(),
		ExpiryWarnDays: constants.CertExpiryWarningDays,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Display the guardrail build, the scanner identity and its default check limits",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		info := currentVersionInfo()

		return writeOutput(cmd.OutOrStdout(), getAppContext(cmd).Config.Output.Format, info, func(w io.Writer) error {
			if !verbose {
				_, err := fmt.Fprintf(w, "guardrail version %s\n", info.Version)
				return err
			}
			_, err := fmt.Fprintf(w, `guardrail %s
  Git Commit:      %s
  Build Date:      %s
  Go Version:      %s (%s)
  Platform:        %s
  Scanner UA:      %s
  Check Timeout:   %s per check
  Expiry Warning:  %d days
`, info.Version, info.GitCommit, info.BuildDate, info.GoVersion, runtime.Compiler,
				info.Platform, info.ScannerAgent, info.CheckTimeout, info.ExpiryWarnDays)
			return err
		})
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "Show build details and scanner defaults")
}
