package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stacktrail/guardrail/internal/checker"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configuration and scanner settings",
	Long: `Display guardrail configuration information including:
  - Configuration file in use
  - Effective scan settings and nameservers
  - Platform information`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		cfg := appCtx.Config

		configFile := viper.ConfigFileUsed()
		configState := "✓ (loaded)"
		if configFile == "" {
			homeDir, _ := os.UserHomeDir()
			configFile = filepath.Join(homeDir, configName+".yaml")
			configState = "✗ (using defaults)"
		}

		nameservers := cfg.Scan.Nameservers
		nsSource := "flag/config"
		if len(nameservers) == 0 {
			nameservers = checker.SystemNameservers()
			nsSource = "system"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "guardrail System Information")
		fmt.Fprintln(out, "============================")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Version:            %s\n", Version)
		fmt.Fprintf(out, "Platform:           %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Configuration File: %s %s\n", configFile, configState)
		fmt.Fprintf(out, "Environment Prefix: %s_\n", envPrefix)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Scan Settings:")
		fmt.Fprintf(out, "  Timeout:          %ds per check\n", cfg.Scan.TimeoutSecs)
		fmt.Fprintf(out, "  DKIM Selector:    %s\n", cfg.Scan.DKIMSelector)
		fmt.Fprintf(out, "  Nameservers:      %s (%s)\n", strings.Join(nameservers, ", "), nsSource)
		fmt.Fprintf(out, "  Concurrency:      %d\n", cfg.Scan.Concurrency)
		fmt.Fprintf(out, "  Rate Limit:       %d/s\n", cfg.Scan.RateLimit)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Output Format:      %s\n", cfg.Output.Format)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Example %s:\n", configName+".yaml")
		fmt.Fprintln(out, "  scan:")
		fmt.Fprintln(out, "    timeout_secs: 5")
		fmt.Fprintln(out, "    dkim_selector: google")
		fmt.Fprintln(out, "    nameservers: [\"1.1.1.1:53\"]")
		fmt.Fprintln(out, "  output:")
		fmt.Fprintln(out, "    format: json")

		return nil
	},
}
