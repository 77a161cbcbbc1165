package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stacktrail/guardrail/internal/shared/constants"
)

const (
	defaultScanTimeoutSecs = 5
	defaultScanConcurrency = 4
	defaultScanRateLimit   = 2
	defaultOutputFormat    = formatText
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Scan   ScanConfig
	Output OutputConfig
}

// ScanConfig holds the domain scanner settings.
type ScanConfig struct {
	TimeoutSecs  int
	DKIMSelector string
	Nameservers  []string
	Concurrency  int
	RateLimit    int
	Progress     bool
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string
	Color  bool
}

type configOverrides struct {
	TimeoutSecs  *int
	DKIMSelector string
	Nameservers  []string
	Concurrency  *int
	RateLimit    *int
	Format       string
	Color        *bool
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Scan: ScanConfig{
			TimeoutSecs:  defaultScanTimeoutSecs,
			DKIMSelector: constants.DefaultDKIMSelector,
			Nameservers:  []string{},
			Concurrency:  defaultScanConcurrency,
			RateLimit:    defaultScanRateLimit,
		},
		Output: OutputConfig{
			Format: defaultOutputFormat,
			Color:  true,
		},
	}
}

func loadConfigOverrides() configOverrides {
	overrides := configOverrides{}

	if viper.IsSet("scan.timeout_secs") {
		val := viper.GetInt("scan.timeout_secs")
		overrides.TimeoutSecs = &val
	}

	if viper.IsSet("scan.dkim_selector") {
		overrides.DKIMSelector = viper.GetString("scan.dkim_selector")
	}

	if viper.IsSet("scan.nameservers") {
		overrides.Nameservers = viper.GetStringSlice("scan.nameservers")
	}

	if viper.IsSet("scan.concurrency") {
		val := viper.GetInt("scan.concurrency")
		overrides.Concurrency = &val
	}

	if viper.IsSet("scan.rate_limit") {
		val := viper.GetInt("scan.rate_limit")
		overrides.RateLimit = &val
	}

	if viper.IsSet("output.format") {
		overrides.Format = viper.GetString("output.format")
	}

	if viper.IsSet("output.color") {
		val := viper.GetBool("output.color")
		overrides.Color = &val
	}

	return overrides
}

// applyConfigDefaults merges config file and environment values into the
// runtime config when the user did not explicitly set the matching flag.
func applyConfigDefaults(cmd *cobra.Command) {
	overrides := loadConfigOverrides()
	scanFlags := scanCmd.Flags()
	rootFlags := cmd.Root().PersistentFlags()

	if overrides.TimeoutSecs != nil && *overrides.TimeoutSecs > 0 {
		applyIntDefault(scanFlags, "timeout", *overrides.TimeoutSecs, func(v int) {
			cliConfig.Scan.TimeoutSecs = v
		})
	}

	if overrides.DKIMSelector != "" {
		applyStringDefault(scanFlags, "dkim-selector", overrides.DKIMSelector, func(v string) {
			cliConfig.Scan.DKIMSelector = v
		})
	}

	if len(overrides.Nameservers) > 0 {
		applyStringSliceDefault(scanFlags, "nameserver", overrides.Nameservers, func(v []string) {
			cliConfig.Scan.Nameservers = v
		})
	}

	if overrides.Concurrency != nil && *overrides.Concurrency > 0 {
		applyIntDefault(scanFlags, "concurrency", *overrides.Concurrency, func(v int) {
			cliConfig.Scan.Concurrency = v
		})
	}

	if overrides.RateLimit != nil && *overrides.RateLimit > 0 {
		applyIntDefault(scanFlags, "rate-limit", *overrides.RateLimit, func(v int) {
			cliConfig.Scan.RateLimit = v
		})
	}

	if overrides.Format != "" {
		applyStringDefault(rootFlags, "output", overrides.Format, func(v string) {
			cliConfig.Output.Format = v
		})
	}

	if overrides.Color != nil {
		applyBoolDefault(rootFlags, "no-color", !*overrides.Color, func(v bool) {
			cliConfig.Output.Color = !v
		})
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringDefault(flags *pflag.FlagSet, name, value string, setter func(string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringSliceDefault(flags *pflag.FlagSet, name string, value []string, setter func([]string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(append([]string(nil), value...))
}
