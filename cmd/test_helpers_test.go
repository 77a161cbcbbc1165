package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zaptest"
)

const demoAssessmentYAML = `organization:
  name: Demo Law Firm
  business_type: law_firm
  employee_count: 12
  revenue_range: 1m_5m
  downtime_impact: lose_money
  primary_domain: example.com
answers:
  mfa_all: "yes"
  admin_protection: "yes"
  shared_logins: "no"
  mfa_payments: "yes"
  email_forwarding: "yes"
  file_sharing_limited: partial
  access_review: "yes"
  independent_backups: "yes"
  restore_tested: "yes"
  phishing_training: "yes"
  incident_plan: "yes"
  domain_email_protection: "no"
notes:
  shared_logins: Front desk shares the billing login.
`

// setupTestAppContext installs an AppContext with a test logger and default config.
func setupTestAppContext(t *testing.T) *AppContext {
	t.Helper()

	original := globalAppContext
	appCtx := &AppContext{
		Logger: zaptest.NewLogger(t).Sugar(),
		Config: newCLIConfig(),
	}
	globalAppContext = appCtx
	t.Cleanup(func() {
		globalAppContext = original
	})
	return appCtx
}

// writeTempFile writes content to name inside a fresh temp directory.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// executeCommand runs the root command with args and returns what it wrote to
// stdout. Flags, viper and color state are reset so runs do not leak into each other.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	resetFlags(rootCmd)
	cliConfig.Output.Color = true

	originalNoColor := color.NoColor
	originalCtx := globalAppContext
	t.Cleanup(func() {
		color.NoColor = originalNoColor
		globalAppContext = originalCtx
		viper.Reset()
		resetFlags(rootCmd)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
