// Package cmd implements the wfp command line: an HTTP facade over the
// WayForPay client and one-shot commands that sign, prepare or send requests.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wayforpay/config"
	"wayforpay/internal"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "wfp",
	Short: "WayForPay client: sign, validate and send payment requests",
	Long: `wfp builds signed WayForPay API requests from field files (JSON or YAML
objects) and either prints them, sends them to the gateway, or renders the
purchase form, link or widget. "wfp serve" exposes the same operations over HTTP.

Merchant credentials come from the config file or MERCHANT_ACCOUNT and
MERCHANT_PASSWORD environment variables.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "config.yml", "path to config file; empty reads environment only")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path != "" {
		if _, err := os.Stat(path); err != nil && !rootCmd.PersistentFlags().Changed("conf") {
			path = ""
		}
	}
	conf, err := config.GetConfig(path)
	if err != nil {
		return nil, err
	}
	if debug {
		conf.IsDebug = true
	}
	return conf, nil
}

func newClient(conf *config.Config) (*internal.Client, error) {
	client, err := internal.NewClientFromConfig(conf)
	if err != nil {
		return nil, err
	}
	client.SetLogger(internal.NewLogger("client", conf.IsDebug, nil))
	return client, nil
}
