package main

import (
	"fmt"
	"os"

	"fihealth/internal/di"
	"fihealth/internal/structures"

	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

var flags structures.CliFlags

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fihealth",
	Short: "FI-Health regional status dashboard",
	Long: `fihealth keeps the sanity status of every FIWARE Lab region, receives
Context Broker notifications and forwards them to the region mailing lists
and to the monitoring system.`,
	Version:      Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := di.InitApp(&flags)
		return err
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("fihealth version %s\nCommit: %s\n", Version, Commit))

	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config/fihealth.yml", "path to the YAML configuration file")
	rootCmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "log to console as well as to files")
	rootCmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "override logger.level")
	rootCmd.Flags().IntVarP(&flags.ListenPort, "listen-port", "p", 0, "override webServer.port")
}
