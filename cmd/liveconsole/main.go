// Package main provides the liveconsole CLI entry point.
// liveconsole is an interactive command console for the AbletonOSC remote script.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"liveconsole/internal/completion"
	"liveconsole/internal/config"
	"liveconsole/internal/logger"
	"liveconsole/internal/output"
	"liveconsole/internal/shell"
	"liveconsole/internal/transport"
	"liveconsole/internal/version"
)

var detailed bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "liveconsole",
	Short: "Interactive OSC console for Ableton Live",
	Long: `liveconsole sends OSC commands to the AbletonOSC remote script and prints the replies.
Type an address followed by parameters, e.g. /live/song/get/tempo, or a macro such as MUTE_ALL.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		if detailed {
			fmt.Println(version.GetDetailedVersion())
			return
		}
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyHostname, transport.DefaultHost, "Host running Ableton Live with AbletonOSC")
	flags.Int(config.KeyPort, transport.DefaultPort, "UDP port AbletonOSC listens on")
	flags.Int(config.KeyListenPort, transport.DefaultListenPort, "Local UDP port for replies")
	flags.Duration(config.KeyTimeout, transport.DefaultTimeout, "How long to wait for a reply")
	flags.BoolP(config.KeyVerbose, "v", false, "Log every OSC message sent and received")
	flags.String(config.KeyLogLevel, "", "Set log level (debug|info|warn|error) [default: warn]")
	flags.String(config.KeyLogFile, "", "Write logs to file instead of stderr")
	flags.Bool(config.KeyTestMode, false, "Plain output and info-level logs for scripted runs")
	flags.String(config.KeyConfigFile, "", "Config file (yaml, toml or json)")

	config.SetDefaults(viper.GetViper())
	for _, key := range []string{
		config.KeyHostname, config.KeyPort, config.KeyListenPort, config.KeyTimeout, config.KeyVerbose,
		config.KeyLogLevel, config.KeyLogFile, config.KeyTestMode, config.KeyConfigFile,
	} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", key, err)
			os.Exit(1)
		}
	}

	versionCmd.Flags().BoolVar(&detailed, "detailed", false, "Show build details")
	rootCmd.AddCommand(versionCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(viper.GetString(config.KeyLogLevel), viper.GetString(config.KeyLogFile), viper.GetBool(config.KeyTestMode)); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runConsole(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if cfg.LogLevel != "" || cfg.LogFile != "" {
		// A config file may set logging that the flags did not.
		if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
			return fmt.Errorf("configure logger: %w", err)
		}
	}
	logger.Info("Starting liveconsole", "version", version.GetVersion(), "remote", fmt.Sprintf("%s:%d", cfg.Hostname, cfg.Port))

	client, err := transport.Dial(cfg.TransportConfig())
	if err != nil {
		logger.Fatal("Failed to open OSC transport", "error", err)
	}
	defer func() { _ = client.Close() }()

	printer := output.NewConsolePrinter(os.Stdout, cfg.TestMode)
	output.SetGlobalPrinter(printer)

	reader, err := shell.NewLineReader(completion.Default(), printer)
	if err != nil {
		logger.Fatal("Failed to open line reader", "error", err)
	}
	defer func() { _ = reader.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = reader.Close()
	}()

	return shell.New(client, reader, printer).Run(ctx)
}
