// Package cmd provides the CLI commands for the launcher core.
package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/FrogdreamStudios/launcher/cmd/launcher/internal/config"
	"github.com/FrogdreamStudios/launcher/pkg/compat"
	"github.com/FrogdreamStudios/launcher/pkg/fetch"
	"github.com/FrogdreamStudios/launcher/pkg/mojang"
	"github.com/FrogdreamStudios/launcher/pkg/natives"
	"github.com/FrogdreamStudios/launcher/pkg/protocol"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dream-launcher",
	Short: "Dream Launcher core - install and launch game versions",
	Long: `dream-launcher is the backend the desktop launcher drives.

It installs game versions, repairs installs for Apple Silicon, and
launches the game as a supervised child process, streaming structured
events to the controller over standard output.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger = newLogger(cfg.Log.Level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command. Every failure surfaces as one terminal
// JSON object on stdout plus exit code 1; the controller never sees a
// stack trace.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printResult(protocol.Failure(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = "1.0.0"
}

// newLogger builds the stderr JSON logger. Stdout belongs to the
// protocol stream.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printResult(res protocol.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		fmt.Println(`{"success":false,"error":"encode result"}`)
		return
	}
	fmt.Println(string(data))
}

func newResolver() *compat.Resolver {
	r := compat.NewResolver()
	r.RosettaCutoff = cfg.RosettaCutoff()
	return r
}

func newFetcher() *fetch.Client {
	fc := fetch.DefaultConfig()
	fc.Timeout = cfg.FetchTimeout()
	fc.MaxRetries = uint64(cfg.Network.Retries)
	return fetch.NewClient(fc)
}

func newMetaClient(f *fetch.Client) *mojang.Client {
	return mojang.NewClient(f, cfg.Network.ManifestURL, logger)
}

func newPatcherConfig() natives.Config {
	pc := natives.DefaultConfig()
	pc.RegistryURL = cfg.Network.RegistryURL
	return pc
}
