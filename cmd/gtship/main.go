package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/gtship/internal/cliconfig"
)

const longHelp = `Report GPS fixes to an OpenGTS server using the $GPRMC GET protocol.

Fixes are read from an NMEA log, a serial GPS receiver, or a spool directory
of .nmea files, grouped into batches and delivered in the background, one
HTTP request per fix. A full delivery queue drops the batch rather than
stalling the reader.

Configuration is read from $HOME/.gtship/config.toml (or --config, TOML or
YAML), then GTSHIP_* environment variables, then command-line flags.`

var exampleUsage = strings.TrimSpace(`
  gtship --host gts.example.com --device-id truck-7 --nmea-file track.nmea
  gtship --host gts.example.com --device-id truck-7 --serial /dev/ttyUSB0 --baud 9600
  gtship --config /etc/gtship.yaml --watch-dir /var/spool/gps
  gtship encode --lat 45 --lon -73 --speed 5 --bearing 90
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	// loadConfig layers file and environment values under explicitly set flags.
	loadConfig := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}

		return cliconfig.ApplyEnvConfig(&cfg, changed)
	}

	root := &cobra.Command{
		Use:           "gtship",
		Short:         "Report GPS fixes to an OpenGTS server",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log = cliconfig.ApplyLogLevel(log, cfg.LogLevel)
			log.Info().Interface("config", cfg).Msg("configuration")

			return run(cfg, log)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.gtship/config.toml)")
	pf.StringVar(&cfg.Host, "host", cfg.Host, "OpenGTS server host")
	pf.IntVar(&cfg.Port, "port", cfg.Port, "OpenGTS server port (0 omits it from the URL)")
	pf.StringVar(&cfg.Path, "path", cfg.Path, "gprmc servlet path")
	pf.StringVar(&cfg.DeviceID, "device-id", cfg.DeviceID, "device id reported as id and dev")
	pf.StringVar(&cfg.AccountName, "account", cfg.AccountName, "account name (defaults to the device id)")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	f := root.Flags()
	f.StringVar(&cfg.NMEAFile, "nmea-file", cfg.NMEAFile, "report every fix in an NMEA log file, then exit")
	f.StringVar(&cfg.SerialPort, "serial", cfg.SerialPort, "read fixes from a serial GPS receiver")
	f.IntVar(&cfg.SerialBaud, "baud", cfg.SerialBaud, "serial baud rate")
	f.StringVar(&cfg.WatchDir, "watch-dir", cfg.WatchDir, "report .nmea files dropped into a spool directory")
	f.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "fixes per batch")
	f.DurationVar(&cfg.SendInterval, "send-interval", cfg.SendInterval, "flush a partial batch after this long")
	f.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per request")
	f.IntVar(&cfg.QueueCapacity, "queue-capacity", cfg.QueueCapacity, "batches that may wait for delivery")
	f.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "how long to wait for the batch in flight on exit")
	f.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "log request URLs instead of sending them")
	if err := f.MarkHidden("queue-capacity"); err != nil {
		log.Info().Err(err).Msg("failed to hide queue-capacity flag")
	}

	root.AddCommand(newEncodeCmd(&cfg, loadConfig))
	root.AddCommand(newVerifyCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("gtship")
		os.Exit(1)
	}
}
