package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bft-labs/gtship/internal/cliconfig"
	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/pkg/gprmc"
	"github.com/bft-labs/gtship/pkg/sender"
)

type encodeFlags struct {
	lat, lon, alt  float64
	speed, bearing float64
	at             string
}

func newEncodeCmd(cfg *cliconfig.Config, loadConfig func(*cobra.Command) error) *cobra.Command {
	var ef encodeFlags

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the $GPRMC sentence and request URL for one fix",
		Example: `  gtship encode --lat 45 --lon -73 --speed 5 --bearing 90 --time 2021-01-01T00:00:00Z
  gtship encode --host gts.example.com --device-id truck-7 --lat 48.1173 --lon 11.5167`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}

			at := time.Now().UTC()
			if ef.at != "" {
				t, err := time.Parse(time.RFC3339Nano, ef.at)
				if err != nil {
					return fmt.Errorf("parse --time: %w", err)
				}
				at = t
			}

			fix := domain.Fix{
				Time:      at,
				Latitude:  ef.lat,
				Longitude: ef.lon,
				Altitude:  ef.alt,
				Speed:     ef.speed,
				Bearing:   ef.bearing,
			}
			sentence := gprmc.Encode(fix)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sentence)

			if cfg.Host == "" {
				return nil
			}
			id := domain.Identity{DeviceID: cfg.DeviceID, AccountName: cfg.AccountName}
			if err := id.Validate(); err != nil {
				return err
			}
			u, err := sender.BuildRequestURL(domain.Endpoint{Host: cfg.Host, Port: cfg.Port, Path: cfg.Path},
				id, sentence, fix.Altitude)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, u)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&ef.lat, "lat", 0, "latitude in decimal degrees")
	f.Float64Var(&ef.lon, "lon", 0, "longitude in decimal degrees")
	f.Float64Var(&ef.alt, "alt", 0, "altitude in meters")
	f.Float64Var(&ef.speed, "speed", 0, "speed in meters per second")
	f.Float64Var(&ef.bearing, "bearing", 0, "bearing in degrees")
	f.StringVar(&ef.at, "time", "", "fix time, RFC 3339 (default: now)")

	return cmd
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "verify SENTENCE...",
		Short:   "Check the framing and checksum of $GPRMC sentences",
		Example: `  gtship verify '$GPRMC,000000,A,4500.00000N,07300.00000W,0.000000,0.000000,010121,,,*25'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bad := 0
			for _, s := range args {
				if err := gprmc.Verify(s); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s: %v\n", s, err)
					bad++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", s)
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d sentences invalid", bad, len(args))
			}
			return nil
		},
	}
}
