package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (GTSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("GTSHIP_HOST"), &cfg.Host)
	s.setString("path", os.Getenv("GTSHIP_PATH"), &cfg.Path)
	s.setString("device-id", os.Getenv("GTSHIP_DEVICE_ID"), &cfg.DeviceID)
	s.setString("account", os.Getenv("GTSHIP_ACCOUNT"), &cfg.AccountName)
	s.setString("nmea-file", os.Getenv("GTSHIP_NMEA_FILE"), &cfg.NMEAFile)
	s.setString("serial", os.Getenv("GTSHIP_SERIAL"), &cfg.SerialPort)
	s.setString("watch-dir", os.Getenv("GTSHIP_WATCH_DIR"), &cfg.WatchDir)
	s.setString("log-level", os.Getenv("GTSHIP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("port", os.Getenv("GTSHIP_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("baud", os.Getenv("GTSHIP_BAUD"), &cfg.SerialBaud); err != nil {
		return err
	}
	if err := s.setIntFromString("batch-size", os.Getenv("GTSHIP_BATCH_SIZE"), &cfg.BatchSize); err != nil {
		return err
	}
	if err := s.setIntFromString("queue-capacity", os.Getenv("GTSHIP_QUEUE_CAPACITY"), &cfg.QueueCapacity); err != nil {
		return err
	}

	if err := s.setDuration("send-interval", os.Getenv("GTSHIP_SEND_INTERVAL"), &cfg.SendInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("GTSHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv("GTSHIP_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBoolFromString("dry-run", os.Getenv("GTSHIP_DRY_RUN"), &cfg.DryRun)

	return nil
}
