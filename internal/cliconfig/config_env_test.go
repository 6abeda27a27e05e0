package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"GTSHIP_HOST":             "gts.example.com",
				"GTSHIP_PORT":             "8081",
				"GTSHIP_PATH":             "/gprmc/Data",
				"GTSHIP_DEVICE_ID":        "truck-7",
				"GTSHIP_ACCOUNT":          "fleet",
				"GTSHIP_WATCH_DIR":        "/spool",
				"GTSHIP_BATCH_SIZE":       "20",
				"GTSHIP_QUEUE_CAPACITY":   "64",
				"GTSHIP_SEND_INTERVAL":    "1m",
				"GTSHIP_HTTP_TIMEOUT":     "30s",
				"GTSHIP_SHUTDOWN_TIMEOUT": "10s",
				"GTSHIP_LOG_LEVEL":        "debug",
				"GTSHIP_DRY_RUN":          "1",
			},
			changed: map[string]bool{},
			expected: Config{
				Host:            "gts.example.com",
				Port:            8081,
				Path:            "/gprmc/Data",
				DeviceID:        "truck-7",
				AccountName:     "fleet",
				WatchDir:        "/spool",
				BatchSize:       20,
				QueueCapacity:   64,
				SendInterval:    time.Minute,
				HTTPTimeout:     30 * time.Second,
				ShutdownTimeout: 10 * time.Second,
				LogLevel:        "debug",
				DryRun:          true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"GTSHIP_HOST":      "env.example.com",
				"GTSHIP_DEVICE_ID": "env-device",
			},
			changed:  map[string]bool{"host": true},
			initial:  Config{Host: "flag.example.com"},
			expected: Config{Host: "flag.example.com", DeviceID: "env-device"},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"GTSHIP_SEND_INTERVAL": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"GTSHIP_PORT": "eighty"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:     "handles bool 'false' as false",
			envVars:  map[string]string{"GTSHIP_DRY_RUN": "false"},
			changed:  map[string]bool{},
			initial:  Config{DryRun: true},
			expected: Config{DryRun: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	fileConf := FileConfig{
		Host:      "file.example.com",
		DeviceID:  "file-device",
		BatchSize: 3,
	}

	t.Setenv("GTSHIP_HOST", "env.example.com")
	t.Setenv("GTSHIP_DEVICE_ID", "env-device")
	t.Setenv("GTSHIP_SERIAL", "/dev/ttyENV")

	// Simulate CLI flags
	changed := map[string]bool{"host": true}
	cfg := Config{Host: "cli.example.com"}

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.Host != "cli.example.com" {
		t.Errorf("Host = %v, want cli.example.com (CLI should win)", cfg.Host)
	}
	if cfg.DeviceID != "env-device" {
		t.Errorf("DeviceID = %v, want env-device (env should override file)", cfg.DeviceID)
	}
	if cfg.SerialPort != "/dev/ttyENV" {
		t.Errorf("SerialPort = %v, want /dev/ttyENV (env should set)", cfg.SerialPort)
	}
	if cfg.BatchSize != 3 {
		t.Errorf("BatchSize = %v, want 3 (file should set)", cfg.BatchSize)
	}
}
