package domain

import "strings"

// Identity names the reporting device on the collector.
type Identity struct {
	// DeviceID is required and is sent as both id and dev.
	DeviceID string

	// AccountName is optional; blank falls back to DeviceID.
	AccountName string
}

// Account returns the account name to report, defaulting to the device id.
func (i Identity) Account() string {
	if strings.TrimSpace(i.AccountName) == "" {
		return i.DeviceID
	}
	return i.AccountName
}

// Validate checks that the identity can be reported.
func (i Identity) Validate() error {
	if strings.TrimSpace(i.DeviceID) == "" {
		return ErrMissingDeviceID
	}
	return nil
}
