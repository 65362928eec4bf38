// Package validate normalizes and validates box payloads before they
// reach the store. MAC addresses are canonicalized to uppercase with
// colon separators; process names are uppercased.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"boxtrack/internal/models"
)

var (
	// ErrMissingRequired is returned when a required field is empty or absent.
	ErrMissingRequired = errors.New("missing required field")

	// ErrInvalidFormat is returned when a field does not match its pattern.
	ErrInvalidFormat = errors.New("invalid format")
)

var (
	// Six pairs of hex digits, uniformly separated by ':' or '-'.
	macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)

	// Dotted quad of 1-3 digit groups. Octet values are not range-checked,
	// so 999.999.999.999 passes.
	ipPattern = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)
)

// FieldError ties a validation failure to the field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NormalizeMAC validates a MAC address and returns its canonical form:
// uppercase hex pairs joined by colons. Both aa-bb-cc-dd-ee-ff and
// AA:BB:CC:DD:EE:FF normalize to AA:BB:CC:DD:EE:FF.
func NormalizeMAC(mac string) (string, error) {
	if mac == "" {
		return "", ErrMissingRequired
	}
	if !macPattern.MatchString(mac) {
		return "", ErrInvalidFormat
	}
	return strings.ToUpper(strings.ReplaceAll(mac, "-", ":")), nil
}

// ValidateIP checks dotted-quad syntax.
func ValidateIP(ip string) error {
	if !ipPattern.MatchString(ip) {
		return ErrInvalidFormat
	}
	return nil
}

// NormalizeProcess uppercases a process name. Process names are
// case-insensitive business keys and are always stored uppercase.
func NormalizeProcess(process string) string {
	return strings.ToUpper(process)
}

// Create validates a full create payload and returns a normalized copy.
func Create(in models.BoxCreate) (models.BoxCreate, error) {
	mac, err := NormalizeMAC(in.MACAddress)
	if err != nil {
		return in, &FieldError{Field: "mac_address", Err: err}
	}
	in.MACAddress = mac

	if in.IPAddress != nil && *in.IPAddress != "" {
		if err := ValidateIP(*in.IPAddress); err != nil {
			return in, &FieldError{Field: "ip_address", Err: err}
		}
	}

	if in.Process == "" {
		return in, &FieldError{Field: "process", Err: ErrMissingRequired}
	}
	in.Process = NormalizeProcess(in.Process)

	return in, nil
}

// Update validates the fields present in a partial-update payload and
// returns a normalized copy. Absent fields pass through untouched.
func Update(in models.BoxUpdate) (models.BoxUpdate, error) {
	if in.MACAddress.Set {
		if !in.MACAddress.Valid {
			return in, &FieldError{Field: "mac_address", Err: ErrMissingRequired}
		}
		mac, err := NormalizeMAC(in.MACAddress.Value)
		if err != nil {
			return in, &FieldError{Field: "mac_address", Err: err}
		}
		in.MACAddress.Value = mac
	}

	if in.IPAddress.Set && in.IPAddress.Valid && in.IPAddress.Value != "" {
		if err := ValidateIP(in.IPAddress.Value); err != nil {
			return in, &FieldError{Field: "ip_address", Err: err}
		}
	}

	if in.Process.Set {
		if !in.Process.Valid || in.Process.Value == "" {
			return in, &FieldError{Field: "process", Err: ErrMissingRequired}
		}
		in.Process.Value = NormalizeProcess(in.Process.Value)
	}

	return in, nil
}
