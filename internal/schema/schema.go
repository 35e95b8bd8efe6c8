// Package schema validates asset records against the catalog rules: required
// fields, closed enum sets and numeric ranges. Validators collect every
// violation instead of stopping at the first one, so a caller can report the
// full set of offending fields in one response.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"asset-inventory-api/internal/models"
)

// ValidationError names every field that failed validation. A nil
// *ValidationError means the record is valid.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds an error for a single field, for rules that are
// checked outside the pure validators (catalog-wide tag uniqueness).
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the error names the given field.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() *ValidationError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

const (
	msgRequired = "this field is required"
	msgEnum     = "value is not one of the allowed choices"
)

func rangeMsg(min, max int) string {
	return fmt.Sprintf("value must be between %d and %d", min, max)
}

// checkRange validates an optional integer field against [min, max].
func checkRange(ve *ValidationError, field string, v *int, min, max int) {
	if v != nil && (*v < min || *v > max) {
		ve.add(field, rangeMsg(min, max))
	}
}

// validateBase applies the rules shared by every asset kind. Enum fields are
// validated as-is; callers apply defaults before validating a create.
func validateBase(ve *ValidationError, b *models.BaseAsset) {
	if strings.TrimSpace(b.AssetTag) == "" {
		ve.add("asset_tag", msgRequired)
	}
	if strings.TrimSpace(b.Name) == "" {
		ve.add("name", msgRequired)
	}
	if !b.Status.Valid() {
		ve.add("status", msgEnum)
	}
	if !b.Environment.Valid() {
		ve.add("environment", msgEnum)
	}
	if !b.RiskLevel.Valid() {
		ve.add("risk_level", msgEnum)
	}
	checkRange(ve, "vulnerability_score", b.VulnerabilityScore, 0, 10)
}

// ValidateServer checks a server record. Required discriminators:
// server_type, operating_system, server_role.
func ValidateServer(s *models.Server) *ValidationError {
	ve := &ValidationError{}
	validateBase(ve, &s.BaseAsset)
	switch {
	case s.ServerType == "":
		ve.add("server_type", msgRequired)
	case !s.ServerType.Valid():
		ve.add("server_type", msgEnum)
	}
	switch {
	case s.OperatingSystem == "":
		ve.add("operating_system", msgRequired)
	case !s.OperatingSystem.Valid():
		ve.add("operating_system", msgEnum)
	}
	switch {
	case s.ServerRole == "":
		ve.add("server_role", msgRequired)
	case !s.ServerRole.Valid():
		ve.add("server_role", msgEnum)
	}
	checkRange(ve, "cpu_utilization", s.CPUUtilization, 0, 100)
	checkRange(ve, "memory_utilization", s.MemoryUtilization, 0, 100)
	checkRange(ve, "disk_utilization", s.DiskUtilization, 0, 100)
	return ve.orNil()
}

// ValidateEndUserDevice checks an end-user device record.
func ValidateEndUserDevice(d *models.EndUserDevice) *ValidationError {
	ve := &ValidationError{}
	validateBase(ve, &d.BaseAsset)
	switch {
	case d.DeviceType == "":
		ve.add("device_type", msgRequired)
	case !d.DeviceType.Valid():
		ve.add("device_type", msgEnum)
	}
	switch {
	case d.OperatingSystem == "":
		ve.add("operating_system", msgRequired)
	case !d.OperatingSystem.Valid():
		ve.add("operating_system", msgEnum)
	}
	checkRange(ve, "battery_health", d.BatteryHealth, 0, 100)
	return ve.orNil()
}

// ValidateNetworkDevice checks a network device record.
func ValidateNetworkDevice(d *models.NetworkDevice) *ValidationError {
	ve := &ValidationError{}
	validateBase(ve, &d.BaseAsset)
	switch {
	case d.DeviceType == "":
		ve.add("device_type", msgRequired)
	case !d.DeviceType.Valid():
		ve.add("device_type", msgEnum)
	}
	checkRange(ve, "cpu_utilization", d.CPUUtilization, 0, 100)
	checkRange(ve, "memory_utilization", d.MemoryUtilization, 0, 100)
	return ve.orNil()
}

// ValidateIoTDevice checks an IoT device record.
func ValidateIoTDevice(d *models.IoTDevice) *ValidationError {
	ve := &ValidationError{}
	validateBase(ve, &d.BaseAsset)
	switch {
	case d.DeviceType == "":
		ve.add("device_type", msgRequired)
	case !d.DeviceType.Valid():
		ve.add("device_type", msgEnum)
	}
	return ve.orNil()
}
