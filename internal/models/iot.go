package models

import "time"

// IoTDevice covers cameras, sensors, printers and other embedded gear. The
// per-sub-type clusters (camera, sensor, access control, printer) are all
// optional; only the fields relevant to the device's type get filled.
type IoTDevice struct {
	BaseAsset

	// Discriminator, required on create.
	DeviceType      IoTDeviceType `json:"device_type"`
	FirmwareVersion *string       `json:"firmware_version,omitempty"`

	// Technical descriptors.
	Protocol     *string `json:"protocol,omitempty"`
	PowerSource  *string `json:"power_source,omitempty"`
	WirelessType *string `json:"wireless_type,omitempty"`

	// Camera cluster.
	CameraResolution  *string `json:"camera_resolution,omitempty"`
	CameraType        *string `json:"camera_type,omitempty"`
	RecordingEnabled  bool    `json:"recording_enabled"`
	RecordingLocation *string `json:"recording_location,omitempty"`

	// Sensor cluster.
	SensorType      *string    `json:"sensor_type,omitempty"`
	MeasurementUnit *string    `json:"measurement_unit,omitempty"`
	CurrentReading  *string    `json:"current_reading,omitempty"`
	LastReadingTime *time.Time `json:"last_reading_time,omitempty"`
	AlertThreshold  *string    `json:"alert_threshold,omitempty"`

	// Access control cluster.
	ReaderType  *string `json:"reader_type,omitempty"`
	AccessLevel *string `json:"access_level,omitempty"`

	// Printer cluster.
	PrinterType    *string `json:"printer_type,omitempty"`
	PrintServer    *string `json:"print_server,omitempty"`
	SuppliesStatus *string `json:"supplies_status,omitempty"`
	PageCount      *int    `json:"page_count,omitempty"`

	// Security posture.
	DefaultPasswordChanged bool `json:"default_password_changed"`
	RemoteAccessEnabled    bool `json:"remote_access_enabled"`
	InternetAccessible     bool `json:"internet_accessible"`
	SegmentedNetwork       bool `json:"segmented_network"`

	// Lifecycle.
	LastReboot *time.Time `json:"last_reboot,omitempty"`
	UptimeDays *int       `json:"uptime_days,omitempty"`
}
