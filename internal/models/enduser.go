package models

import (
	"time"

	"github.com/google/uuid"
)

// EndUserDevice covers desktops, laptops, tablets and phones.
type EndUserDevice struct {
	BaseAsset

	// Discriminators, required on create.
	DeviceType      EndUserDeviceType `json:"device_type"`
	OperatingSystem EndUserOS         `json:"operating_system"`
	OSVersion       *string           `json:"os_version,omitempty"`
	OSBuild         *string           `json:"os_build,omitempty"`
	OSArchitecture  *string           `json:"os_architecture,omitempty"`

	// Hardware.
	Processor         *string `json:"processor,omitempty"`
	NumberOfCores     *int    `json:"number_of_cores,omitempty"`
	RAMGB             *int    `json:"ram_gb,omitempty"`
	StorageType       *string `json:"storage_type,omitempty"`
	StorageCapacityGB *int    `json:"storage_capacity_gb,omitempty"`
	StorageUsedGB     *int    `json:"storage_used_gb,omitempty"`

	// Mobile.
	IMEI          *string `json:"imei,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	Carrier       *string `json:"carrier,omitempty"`
	SIMCardNumber *string `json:"sim_card_number,omitempty"`

	// Management.
	DomainJoined      bool    `json:"domain_joined"`
	DomainName        *string `json:"domain_name,omitempty"`
	MDMEnrolled       bool    `json:"mdm_enrolled"`
	MDMPlatform       *string `json:"mdm_platform,omitempty"`
	RemoteWipeEnabled bool    `json:"remote_wipe_enabled"`

	// Usage.
	PrimaryUserID *uuid.UUID `json:"primary_user_id,omitempty"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	LastBootTime  *time.Time `json:"last_boot_time,omitempty"`
	UptimeHours   *int       `json:"uptime_hours,omitempty"`

	// Battery, 0-100.
	BatteryHealth     *int `json:"battery_health,omitempty"`
	BatteryCycleCount *int `json:"battery_cycle_count,omitempty"`
}
