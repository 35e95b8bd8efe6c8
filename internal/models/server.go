package models

import (
	"time"

	"github.com/google/uuid"
)

// Server is the richest asset kind: physical, virtual, cloud and container
// servers. The struct doubles as the create/update request body; pointer
// fields act as presence markers for partial updates.
type Server struct {
	BaseAsset

	// Discriminators, all required on create.
	ServerType      ServerType `json:"server_type"`
	OperatingSystem ServerOS   `json:"operating_system"`
	OSVersion       *string    `json:"os_version,omitempty"`
	ServerRole      ServerRole `json:"server_role"`

	// Hardware / virtual sizing.
	Processor          *string `json:"processor,omitempty"`
	NumberOfProcessors *int    `json:"number_of_processors,omitempty"`
	NumberOfCores      *int    `json:"number_of_cores,omitempty"`
	RAMGB              *int    `json:"ram_gb,omitempty"`
	StorageType        *string `json:"storage_type,omitempty"`
	StorageCapacityGB  *int    `json:"storage_capacity_gb,omitempty"`
	StorageUsedGB      *int    `json:"storage_used_gb,omitempty"`

	// Virtualization. HypervisorHostID is a same-kind reference; chains are
	// allowed and no acyclicity is enforced.
	IsVirtual        bool       `json:"is_virtual"`
	Hypervisor       *string    `json:"hypervisor,omitempty"`
	HypervisorHostID *uuid.UUID `json:"hypervisor_host_id,omitempty"`
	VMID             *string    `json:"vm_id,omitempty"`

	// Cloud placement.
	CloudProvider         *string `json:"cloud_provider,omitempty"`
	CloudRegion           *string `json:"cloud_region,omitempty"`
	CloudAvailabilityZone *string `json:"cloud_availability_zone,omitempty"`
	InstanceType          *string `json:"instance_type,omitempty"`
	InstanceID            *string `json:"instance_id,omitempty"`
	CloudAccountID        *string `json:"cloud_account_id,omitempty"`

	// Utilization percentages, each 0-100.
	CPUUtilization    *int `json:"cpu_utilization,omitempty"`
	MemoryUtilization *int `json:"memory_utilization,omitempty"`
	DiskUtilization   *int `json:"disk_utilization,omitempty"`

	// Backup and disaster recovery.
	BackupEnabled        bool       `json:"backup_enabled"`
	BackupSchedule       *string    `json:"backup_schedule,omitempty"`
	LastBackup           *time.Time `json:"last_backup,omitempty"`
	BackupLocation       *string    `json:"backup_location,omitempty"`
	DisasterRecoveryPlan bool       `json:"disaster_recovery_plan"`
	RTOHours             *int       `json:"rto_hours,omitempty"`
	RPOHours             *int       `json:"rpo_hours,omitempty"`

	// High availability.
	Clustered    bool    `json:"clustered"`
	ClusterName  *string `json:"cluster_name,omitempty"`
	LoadBalanced bool    `json:"load_balanced"`

	// Out-of-band management.
	ManagementInterface     *string `json:"management_interface,omitempty"`
	ManagementIP            *string `json:"management_ip,omitempty"`
	RemoteManagementEnabled bool    `json:"remote_management_enabled"`

	// Licensing. Licensed defaults to true when omitted on create.
	Licensed          *bool      `json:"licensed,omitempty"`
	LicenseKey        *string    `json:"license_key,omitempty"`
	LicenseExpiration *time.Time `json:"license_expiration,omitempty"`
	LicenseCount      *int       `json:"license_count,omitempty"`

	// Monitoring and logging.
	MonitoringAgentInstalled bool    `json:"monitoring_agent_installed"`
	MonitoringAgentVersion   *string `json:"monitoring_agent_version,omitempty"`
	LogForwardingEnabled     bool    `json:"log_forwarding_enabled"`
	SyslogServer             *string `json:"syslog_server,omitempty"`

	// Uptime.
	LastBootTime *time.Time `json:"last_boot_time,omitempty"`
	UptimeDays   *int       `json:"uptime_days,omitempty"`
}

// ApplyDefaults fills defaulted fields omitted from a create request.
func (s *Server) ApplyDefaults() {
	s.BaseAsset.ApplyDefaults()
	if s.Licensed == nil {
		s.Licensed = boolPtr(true)
	}
}
