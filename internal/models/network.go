package models

import "github.com/google/uuid"

// NetworkDevice covers routers, switches, firewalls and similar
// infrastructure. FailoverPartnerID and UplinkDeviceID are same-kind
// references; chains are allowed and no acyclicity is enforced.
type NetworkDevice struct {
	BaseAsset

	// Discriminator, required on create.
	DeviceType      NetworkDeviceType `json:"device_type"`
	FirmwareVersion *string           `json:"firmware_version,omitempty"`

	// Ports and power.
	NumberOfPorts  *int    `json:"number_of_ports,omitempty"`
	PortSpeed      *string `json:"port_speed,omitempty"`
	PoEEnabled     bool    `json:"poe_enabled"`
	PoEBudgetWatts *int    `json:"poe_budget_watts,omitempty"`

	// Capacity and performance. Utilizations are 0-100.
	ThroughputMbps     *int `json:"throughput_mbps,omitempty"`
	MaxConnections     *int `json:"max_connections,omitempty"`
	CurrentConnections *int `json:"current_connections,omitempty"`
	CPUUtilization     *int `json:"cpu_utilization,omitempty"`
	MemoryUtilization  *int `json:"memory_utilization,omitempty"`

	// Redundancy.
	RedundantPowerSupply    bool       `json:"redundant_power_supply"`
	HighAvailabilityEnabled bool       `json:"high_availability_enabled"`
	FailoverPartnerID       *uuid.UUID `json:"failover_partner_id,omitempty"`

	// Management plane.
	ManagementIP        *string `json:"management_ip,omitempty"`
	ManagementInterface *string `json:"management_interface,omitempty"`
	SNMPEnabled         bool    `json:"snmp_enabled"`
	SSHEnabled          *bool   `json:"ssh_enabled,omitempty"`
	TelnetEnabled       bool    `json:"telnet_enabled"`
	HTTPSEnabled        *bool   `json:"https_enabled,omitempty"`

	// Topology.
	UplinkDeviceID *uuid.UUID `json:"uplink_device_id,omitempty"`
	ConnectedVLANs *string    `json:"connected_vlans,omitempty"`
}

// ApplyDefaults fills defaulted fields omitted from a create request.
// SSH and HTTPS management access default to enabled.
func (n *NetworkDevice) ApplyDefaults() {
	n.BaseAsset.ApplyDefaults()
	if n.SSHEnabled == nil {
		n.SSHEnabled = boolPtr(true)
	}
	if n.HTTPSEnabled == nil {
		n.HTTPSEnabled = boolPtr(true)
	}
}
