package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Asset kind discriminators used by the change log and the tag registry.
const (
	KindServer        = "server"
	KindEndUserDevice = "end_user_device"
	KindNetworkDevice = "network_device"
	KindIoTDevice     = "iot_device"
)

// BaseAsset carries the attribute set shared by every asset kind. It is
// embedded in the concrete kinds and never persisted on its own.
type BaseAsset struct {
	// Identity. ID is assigned at creation and immutable afterwards;
	// AssetTag is unique across the whole catalog, not just one kind.
	ID           uuid.UUID `json:"id"`
	AssetTag     string    `json:"asset_tag"`
	SerialNumber *string   `json:"serial_number,omitempty"`

	// Descriptive.
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Model        *string `json:"model,omitempty"`
	ModelNumber  *string `json:"model_number,omitempty"`

	// Network.
	Hostname           *string `json:"hostname,omitempty"`
	FQDN               *string `json:"fqdn,omitempty"`
	PrimaryIPAddress   *string `json:"primary_ip_address,omitempty"`
	SecondaryIPAddress *string `json:"secondary_ip_address,omitempty"`
	MACAddress         *string `json:"mac_address,omitempty"`
	SubnetMask         *string `json:"subnet_mask,omitempty"`
	DefaultGateway     *string `json:"default_gateway,omitempty"`
	DNSServers         *string `json:"dns_servers,omitempty"`
	VLANID             *int    `json:"vlan_id,omitempty"`

	// Location.
	PhysicalLocation   *string `json:"physical_location,omitempty"`
	Building           *string `json:"building,omitempty"`
	Floor              *string `json:"floor,omitempty"`
	Room               *string `json:"room,omitempty"`
	RackLocation       *string `json:"rack_location,omitempty"`
	RackUnit           *string `json:"rack_unit,omitempty"`
	GeographicLocation *string `json:"geographic_location,omitempty"`
	Site               *string `json:"site,omitempty"`

	// Organization. Person references are cleared, not cascaded, when the
	// referenced user goes away.
	Department   *string    `json:"department,omitempty"`
	CostCenter   *string    `json:"cost_center,omitempty"`
	BusinessUnit *string    `json:"business_unit,omitempty"`
	OwnerID      *uuid.UUID `json:"owner_id,omitempty"`
	CustodianID  *uuid.UUID `json:"custodian_id,omitempty"`
	AssignedToID *uuid.UUID `json:"assigned_to_id,omitempty"`

	// Lifecycle.
	PurchaseDate       *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice      *float64   `json:"purchase_price,omitempty"`
	WarrantyExpiration *time.Time `json:"warranty_expiration,omitempty"`
	SupportExpiration  *time.Time `json:"support_expiration,omitempty"`
	LeaseExpiration    *time.Time `json:"lease_expiration,omitempty"`
	EndOfLifeDate      *time.Time `json:"end_of_life_date,omitempty"`
	DisposalDate       *time.Time `json:"disposal_date,omitempty"`
	Vendor             *string    `json:"vendor,omitempty"`
	PurchaseOrder      *string    `json:"purchase_order,omitempty"`

	// Status and compliance. The tri-state pointers default to true when
	// omitted on create, matching the catalog's historical defaults.
	Status           AssetStatus `json:"status"`
	Environment      Environment `json:"environment"`
	RiskLevel        RiskLevel   `json:"risk_level"`
	ComplianceStatus *bool       `json:"compliance_status,omitempty"`
	Authorized       *bool       `json:"authorized,omitempty"`
	Managed          *bool       `json:"managed,omitempty"`

	// Discovery and monitoring. FirstDiscovered is set once at creation.
	FirstDiscovered   time.Time  `json:"first_discovered"`
	LastSeen          *time.Time `json:"last_seen,omitempty"`
	LastScanned       *time.Time `json:"last_scanned,omitempty"`
	DiscoveryMethod   *string    `json:"discovery_method,omitempty"`
	MonitoringEnabled *bool      `json:"monitoring_enabled,omitempty"`

	// Security posture.
	Encrypted           bool       `json:"encrypted"`
	EncryptionMethod    *string    `json:"encryption_method,omitempty"`
	AntivirusInstalled  bool       `json:"antivirus_installed"`
	AntivirusVersion    *string    `json:"antivirus_version,omitempty"`
	AntivirusLastUpdate *time.Time `json:"antivirus_last_update,omitempty"`
	FirewallEnabled     bool       `json:"firewall_enabled"`
	PatchLevel          *string    `json:"patch_level,omitempty"`
	LastPatched         *time.Time `json:"last_patched,omitempty"`
	VulnerabilityScore  *int       `json:"vulnerability_score,omitempty"`

	// Metadata.
	Notes              *string `json:"notes,omitempty"`
	Tags               *string `json:"tags,omitempty"`
	ConfigurationItems JSONB   `json:"configuration_items,omitempty"`

	// Audit.
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty"`
	UpdatedByID *uuid.UUID `json:"updated_by_id,omitempty"`
}

// ApplyDefaults fills the defaulted enum and flag fields that were omitted
// from a create request. It never overwrites an explicit value.
func (b *BaseAsset) ApplyDefaults() {
	if b.Status == "" {
		b.Status = StatusActive
	}
	if b.Environment == "" {
		b.Environment = EnvProduction
	}
	if b.RiskLevel == "" {
		b.RiskLevel = RiskMedium
	}
	if b.ComplianceStatus == nil {
		b.ComplianceStatus = boolPtr(true)
	}
	if b.Authorized == nil {
		b.Authorized = boolPtr(true)
	}
	if b.Managed == nil {
		b.Managed = boolPtr(true)
	}
	if b.MonitoringEnabled == nil {
		b.MonitoringEnabled = boolPtr(true)
	}
}

func boolPtr(v bool) *bool { return &v }

// JSONB is a free-form configuration blob stored as jsonb.
type JSONB map[string]interface{}

// Value implements driver.Valuer.
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONB", value)
	}
}
