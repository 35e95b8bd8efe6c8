package models

// AssetStatus is the operational status of an asset. Independent of whether
// the row exists: a RETIRED asset is still a row until it is deleted.
type AssetStatus string

const (
	StatusActive      AssetStatus = "ACTIVE"
	StatusInactive    AssetStatus = "INACTIVE"
	StatusMaintenance AssetStatus = "MAINTENANCE"
	StatusRetired     AssetStatus = "RETIRED"
	StatusLost        AssetStatus = "LOST"
	StatusDisposed    AssetStatus = "DISPOSED"
)

// Environment the asset serves.
type Environment string

const (
	EnvProduction       Environment = "PROD"
	EnvStaging          Environment = "STAG"
	EnvDevelopment      Environment = "DEV"
	EnvTesting          Environment = "TEST"
	EnvDisasterRecovery Environment = "DR"
)

// RiskLevel classification.
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
)

// ServerType distinguishes physical, virtual, cloud and container servers.
type ServerType string

const (
	ServerPhysical  ServerType = "PHYSICAL"
	ServerVirtual   ServerType = "VIRTUAL"
	ServerCloud     ServerType = "CLOUD"
	ServerContainer ServerType = "CONTAINER"
)

// ServerOS is the server operating system family.
type ServerOS string

const (
	ServerOSWin2022 ServerOS = "WIN2022"
	ServerOSWin2019 ServerOS = "WIN2019"
	ServerOSRHEL    ServerOS = "RHEL"
	ServerOSUbuntu  ServerOS = "UBUNTU"
	ServerOSCentOS  ServerOS = "CENTOS"
	ServerOSDebian  ServerOS = "DEBIAN"
	ServerOSSUSE    ServerOS = "SUSE"
	ServerOSESXi    ServerOS = "ESXI"
	ServerOSOther   ServerOS = "OTHER"
)

// ServerRole is the primary function of a server.
type ServerRole string

const (
	RoleWeb        ServerRole = "WEB"
	RoleDatabase   ServerRole = "DB"
	RoleApp        ServerRole = "APP"
	RoleFile       ServerRole = "FILE"
	RoleMail       ServerRole = "MAIL"
	RoleDNS        ServerRole = "DNS"
	RoleDHCP       ServerRole = "DHCP"
	RoleDC         ServerRole = "DC"
	RoleHypervisor ServerRole = "HYPERVISOR"
	RoleBackup     ServerRole = "BACKUP"
	RoleMonitoring ServerRole = "MONITORING"
	RoleProxy      ServerRole = "PROXY"
	RoleOther      ServerRole = "OTHER"
)

// EndUserDeviceType covers desktops through smartphones.
type EndUserDeviceType string

const (
	DeviceDesktop     EndUserDeviceType = "DESKTOP"
	DeviceLaptop      EndUserDeviceType = "LAPTOP"
	DeviceTablet      EndUserDeviceType = "TABLET"
	DeviceSmartphone  EndUserDeviceType = "SMARTPHONE"
	DeviceThinClient  EndUserDeviceType = "THIN_CLIENT"
	DeviceWorkstation EndUserDeviceType = "WORKSTATION"
)

// EndUserOS is the end-user device operating system.
type EndUserOS string

const (
	EndUserOSWin11    EndUserOS = "WIN11"
	EndUserOSWin10    EndUserOS = "WIN10"
	EndUserOSMacOS    EndUserOS = "MACOS"
	EndUserOSLinux    EndUserOS = "LINUX"
	EndUserOSiOS      EndUserOS = "IOS"
	EndUserOSAndroid  EndUserOS = "ANDROID"
	EndUserOSChromeOS EndUserOS = "CHROMEOS"
)

// NetworkDeviceType covers routers, switches and the rest of the network edge.
type NetworkDeviceType string

const (
	NetRouter       NetworkDeviceType = "ROUTER"
	NetSwitch       NetworkDeviceType = "SWITCH"
	NetFirewall     NetworkDeviceType = "FIREWALL"
	NetLoadBalancer NetworkDeviceType = "LB"
	NetAccessPoint  NetworkDeviceType = "AP"
	NetWLC          NetworkDeviceType = "WLC"
	NetVPN          NetworkDeviceType = "VPN"
	NetIDSIPS       NetworkDeviceType = "IDS_IPS"
	NetProxy        NetworkDeviceType = "PROXY"
	NetDNS          NetworkDeviceType = "DNS"
	NetDHCP         NetworkDeviceType = "DHCP"
	NetNAS          NetworkDeviceType = "NAS"
)

// IoTDeviceType covers cameras, sensors and other embedded gear.
type IoTDeviceType string

const (
	IoTCamera        IoTDeviceType = "CAMERA"
	IoTSensor        IoTDeviceType = "SENSOR"
	IoTAccessControl IoTDeviceType = "ACCESS"
	IoTHVAC          IoTDeviceType = "HVAC"
	IoTLighting      IoTDeviceType = "LIGHTING"
	IoTPrinter       IoTDeviceType = "PRINTER"
	IoTBadgeReader   IoTDeviceType = "BADGE"
	IoTEnvironmental IoTDeviceType = "ENVIRONMENTAL"
	IoTIndustrial    IoTDeviceType = "INDUSTRIAL"
	IoTSmartDisplay  IoTDeviceType = "DISPLAY"
	IoTOther         IoTDeviceType = "OTHER"
)

var (
	validStatuses = map[AssetStatus]bool{
		StatusActive: true, StatusInactive: true, StatusMaintenance: true,
		StatusRetired: true, StatusLost: true, StatusDisposed: true,
	}
	validEnvironments = map[Environment]bool{
		EnvProduction: true, EnvStaging: true, EnvDevelopment: true,
		EnvTesting: true, EnvDisasterRecovery: true,
	}
	validRiskLevels = map[RiskLevel]bool{
		RiskCritical: true, RiskHigh: true, RiskMedium: true, RiskLow: true,
	}
	validServerTypes = map[ServerType]bool{
		ServerPhysical: true, ServerVirtual: true, ServerCloud: true, ServerContainer: true,
	}
	validServerOSes = map[ServerOS]bool{
		ServerOSWin2022: true, ServerOSWin2019: true, ServerOSRHEL: true,
		ServerOSUbuntu: true, ServerOSCentOS: true, ServerOSDebian: true,
		ServerOSSUSE: true, ServerOSESXi: true, ServerOSOther: true,
	}
	validServerRoles = map[ServerRole]bool{
		RoleWeb: true, RoleDatabase: true, RoleApp: true, RoleFile: true,
		RoleMail: true, RoleDNS: true, RoleDHCP: true, RoleDC: true,
		RoleHypervisor: true, RoleBackup: true, RoleMonitoring: true,
		RoleProxy: true, RoleOther: true,
	}
	validEndUserDeviceTypes = map[EndUserDeviceType]bool{
		DeviceDesktop: true, DeviceLaptop: true, DeviceTablet: true,
		DeviceSmartphone: true, DeviceThinClient: true, DeviceWorkstation: true,
	}
	validEndUserOSes = map[EndUserOS]bool{
		EndUserOSWin11: true, EndUserOSWin10: true, EndUserOSMacOS: true,
		EndUserOSLinux: true, EndUserOSiOS: true, EndUserOSAndroid: true,
		EndUserOSChromeOS: true,
	}
	validNetworkDeviceTypes = map[NetworkDeviceType]bool{
		NetRouter: true, NetSwitch: true, NetFirewall: true, NetLoadBalancer: true,
		NetAccessPoint: true, NetWLC: true, NetVPN: true, NetIDSIPS: true,
		NetProxy: true, NetDNS: true, NetDHCP: true, NetNAS: true,
	}
	validIoTDeviceTypes = map[IoTDeviceType]bool{
		IoTCamera: true, IoTSensor: true, IoTAccessControl: true, IoTHVAC: true,
		IoTLighting: true, IoTPrinter: true, IoTBadgeReader: true,
		IoTEnvironmental: true, IoTIndustrial: true, IoTSmartDisplay: true,
		IoTOther: true,
	}
)

func (s AssetStatus) Valid() bool       { return validStatuses[s] }
func (e Environment) Valid() bool       { return validEnvironments[e] }
func (r RiskLevel) Valid() bool         { return validRiskLevels[r] }
func (t ServerType) Valid() bool        { return validServerTypes[t] }
func (o ServerOS) Valid() bool          { return validServerOSes[o] }
func (r ServerRole) Valid() bool        { return validServerRoles[r] }
func (t EndUserDeviceType) Valid() bool { return validEndUserDeviceTypes[t] }
func (o EndUserOS) Valid() bool         { return validEndUserOSes[o] }
func (t NetworkDeviceType) Valid() bool { return validNetworkDeviceTypes[t] }
func (t IoTDeviceType) Valid() bool     { return validIoTDeviceTypes[t] }
