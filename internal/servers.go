package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"asset-inventory-api/internal/auth"
	"asset-inventory-api/internal/models"
	"asset-inventory-api/internal/schema"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// serverColumns lists every column of the servers table, in the one order
// used by selects, inserts and updates. serverFields must match it exactly.
var serverColumns = []string{
	// identity and descriptive
	"id", "asset_tag", "serial_number", "name", "description",
	"manufacturer", "model", "model_number",
	// network
	"hostname", "fqdn", "primary_ip_address", "secondary_ip_address",
	"mac_address", "subnet_mask", "default_gateway", "dns_servers", "vlan_id",
	// location
	"physical_location", "building", "floor", "room", "rack_location",
	"rack_unit", "geographic_location", "site",
	// organization
	"department", "cost_center", "business_unit",
	"owner_id", "custodian_id", "assigned_to_id",
	// lifecycle
	"purchase_date", "purchase_price", "warranty_expiration",
	"support_expiration", "lease_expiration", "end_of_life_date",
	"disposal_date", "vendor", "purchase_order",
	// status and compliance
	"status", "environment", "risk_level",
	"compliance_status", "authorized", "managed",
	// discovery and monitoring
	"first_discovered", "last_seen", "last_scanned",
	"discovery_method", "monitoring_enabled",
	// security posture
	"encrypted", "encryption_method", "antivirus_installed",
	"antivirus_version", "antivirus_last_update", "firewall_enabled",
	"patch_level", "last_patched", "vulnerability_score",
	// metadata
	"notes", "tags", "configuration_items",
	// audit
	"created_at", "updated_at", "created_by_id", "updated_by_id",
	// server discriminators
	"server_type", "operating_system", "os_version", "server_role",
	// hardware
	"processor", "number_of_processors", "number_of_cores", "ram_gb",
	"storage_type", "storage_capacity_gb", "storage_used_gb",
	// virtualization
	"is_virtual", "hypervisor", "hypervisor_host_id", "vm_id",
	// cloud
	"cloud_provider", "cloud_region", "cloud_availability_zone",
	"instance_type", "instance_id", "cloud_account_id",
	// utilization
	"cpu_utilization", "memory_utilization", "disk_utilization",
	// backup and DR
	"backup_enabled", "backup_schedule", "last_backup", "backup_location",
	"disaster_recovery_plan", "rto_hours", "rpo_hours",
	// high availability
	"clustered", "cluster_name", "load_balanced",
	// out-of-band management
	"management_interface", "management_ip", "remote_management_enabled",
	// licensing
	"licensed", "license_key", "license_expiration", "license_count",
	// monitoring and logging
	"monitoring_agent_installed", "monitoring_agent_version",
	"log_forwarding_enabled", "syslog_server",
	// uptime
	"last_boot_time", "uptime_days",
}

// serverFields returns pointers to every field of s in serverColumns order.
// The same slice drives row scans and statement arguments; database/sql
// dereferences the pointers in both directions.
func serverFields(s *models.Server) []interface{} {
	return []interface{}{
		&s.ID, &s.AssetTag, &s.SerialNumber, &s.Name, &s.Description,
		&s.Manufacturer, &s.Model, &s.ModelNumber,
		&s.Hostname, &s.FQDN, &s.PrimaryIPAddress, &s.SecondaryIPAddress,
		&s.MACAddress, &s.SubnetMask, &s.DefaultGateway, &s.DNSServers, &s.VLANID,
		&s.PhysicalLocation, &s.Building, &s.Floor, &s.Room, &s.RackLocation,
		&s.RackUnit, &s.GeographicLocation, &s.Site,
		&s.Department, &s.CostCenter, &s.BusinessUnit,
		&s.OwnerID, &s.CustodianID, &s.AssignedToID,
		&s.PurchaseDate, &s.PurchasePrice, &s.WarrantyExpiration,
		&s.SupportExpiration, &s.LeaseExpiration, &s.EndOfLifeDate,
		&s.DisposalDate, &s.Vendor, &s.PurchaseOrder,
		&s.Status, &s.Environment, &s.RiskLevel,
		&s.ComplianceStatus, &s.Authorized, &s.Managed,
		&s.FirstDiscovered, &s.LastSeen, &s.LastScanned,
		&s.DiscoveryMethod, &s.MonitoringEnabled,
		&s.Encrypted, &s.EncryptionMethod, &s.AntivirusInstalled,
		&s.AntivirusVersion, &s.AntivirusLastUpdate, &s.FirewallEnabled,
		&s.PatchLevel, &s.LastPatched, &s.VulnerabilityScore,
		&s.Notes, &s.Tags, &s.ConfigurationItems,
		&s.CreatedAt, &s.UpdatedAt, &s.CreatedByID, &s.UpdatedByID,
		&s.ServerType, &s.OperatingSystem, &s.OSVersion, &s.ServerRole,
		&s.Processor, &s.NumberOfProcessors, &s.NumberOfCores, &s.RAMGB,
		&s.StorageType, &s.StorageCapacityGB, &s.StorageUsedGB,
		&s.IsVirtual, &s.Hypervisor, &s.HypervisorHostID, &s.VMID,
		&s.CloudProvider, &s.CloudRegion, &s.CloudAvailabilityZone,
		&s.InstanceType, &s.InstanceID, &s.CloudAccountID,
		&s.CPUUtilization, &s.MemoryUtilization, &s.DiskUtilization,
		&s.BackupEnabled, &s.BackupSchedule, &s.LastBackup, &s.BackupLocation,
		&s.DisasterRecoveryPlan, &s.RTOHours, &s.RPOHours,
		&s.Clustered, &s.ClusterName, &s.LoadBalanced,
		&s.ManagementInterface, &s.ManagementIP, &s.RemoteManagementEnabled,
		&s.Licensed, &s.LicenseKey, &s.LicenseExpiration, &s.LicenseCount,
		&s.MonitoringAgentInstalled, &s.MonitoringAgentVersion,
		&s.LogForwardingEnabled, &s.SyslogServer,
		&s.LastBootTime, &s.UptimeDays,
	}
}

func serverSelectSQL(extra string) string {
	return "SELECT " + strings.Join(serverColumns, ", ") + extra + " FROM servers"
}

func serverInsertSQL() string {
	placeholders := make([]string, len(serverColumns))
	for i := range serverColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO servers (" + strings.Join(serverColumns, ", ") +
		") VALUES (" + strings.Join(placeholders, ", ") + ")"
}

func serverUpdateSQL() string {
	sets := make([]string, 0, len(serverColumns)-1)
	for i, col := range serverColumns[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
	}
	return "UPDATE servers SET " + strings.Join(sets, ", ") + " WHERE id = $1"
}

// assetTagInUse checks tag uniqueness across the whole catalog, not just the
// servers table. excludeID skips the record being updated.
func (s *Server) assetTagInUse(ctx context.Context, tag string, excludeID uuid.UUID) (bool, error) {
	const sqlStr = `
		SELECT EXISTS (
			SELECT 1 FROM (
				SELECT id, asset_tag FROM servers
				UNION ALL SELECT id, asset_tag FROM end_user_devices
				UNION ALL SELECT id, asset_tag FROM network_devices
				UNION ALL SELECT id, asset_tag FROM iot_devices
			) t
			WHERE t.asset_tag = $1 AND t.id <> $2
		)`
	var inUse bool
	err := s.DB.QueryRowContext(ctx, sqlStr, tag, excludeID).Scan(&inUse)
	return inUse, err
}

func (s *Server) getServerByID(ctx context.Context, id uuid.UUID) (*models.Server, error) {
	var out models.Server
	err := s.DB.QueryRowContext(ctx, serverSelectSQL("")+" WHERE id = $1", id).
		Scan(serverFields(&out)...)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// listServers handles server listing with filters and pagination
func (s *Server) listServers(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	clauses := []string{}
	args := []interface{}{}
	arg := 1

	// optional enum filters
	for _, f := range []struct{ param, col string }{
		{"status", "status"},
		{"environment", "environment"},
		{"server_type", "server_type"},
		{"server_role", "server_role"},
	} {
		if v := strings.TrimSpace(r.URL.Query().Get(f.param)); v != "" {
			clauses = append(clauses, fmt.Sprintf("%s = $%d", f.col, arg))
			args = append(args, v)
			arg++
		}
	}

	// optional text search on name, hostname and asset tag
	if params.q != "" {
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR hostname ILIKE $%d OR asset_tag ILIKE $%d)", arg, arg, arg))
		args = append(args, "%"+params.q+"%")
		arg++
	}

	whereClause := ""
	if len(clauses) > 0 {
		whereClause = " WHERE " + strings.Join(clauses, " AND ")
	}

	sqlStr := serverSelectSQL(", COUNT(*) OVER() as total_count") + whereClause

	allowedSort := map[string]string{
		"asset_tag":   "asset_tag",
		"name":        "name",
		"hostname":    "hostname",
		"status":      "status",
		"environment": "environment",
		"server_type": "server_type",
		"created_at":  "created_at",
		"updated_at":  "updated_at",
	}
	sqlStr += buildOrderBy(params.sort, allowedSort)
	sqlStr += fmt.Sprintf(" LIMIT %d OFFSET %d", params.limit, params.offset)

	rows, err := s.DB.QueryContext(r.Context(), sqlStr, args...)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	servers := []models.Server{}
	var totalCount int
	for rows.Next() {
		var srv models.Server
		dest := append(serverFields(&srv), &totalCount)
		if err := rows.Scan(dest...); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		servers = append(servers, srv)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	sendListResponse(w, servers, totalCount, params)
}

// getServer handles getting a single server by ID
func (s *Server) getServer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	srv, err := s.getServerByID(r.Context(), id)
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	writeJSON(w, http.StatusOK, srv)
}

// createServer handles creating a new server
func (s *Server) createServer(w http.ResponseWriter, r *http.Request) {
	var srv models.Server
	if err := json.NewDecoder(r.Body).Decode(&srv); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}

	srv.ApplyDefaults()

	if ve := schema.ValidateServer(&srv); ve != nil {
		sendValidationError(w, ve)
		return
	}

	inUse, err := s.assetTagInUse(r.Context(), srv.AssetTag, uuid.Nil)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if inUse {
		sendValidationError(w, schema.NewValidationError("asset_tag", "asset tag is already in use"))
		return
	}

	now := time.Now().UTC()
	srv.ID = uuid.New()
	srv.FirstDiscovered = now
	srv.CreatedAt = now
	srv.UpdatedAt = now
	if actor := auth.UserIDFromContext(r.Context()); actor != uuid.Nil {
		srv.CreatedByID = &actor
		srv.UpdatedByID = &actor
	}

	if _, err := s.DB.ExecContext(r.Context(), serverInsertSQL(), serverFields(&srv)...); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			sendValidationError(w, schema.NewValidationError("asset_tag", "asset tag is already in use"))
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	s.recordChange(r, models.KindServer, srv.ID, srv.Name, models.ChangeCreated, changeMapForCreate(&srv))

	writeJSON(w, http.StatusCreated, srv)
}

// updateServer applies a partial update. The request body is merged over the
// stored record, so fields absent from the body keep their stored values.
func (s *Server) updateServer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request body", 400)
		return
	}

	srv, err := s.getServerByID(r.Context(), id)
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	before, err := recordToMap(srv)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	createdAt := srv.CreatedAt
	firstDiscovered := srv.FirstDiscovered
	createdByID := srv.CreatedByID

	if s.Cfg != nil && s.Cfg.LegacyClearOnUpdate {
		srv.Description = nil
		srv.Hostname = nil
	}

	if err := json.Unmarshal(body, srv); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}

	// immutable fields are restored no matter what the body carried
	srv.ID = id
	srv.CreatedAt = createdAt
	srv.FirstDiscovered = firstDiscovered
	srv.CreatedByID = createdByID
	srv.UpdatedAt = time.Now().UTC()
	if actor := auth.UserIDFromContext(r.Context()); actor != uuid.Nil {
		srv.UpdatedByID = &actor
	}

	if ve := schema.ValidateServer(srv); ve != nil {
		sendValidationError(w, ve)
		return
	}

	inUse, err := s.assetTagInUse(r.Context(), srv.AssetTag, id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if inUse {
		sendValidationError(w, schema.NewValidationError("asset_tag", "asset tag is already in use"))
		return
	}

	args := append([]interface{}{&srv.ID}, serverFields(srv)[1:]...)
	if _, err := s.DB.ExecContext(r.Context(), serverUpdateSQL(), args...); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			sendValidationError(w, schema.NewValidationError("asset_tag", "asset tag is already in use"))
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	after, err := recordToMap(srv)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if changes := changedFields(before, after); len(changes) > 0 {
		s.recordChange(r, models.KindServer, srv.ID, srv.Name, models.ChangeUpdated, changes)
	}

	writeJSON(w, http.StatusOK, srv)
}

// deleteServer handles deleting a server
func (s *Server) deleteServer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	srv, err := s.getServerByID(r.Context(), id)
	if err == sql.ErrNoRows {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	res, err := s.DB.ExecContext(r.Context(), `DELETE FROM servers WHERE id = $1`, id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	s.recordChange(r, models.KindServer, id, srv.Name, models.ChangeDeleted, nil)

	w.WriteHeader(http.StatusNoContent)
}
