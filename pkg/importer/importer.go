// Package importer loads server records from Excel workbooks. A YAML mapping
// describes how sheet columns translate to catalog fields; rows are matched
// to existing records by asset tag, inserted otherwise.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tealeg/xlsx/v3"
	"gopkg.in/yaml.v3"

	"asset-inventory-api/internal/models"
	"asset-inventory-api/internal/schema"
)

// ImportOptions defines the configuration for Excel import operations
type ImportOptions struct {
	MappingPath string // empty uses the built-in server mapping
	DryRun      bool
	MaxErrors   int // default 50
	ImportedBy  *uuid.UUID
}

// RowError represents an error that occurred during row processing
type RowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// SheetSummary contains the import statistics for a single sheet
type SheetSummary struct {
	Name     string     `json:"name"`
	Inserted int        `json:"inserted"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Errors   int        `json:"errors"`
	Samples  []RowError `json:"error_samples,omitempty"`
}

// ImportSummary contains the overall import statistics
type ImportSummary struct {
	Inserted int            `json:"inserted"`
	Updated  int            `json:"updated"`
	Skipped  int            `json:"skipped"`
	Errors   int            `json:"errors"`
	Sheets   []SheetSummary `json:"sheets"`
	DryRun   bool           `json:"dry_run"`
}

// MappingConfig represents the YAML mapping configuration
type MappingConfig struct {
	Version  int                    `yaml:"version"`
	Defaults map[string]string      `yaml:"defaults"`
	Sheets   map[string]SheetConfig `yaml:"sheets"`
}

type SheetConfig struct {
	NaturalKey []string                `yaml:"natural_key"`
	Aliases    map[string][]string     `yaml:"aliases"`
	Columns    map[string]ColumnConfig `yaml:"columns"`
}

type ColumnConfig struct {
	Field string `yaml:"field"`
	Type  string `yaml:"type"`
}

// defaultMapping is used when no mapping file is supplied. It covers the
// workbook layout the inventory team exports from their discovery tooling.
const defaultMapping = `
version: 1
defaults:
  status: ACTIVE
  environment: PROD
sheets:
  Servers:
    natural_key: [asset_tag]
    aliases:
      "Asset Tag": ["Tag", "Asset Number"]
      "Serial Number": ["Serial", "S/N"]
      "IP Address": ["Primary IP", "Mgmt IP"]
      "Operating System": ["OS"]
      "Server Role": ["Role"]
    columns:
      "Asset Tag": {field: asset_tag, type: TEXT}
      "Name": {field: name, type: TEXT}
      "Hostname": {field: hostname, type: TEXT}
      "Serial Number": {field: serial_number, type: TEXT}
      "Manufacturer": {field: manufacturer, type: TEXT}
      "Model": {field: model, type: TEXT}
      "Status": {field: status, type: TEXT}
      "Environment": {field: environment, type: TEXT}
      "Server Type": {field: server_type, type: TEXT}
      "Operating System": {field: operating_system, type: TEXT}
      "OS Version": {field: os_version, type: TEXT}
      "Server Role": {field: server_role, type: TEXT}
      "IP Address": {field: primary_ip_address, type: TEXT}
      "RAM (GB)": {field: ram_gb, type: INT}
      "Cores": {field: number_of_cores, type: INT}
      "Storage (GB)": {field: storage_capacity_gb, type: INT}
      "Virtual": {field: is_virtual, type: BOOL}
      "Notes": {field: notes, type: TEXT}
`

// serverImportFields is the whitelist of columns the importer may write.
var serverImportFields = map[string]bool{
	"asset_tag":           true,
	"name":                true,
	"hostname":            true,
	"serial_number":       true,
	"manufacturer":        true,
	"model":               true,
	"status":              true,
	"environment":         true,
	"server_type":         true,
	"operating_system":    true,
	"os_version":          true,
	"server_role":         true,
	"primary_ip_address":  true,
	"ram_gb":              true,
	"number_of_cores":     true,
	"storage_capacity_gb": true,
	"is_virtual":          true,
	"notes":               true,
}

// importEnumChecks lists the closed-set fields a workbook may carry and the
// membership check for each, in the order violations are reported.
var importEnumChecks = []struct {
	field string
	valid func(string) bool
}{
	{"status", func(v string) bool { return models.AssetStatus(v).Valid() }},
	{"environment", func(v string) bool { return models.Environment(v).Valid() }},
	{"server_type", func(v string) bool { return models.ServerType(v).Valid() }},
	{"operating_system", func(v string) bool { return models.ServerOS(v).Valid() }},
	{"server_role", func(v string) bool { return models.ServerRole(v).Valid() }},
}

// validateEnums checks the enum fields present in a partial record. Absent
// fields keep their stored values and are not checked.
func validateEnums(record map[string]interface{}) error {
	for _, check := range importEnumChecks {
		raw, present := record[check.field]
		if !present {
			continue
		}
		v, _ := raw.(string)
		if !check.valid(v) {
			return fmt.Errorf("%s: %q is not one of the allowed choices", check.field, v)
		}
	}
	return nil
}

// validateNewServer runs a full record through the same validation the JSON
// create path uses: required fields, enum membership and numeric ranges.
func validateNewServer(record map[string]interface{}) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var srv models.Server
	if err := json.Unmarshal(raw, &srv); err != nil {
		return err
	}
	srv.ApplyDefaults()
	if ve := schema.ValidateServer(&srv); ve != nil {
		return ve
	}
	return nil
}

// ImportExcel processes an Excel workbook and writes server records through
// the pool. A dry run walks every row but commits nothing.
func ImportExcel(ctx context.Context, db *pgxpool.Pool, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{
		DryRun: opts.DryRun,
		Sheets: []SheetSummary{},
	}

	if opts.MaxErrors == 0 {
		opts.MaxErrors = 50
	}

	mapping, err := loadMappingConfig(opts.MappingPath)
	if err != nil {
		return summary, fmt.Errorf("failed to load mapping config: %w", err)
	}

	// xlsx needs an io.ReaderAt, so buffer the upload first
	data, err := io.ReadAll(r)
	if err != nil {
		return summary, fmt.Errorf("failed to read Excel file: %w", err)
	}

	xlFile, err := xlsx.OpenBinary(data)
	if err != nil {
		return summary, fmt.Errorf("failed to open Excel file: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, sheet := range xlFile.Sheets {
		sheetConfig, exists := mapping.Sheets[sheet.Name]
		if !exists {
			continue // Skip sheets without mapping
		}

		sheetSummary := processSheet(ctx, tx, sheet, sheetConfig, opts, mapping.Defaults)
		summary.Sheets = append(summary.Sheets, sheetSummary)

		summary.Inserted += sheetSummary.Inserted
		summary.Updated += sheetSummary.Updated
		summary.Skipped += sheetSummary.Skipped
		summary.Errors += sheetSummary.Errors

		if summary.Errors > opts.MaxErrors {
			return summary, fmt.Errorf("too many errors (%d), stopping import", summary.Errors)
		}
	}

	if !opts.DryRun {
		if err := tx.Commit(ctx); err != nil {
			return summary, fmt.Errorf("failed to commit import: %w", err)
		}
		committed = true
	}

	return summary, nil
}

func loadMappingConfig(path string) (*MappingConfig, error) {
	raw := []byte(defaultMapping)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = data
	}

	var config MappingConfig
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, err
	}
	if len(config.Sheets) == 0 {
		return nil, errors.New("mapping config defines no sheets")
	}
	return &config, nil
}

func processSheet(ctx context.Context, tx pgx.Tx, sheet *xlsx.Sheet, config SheetConfig, opts ImportOptions, defaults map[string]string) SheetSummary {
	summary := SheetSummary{Name: sheet.Name}

	headerRow, err := sheet.Row(0)
	if err != nil {
		summary.Errors++
		summary.Samples = append(summary.Samples, RowError{
			Sheet:   sheet.Name,
			Row:     1,
			Message: "Failed to read header row: " + err.Error(),
		})
		return summary
	}

	// Resolve each column index to a catalog field, honoring aliases.
	fieldByCol := map[int]ColumnConfig{}
	for colIdx := 0; colIdx < sheet.MaxCol; colIdx++ {
		cell := headerRow.GetCell(colIdx)
		headerName := strings.TrimSpace(cell.String())
		if headerName == "" {
			continue
		}
		if cfg, ok := lookupColumn(headerName, config); ok {
			fieldByCol[colIdx] = cfg
		}
	}

	for rowIdx := 1; rowIdx < sheet.MaxRow; rowIdx++ {
		row, err := sheet.Row(rowIdx)
		if err != nil {
			break // No more rows
		}

		record, rowErr := buildRecord(row, fieldByCol, defaults)
		if rowErr != nil {
			summary.Errors++
			summary.Samples = append(summary.Samples, RowError{
				Sheet:   sheet.Name,
				Row:     rowIdx + 1,
				Message: rowErr.Error(),
			})
			continue
		}
		if len(record) == 0 {
			summary.Skipped++
			continue
		}

		tag, _ := record["asset_tag"].(string)
		if tag == "" {
			summary.Errors++
			summary.Samples = append(summary.Samples, RowError{
				Sheet:   sheet.Name,
				Row:     rowIdx + 1,
				Message: "asset_tag is required",
			})
			continue
		}

		existingID, err := findExistingServer(ctx, tx, tag)
		if err != nil {
			summary.Errors++
			summary.Samples = append(summary.Samples, RowError{
				Sheet:   sheet.Name,
				Row:     rowIdx + 1,
				Message: err.Error(),
			})
			continue
		}

		if existingID != uuid.Nil {
			if err := updateServer(ctx, tx, existingID, record, opts); err != nil {
				summary.Errors++
				summary.Samples = append(summary.Samples, RowError{
					Sheet:   sheet.Name,
					Row:     rowIdx + 1,
					Message: err.Error(),
				})
				continue
			}
			summary.Updated++
		} else {
			if err := insertServer(ctx, tx, record, opts); err != nil {
				summary.Errors++
				summary.Samples = append(summary.Samples, RowError{
					Sheet:   sheet.Name,
					Row:     rowIdx + 1,
					Message: err.Error(),
				})
				continue
			}
			summary.Inserted++
		}
	}

	return summary
}

func lookupColumn(headerName string, config SheetConfig) (ColumnConfig, bool) {
	for name, cfg := range config.Columns {
		if strings.EqualFold(name, headerName) {
			return cfg, true
		}
		for _, alias := range config.Aliases[name] {
			if strings.EqualFold(alias, headerName) {
				return cfg, true
			}
		}
	}
	return ColumnConfig{}, false
}

func buildRecord(row *xlsx.Row, fieldByCol map[int]ColumnConfig, defaults map[string]string) (map[string]interface{}, error) {
	record := map[string]interface{}{}

	for colIdx, cfg := range fieldByCol {
		if !serverImportFields[cfg.Field] {
			continue
		}
		value := strings.TrimSpace(row.GetCell(colIdx).String())
		if value == "" {
			continue
		}
		parsed, err := parseValue(value, cfg.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %v", cfg.Field, err)
		}
		record[cfg.Field] = parsed
	}

	if len(record) == 0 {
		return record, nil
	}

	for field, value := range defaults {
		if !serverImportFields[field] {
			continue
		}
		if _, set := record[field]; !set {
			record[field] = value
		}
	}

	return record, nil
}

func parseValue(value, valueType string) (interface{}, error) {
	switch strings.ToUpper(valueType) {
	case "", "TEXT", "STRING":
		return value, nil
	case "INT":
		return strconv.Atoi(value)
	case "BOOL":
		value = strings.ToLower(value)
		return value == "yes" || value == "y" || value == "true" || value == "1", nil
	case "TIMESTAMP":
		formats := []string{
			"2006-01-02",
			"2006-01-02 15:04:05",
			"01/02/2006",
			"01/02/2006 15:04:05",
		}
		for _, format := range formats {
			if t, err := time.Parse(format, value); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("invalid timestamp format: %s", value)
	default:
		return value, nil
	}
}

// findExistingServer resolves an asset tag to a server id. Tags are unique
// across the whole catalog, so a tag held by another asset kind is an error,
// not an insert.
func findExistingServer(ctx context.Context, tx pgx.Tx, assetTag string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, "SELECT id FROM servers WHERE asset_tag = $1", assetTag).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, err
	}

	var taken bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM (
				SELECT asset_tag FROM end_user_devices
				UNION ALL SELECT asset_tag FROM network_devices
				UNION ALL SELECT asset_tag FROM iot_devices
			) t
			WHERE t.asset_tag = $1
		)`, assetTag).Scan(&taken)
	if err != nil {
		return uuid.Nil, err
	}
	if taken {
		return uuid.Nil, fmt.Errorf("asset tag %s is already used by another asset kind", assetTag)
	}
	return uuid.Nil, nil
}

// recordImportChange appends one audit entry inside the import transaction,
// so a dry run or a failed import leaves no trace in the log.
func recordImportChange(ctx context.Context, tx pgx.Tx, assetID uuid.UUID, assetName, changeType string, changes models.ChangeMap, opts ImportOptions) error {
	var changedBy interface{}
	if opts.ImportedBy != nil {
		changedBy = *opts.ImportedBy
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO asset_change_log (asset_type, asset_id, asset_name, change_type, changed_fields, changed_by_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, 'excel import')
	`, models.KindServer, assetID, assetName, changeType, changes, changedBy)
	return err
}

func insertServer(ctx context.Context, tx pgx.Tx, record map[string]interface{}, opts ImportOptions) error {
	if err := validateNewServer(record); err != nil {
		return err
	}

	id := uuid.New()
	now := time.Now().UTC()
	fields := []string{"id", "first_discovered", "created_at", "updated_at"}
	values := []interface{}{id, now, now, now}
	if opts.ImportedBy != nil {
		fields = append(fields, "created_by_id", "updated_by_id")
		values = append(values, *opts.ImportedBy, *opts.ImportedBy)
	}
	for field, value := range record {
		fields = append(fields, field)
		values = append(values, value)
	}

	placeholders := make([]string, len(fields))
	for i := range fields {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO servers (%s) VALUES (%s)",
		strings.Join(fields, ", "), strings.Join(placeholders, ", "))
	if _, err := tx.Exec(ctx, query, values...); err != nil {
		return err
	}

	changes := models.ChangeMap{}
	for field, value := range record {
		changes[field] = models.FieldChange{Old: nil, New: value}
	}
	name, _ := record["name"].(string)
	return recordImportChange(ctx, tx, id, name, models.ChangeCreated, changes, opts)
}

func updateServer(ctx context.Context, tx pgx.Tx, id uuid.UUID, record map[string]interface{}, opts ImportOptions) error {
	if err := validateEnums(record); err != nil {
		return err
	}

	fields := make([]string, 0, len(record))
	for field := range record {
		if field == "asset_tag" {
			continue // the natural key itself is never rewritten
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)
	if len(fields) == 0 {
		return nil
	}

	// current values drive the audit diff
	var name string
	current := make([]interface{}, len(fields))
	dest := make([]interface{}, 0, len(fields)+1)
	dest = append(dest, &name)
	for i := range current {
		dest = append(dest, &current[i])
	}
	selectSQL := "SELECT name, " + strings.Join(fields, ", ") + " FROM servers WHERE id = $1"
	if err := tx.QueryRow(ctx, selectSQL, id).Scan(dest...); err != nil {
		return err
	}

	setParts := []string{"updated_at = now()"}
	values := []interface{}{}
	argIndex := 1
	changes := models.ChangeMap{}

	for i, field := range fields {
		value := record[field]
		setParts = append(setParts, fmt.Sprintf("%s = $%d", field, argIndex))
		values = append(values, value)
		argIndex++
		if !sameValue(current[i], value) {
			changes[field] = models.FieldChange{Old: current[i], New: value}
		}
	}
	if opts.ImportedBy != nil {
		setParts = append(setParts, fmt.Sprintf("updated_by_id = $%d", argIndex))
		values = append(values, *opts.ImportedBy)
		argIndex++
	}

	query := fmt.Sprintf("UPDATE servers SET %s WHERE id = $%d", strings.Join(setParts, ", "), argIndex)
	values = append(values, id)
	if _, err := tx.Exec(ctx, query, values...); err != nil {
		return err
	}

	if len(changes) == 0 {
		return nil
	}
	if v, ok := record["name"].(string); ok {
		name = v
	}
	return recordImportChange(ctx, tx, id, name, models.ChangeUpdated, changes, opts)
}

// sameValue compares a stored column value with its parsed workbook
// counterpart. The driver hands back wider types (int64 for INT columns),
// so numeric comparison goes through the printed form.
func sameValue(stored, parsed interface{}) bool {
	if stored == nil || parsed == nil {
		return stored == nil && parsed == nil
	}
	if st, ok := stored.(time.Time); ok {
		if pt, ok := parsed.(time.Time); ok {
			return st.Equal(pt)
		}
	}
	return fmt.Sprint(stored) == fmt.Sprint(parsed)
}
