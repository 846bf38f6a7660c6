package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const safetyZoneColumns = `z.id, z.name, z.type, z.latitude, z.longitude, z.radius, z.description, z.risk_level,
z.reasons, z.emergency_contacts, z.is_active, z.verified, z.reported_by, z.last_updated, z.created_at`

const reporterName = `NULLIF(trim(COALESCE(NULLIF(concat_ws(' ', u.first_name, u.last_name), ''), u.name, '')), '')`

type SafetyZoneWithReporter struct {
	SafetyZone
	ReporterName pgtype.Text `json:"reporter_name"`
}

func scanSafetyZone(row pgx.Row, extra ...interface{}) (SafetyZone, error) {
	var i SafetyZone
	dest := []interface{}{
		&i.ID,
		&i.Name,
		&i.Type,
		&i.Latitude,
		&i.Longitude,
		&i.Radius,
		&i.Description,
		&i.RiskLevel,
		&i.Reasons,
		&i.EmergencyContacts,
		&i.IsActive,
		&i.Verified,
		&i.ReportedBy,
		&i.LastUpdated,
		&i.CreatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return i, err
}

func collectSafetyZones(rows pgx.Rows) ([]SafetyZone, error) {
	defer rows.Close()
	items := []SafetyZone{}
	for rows.Next() {
		i, err := scanSafetyZone(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func collectSafetyZonesWithReporter(rows pgx.Rows) ([]SafetyZoneWithReporter, error) {
	defer rows.Close()
	items := []SafetyZoneWithReporter{}
	for rows.Next() {
		var reporter pgtype.Text
		zone, err := scanSafetyZone(rows, &reporter)
		if err != nil {
			return nil, err
		}
		items = append(items, SafetyZoneWithReporter{SafetyZone: zone, ReporterName: reporter})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findActiveZonesInBox = `-- name: FindActiveZonesInBox :many
SELECT ` + safetyZoneColumns + `
FROM safety_zones z
WHERE z.is_active = true
  AND ($5::text IS NULL OR z.type = $5::text)
  AND z.latitude BETWEEN $1::float8 AND $2::float8
  AND (($3::float8 <= $4::float8 AND z.longitude BETWEEN $3::float8 AND $4::float8)
    OR ($3::float8 > $4::float8 AND (z.longitude >= $3::float8 OR z.longitude <= $4::float8)))`

type FindActiveZonesInBoxParams struct {
	MinLatitude  float64     `json:"min_latitude"`
	MaxLatitude  float64     `json:"max_latitude"`
	MinLongitude float64     `json:"min_longitude"`
	MaxLongitude float64     `json:"max_longitude"`
	Type         pgtype.Text `json:"type"`
}

func (q *Queries) FindActiveZonesInBox(ctx context.Context, arg FindActiveZonesInBoxParams) ([]SafetyZone, error) {
	rows, err := q.db.Query(ctx, findActiveZonesInBox,
		arg.MinLatitude,
		arg.MaxLatitude,
		arg.MinLongitude,
		arg.MaxLongitude,
		arg.Type,
	)
	if err != nil {
		return nil, err
	}
	return collectSafetyZones(rows)
}

const insertSafetyZone = `-- name: InsertSafetyZone :one
INSERT INTO safety_zones AS z (name, type, latitude, longitude, radius, description, risk_level, reasons, reported_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + safetyZoneColumns

type InsertSafetyZoneParams struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Radius      int32       `json:"radius"`
	Description string      `json:"description"`
	RiskLevel   string      `json:"risk_level"`
	Reasons     []string    `json:"reasons"`
	ReportedBy  pgtype.UUID `json:"reported_by"`
}

func (q *Queries) InsertSafetyZone(ctx context.Context, arg InsertSafetyZoneParams) (SafetyZone, error) {
	row := q.db.QueryRow(ctx, insertSafetyZone,
		arg.Name,
		arg.Type,
		arg.Latitude,
		arg.Longitude,
		arg.Radius,
		arg.Description,
		arg.RiskLevel,
		arg.Reasons,
		arg.ReportedBy,
	)
	return scanSafetyZone(row)
}

var findReportedZones = `-- name: FindReportedZones :many
SELECT ` + safetyZoneColumns + `, ` + reporterName + `
FROM safety_zones z
LEFT JOIN users u ON u.id = z.reported_by
WHERE z.is_active = true
  AND z.reported_by IS NOT NULL
  AND ` + withinRadius("z", "$1", "$2", "$3") + `
ORDER BY z.created_at DESC
LIMIT $4`

type FindReportedZonesParams struct {
	Latitude  pgtype.Float8 `json:"latitude"`
	Longitude pgtype.Float8 `json:"longitude"`
	Radius    float64       `json:"radius"`
	Limit     int32         `json:"limit"`
}

func (q *Queries) FindReportedZones(ctx context.Context, arg FindReportedZonesParams) ([]SafetyZoneWithReporter, error) {
	rows, err := q.db.Query(ctx, findReportedZones, arg.Latitude, arg.Longitude, arg.Radius, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectSafetyZonesWithReporter(rows)
}

const findActiveZones = `-- name: FindActiveZones :many
SELECT ` + safetyZoneColumns + `, ` + reporterName + `
FROM safety_zones z
LEFT JOIN users u ON u.id = z.reported_by
WHERE z.is_active = true
ORDER BY z.created_at DESC`

func (q *Queries) FindActiveZones(ctx context.Context) ([]SafetyZoneWithReporter, error) {
	rows, err := q.db.Query(ctx, findActiveZones)
	if err != nil {
		return nil, err
	}
	return collectSafetyZonesWithReporter(rows)
}

const findRecentZones = `-- name: FindRecentZones :many
SELECT ` + safetyZoneColumns + `, ` + reporterName + `
FROM safety_zones z
LEFT JOIN users u ON u.id = z.reported_by
WHERE z.is_active = true
ORDER BY z.last_updated DESC
LIMIT $1`

func (q *Queries) FindRecentZones(ctx context.Context, limit int32) ([]SafetyZoneWithReporter, error) {
	rows, err := q.db.Query(ctx, findRecentZones, limit)
	if err != nil {
		return nil, err
	}
	return collectSafetyZonesWithReporter(rows)
}

const getZoneStatistics = `-- name: GetZoneStatistics :one
SELECT count(*) AS total_reports,
       count(*) FILTER (WHERE is_active) AS active_reports,
       count(*) FILTER (WHERE is_active AND risk_level IN ('High', 'Critical')) AS high_risk_reports
FROM safety_zones`

type GetZoneStatisticsRow struct {
	TotalReports    int64 `json:"total_reports"`
	ActiveReports   int64 `json:"active_reports"`
	HighRiskReports int64 `json:"high_risk_reports"`
}

func (q *Queries) GetZoneStatistics(ctx context.Context) (GetZoneStatisticsRow, error) {
	row := q.db.QueryRow(ctx, getZoneStatistics)
	var i GetZoneStatisticsRow
	err := row.Scan(&i.TotalReports, &i.ActiveReports, &i.HighRiskReports)
	return i, err
}
