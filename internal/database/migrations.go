package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Construction log indexes for project/date filtering
		{"construction_logs", "idx_logs_project_id", "project_id"},
		{"construction_logs", "idx_logs_date", "date"},

		// Child collection lookups by parent log
		{"weather_entries", "idx_weather_log_id", "log_id"},
		{"occurrences", "idx_occurrences_log_id", "log_id"},
		{"service_entries", "idx_services_log_id", "log_id"},
		{"attachments", "idx_attachments_log_id", "log_id"},
		{"employee_hours", "idx_employee_hours_log_id", "log_id"},
		{"employee_hours", "idx_employee_hours_employee_id", "employee_id"},
		{"equipment_usages", "idx_equipment_usages_log_id", "log_id"},

		// Company membership indexes
		{"company_members", "idx_company_members_company_id", "company_id"},
		{"company_members", "idx_company_members_user_id", "user_id"},

		// Company-scoped listings
		{"projects", "idx_projects_company_id", "company_id"},
		{"projects", "idx_projects_status", "status"},
		{"employees", "idx_employees_company_id", "company_id"},
		{"equipment", "idx_equipment_company_id", "company_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			fmt.Printf("Index %s already exists, skipping\n", idx.name)
			continue
		}

		// Create index
		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
