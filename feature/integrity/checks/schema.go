package checks

import (
	"fmt"
	"sort"

	"par-manager/core/database"
	"par-manager/feature/inventory/models"

	"gorm.io/gorm"
)

// Table statuses.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusMissing = "missing"
)

// SchemaReport is the result of comparing the live schema to the models.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"`
}

// CheckSchema verifies every catalog table exists with the columns the
// models expect. Extra columns are allowed.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	expected := models.ExpectedColumns()
	tables := make([]string, 0, len(expected))
	for table := range expected {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		actual, err := database.ColumnSet(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tblReport := TableReport{MissingColumns: []string{}, Status: StatusOK}
		if len(actual) == 0 {
			tblReport.MissingColumns = append(tblReport.MissingColumns, expected[table]...)
			tblReport.Status = StatusMissing
			report.Matched = false
			report.Tables[table] = tblReport
			continue
		}

		for _, col := range expected[table] {
			if _, ok := actual[col]; !ok {
				tblReport.MissingColumns = append(tblReport.MissingColumns, col)
				tblReport.Status = StatusError
				report.Matched = false
			}
		}
		report.Tables[table] = tblReport
	}

	return report, nil
}
