// Package database handles database connections and schema inspection.
//
// It wraps GORM and selects the dialector from configuration: MySQL,
// PostgreSQL or SQLite. Connections run with TranslateError enabled so
// unique-key violations surface as gorm.ErrDuplicatedKey regardless of driver.
//
// # Schema Inspection
//
// GetTableColumns reads live column definitions (SHOW COLUMNS, PRAGMA
// table_info or information_schema depending on the dialect). The integrity
// feature compares them against the inventory models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "products")
package database
