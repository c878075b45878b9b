package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE on_hand (product_id INTEGER NOT NULL, location_id INTEGER NOT NULL, qty_tenths INTEGER, PRIMARY KEY (product_id, location_id))").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "on_hand")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["product_id"].Type)
	assert.Equal(t, "PRI", colMap["product_id"].Key)
	assert.Equal(t, "NO", colMap["location_id"].Null)
	assert.Equal(t, "YES", colMap["qty_tenths"].Null)

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)

	set, err := ColumnSet(db, "on_hand")
	require.NoError(t, err)
	assert.Contains(t, set, "qty_tenths")
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "BIGINT UNSIGNED", "NO", "PRI", nil, "auto_increment").
		AddRow("Name", "VARCHAR(191)", "NO", "UNI", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `vendors`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "vendors")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "bigint unsigned", columns[0].Type)
	assert.Equal(t, "varchar(191)", columns[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
