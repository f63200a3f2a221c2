package database_test

import (
	"fmt"
	"testing"

	"swmanager/internal/database"
	"swmanager/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type foreignKey struct {
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnDelete string `gorm:"column:on_delete"`
}

func foreignKeys(t *testing.T, db *gorm.DB, table string) []string {
	t.Helper()
	var rows []foreignKey
	require.NoError(t, db.Raw(fmt.Sprintf("PRAGMA foreign_key_list(%q)", table)).Scan(&rows).Error)

	keys := make([]string, 0, len(rows))
	for _, fk := range rows {
		keys = append(keys, fmt.Sprintf("%s -> %s.%s %s", fk.From, fk.Table, fk.To, fk.OnDelete))
	}
	return keys
}

func TestMigrate_ForeignKeysPointAtParents(t *testing.T) {
	db := testutil.NewDB(t)

	expected := map[string][]string{
		"users":          {},
		"departments":    {},
		"computers":      {},
		"software_types": {},
		"vendors":        {},
		"audit_logs":     {"user_id -> users.user_id CASCADE"},
		"computer_assignments": {
			"computer_id -> computers.computer_id CASCADE",
			"dept_id -> departments.dept_id CASCADE",
		},
		"software": {"sw_type_id -> software_types.sw_type_id CASCADE"},
		"licenses": {
			"software_id -> software.software_id CASCADE",
			"vendor_id -> vendors.vendor_id CASCADE",
		},
		"installations": {
			"computer_id -> computers.computer_id CASCADE",
			"license_id -> licenses.license_id CASCADE",
		},
	}

	for table, want := range expected {
		t.Run(table, func(t *testing.T) {
			assert.ElementsMatch(t, want, foreignKeys(t, db, table))
		})
	}
}

func TestMigrate_CreatesEveryModelTable(t *testing.T) {
	db := testutil.NewDB(t)

	for _, m := range database.Models() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
}

func TestClose_NilIsNoop(t *testing.T) {
	assert.NoError(t, database.Close(nil))
}
