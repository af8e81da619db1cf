package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newDryRunDB builds a gorm handle that renders SQL without touching a
// database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, err := sql.Open("mysql", "user:pass@tcp(127.0.0.1:3306)/moneta?parseTime=true")
	assert.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	assert.NoError(t, err)
	return db
}

func TestForUpdateQueriesEmitRowLock(t *testing.T) {
	db := newDryRunDB(t)

	var captured string
	err := db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	assert.NoError(t, err)

	ctx := context.Background()

	_, err = NewAccountRepository(db).FindByNumberForUpdate(ctx, "KZ2001")
	assert.NoError(t, err)
	assert.Contains(t, captured, "FOR UPDATE")

	captured = ""
	_, err = NewLoanRepository(db).FindByIDForUpdate(ctx, 1)
	assert.NoError(t, err)
	assert.Contains(t, captured, "FOR UPDATE")

	// Plain reads must not lock.
	captured = ""
	_, err = NewAccountRepository(db).FindByNumber(ctx, "KZ2001")
	assert.NoError(t, err)
	assert.NotContains(t, captured, "FOR UPDATE")
}
