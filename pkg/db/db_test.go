package db

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type parent struct {
	ID   int64  `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex"`
}

type child struct {
	ID       int64 `gorm:"primaryKey"`
	ParentID int64
	Parent   parent `gorm:"constraint:OnDelete:RESTRICT"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := WithSQLiteForeignKeys(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&parent{}, &child{}))
	return conn
}

func TestSQLiteConstraintErrorsAreClassified(t *testing.T) {
	conn := setupTestDB(t)

	require.NoError(t, conn.Create(&parent{ID: 1, Code: "a"}).Error)

	err := conn.Create(&parent{ID: 2, Code: "a"}).Error
	assert.True(t, IsDuplicateKeyErr(err))
	assert.False(t, IsForeignKeyErr(err))

	err = conn.Create(&child{ID: 1, ParentID: 99}).Error
	assert.True(t, IsForeignKeyErr(err))
	assert.False(t, IsDuplicateKeyErr(err))

	require.NoError(t, conn.Create(&child{ID: 2, ParentID: 1}).Error)
	err = conn.Delete(&parent{}, 1).Error
	assert.True(t, IsForeignKeyErr(err))
}

func TestDriverErrorsAreClassified(t *testing.T) {
	assert.True(t, IsDuplicateKeyErr(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsForeignKeyErr(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsDuplicateKeyErr(&mysql.MySQLError{Number: 1062}))
	assert.True(t, IsForeignKeyErr(&mysql.MySQLError{Number: 1451}))
	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsForeignKeyErr(gorm.ErrForeignKeyViolated))
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.False(t, IsForeignKeyErr(errors.New("boom")))
}

func TestWithSQLiteForeignKeys(t *testing.T) {
	assert.Equal(t, "file:x.db?_pragma=foreign_keys(1)", WithSQLiteForeignKeys("file:x.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", WithSQLiteForeignKeys("file:x?mode=memory"))
	assert.Equal(t, "file:x?_pragma=foreign_keys(0)", WithSQLiteForeignKeys("file:x?_pragma=foreign_keys(0)"))
}

func TestDialect(t *testing.T) {
	dir := t.TempDir()
	d, err := Dialect(Config{Type: "sqlite", Path: filepath.Join(dir, "instance", "development.db")})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
	assert.DirExists(t, filepath.Join(dir, "instance"))

	d, err = Dialect(Config{Type: "postgres", Host: "localhost", Port: "5432", Name: "ecomsync", User: "u", SSLMode: "disable"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialect(Config{Type: "oracle"})
	assert.Error(t, err)
}

func TestPostgresDSNPrefersExplicitDSN(t *testing.T) {
	assert.Equal(t, "postgres://x", PostgresDSN(Config{DSN: "postgres://x"}))
	assert.Contains(t, PostgresDSN(Config{Host: "db", Port: "5432"}), "host=db")
}
