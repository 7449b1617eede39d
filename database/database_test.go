package database

import (
	"fmt"
	"strings"
	"testing"

	"blogward/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDatabase opens a uniquely named in-memory SQLite database so
// parallel tests never share state, and migrates the full schema.
func newTestDatabase(t *testing.T) Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	testDB := New(db)
	require.NoError(t, testDB.Migrate())
	return testDB
}

func TestMigrateBuildsJoinTableFromModel(t *testing.T) {
	db := newTestDatabase(t)

	migrator := db.BlogTagRepo().DB().Migrator()
	assert.True(t, migrator.HasTable(&models.BlogTag{}))
	for _, column := range []string{"id", "blog_id", "tag_id", "created_at", "updated_at"} {
		assert.True(t, migrator.HasColumn(&models.BlogTag{}, column), "missing column %s", column)
	}
	assert.True(t, migrator.HasIndex(&models.BlogTag{}, "idx_blog_tag_unique"))
}
