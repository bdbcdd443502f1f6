// Package testutil 提供测试用的 sqlite 数据库与内存媒体存储。
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"vidtube-go/internal/infra/database"
	"vidtube-go/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB 为每个测试创建独立的内存数据库并完成迁移
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db, model.All()...))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
