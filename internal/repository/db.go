package repository

import (
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/user/moovie-semantic/internal/model"
)

// InitDB 初始化数据库连接并完成建表
func InitDB(databaseURL string) (*gorm.DB, error) {
	// 使用 lib/pq 驱动，便于识别 *pq.Error
	db, err := gorm.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        databaseURL,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取连接池失败: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 启用 pgvector 扩展并同步表结构
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("启用 vector 扩展失败: %w", err)
	}
	if err := db.AutoMigrate(&model.Movie{}); err != nil {
		return fmt.Errorf("数据表迁移失败: %w", err)
	}
	return nil
}

// Repositories 仓库集合
type Repositories struct {
	DB    *gorm.DB
	Movie *MovieRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:    db,
		Movie: NewMovieRepository(db),
	}
}

// Close 关闭底层连接池
func (r *Repositories) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
