// Package database 保存每次运行的统计，供 stats 命令使用
package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

// RunRecord 一次清理运行的结果
type RunRecord struct {
	ID                int64     `gorm:"primaryKey"`
	RunID             string    `gorm:"uniqueIndex;not null"`
	Command           string    `gorm:"not null"`
	Root              string    `gorm:"not null"`
	DryRun            bool      `gorm:"not null"`
	FilesMoved        int       `gorm:"not null"`
	FilesDeleted      int       `gorm:"not null"`
	DuplicatesRemoved int       `gorm:"not null"`
	BytesFreed        int64     `gorm:"not null"`
	TotalOperations   int       `gorm:"not null"`
	Errors            int       `gorm:"not null"`
	CreatedAt         time.Time `gorm:"index;not null"`
}

func (RunRecord) TableName() string {
	return "runs"
}

// NewRunRecord 根据会话信息构造记录
func NewRunRecord(runID, command, root string, dryRun bool, stats internal.RunStats, totalOps, errCount int) *RunRecord {
	return &RunRecord{
		RunID:             runID,
		Command:           command,
		Root:              root,
		DryRun:            dryRun,
		FilesMoved:        stats.FilesMoved,
		FilesDeleted:      stats.FilesDeleted,
		DuplicatesRemoved: stats.DuplicatesRemoved,
		BytesFreed:        stats.BytesFreed,
		TotalOperations:   totalOps,
		Errors:            errCount,
	}
}

// Totals 所有历史运行的累计值
type Totals struct {
	Runs              int64
	FilesMoved        int64
	FilesDeleted      int64
	DuplicatesRemoved int64
	BytesFreed        int64
	LastRun           time.Time
}

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	logger.Get().Info().Msgf("初始化数据库，路径: %s", dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建数据库目录失败: %s", filepath.Dir(dbPath))
		return nil, err
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("打开数据库连接失败")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&RunRecord{}); err != nil {
		logger.Get().Error().Err(err).Msg("创建数据库表失败")
		return nil, err
	}

	logger.Get().Debug().Msg("数据库初始化完成")
	return &Database{db: db}, nil
}

func (d *Database) Insert(record *RunRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := d.db.Create(record).Error; err != nil {
		logger.Get().Error().Err(err).Msgf("插入运行记录失败: %s", record.RunID)
		return fmt.Errorf("插入运行记录: %w", err)
	}

	logger.Get().Debug().Msgf("插入运行记录成功: %s (%s)", record.RunID, record.Command)
	return nil
}

// Latest 返回最近的 limit 条记录，新的在前
func (d *Database) Latest(limit int) ([]RunRecord, error) {
	var records []RunRecord
	err := d.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询运行记录: %w", err)
	}
	return records, nil
}

// Last 返回最近一条记录，没有记录时返回 internal.ErrNotFound
func (d *Database) Last() (*RunRecord, error) {
	var record RunRecord
	err := d.db.Order("created_at DESC").Order("id DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: 没有运行记录", internal.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询运行记录: %w", err)
	}
	return &record, nil
}

// Totals 统计实际运行（不含预览）的累计值
func (d *Database) Totals() (*Totals, error) {
	var row struct {
		Runs              int64
		FilesMoved        int64
		FilesDeleted      int64
		DuplicatesRemoved int64
		BytesFreed        int64
	}
	err := d.db.Model(&RunRecord{}).
		Select("COUNT(*) AS runs, "+
			"COALESCE(SUM(files_moved), 0) AS files_moved, "+
			"COALESCE(SUM(files_deleted), 0) AS files_deleted, "+
			"COALESCE(SUM(duplicates_removed), 0) AS duplicates_removed, "+
			"COALESCE(SUM(bytes_freed), 0) AS bytes_freed").
		Where("dry_run = ?", false).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("统计运行记录: %w", err)
	}

	totals := &Totals{
		Runs:              row.Runs,
		FilesMoved:        row.FilesMoved,
		FilesDeleted:      row.FilesDeleted,
		DuplicatesRemoved: row.DuplicatesRemoved,
		BytesFreed:        row.BytesFreed,
	}

	last, err := d.Last()
	if err != nil && !errors.Is(err, internal.ErrNotFound) {
		return nil, err
	}
	if last != nil {
		totals.LastRun = last.CreatedAt
	}
	return totals, nil
}

func (d *Database) Close() error {
	logger.Get().Debug().Msg("关闭数据库连接")
	sqlDB, err := d.db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return err
	}
	return sqlDB.Close()
}
