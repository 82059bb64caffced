package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// SQLiteAdapter implements ports.DeviceStore using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// DeviceModel is the GORM model for device exposure records.
type DeviceModel struct {
	Position       int    `gorm:"primaryKey;autoIncrement:false"` // 1-based feed order, drives first-seen machine order
	ID             string `gorm:"index"`                          // feed id, not unique
	CVEID          string `gorm:"index"`
	MachineID      string `gorm:"index"`
	FixingKBID     string
	ProductName    string
	ProductVendor  string
	ProductVersion string
	Severity       string
	UpdatedAt      time.Time
}

// NewSQLiteAdapter initializes the database and migrates schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("failed to enable tracing: %w", err)
	}

	// Auto Migrate
	if err := db.AutoMigrate(&DeviceModel{}); err != nil {
		return nil, err
	}

	return &SQLiteAdapter{db: db}, nil
}

// FetchDevices returns every stored device in feed order. It implements
// ports.DeviceFeed.
func (a *SQLiteAdapter) FetchDevices(ctx context.Context) ([]domain.DeviceRecord, error) {
	var models []DeviceModel
	if err := a.db.WithContext(ctx).Order("position").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load devices: %w", err)
	}

	devices := make([]domain.DeviceRecord, 0, len(models))
	for _, m := range models {
		devices = append(devices, toDomain(m))
	}
	return devices, nil
}

// ReplaceDevices swaps the stored inventory in a single transaction.
func (a *SQLiteAdapter) ReplaceDevices(ctx context.Context, devices []domain.DeviceRecord) error {
	models := make([]DeviceModel, 0, len(devices))
	for i, d := range devices {
		models = append(models, toModel(d, i+1))
	}

	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&DeviceModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		// Records sharing a feed id are distinct exposures and are all kept.
		if err := tx.CreateInBatches(models, 200).Error; err != nil {
			return fmt.Errorf("failed to save devices: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored device records.
func (a *SQLiteAdapter) Count(ctx context.Context) (int64, error) {
	var n int64
	err := a.db.WithContext(ctx).Model(&DeviceModel{}).Count(&n).Error
	return n, err
}

// Close closes the underlying connection pool.
func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
