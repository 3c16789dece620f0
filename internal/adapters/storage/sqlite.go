package storage

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
	"github.com/lcalzada-xor/wsurvey/internal/core/ports"
)

// SQLiteAdapter implements ports.NetworkStore using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// SnapshotModel is the GORM model for one survey cycle.
type SnapshotModel struct {
	CycleID   string `gorm:"primaryKey"`
	Taken     time.Time
	Interface string
	Networks  []NetworkModel `gorm:"foreignKey:CycleID;references:CycleID"`
}

// NetworkModel is the GORM model for one observed network.
type NetworkModel struct {
	ID           uint   `gorm:"primaryKey"`
	CycleID      string `gorm:"index"`
	BSSID        string `gorm:"index"`
	SSID         string
	Vendor       string
	RSSI         int
	Channel      int
	Frequency    int
	Band         int
	ChannelWidth int
	Standard     string
	BasicRates   string // JSON encoded []float64
	MinRate      float64
	MaxRate      float64
	Derived      string // JSON encoded domain.DerivedMetrics
	LastSeen     time.Time

	Elements []ElementModel `gorm:"foreignKey:NetworkID"`
}

// ElementModel stores one decoded information element.
type ElementModel struct {
	ID        uint `gorm:"primaryKey"`
	NetworkID uint `gorm:"index"`
	Ident     string
	ElementID int
	Length    int
	Name      string
	Summary   string
	Details   string // JSON encoded []string
	RawHex    string
}

// NewSQLiteAdapter initializes the database and migrates the schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&SnapshotModel{}, &NetworkModel{}, &ElementModel{}); err != nil {
		return nil, err
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_snapshots_taken ON snapshot_models(taken)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_networks_ssid ON network_models(ssid)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_networks_last_seen ON network_models(last_seen)")

	return &SQLiteAdapter{db: db}, nil
}

// SaveSnapshot persists one survey cycle with all its networks and elements.
func (a *SQLiteAdapter) SaveSnapshot(snap domain.Snapshot) error {
	model := toModel(snap)
	return a.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
}

// LatestSnapshot loads the most recent survey cycle. gorm.ErrRecordNotFound
// is returned when nothing has been persisted yet.
func (a *SQLiteAdapter) LatestSnapshot() (domain.Snapshot, error) {
	var model SnapshotModel
	err := a.db.Preload("Networks.Elements").Order("taken DESC").First(&model).Error
	if err != nil {
		return domain.Snapshot{}, err
	}
	return toDomain(model), nil
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure interface compliance
var _ ports.NetworkStore = (*SQLiteAdapter)(nil)
