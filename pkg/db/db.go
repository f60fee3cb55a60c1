package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

// Open connects with the given dialector and migrates the service tables.
// Each call returns a new handle; callers share it by pointer.
func Open(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLoggerWith(common.LoggerNameDb)

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	instance := &DB{Conn: conn}

	if dialector.Name() == "sqlite" {
		// sqlite has a single writer; one pooled connection avoids "database is locked".
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	err = instance.Conn.AutoMigrate(
		&models.User{},
		&models.SurveyData{},
		&models.RepetitionRecord{},
		&models.ImuRecordPairRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed")

	if dialector.Name() == "sqlite" {
		if err := instance.Conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable sqlite foreign key support: %w", err)
		}

		if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return nil, fmt.Errorf("failed to set sqlite journal mode: %w", err)
		}
	}

	return instance, nil
}

func UseSqliteDialector() gorm.Dialector {
	return UseSqliteDialectorAt("")
}

// UseSqliteDialectorAt falls back to LIFTRIGHT_DB_PATH, then liftright.db, when path is empty.
func UseSqliteDialectorAt(path string) gorm.Dialector {
	if path != "" {
		return sqlite.Open(path)
	}
	var found bool
	if path, found = os.LookupEnv(common.EnvKeyDbPath); !found || path == "" {
		path = "liftright.db"
	}
	return sqlite.Open(path)
}

// UseMemorySqliteDialector names every in-memory database uniquely so that
// separately opened stores never see each other's rows.
func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func UsePostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

func (d *DB) CreateSurvey(ctx context.Context, survey *models.SurveyData) (int64, error) {
	result := d.Conn.WithContext(ctx).Create(survey)
	return result.RowsAffected, result.Error
}

func (d *DB) FindUser(ctx context.Context, deviceID string) (*models.User, error) {
	var user models.User
	err := d.Conn.WithContext(ctx).First(&user, "device_id = ?", deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) CreateRepetition(ctx context.Context, rep *models.Repetition) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	record := models.RepetitionRecord{
		DeviceID:   rep.DeviceID,
		ReceivedAt: time.Now(),
		Payload:    datatypes.JSON(payload),
	}
	return d.Conn.WithContext(ctx).Create(&record).Error
}

func (d *DB) CreateImuRecordPairs(ctx context.Context, pairs []models.ImuRecordPair) (int64, error) {
	if len(pairs) == 0 {
		return 0, nil
	}

	now := time.Now()
	records := make([]models.ImuRecordPairRecord, len(pairs))
	for i, pair := range pairs {
		payload, err := json.Marshal(pair)
		if err != nil {
			return 0, fmt.Errorf("%w: pair %d: %w", ErrEncoding, i, err)
		}
		records[i] = models.ImuRecordPairRecord{
			DeviceID:   pair.DeviceID,
			ReceivedAt: now,
			Payload:    datatypes.JSON(payload),
		}
	}

	result := d.Conn.WithContext(ctx).Create(&records)
	return result.RowsAffected, result.Error
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
