package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"liyu1981.xyz/liftright-data-server/pkg/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrEncoding    = errors.New("payload encoding failed")
	ErrUnknownType = errors.New("unknown database type")
)

// Store is the driver-facing side of persistence. Implementations translate
// "no rows" into ErrNotFound and payload marshalling failures into ErrEncoding.
type Store interface {
	CreateSurvey(ctx context.Context, survey *models.SurveyData) (int64, error)
	FindUser(ctx context.Context, deviceID string) (*models.User, error)
	CreateRepetition(ctx context.Context, rep *models.Repetition) error
	CreateImuRecordPairs(ctx context.Context, pairs []models.ImuRecordPair) (int64, error)
	Close() error
}

type Options struct {
	Type            string
	Path            string
	PostgresDSN     string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// OpenStore opens the store selected by opts.Type: file, memory, postgres or mongo.
func OpenStore(ctx context.Context, opts Options) (Store, error) {
	var dialector gorm.Dialector
	switch opts.Type {
	case "file":
		dialector = UseSqliteDialectorAt(opts.Path)
	case "memory":
		dialector = UseMemorySqliteDialector()
	case "postgres":
		if opts.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres selected but no dsn configured")
		}
		dialector = UsePostgresDialector(opts.PostgresDSN)
	case "mongo":
		store, err := OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, opts.Type)
	}

	store, err := Open(dialector)
	if err != nil {
		return nil, err
	}
	return store, nil
}
