package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/models"
)

// MongoStore keeps every document in one collection, told apart by "kind".
type MongoStore struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

type surveyDocument struct {
	Kind              string `bson:"kind"`
	models.SurveyData `bson:",inline"`
}

type repetitionDocument struct {
	Kind              string    `bson:"kind"`
	ReceivedAt        time.Time `bson:"received_at"`
	models.Repetition `bson:",inline"`
}

type imuRecordPairDocument struct {
	Kind                 string    `bson:"kind"`
	ReceivedAt           time.Time `bson:"received_at"`
	models.ImuRecordPair `bson:",inline"`
}

func OpenMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	logger := common.GetLoggerWith(common.LoggerNameDb)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("Connected to mongo",
		zap.String("database", database),
		zap.String("collection", collection))

	return &MongoStore{
		Client:     client,
		Collection: client.Database(database).Collection(collection),
	}, nil
}

func (m *MongoStore) CreateSurvey(ctx context.Context, survey *models.SurveyData) (int64, error) {
	if _, err := m.Collection.InsertOne(ctx, surveyDocument{Kind: models.KindSurveyResult, SurveyData: *survey}); err != nil {
		return 0, err
	}
	return 1, nil
}

func (m *MongoStore) FindUser(ctx context.Context, deviceID string) (*models.User, error) {
	var user models.User
	filter := bson.D{{Key: "kind", Value: models.KindUser}, {Key: "device_id", Value: deviceID}}
	err := m.Collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *MongoStore) CreateRepetition(ctx context.Context, rep *models.Repetition) error {
	_, err := m.Collection.InsertOne(ctx, repetitionDocument{
		Kind:       models.KindRepetition,
		ReceivedAt: time.Now(),
		Repetition: *rep,
	})
	return err
}

func (m *MongoStore) CreateImuRecordPairs(ctx context.Context, pairs []models.ImuRecordPair) (int64, error) {
	if len(pairs) == 0 {
		return 0, nil
	}

	now := time.Now()
	docs := make([]any, len(pairs))
	for i, pair := range pairs {
		docs[i] = imuRecordPairDocument{Kind: models.KindImuRecordPair, ReceivedAt: now, ImuRecordPair: pair}
	}

	result, err := m.Collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return int64(len(result.InsertedIDs)), nil
}

func (m *MongoStore) Close() error {
	return m.Client.Disconnect(context.Background())
}
