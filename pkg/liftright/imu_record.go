package liftright

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/models"
)

func (g *Gateway) addImuRecords(ctx context.Context, pairs []models.ImuRecordPair) (int64, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameLiftrightCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryImuRecord),
	)

	for i, pair := range pairs {
		if pair.DeviceID == "" {
			continue
		}
		if _, err := uuid.Parse(pair.DeviceID); err != nil {
			return 0, wrap("add imu records", ErrValidation, fmt.Errorf("pair %d: %w", i, err))
		}
	}

	perDevice := common.Reducer(pairs,
		func(acc map[string]int, pair models.ImuRecordPair) map[string]int {
			acc[pair.DeviceID]++
			return acc
		},
		map[string]int{},
	)

	logger.Info("Received imu record pairs", zap.Int("pairs", len(pairs)), zap.Any("per_device", perDevice))

	rows, err := g.Store.CreateImuRecordPairs(ctx, pairs)
	if err != nil {
		return 0, fromStore("add imu records", err)
	}

	logger.Info("Stored imu record pairs", zap.Int64("rows", rows))

	return rows, nil
}

type IImuRecordImpl struct {
	gateway *Gateway
}

func (ii *IImuRecordImpl) AddImuRecords(ctx context.Context, pairs []models.ImuRecordPair) (int64, error) {
	return ii.gateway.addImuRecords(ctx, pairs)
}

func (g *Gateway) GetIImuRecord() IImuRecord {
	return &IImuRecordImpl{gateway: g}
}
