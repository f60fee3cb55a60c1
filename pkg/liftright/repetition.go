package liftright

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/models"
)

func (g *Gateway) addRepetition(ctx context.Context, rep *models.Repetition) error {
	logger := common.GetLoggerWith(
		common.LoggerNameLiftrightCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryRepetition),
	)

	if rep == nil {
		rep = &models.Repetition{}
	}

	if rep.DeviceID != "" {
		if _, err := uuid.Parse(rep.DeviceID); err != nil {
			return wrap("add repetition", ErrValidation, err)
		}
	}

	logger.Info("Received repetition for device", zap.Reflect("repetition", rep))

	if err := g.Store.CreateRepetition(ctx, rep); err != nil {
		return fromStore("add repetition", err)
	}

	logger.Info("Stored repetition for device", zap.Reflect("repetition", rep))

	return nil
}

type IRepetitionImpl struct {
	gateway *Gateway
}

func (ir *IRepetitionImpl) AddRepetition(ctx context.Context, rep *models.Repetition) error {
	return ir.gateway.addRepetition(ctx, rep)
}

func (g *Gateway) GetIRepetition() IRepetition {
	return &IRepetitionImpl{gateway: g}
}
