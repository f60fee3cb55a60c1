package liftright

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/models"
)

func (g *Gateway) insertSurvey(ctx context.Context, incoming *models.IncomingSurvey) (int64, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameLiftrightCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySurvey),
	)

	if incoming == nil || incoming.DeviceID == uuid.Nil {
		return 0, wrap("insert survey", ErrValidation, errors.New("device_id is required"))
	}

	survey := models.NewSurveyData(incoming)

	if strings.HasPrefix(survey.SurveyData, common.SurveySerializationFailure) {
		logger.Warn("Survey answers could not be serialized, storing diagnostic instead",
			zap.String("device_id", survey.DeviceID),
			zap.String("survey_data", survey.SurveyData))
	}

	logger.Info("Received survey for device", zap.Reflect("survey", survey))

	rows, err := g.Store.CreateSurvey(ctx, &survey)
	if err != nil {
		return 0, fromStore("insert survey", err)
	}

	logger.Info("Stored survey for device", zap.Reflect("survey", survey), zap.Int64("rows", rows))

	return rows, nil
}

type ISurveyImpl struct {
	gateway *Gateway
}

func (is *ISurveyImpl) InsertSurvey(ctx context.Context, survey *models.IncomingSurvey) (int64, error) {
	return is.gateway.insertSurvey(ctx, survey)
}

func (g *Gateway) GetISurvey() ISurvey {
	return &ISurveyImpl{gateway: g}
}
