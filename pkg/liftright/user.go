package liftright

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/liftright-data-server/pkg/common"
)

func (g *Gateway) checkRtfbStatus(ctx context.Context, deviceID uuid.UUID) (bool, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameLiftrightCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryUser),
	)

	if deviceID == uuid.Nil {
		return false, wrap("check rtfb status", ErrValidation, errors.New("device_id is required"))
	}

	user, err := g.Store.FindUser(ctx, deviceID.String())
	if err != nil {
		err = fromStore("check rtfb status", err)
		logger.Info("Rtfb status lookup failed", zap.String("device_id", deviceID.String()), zap.Error(err))
		return false, err
	}

	logger.Debug("Rtfb status for device",
		zap.String("device_id", user.DeviceID),
		zap.Bool("rtfb_status", user.RtfbStatus))

	return user.RtfbStatus, nil
}

type IUserImpl struct {
	gateway *Gateway
}

func (iu *IUserImpl) CheckRtfbStatus(ctx context.Context, deviceID uuid.UUID) (bool, error) {
	return iu.gateway.checkRtfbStatus(ctx, deviceID)
}

func (g *Gateway) GetIUser() IUser {
	return &IUserImpl{gateway: g}
}
