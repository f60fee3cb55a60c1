package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/liftright"
	"liyu1981.xyz/liftright-data-server/pkg/models"
)

// toStatus maps gateway errors onto grpc codes.
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, liftright.ErrValidation):
		code = codes.InvalidArgument
	case errors.Is(err, liftright.ErrNoSuchDevice):
		code = codes.NotFound
	case errors.Is(err, liftright.ErrUnimplemented):
		code = codes.Unimplemented
	case errors.Is(err, liftright.ErrSerialization):
		code = codes.InvalidArgument
	case errors.Is(err, liftright.ErrDatabase):
		code = codes.Unavailable
	}
	return status.Error(code, err.Error())
}

// decodeMessage re-reads a Struct or ListValue as the JSON document the HTTP
// endpoint would have received.
func decodeMessage(msg proto.Message, dst any) error {
	raw, err := protojson.Marshal(msg)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed message: %v", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed message: %v", err)
	}
	return nil
}

func (s *DataServer) Heartbeat(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	now := s.now()
	if now.Before(time.Unix(0, 0)) {
		common.GetLoggerWith(
			common.LoggerNameGrpcServer,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryHeartbeat),
		).Fatal("System time is before epoch!", zap.Time("now", now))
	}
	return wrapperspb.Int64(now.Unix()), nil
}

func (s *DataServer) AddRepetition(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	var rep models.Repetition
	if err := decodeMessage(req, &rep); err != nil {
		return nil, err
	}

	if !s.PersistSubmissions {
		return &emptypb.Empty{}, nil
	}

	if err := s.Gateway.AddRepetition(ctx, &rep); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *DataServer) RtfbStatus(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	deviceID, err := liftright.ParseDeviceID(req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}

	rtfb, err := s.Gateway.CheckRtfbStatus(ctx, deviceID)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Bool(rtfb), nil
}

func (s *DataServer) SubmitSurvey(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	var survey models.IncomingSurvey
	if err := decodeMessage(req, &survey); err != nil {
		return nil, err
	}
	if survey.DeviceID == uuid.Nil {
		return nil, toStatus(fmt.Errorf("%w: device_id is required", liftright.ErrValidation))
	}

	if !s.PersistSubmissions {
		return &emptypb.Empty{}, nil
	}

	if _, err := s.Gateway.InsertSurvey(ctx, &survey); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *DataServer) AddImuRecords(ctx context.Context, req *structpb.ListValue) (*emptypb.Empty, error) {
	var pairs []models.ImuRecordPair
	if err := decodeMessage(req, &pairs); err != nil {
		return nil, err
	}

	if !s.PersistSubmissions {
		return &emptypb.Empty{}, nil
	}

	if _, err := s.Gateway.AddImuRecords(ctx, pairs); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}
