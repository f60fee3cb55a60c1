package liftright

import (
	"context"

	"github.com/google/uuid"
	"liyu1981.xyz/liftright-data-server/pkg/db"
	"liyu1981.xyz/liftright-data-server/pkg/models"
)

type ISurvey interface {
	InsertSurvey(ctx context.Context, survey *models.IncomingSurvey) (int64, error)
}

type IUser interface {
	CheckRtfbStatus(ctx context.Context, deviceID uuid.UUID) (bool, error)
}

type IRepetition interface {
	AddRepetition(ctx context.Context, rep *models.Repetition) error
}

type IImuRecord interface {
	AddImuRecords(ctx context.Context, pairs []models.ImuRecordPair) (int64, error)
}

// Gateway owns the store for the lifetime of the process. Handlers share one
// *Gateway; nothing in it is mutated after wiring.
type Gateway struct {
	Store      db.Store
	Survey     ISurvey
	User       IUser
	Repetition IRepetition
	ImuRecord  IImuRecord
}

type ServiceOpts struct {
	Survey     ISurvey
	User       IUser
	Repetition IRepetition
	ImuRecord  IImuRecord
}

func NewGateway(store db.Store) *Gateway {
	g := &Gateway{Store: store}
	return g.WithServices(ServiceOpts{
		Survey:     g.GetISurvey(),
		User:       g.GetIUser(),
		Repetition: g.GetIRepetition(),
		ImuRecord:  g.GetIImuRecord(),
	})
}

func (g *Gateway) WithServices(opts ServiceOpts) *Gateway {
	if opts.Survey != nil {
		g.Survey = opts.Survey
	}
	if opts.User != nil {
		g.User = opts.User
	}
	if opts.Repetition != nil {
		g.Repetition = opts.Repetition
	}
	if opts.ImuRecord != nil {
		g.ImuRecord = opts.ImuRecord
	}
	return g
}

func (g *Gateway) InsertSurvey(ctx context.Context, survey *models.IncomingSurvey) (int64, error) {
	if g.Survey == nil {
		return 0, wrap("insert survey", ErrUnimplemented, nil)
	}
	return g.Survey.InsertSurvey(ctx, survey)
}

func (g *Gateway) CheckRtfbStatus(ctx context.Context, deviceID uuid.UUID) (bool, error) {
	if g.User == nil {
		return false, wrap("check rtfb status", ErrUnimplemented, nil)
	}
	return g.User.CheckRtfbStatus(ctx, deviceID)
}

func (g *Gateway) AddRepetition(ctx context.Context, rep *models.Repetition) error {
	if g.Repetition == nil {
		return wrap("add repetition", ErrUnimplemented, nil)
	}
	return g.Repetition.AddRepetition(ctx, rep)
}

func (g *Gateway) AddImuRecords(ctx context.Context, pairs []models.ImuRecordPair) (int64, error) {
	if g.ImuRecord == nil {
		return 0, wrap("add imu records", ErrUnimplemented, nil)
	}
	return g.ImuRecord.AddImuRecords(ctx, pairs)
}

func (g *Gateway) Close() error {
	if g.Store == nil {
		return nil
	}
	return g.Store.Close()
}
