package liftright

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/liftright-data-server/pkg/db"
	"liyu1981.xyz/liftright-data-server/pkg/liftright/mocks"
)

type mockServices struct {
	Survey     *mocks.MockISurvey
	User       *mocks.MockIUser
	Repetition *mocks.MockIRepetition
	ImuRecord  *mocks.MockIImuRecord
}

// GetGatewayWithMemorySqliteDialector returns a gateway over a fresh in-memory
// store. Services named in useMocks are replaced by their gomock doubles.
func GetGatewayWithMemorySqliteDialector(t *testing.T, useMocks ...string) (
	*gomock.Controller,
	*Gateway,
	*db.DB,
	mockServices,
) {
	ctrl := gomock.NewController(t)

	dbInstance, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })

	gateway := NewGateway(dbInstance)

	ms := mockServices{
		Survey:     mocks.NewMockISurvey(ctrl),
		User:       mocks.NewMockIUser(ctrl),
		Repetition: mocks.NewMockIRepetition(ctrl),
		ImuRecord:  mocks.NewMockIImuRecord(ctrl),
	}

	opts := ServiceOpts{}
	for _, name := range useMocks {
		switch name {
		case "survey":
			opts.Survey = ms.Survey
		case "user":
			opts.User = ms.User
		case "repetition":
			opts.Repetition = ms.Repetition
		case "imu_record":
			opts.ImuRecord = ms.ImuRecord
		}
	}
	gateway.WithServices(opts)

	return ctrl, gateway, dbInstance, ms
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
