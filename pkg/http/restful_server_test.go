package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/db"
	"liyu1981.xyz/liftright-data-server/pkg/liftright"
	"liyu1981.xyz/liftright-data-server/pkg/liftright/mocks"
	"liyu1981.xyz/liftright-data-server/pkg/models"
	_ "liyu1981.xyz/liftright-data-server/pkg/testing"
)

func setupTestServer(t *testing.T, persist bool) (*RestfulServer, *db.DB) {
	dbInstance, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })

	rs := &RestfulServer{
		Server:             NewEngine(nil),
		Gateway:            liftright.NewGateway(dbInstance),
		PersistSubmissions: persist,
	}

	rs.Setup()

	return rs, dbInstance
}

func doRequest(rs *RestfulServer, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func countRows(t *testing.T, dbInstance *db.DB, model any) int64 {
	var count int64
	require.NoError(t, dbInstance.Conn.Model(model).Count(&count).Error)
	return count
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Error
}

func TestHealthCheck(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, false)

	w := doRequest(rs, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHeartbeat(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, false)

	first := doRequest(rs, http.MethodGet, "/v1/heartbeat", nil)
	second := doRequest(rs, http.MethodGet, "/v1/heartbeat", nil)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	a, err := strconv.ParseInt(first.Body.String(), 10, 64)
	require.NoError(t, err)
	b, err := strconv.ParseInt(second.Body.String(), 10, 64)
	require.NoError(t, err)

	assert.LessOrEqual(t, a, b)
	assert.InDelta(t, time.Now().Unix(), b, 5)
}

func TestHeartbeat_FixedClock(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, false)
	rs.Clock = func() time.Time { return time.Unix(1700000000, 0) }

	w := doRequest(rs, http.MethodGet, "/v1/heartbeat", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1700000000", w.Body.String())
}

func TestHeartbeat_ClockBeforeEpoch(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, false)
	rs.Clock = func() time.Time { return time.Unix(-10, 0) }

	// the fatal hook panics under test; recovery turns it into a 500
	w := doRequest(rs, http.MethodGet, "/v1/heartbeat", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAddRepetition_Minimal(t *testing.T) {
	common.SetTestLoggerNop()

	rs, dbInstance := setupTestServer(t, false)

	w := doRequest(rs, http.MethodPut, "/v1/add_repetition", strings.NewReader("{}"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Zero(t, countRows(t, dbInstance, &models.RepetitionRecord{}))
}

func TestSubmissionsAreNotPersistedByDefault(t *testing.T) {
	common.SetTestLoggerNop()

	rs, dbInstance := setupTestServer(t, false)
	deviceID := uuid.NewString()

	rep := fmt.Sprintf(`{"device_id":"%s","exercise":"squat","rep_number":4,"metrics":{"depth":0.42}}`, deviceID)
	w := doRequest(rs, http.MethodPut, "/v1/add_repetition", strings.NewReader(rep))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	imu := fmt.Sprintf(`[{"device_id":"%s","left":{"timestamp":1,"acc":[0,0,9.8],"gyro":[0,0,0]},"right":{"timestamp":1,"acc":[0,0,9.8],"gyro":[0,0,0]}}]`, deviceID)
	w = doRequest(rs, http.MethodPut, "/v1/add_imu_records", strings.NewReader(imu))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	survey := fmt.Sprintf(`{"device_id":"%s","submitted":"2024-05-01T10:00:00-04:00","survey_data":{"q1":"yes","q2":null}}`, deviceID)
	w = doRequest(rs, http.MethodPost, "/v1/submit_survey", strings.NewReader(survey))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	assert.Zero(t, countRows(t, dbInstance, &models.RepetitionRecord{}))
	assert.Zero(t, countRows(t, dbInstance, &models.ImuRecordPairRecord{}))
	assert.Zero(t, countRows(t, dbInstance, &models.SurveyData{}))
}

func TestSubmissionsArePersistedWhenEnabled(t *testing.T) {
	common.SetTestLoggerNop()

	rs, dbInstance := setupTestServer(t, true)
	deviceID := uuid.NewString()

	rep := fmt.Sprintf(`{"device_id":"%s","exercise":"squat","rep_number":4}`, deviceID)
	w := doRequest(rs, http.MethodPut, "/v1/add_repetition", strings.NewReader(rep))
	assert.Equal(t, http.StatusOK, w.Code)

	imu := fmt.Sprintf(`[{"device_id":"%[1]s","left":{"timestamp":1},"right":{"timestamp":1}},{"device_id":"%[1]s","left":{"timestamp":2},"right":{"timestamp":2}}]`, deviceID)
	w = doRequest(rs, http.MethodPut, "/v1/add_imu_records", strings.NewReader(imu))
	assert.Equal(t, http.StatusOK, w.Code)

	survey := fmt.Sprintf(`{"device_id":"%s","survey_data":{"q1":"yes"}}`, deviceID)
	w = doRequest(rs, http.MethodPost, "/v1/submit_survey", strings.NewReader(survey))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(1), countRows(t, dbInstance, &models.RepetitionRecord{}))
	assert.Equal(t, int64(2), countRows(t, dbInstance, &models.ImuRecordPairRecord{}))

	var saved models.SurveyData
	require.NoError(t, dbInstance.Conn.Where("device_id = ?", deviceID).First(&saved).Error)
	assert.JSONEq(t, `{"q1":"yes"}`, saved.SurveyData)
}

func TestMalformedBodies(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, true)

	cases := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPut, "/v1/add_repetition", `{"rep_number":`},
		{http.MethodPut, "/v1/add_repetition", `{"rep_number":"three"}`},
		{http.MethodPut, "/v1/add_imu_records", `{"left":{}}`},
		{http.MethodPost, "/v1/submit_survey", `not json`},
		{http.MethodPost, "/v1/submit_survey", `{"device_id":"` + uuid.NewString() + `","submitted":"yesterday"}`},
		{http.MethodPut, "/v1/add_repetition", ``},
		{http.MethodPut, "/v1/add_repetition", `{}xyz not json`},
		{http.MethodPut, "/v1/add_repetition", `{}{}`},
		{http.MethodPut, "/v1/add_imu_records", `[] trailing`},
		{http.MethodPost, "/v1/submit_survey", `{"device_id":"` + uuid.NewString() + `"}]`},
	}

	for _, tc := range cases {
		w := doRequest(rs, tc.method, tc.target, strings.NewReader(tc.body))
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s %s", tc.method, tc.target, tc.body)
		assert.Equal(t, codeMalformedBody, decodeError(t, w).Code)
	}
}

func TestSubmitSurvey_Validation(t *testing.T) {
	common.SetTestLoggerNop()

	rs, dbInstance := setupTestServer(t, true)

	for _, body := range []string{
		`{"survey_data":{"q":"a"}}`,
		`{"device_id":"","survey_data":{"q":"a"}}`,
		`{"device_id":"device-1","survey_data":{"q":"a"}}`,
	} {
		w := doRequest(rs, http.MethodPost, "/v1/submit_survey", strings.NewReader(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, codeValidation, decodeError(t, w).Code)
	}

	assert.Zero(t, countRows(t, dbInstance, &models.SurveyData{}))
}

func TestBodyLimit(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, true)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIRepetition := mocks.NewMockIRepetition(ctrl)
	mockIImuRecord := mocks.NewMockIImuRecord(ctrl)
	mockISurvey := mocks.NewMockISurvey(ctrl)
	rs.Gateway.WithServices(liftright.ServiceOpts{
		Repetition: mockIRepetition,
		ImuRecord:  mockIImuRecord,
		Survey:     mockISurvey,
	})
	mockIRepetition.EXPECT().AddRepetition(gomock.Any(), gomock.Any()).Times(0)
	mockIImuRecord.EXPECT().AddImuRecords(gomock.Any(), gomock.Any()).Times(0)
	mockISurvey.EXPECT().InsertSurvey(gomock.Any(), gomock.Any()).Times(0)

	padding := strings.Repeat("a", int(common.MaxBodyBytes))
	bodies := map[string]string{
		"/v1/add_repetition":  `{"exercise":"` + padding + `"}`,
		"/v1/add_imu_records": `[{"device_id":"` + padding + `"}]`,
		"/v1/submit_survey":   `{"device_id":"` + uuid.NewString() + `","survey_data":{"q":"` + padding + `"}}`,
	}
	methods := map[string]string{
		"/v1/add_repetition":  http.MethodPut,
		"/v1/add_imu_records": http.MethodPut,
		"/v1/submit_survey":   http.MethodPost,
	}

	for target, body := range bodies {
		// declared length
		w := doRequest(rs, methods[target], target, bytes.NewReader([]byte(body)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, target)
		assert.Equal(t, codeBodyTooLarge, decodeError(t, w).Code)

		// undeclared length: io.MultiReader hides the size from httptest
		w = doRequest(rs, methods[target], target, io.MultiReader(strings.NewReader(body)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, target)
	}
}

func TestBodyLimit_PaddingAfterValue(t *testing.T) {
	common.SetTestLoggerNop()

	rs, dbInstance := setupTestServer(t, true)

	// a complete JSON value early in the body must not let the rest slip past the limit
	padding := strings.Repeat(" ", 2*int(common.MaxBodyBytes))
	bodies := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPut, "/v1/add_repetition", `{"exercise":"squat"}` + padding},
		{http.MethodPut, "/v1/add_imu_records", `[{"left":{"timestamp":1},"right":{"timestamp":1}}]` + padding},
		{http.MethodPost, "/v1/submit_survey", `{"device_id":"` + uuid.NewString() + `","survey_data":{}}` + padding},
	}

	for _, tc := range bodies {
		w := doRequest(rs, tc.method, tc.target, io.MultiReader(strings.NewReader(tc.body)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, tc.target)
		assert.Equal(t, codeBodyTooLarge, decodeError(t, w).Code)

		w = doRequest(rs, tc.method, tc.target, strings.NewReader(tc.body))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, tc.target)
	}

	assert.Zero(t, countRows(t, dbInstance, &models.RepetitionRecord{}))
	assert.Zero(t, countRows(t, dbInstance, &models.ImuRecordPairRecord{}))
	assert.Zero(t, countRows(t, dbInstance, &models.SurveyData{}))
}

func TestTrailingDataIsNotStored(t *testing.T) {
	common.SetTestLoggerNop()

	rs, dbInstance := setupTestServer(t, true)

	w := doRequest(rs, http.MethodPut, "/v1/add_repetition", io.MultiReader(strings.NewReader(`{"exercise":"squat"} {"exercise":"lunge"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, countRows(t, dbInstance, &models.RepetitionRecord{}))

	// surrounding whitespace is still one JSON value
	w = doRequest(rs, http.MethodPut, "/v1/add_repetition", strings.NewReader("\n  {\"exercise\":\"squat\"}\n"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), countRows(t, dbInstance, &models.RepetitionRecord{}))
}

func TestBodyLimit_ExactlyAtLimit(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, false)

	prefix, suffix := `{"exercise":"`, `"}`
	padding := strings.Repeat("a", int(common.MaxBodyBytes)-len(prefix)-len(suffix))
	body := prefix + padding + suffix
	require.Equal(t, int(common.MaxBodyBytes), len(body))

	w := doRequest(rs, http.MethodPut, "/v1/add_repetition", strings.NewReader(body))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRtfbStatus(t *testing.T) {
	common.SetTestLoggerNop()

	rs, dbInstance := setupTestServer(t, false)

	deviceID := uuid.NewString()
	require.NoError(t, dbInstance.Conn.Create(&models.User{DeviceID: deviceID, RtfbStatus: true}).Error)

	w := doRequest(rs, http.MethodGet, "/v1/rtfb_status/"+deviceID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rtfb_status":true}`, w.Body.String())
}

func TestRtfbStatus_DeviceIDForms(t *testing.T) {
	common.SetTestLoggerNop()

	rs, dbInstance := setupTestServer(t, false)

	deviceID := uuid.New()
	require.NoError(t, dbInstance.Conn.Create(&models.User{DeviceID: deviceID.String(), RtfbStatus: true}).Error)

	for _, raw := range []string{
		deviceID.String(),
		strings.ReplaceAll(deviceID.String(), "-", ""),
		strings.ToUpper(deviceID.String()),
	} {
		w := doRequest(rs, http.MethodGet, "/v1/rtfb_status/"+raw, nil)
		assert.Equal(t, http.StatusOK, w.Code, raw)
		assert.JSONEq(t, `{"rtfb_status":true}`, w.Body.String(), raw)
	}
}

func TestRtfbStatus_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		// not a uuid: rejected before the gateway is consulted
		rs, _ := setupTestServer(t, false)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockIUser := mocks.NewMockIUser(ctrl)
		rs.Gateway.User = mockIUser
		mockIUser.EXPECT().CheckRtfbStatus(gomock.Any(), gomock.Any()).Times(0)

		w := doRequest(rs, http.MethodGet, "/v1/rtfb_status/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, codeValidation, decodeError(t, w).Code)
	}

	{
		// unknown device
		rs, _ := setupTestServer(t, false)
		w := doRequest(rs, http.MethodGet, "/v1/rtfb_status/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, codeNoSuchDevice, decodeError(t, w).Code)
	}

	{
		// storage unavailable
		rs, _ := setupTestServer(t, false)
		deviceID := uuid.New()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockIUser := mocks.NewMockIUser(ctrl)
		rs.Gateway.User = mockIUser
		mockIUser.EXPECT().
			CheckRtfbStatus(gomock.Any(), gomock.Eq(deviceID)).
			Return(false, fmt.Errorf("check rtfb status: %w: connection refused", liftright.ErrDatabase)).
			Times(1)

		w := doRequest(rs, http.MethodGet, "/v1/rtfb_status/"+deviceID.String(), nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, codeDatabase, decodeError(t, w).Code)
	}
}

func TestGatewayErrorsAreMapped(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, true)
	rs.Gateway.Survey = nil

	body := fmt.Sprintf(`{"device_id":"%s","survey_data":{}}`, uuid.NewString())
	w := doRequest(rs, http.MethodPost, "/v1/submit_survey", strings.NewReader(body))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, codeUnimplemented, decodeError(t, w).Code)

	w = doRequest(rs, http.MethodPut, "/v1/add_repetition", strings.NewReader(`{"device_id":"nope"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeValidation, decodeError(t, w).Code)
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		liftright.ErrValidation:               http.StatusBadRequest,
		liftright.ErrNoSuchDevice:             http.StatusNotFound,
		liftright.ErrUnimplemented:            http.StatusNotImplemented,
		liftright.ErrSerialization:            http.StatusUnprocessableEntity,
		liftright.ErrDatabase:                 http.StatusServiceUnavailable,
		fmt.Errorf("something else entirely"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		got, _ := statusFor(fmt.Errorf("op: %w", err))
		assert.Equal(t, want, got, err.Error())
	}
}

func TestUnknownRoutes(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, false)

	w := doRequest(rs, http.MethodPost, "/v1/add_repetition", strings.NewReader("{}"))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = doRequest(rs, http.MethodPost, "/v1/heartbeat", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = doRequest(rs, http.MethodGet, "/v2/heartbeat", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMiddleware(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/v1/heartbeat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set(headerRequestID, "req-123")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "req-123", w.Header().Get(headerRequestID))

	w = doRequest(rs, http.MethodGet, "/healthz", nil)
	_, err := uuid.Parse(w.Header().Get(headerRequestID))
	assert.NoError(t, err)
}

func TestCORSRestrictedOrigins(t *testing.T) {
	common.SetTestLoggerNop()

	rs := &RestfulServer{Server: NewEngine([]string{"https://survey.liftright.app"})}
	rs.Setup()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://survey.liftright.app")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, "https://survey.liftright.app", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
