package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
	liftrightGrpc "liyu1981.xyz/liftright-data-server/pkg/grpc"
	"liyu1981.xyz/liftright-data-server/pkg/models"
)

var maxDevices int = 1000
var imuBatchSize int = 50
var httpHostPort string = "127.0.0.1:3030"
var grpcHostPort string = "127.0.0.1:3031"

var grpcClient *liftrightGrpc.DataServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

var failures atomic.Int64

func main() {
	deviceIDs := make([]string, maxDevices)
	for i := range maxDevices {
		deviceIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v device IDs\n", maxDevices)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = liftrightGrpc.NewDataServiceClient(conn)

	if _, err := grpcClient.Heartbeat(context.Background(), &emptypb.Empty{}); err != nil {
		log.Fatal("gRPC server not available:", err)
	}

	fmt.Printf("gRPC server verified and connected\n")

	startTime := time.Now()
	wg := sync.WaitGroup{}
	for i := range maxDevices {
		wg.Add(1)
		go func() {
			doAction(deviceIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime := time.Since(startTime)

	actionCount := maxDevices * 5
	fmt.Printf(
		"\n\rdid actions for %v devices: used time=%v seconds, throughput=%v action/second, failures=%v\n",
		maxDevices, usedTime.Seconds(), float64(actionCount)/usedTime.Seconds(), failures.Load(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func report(action, deviceID string, err error) {
	if err != nil {
		failures.Add(1)
		fmt.Printf("\n%s for device %s failed: %v\n", action, deviceID, err)
	}
}

func doAction(deviceID string) {
	actions := []func() error{
		genHeartbeatAction(),
		genAddRepetitionAction(deviceID),
		genAddImuRecordsAction(deviceID),
		genSubmitSurveyAction(deviceID),
		genRtfbStatusAction(deviceID),
	}
	actionNames := []string{
		"Heartbeat",
		"AddRepetition",
		"AddImuRecords",
		"SubmitSurvey",
		"RtfbStatus",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	pause := time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
	rndMu.Unlock()

	for index, action := range actions {
		report(actionNames[index], deviceID, action())
		fmt.Printf("\rexecuted action %v for device %v", actionNames[index], deviceID)
		time.Sleep(pause)
	}
}

func sendJSON(method, path string, payload any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, fmt.Sprintf("http://%s%s", httpHostPort, path), bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("response status code %v", resp.StatusCode)
	}
	return nil
}

// toStruct turns a model into the Struct the gRPC service decodes.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func genHeartbeatAction() func() error {
	return func() error {
		if flipCoin() {
			resp, err := http.Get(fmt.Sprintf("http://%s/v1/heartbeat", httpHostPort))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("response status code %v", resp.StatusCode)
			}
			return nil
		}
		_, err := grpcClient.Heartbeat(context.Background(), &emptypb.Empty{})
		return err
	}
}

func genAddRepetitionAction(deviceID string) func() error {
	return func() error {
		now := time.Now()
		rep := models.Repetition{
			DeviceID:  deviceID,
			SessionID: uuid.NewString(),
			Exercise:  "squat",
			RepNumber: 1,
			Timestamp: &now,
			Duration:  rndFloat64(1.0, 4.0, 2),
			Metrics: map[string]float64{
				"depth":    rndFloat64(0.0, 1.0, 3),
				"velocity": rndFloat64(0.2, 1.5, 3),
			},
		}

		if flipCoin() {
			return sendJSON(http.MethodPut, "/v1/add_repetition", rep)
		}
		msg, err := toStruct(rep)
		if err != nil {
			return err
		}
		_, err = grpcClient.AddRepetition(context.Background(), msg)
		return err
	}
}

func genAddImuRecordsAction(deviceID string) func() error {
	return func() error {
		start := time.Now().UnixMilli()
		pairs := make([]models.ImuRecordPair, imuBatchSize)
		for i := range pairs {
			sample := func() models.ImuRecord {
				return models.ImuRecord{
					Timestamp: start + int64(i*10),
					Acc:       [3]float64{rndFloat64(-2, 2, 3), rndFloat64(-2, 2, 3), rndFloat64(8, 11, 3)},
					Gyro:      [3]float64{rndFloat64(-1, 1, 3), rndFloat64(-1, 1, 3), rndFloat64(-1, 1, 3)},
				}
			}
			pairs[i] = models.ImuRecordPair{DeviceID: deviceID, Left: sample(), Right: sample()}
		}

		if flipCoin() {
			return sendJSON(http.MethodPut, "/v1/add_imu_records", pairs)
		}
		items := make([]any, len(pairs))
		for i, pair := range pairs {
			s, err := toStruct(pair)
			if err != nil {
				return err
			}
			items[i] = s.AsMap()
		}
		msg, err := structpb.NewList(items)
		if err != nil {
			return err
		}
		_, err = grpcClient.AddImuRecords(context.Background(), msg)
		return err
	}
}

func genSubmitSurveyAction(deviceID string) func() error {
	return func() error {
		fatigue := fmt.Sprintf("%v", int(rndFloat64(1, 10, 0)))
		now := time.Now()
		survey := map[string]any{
			"device_id": deviceID,
			"submitted": now.Format(time.RFC3339),
			"survey_data": map[string]any{
				"fatigue":  fatigue,
				"pain":     nil,
				"feedback": "felt good",
			},
		}

		if flipCoin() {
			return sendJSON(http.MethodPost, "/v1/submit_survey", survey)
		}
		msg, err := structpb.NewStruct(survey)
		if err != nil {
			return err
		}
		_, err = grpcClient.SubmitSurvey(context.Background(), msg)
		return err
	}
}

// genRtfbStatusAction treats an unknown device as success: synthetic devices
// have no user row unless one was seeded.
func genRtfbStatusAction(deviceID string) func() error {
	return func() error {
		if flipCoin() {
			resp, err := http.Get(fmt.Sprintf("http://%s/v1/rtfb_status/%s", httpHostPort, deviceID))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
				return fmt.Errorf("response status code %v", resp.StatusCode)
			}
			return nil
		}
		_, err := grpcClient.RtfbStatus(context.Background(), wrapperspb.String(deviceID))
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return err
	}
}
