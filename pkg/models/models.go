package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document kinds share the single mongo collection.
const (
	KindUser          string = "user"
	KindSurveyResult  string = "survey_result"
	KindRepetition    string = "repetition"
	KindImuRecordPair string = "imu_record_pair"
)

// Repetition is one exercise repetition reported by a device. Every field is
// optional; `{}` is a valid repetition.
type Repetition struct {
	DeviceID  string             `json:"device_id,omitempty" bson:"device_id,omitempty"`
	SessionID string             `json:"session_id,omitempty" bson:"session_id,omitempty"`
	Exercise  string             `json:"exercise,omitempty" bson:"exercise,omitempty"`
	RepNumber int                `json:"rep_number,omitempty" bson:"rep_number,omitempty"`
	Timestamp *time.Time         `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
	Duration  float64            `json:"duration,omitempty" bson:"duration,omitempty"` // seconds
	Metrics   map[string]float64 `json:"metrics,omitempty" bson:"metrics,omitempty"`
}

// ImuRecord is a single inertial sample: timestamp in milliseconds,
// acceleration and angular rate on three axes.
type ImuRecord struct {
	Timestamp int64      `json:"timestamp" bson:"timestamp"`
	Acc       [3]float64 `json:"acc" bson:"acc"`
	Gyro      [3]float64 `json:"gyro" bson:"gyro"`
}

type ImuRecordPair struct {
	DeviceID string    `json:"device_id,omitempty" bson:"device_id,omitempty"`
	Left     ImuRecord `json:"left" bson:"left"`
	Right    ImuRecord `json:"right" bson:"right"`
}

type User struct {
	DeviceID   string `gorm:"primaryKey" json:"device_id" bson:"device_id"`
	RtfbStatus bool   `json:"rtfb_status" bson:"rtfb_status"`
}

// SurveyData is the stored form of a survey: answers flattened into one JSON string.
type SurveyData struct {
	ID         uint       `gorm:"primaryKey" json:"-" bson:"-"`
	DeviceID   string     `gorm:"index" json:"device_id" bson:"device_id"`
	Submitted  *time.Time `json:"submitted,omitempty" bson:"submitted,omitempty"`
	SurveyData string     `gorm:"not null" json:"survey_data" bson:"survey_data"`
}

func (SurveyData) TableName() string {
	return "survey_results"
}

type RepetitionRecord struct {
	ID         uint   `gorm:"primaryKey"`
	DeviceID   string `gorm:"index"`
	ReceivedAt time.Time
	Payload    datatypes.JSON
}

func (RepetitionRecord) TableName() string {
	return "repetitions"
}

type ImuRecordPairRecord struct {
	ID         uint   `gorm:"primaryKey"`
	DeviceID   string `gorm:"index"`
	ReceivedAt time.Time
	Payload    datatypes.JSON
}

func (ImuRecordPairRecord) TableName() string {
	return "imu_record_pairs"
}
