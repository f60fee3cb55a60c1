package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"liyu1981.xyz/liftright-data-server/pkg/common"
)

// IncomingSurvey maps each question to an optional answer; a null answer
// means the question was shown but skipped.
type IncomingSurvey struct {
	DeviceID   uuid.UUID          `json:"device_id"`
	Submitted  *time.Time         `json:"submitted,omitempty"`
	SurveyData map[string]*string `json:"survey_data"`
}

var marshalSurveyAnswers = json.Marshal

// NewSurveyData flattens the answers into a single string. It never fails:
// an encoding error is stored as a readable message instead.
func NewSurveyData(incoming *IncomingSurvey) SurveyData {
	answers := incoming.SurveyData
	if answers == nil {
		answers = map[string]*string{}
	}

	var surveyData string
	if raw, err := marshalSurveyAnswers(answers); err != nil {
		surveyData = fmt.Sprintf("%s, %s", common.SurveySerializationFailure, err.Error())
	} else {
		surveyData = string(raw)
	}

	return SurveyData{
		DeviceID:   incoming.DeviceID.String(),
		Submitted:  incoming.Submitted,
		SurveyData: surveyData,
	}
}
