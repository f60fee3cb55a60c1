package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/liftright"
	"liyu1981.xyz/liftright-data-server/pkg/models"

	z "github.com/Oudwins/zog"
)

// bindJSON reads the whole capped body before decoding it into dst. Overflow
// of the body limit answers 413; anything that is not exactly one JSON value
// of dst's shape answers 400.
func bindJSON(c *gin.Context, dst any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			abortWithCode(c, http.StatusRequestEntityTooLarge, codeBodyTooLarge, err)
			return false
		}
		abortWithCode(c, http.StatusBadRequest, codeMalformedBody, err)
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		abortWithCode(c, http.StatusBadRequest, codeMalformedBody, err)
		return false
	}
	return true
}

func (rs *RestfulServer) Heartbeat(c *gin.Context) {
	now := rs.now()
	if now.Before(time.Unix(0, 0)) {
		common.GetLoggerWith(
			common.LoggerNameRestfulServer,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryHeartbeat),
		).Fatal("System time is before epoch!", zap.Time("now", now))
	}

	c.String(http.StatusOK, strconv.FormatInt(now.Unix(), 10))
}

func (rs *RestfulServer) AddRepetition(c *gin.Context) {
	var rep models.Repetition
	if !bindJSON(c, &rep) {
		return
	}

	if !rs.PersistSubmissions {
		c.Status(http.StatusOK)
		return
	}

	if err := rs.Gateway.AddRepetition(c.Request.Context(), &rep); err != nil {
		reject(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type RtfbJsonReply struct {
	RtfbStatus bool `json:"rtfb_status"`
}

func (rs *RestfulServer) RtfbStatus(c *gin.Context) {
	deviceID, err := liftright.ParseDeviceID(c.Param("device_id"))
	if err != nil {
		reject(c, err)
		return
	}

	status, err := rs.Gateway.CheckRtfbStatus(c.Request.Context(), deviceID)
	if err != nil {
		reject(c, err)
		return
	}

	c.JSON(http.StatusOK, RtfbJsonReply{RtfbStatus: status})
}

// SurveyRequest is the wire shape of a survey: answers keyed by question,
// null for a skipped question.
type SurveyRequest struct {
	DeviceID   string             `json:"device_id"`
	Submitted  *time.Time         `json:"submitted,omitempty"`
	SurveyData map[string]*string `json:"survey_data"`
}

var surveyRequestSchema = z.Struct(z.Shape{
	"DeviceID": z.String().Min(1).Required(),
})

func (req *SurveyRequest) toIncomingSurvey() (*models.IncomingSurvey, error) {
	deviceID, err := liftright.ParseDeviceID(req.DeviceID)
	if err != nil {
		return nil, err
	}
	return &models.IncomingSurvey{
		DeviceID:   deviceID,
		Submitted:  req.Submitted,
		SurveyData: req.SurveyData,
	}, nil
}

func (rs *RestfulServer) SubmitSurvey(c *gin.Context) {
	var req SurveyRequest
	if !bindJSON(c, &req) {
		return
	}

	if issues := surveyRequestSchema.Validate(&req); issues != nil {
		abortWithCode(c, http.StatusBadRequest, codeValidation, fmt.Errorf("%w: %v", liftright.ErrValidation, issues))
		return
	}

	incoming, err := req.toIncomingSurvey()
	if err != nil {
		reject(c, err)
		return
	}

	if !rs.PersistSubmissions {
		c.Status(http.StatusOK)
		return
	}

	if _, err := rs.Gateway.InsertSurvey(c.Request.Context(), incoming); err != nil {
		reject(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) AddImuRecords(c *gin.Context) {
	var pairs []models.ImuRecordPair
	if !bindJSON(c, &pairs) {
		return
	}

	if !rs.PersistSubmissions {
		c.Status(http.StatusOK)
		return
	}

	if _, err := rs.Gateway.AddImuRecords(c.Request.Context(), pairs); err != nil {
		reject(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
