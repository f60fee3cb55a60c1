package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/liftright"
)

const ServiceName = "liftright-data-server"

type RestfulServer struct {
	Server  *gin.Engine
	Gateway *liftright.Gateway
	// PersistSubmissions turns repetition, imu and survey uploads from
	// acknowledge-only into real inserts.
	PersistSubmissions bool
	Clock              func() time.Time
}

// NewEngine builds a gin engine with the service middleware chain. An empty
// corsOrigins allows every origin.
func NewEngine(corsOrigins []string) *gin.Engine {
	if common.IsTestEnv() {
		gin.SetMode(gin.TestMode)
	} else if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(
		gin.Recovery(),
		RequestID(),
		AccessLog(),
		CORS(corsOrigins),
		otelgin.Middleware(ServiceName),
	)
	return engine
}

func (rs *RestfulServer) now() time.Time {
	if rs.Clock == nil {
		return time.Now()
	}
	return rs.Clock()
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	v1 := rs.Server.Group("/v1")
	{
		v1.GET("/heartbeat", rs.Heartbeat)
		v1.PUT("/add_repetition", BodyLimit(common.MaxBodyBytes), rs.AddRepetition)
		v1.GET("/rtfb_status/:device_id", rs.RtfbStatus)
		v1.POST("/submit_survey", BodyLimit(common.MaxBodyBytes), rs.SubmitSurvey)
		v1.PUT("/add_imu_records", BodyLimit(common.MaxBodyBytes), rs.AddImuRecords)
	}
}
