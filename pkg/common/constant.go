package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvPrefix string = "LIFTRIGHT"

	EnvKeyLogLevel  string = "LIFTRIGHT_LOG"
	EnvKeyDbPath    string = "LIFTRIGHT_DB_PATH"
	EnvKeyMongoURI  string = "LIFTRIGHT_MONGO_URI"
	DefaultLogLevel string = "info"

	DefaultHttpPort int   = 3030
	MaxBodyBytes    int64 = 1024 * 1024

	LoggerNameLiftrightCore    string = "liftright_core"
	LoggerNameRestfulServer    string = "restful_server"
	LoggerNameGrpcServer       string = "grpc_server"
	LoggerNameDb               string = "db"
	LoggerFieldCategory        string = "category"
	LoggerCategorySurvey       string = "survey"
	LoggerCategoryRepetition   string = "repetition"
	LoggerCategoryImuRecord    string = "imu_record"
	LoggerCategoryUser         string = "user"
	LoggerCategoryHeartbeat    string = "heartbeat"
	LoggerCategoryAccessLog    string = "access"
	SurveySerializationFailure string = "ERROR PARSING MAP"
)
