package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/db"
)

const (
	KeyPort               = "port"
	KeyGrpcPort           = "grpc_port"
	KeyDbType             = "db_type"
	KeyDbPath             = "db_path"
	KeyPostgresDSN        = "postgres_dsn"
	KeyMongoURI           = "mongo_uri"
	KeyMongoDatabase      = "mongo_database"
	KeyMongoCollection    = "mongo_collection"
	KeyPersistSubmissions = "persist_submissions"
	KeyCorsOrigins        = "cors_origins"
	KeyTracing            = "tracing"
)

var (
	DbTypes      = []string{"file", "memory", "postgres", "mongo"}
	TracingModes = []string{"none", "stdout", "otlp"}
)

type Config struct {
	Port               int      `mapstructure:"port"`
	GrpcPort           int      `mapstructure:"grpc_port"`
	DbType             string   `mapstructure:"db_type"`
	DbPath             string   `mapstructure:"db_path"`
	PostgresDSN        string   `mapstructure:"postgres_dsn"`
	MongoURI           string   `mapstructure:"mongo_uri"`
	MongoDatabase      string   `mapstructure:"mongo_database"`
	MongoCollection    string   `mapstructure:"mongo_collection"`
	PersistSubmissions bool     `mapstructure:"persist_submissions"`
	CorsOrigins        []string `mapstructure:"cors_origins"`
	Tracing            string   `mapstructure:"tracing"`
}

// LoadDotEnv loads .env from the working directory. A missing file is fine.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// New returns a viper instance with defaults set and LIFTRIGHT_* environment
// variables bound to every key.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyPort, common.DefaultHttpPort)
	v.SetDefault(KeyGrpcPort, 0)
	v.SetDefault(KeyDbType, "file")
	v.SetDefault(KeyDbPath, "liftright.db")
	v.SetDefault(KeyPostgresDSN, "")
	v.SetDefault(KeyMongoURI, "mongodb://localhost:27017")
	v.SetDefault(KeyMongoDatabase, "liftright")
	v.SetDefault(KeyMongoCollection, "liftright")
	v.SetDefault(KeyPersistSubmissions, false)
	v.SetDefault(KeyCorsOrigins, []string{})
	v.SetDefault(KeyTracing, "none")

	v.SetEnvPrefix(common.EnvPrefix)
	v.AutomaticEnv()

	return v
}

// AddFlags registers the command line options on cmd and binds them to v.
func AddFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	flags.IntP("port", "p", common.DefaultHttpPort, "HTTP port to listen on (binds 0.0.0.0)")
	flags.Int("grpc-port", 0, "gRPC port to listen on, 0 disables the gRPC server")
	flags.String("db-type", "file", "storage backend: "+strings.Join(DbTypes, ", "))
	flags.Bool("persist", false, "store repetitions, imu records and surveys instead of only acknowledging them")

	bindings := map[string]string{
		KeyPort:               "port",
		KeyGrpcPort:           "grpc-port",
		KeyDbType:             "db-type",
		KeyPersistSubmissions: "persist",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the effective configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	cfg.CorsOrigins = common.Filter(
		common.Mapper(cfg.CorsOrigins, strings.TrimSpace),
		func(s string) bool { return s != "" },
	)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.GrpcPort < 0 || c.GrpcPort > 65535 {
		return fmt.Errorf("invalid grpc_port %d", c.GrpcPort)
	}
	if c.GrpcPort != 0 && c.GrpcPort == c.Port {
		return fmt.Errorf("grpc_port must differ from port %d", c.Port)
	}
	if !slices.Contains(DbTypes, c.DbType) {
		return fmt.Errorf("unknown db_type %q, expected one of %s", c.DbType, strings.Join(DbTypes, ", "))
	}
	if c.DbType == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("db_type postgres requires %s_POSTGRES_DSN", common.EnvPrefix)
	}
	if !slices.Contains(TracingModes, c.Tracing) {
		return fmt.Errorf("unknown tracing mode %q, expected one of %s", c.Tracing, strings.Join(TracingModes, ", "))
	}
	return nil
}

func (c *Config) HttpAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c *Config) GrpcAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.GrpcPort)
}

func (c *Config) StoreOptions() db.Options {
	return db.Options{
		Type:            c.DbType,
		Path:            c.DbPath,
		PostgresDSN:     c.PostgresDSN,
		MongoURI:        c.MongoURI,
		MongoDatabase:   c.MongoDatabase,
		MongoCollection: c.MongoCollection,
	}
}
