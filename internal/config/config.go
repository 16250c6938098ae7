package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Backend names used in route prefixes and in BACKENDS.
const (
	BackendMySQL = "mysql"
	BackendMongo = "mongo"
	BackendNeo4j = "neo4j"
)

// Id allocator modes.
const (
	AllocatorScan  = "scan"
	AllocatorRedis = "redis"
)

// Config holds application level configuration. It is built once at startup
// and passed explicitly to every constructor that needs it.
type Config struct {
	ServerPort string `mapstructure:"server_port"`
	Backends   string `mapstructure:"backends"`

	PrimaryUserBackend   string `mapstructure:"primary_user_backend"`
	SecondaryUserBackend string `mapstructure:"secondary_user_backend"`

	MySQLDSN         string `mapstructure:"mysql_dsn"`
	MySQLAutoMigrate bool   `mapstructure:"mysql_auto_migrate"`

	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`

	Neo4jURI      string `mapstructure:"neo4j_uri"`
	Neo4jUser     string `mapstructure:"neo4j_user"`
	Neo4jPassword string `mapstructure:"neo4j_password"`
	Neo4jDatabase string `mapstructure:"neo4j_database"`

	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
	RedisPass string `mapstructure:"redis_password"`

	IDAllocator string `mapstructure:"id_allocator"`

	JWTSecret   string `mapstructure:"jwt_secret"`
	JWTIssuer   string `mapstructure:"jwt_issuer"`
	JWTAudience string `mapstructure:"jwt_audience"`

	LogLevel  string `mapstructure:"log_level"`
	LogOutput string `mapstructure:"log_output"`

	SwaggerHost string `mapstructure:"swagger_host"`
}

//nolint:gochecknoglobals
var defaults = map[string]any{
	"server_port":            "8080",
	"backends":               "mysql,mongo,neo4j",
	"primary_user_backend":   BackendMySQL,
	"secondary_user_backend": BackendNeo4j,
	"mysql_dsn":              "user:password@tcp(localhost:3306)/museum?charset=utf8mb4&parseTime=True&loc=Local",
	"mysql_auto_migrate":     false,
	"mongo_uri":              "mongodb://localhost:27017",
	"mongo_database":         "ArtMuseumDb",
	"neo4j_uri":              "neo4j://localhost:7687",
	"neo4j_user":             "neo4j",
	"neo4j_password":         "",
	"neo4j_database":         "neo4j",
	"redis_addr":             "localhost:6379",
	"redis_db":               0,
	"redis_password":         "",
	"id_allocator":           AllocatorScan,
	"jwt_secret":             "change-me",
	"jwt_issuer":             "ArtMuseumAPI",
	"jwt_audience":           "ArtMuseumClients",
	"log_level":              "info",
	"log_output":             "",
	"swagger_host":           "",
}

// Load builds Config from defaults, an optional config file and environment
// variables, in increasing order of precedence. An empty path falls back to
// CONFIG_FILE; if that is empty too, no file is read.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config_file")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnabledBackends returns the normalized list of configured backends.
func (c *Config) EnabledBackends() []string {
	var out []string
	for _, b := range strings.Split(c.Backends, ",") {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Enabled reports whether backend is part of BACKENDS.
func (c *Config) Enabled(backend string) bool {
	for _, b := range c.EnabledBackends() {
		if b == backend {
			return true
		}
	}
	return false
}

func (c *Config) validate() error {
	backends := c.EnabledBackends()
	if len(backends) == 0 {
		return fmt.Errorf("config: no backends enabled")
	}
	for _, b := range backends {
		switch b {
		case BackendMySQL, BackendMongo, BackendNeo4j:
		default:
			return fmt.Errorf("config: unknown backend %q", b)
		}
	}
	if !c.Enabled(c.PrimaryUserBackend) {
		return fmt.Errorf("config: primary user backend %q is not enabled", c.PrimaryUserBackend)
	}
	switch c.IDAllocator {
	case AllocatorScan, AllocatorRedis:
	default:
		return fmt.Errorf("config: unknown id allocator %q", c.IDAllocator)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: jwt secret must not be empty")
	}
	return nil
}
