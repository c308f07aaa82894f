package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	ShortCode   ShortCodeConfig
	Log         LogConfig
	Maintenance MaintenanceConfig
}

type ServerConfig struct {
	Addr       string
	BaseURL    string
	CorsOrigin string
}

type DBConfig struct {
	Driver string // mysql | sqlite
	DSN    string
}

type RedisConfig struct {
	Addr     string // 为空时不启用缓存
	Password string
}

type ShortCodeConfig struct {
	MaxAttempts int
}

type LogConfig struct {
	Level      string
	Path       string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // 天
	Compress   bool
}

type MaintenanceConfig struct {
	Schedule string
}

// 环境变量 -> 配置键
var envBindings = map[string]string{
	"server.base_url":        "BASE_URL",
	"server.cors_origin":     "CORS_ORIGIN",
	"db.driver":              "DB_DRIVER",
	"db.dsn":                 "DB_DSN",
	"redis.addr":             "REDIS_ADDR",
	"redis.password":         "REDIS_PASSWORD",
	"shortcode.max_attempts": "SHORTCODE_MAX_ATTEMPTS",
	"log.level":              "LOG_LEVEL",
	"log.path":               "LOG_PATH",
	"log.max_size":           "LOG_MAX_SIZE",
	"log.max_backups":        "LOG_MAX_BACKUPS",
	"log.max_age":            "LOG_MAX_AGE",
	"log.compress":           "LOG_COMPRESS",
	"maintenance.schedule":   "MAINTENANCE_SCHEDULE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5002")
	v.SetDefault("server.base_url", "http://localhost:5002")
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "quicklink.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("shortcode.max_attempts", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "logs/quicklink.log")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.compress", false)
	v.SetDefault("maintenance.schedule", "*/10 * * * *")
}

// Load 读取配置，优先级：环境变量 > config.yaml > 默认值。
// .env 文件存在时先加载到环境变量中。
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load() // .env 不存在时忽略

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	// PORT 只给端口号，和 server.addr 的格式不同
	if err := v.BindEnv("server.port", "PORT"); err != nil {
		return nil, err
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	addr := v.GetString("server.addr")
	if port := strings.TrimSpace(v.GetString("server.port")); port != "" {
		addr = ":" + strings.TrimPrefix(port, ":")
	}

	maxAttempts := v.GetInt("shortcode.max_attempts")
	if maxAttempts <= 0 {
		maxAttempts = 10
	}

	return &Config{
		Server: ServerConfig{
			Addr:       addr,
			BaseURL:    strings.TrimRight(v.GetString("server.base_url"), "/"),
			CorsOrigin: v.GetString("server.cors_origin"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			DSN:    v.GetString("db.dsn"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
		},
		ShortCode: ShortCodeConfig{
			MaxAttempts: maxAttempts,
		},
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Path:       v.GetString("log.path"),
			MaxSize:    v.GetInt("log.max_size"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAge:     v.GetInt("log.max_age"),
			Compress:   v.GetBool("log.compress"),
		},
		Maintenance: MaintenanceConfig{
			Schedule: v.GetString("maintenance.schedule"),
		},
	}
}
