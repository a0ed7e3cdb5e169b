package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	Auth     AuthConfig     `toml:"auth"`
	Store    StoreConfig    `toml:"store"`
	Sheets   SheetsConfig   `toml:"sheets"`
	MySQL    MySQLConfig    `toml:"mysql"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	LLM      LLMConfig      `toml:"llm"`
	Robot    RobotConfig    `toml:"robot"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

// StoreConfig selects the record store backend: "sheets", "mysql" or
// "memory".
type StoreConfig struct {
	Driver string `toml:"driver"`
}

type SheetsConfig struct {
	SpreadsheetID   string `toml:"spreadsheet_id"`
	CredentialsFile string `toml:"credentials_file"`
}

type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
}

// RedisConfig with an empty Addr disables the child profile cache.
type RedisConfig struct {
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	ChildTTLSeconds int    `toml:"child_ttl_seconds"`
}

// RabbitMQConfig with an empty URL disables session event publishing and the
// prompt relay worker.
type RabbitMQConfig struct {
	URL               string `toml:"url"`
	SessionEventQueue string `toml:"session_event_queue"`
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	JWTExpireMinute int    `toml:"jwt_expire_minute"`
}

type LLMConfig struct {
	BaseURL       string `toml:"base_url"`
	APIKey        string `toml:"api_key"`
	KeywordModel  string `toml:"keyword_model"`
	PromptModel   string `toml:"prompt_model"`
	TimeoutSecond int    `toml:"timeout_second"`
}

// RobotConfig with an empty WebhookURL disables prompt forwarding.
type RobotConfig struct {
	WebhookURL string `toml:"webhook_url"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.MySQL.User,
		c.MySQL.Password,
		c.MySQL.Host,
		c.MySQL.Port,
		c.MySQL.DB,
		c.MySQL.Params,
	)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "hri-companion",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			JWTSecret:       "change-me-in-production",
			JWTExpireMinute: 120,
		},
		Store: StoreConfig{
			Driver: "memory",
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   "",
			CredentialsFile: "credentials.json",
		},
		MySQL: MySQLConfig{
			Host:     "127.0.0.1",
			Port:     3306,
			User:     "root",
			Password: "",
			DB:       "hri_companion",
			Params:   "parseTime=true&loc=Local&charset=utf8mb4",
		},
		Redis: RedisConfig{
			Addr:            "",
			Password:        "",
			DB:              0,
			ChildTTLSeconds: 3600,
		},
		RabbitMQ: RabbitMQConfig{
			URL:               "",
			SessionEventQueue: "session.created",
		},
		LLM: LLMConfig{
			BaseURL:       "https://api.openai.com/v1",
			APIKey:        "",
			KeywordModel:  "gpt-4o-mini",
			PromptModel:   "gpt-4o",
			TimeoutSecond: 30,
		},
		Robot: RobotConfig{
			WebhookURL: "",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.JWTExpireMinute = getEnvAsInt("JWT_EXPIRE_MINUTE", cfg.Auth.JWTExpireMinute)

	cfg.Store.Driver = getEnv("STORE_DRIVER", cfg.Store.Driver)
	cfg.Sheets.SpreadsheetID = getEnv("SHEETS_SPREADSHEET_ID", cfg.Sheets.SpreadsheetID)
	cfg.Sheets.CredentialsFile = getEnv("SHEETS_CREDENTIALS_FILE", cfg.Sheets.CredentialsFile)

	cfg.MySQL.Host = getEnv("MYSQL_HOST", cfg.MySQL.Host)
	cfg.MySQL.Port = getEnvAsInt("MYSQL_PORT", cfg.MySQL.Port)
	cfg.MySQL.User = getEnv("MYSQL_USER", cfg.MySQL.User)
	cfg.MySQL.Password = getEnv("MYSQL_PASSWORD", cfg.MySQL.Password)
	cfg.MySQL.DB = getEnv("MYSQL_DB", cfg.MySQL.DB)
	cfg.MySQL.Params = getEnv("MYSQL_PARAMS", cfg.MySQL.Params)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.ChildTTLSeconds = getEnvAsInt("REDIS_CHILD_TTL_SECONDS", cfg.Redis.ChildTTLSeconds)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.SessionEventQueue = getEnv("RABBITMQ_SESSION_EVENT_QUEUE", cfg.RabbitMQ.SessionEventQueue)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.KeywordModel = getEnv("LLM_KEYWORD_MODEL", cfg.LLM.KeywordModel)
	cfg.LLM.PromptModel = getEnv("LLM_PROMPT_MODEL", cfg.LLM.PromptModel)
	cfg.LLM.TimeoutSecond = getEnvAsInt("LLM_TIMEOUT_SECOND", cfg.LLM.TimeoutSecond)

	cfg.Robot.WebhookURL = getEnv("ROBOT_WEBHOOK_URL", cfg.Robot.WebhookURL)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
