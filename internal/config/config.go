package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// Config 全部来自环境变量，required 字段缺失时启动直接失败
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	Debug    bool   `env:"DEBUG"`

	MySQLDSN string `env:"MYSQL_DSN,required"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AccessSecret  string `env:"JWT_ACCESS_SECRET,required"`
	RefreshSecret string `env:"JWT_REFRESH_SECRET,required"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	// KafkaBrokers 为空时事件只打日志，不投递
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"community-events"`

	AvatarDir string `env:"AVATAR_DIR" envDefault:"./data/avatars"`

	// SheetCSVURL 旧版表格导入的发布地址，为空时接口返回 404
	SheetCSVURL string `env:"SHEET_CSV_URL"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SheetCSVURL != "" {
		if _, err := url.ParseRequestURI(cfg.SheetCSVURL); err != nil {
			return nil, fmt.Errorf("invalid SHEET_CSV_URL: %w", err)
		}
	}
	return &cfg, nil
}
