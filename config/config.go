package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	ApiServer ServerConfigs   `toml:"api_server"`
	Database  DatabaseConfigs `toml:"database"`
	Auth      AuthConfigs     `toml:"auth"`
	Session   SessionConfigs  `toml:"session"`
	Redis     RedisConfigs    `toml:"redis"`
	Storage   S3Configs       `toml:"storage"`
	Email     EmailConfigs    `toml:"email"`
	File      FileConfigs     `toml:"file"`
	Forum     ForumConfigs    `toml:"forum"`
}

type ServerConfigs struct {
	Host         string `toml:"host"`
	Port         string `toml:"port"`
	SiteURL      string `toml:"site_url"`
	DefaultLimit int    `toml:"default_limit"`
	MaxLimit     int    `toml:"max_limit"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	Bucket         string `toml:"bucket"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type EmailConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
}

type FileConfigs struct {
	MaxSize int64 `toml:"max_size"`
}

type ForumConfigs struct {
	TopicsPerPage   int `toml:"topics_per_page"`
	CommentsPerPage int `toml:"comments_per_page"`
	LeaderboardSize int `toml:"leaderboard_size"`
	HotTopicLimit   int `toml:"hot_topic_limit"`

	ListingCacheTTL   time.Duration `toml:"listing_cache_ttl"`
	SiteCacheTTL      time.Duration `toml:"site_cache_ttl"`
	DuplicateWindow   time.Duration `toml:"duplicate_window"`
	VerifyEmailEvery  time.Duration `toml:"verify_email_every"`
	ResetRequestEvery time.Duration `toml:"reset_request_every"`
	ResetWindowDays   int           `toml:"reset_window_days"`
}

// Load builds the configuration from a TOML file when path is not empty,
// then fills the essentials from environment variables. Defaults keep a
// development instance runnable with nothing but a database.
func Load(path string) (Configs, error) {
	cfg := defaultConfigs()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	overrideFromEnv(&cfg)
	return cfg, nil
}

func defaultConfigs() Configs {
	return Configs{
		Env: "local",
		ApiServer: ServerConfigs{
			Port:         "8080",
			SiteURL:      "http://localhost:8080",
			DefaultLimit: 20,
			MaxLimit:     50,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Session: SessionConfigs{
			Name: "agora_session",
		},
		Redis: RedisConfigs{
			Addr: "localhost:6379",
		},
		File: FileConfigs{
			MaxSize: 2 << 20,
		},
		Forum: ForumConfigs{
			TopicsPerPage:     20,
			CommentsPerPage:   30,
			LeaderboardSize:   20,
			HotTopicLimit:     10,
			ListingCacheTTL:   60 * time.Second,
			SiteCacheTTL:      120 * time.Second,
			DuplicateWindow:   5 * time.Second,
			VerifyEmailEvery:  120 * time.Second,
			ResetRequestEvery: 60 * time.Second,
			ResetWindowDays:   3,
		},
	}
}

func overrideFromEnv(cfg *Configs) {
	setEnv(&cfg.Env, "ENV")
	setEnv(&cfg.ApiServer.Port, "PORT")
	setEnv(&cfg.ApiServer.SiteURL, "SITE_URL")
	setEnv(&cfg.Database.Host, "MYSQL_HOST")
	setEnv(&cfg.Database.Port, "MYSQL_PORT")
	setEnv(&cfg.Database.Database, "MYSQL_DATABASE")
	setEnv(&cfg.Database.User, "MYSQL_USER")
	setEnv(&cfg.Database.Password, "MYSQL_PASSWORD")
	setEnv(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	setEnv(&cfg.Session.Secret, "SESSION_SECRET")
	setEnv(&cfg.Redis.Addr, "REDIS_ADDR")
	setEnv(&cfg.Storage.Region, "S3_REGION")
	setEnv(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setEnv(&cfg.Storage.PublicEndpoint, "S3_PUBLIC_ENDPOINT")
	setEnv(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setEnv(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	setEnv(&cfg.Storage.Bucket, "S3_BUCKET")
	setEnv(&cfg.Email.Host, "SMTP_HOST")
	setEnv(&cfg.Email.Port, "SMTP_PORT")
	setEnv(&cfg.Email.Username, "SMTP_USERNAME")
	setEnv(&cfg.Email.Password, "SMTP_PASSWORD")
	setEnv(&cfg.Email.From, "SMTP_FROM")
	setEnv(&cfg.Email.FromName, "SMTP_FROM_NAME")
}

func setEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
