package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Mail     *MailConfig     `mapstructure:"mail"`
	Discord  *DiscordConfig  `mapstructure:"discord"`
	GitHub   *GitHubConfig   `mapstructure:"github"`
	Approval *ApprovalConfig `mapstructure:"approval"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	SiteURL            string   `mapstructure:"site_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Pass    string `mapstructure:"pass"`
	DB      int    `mapstructure:"db"`
}

type MailConfig struct {
	SendGridAPIKey string `mapstructure:"sendgrid_api_key"`
	SenderAddress  string `mapstructure:"sender_address"`
	SenderName     string `mapstructure:"sender_name"`
}

type DiscordConfig struct {
	BotToken             string `mapstructure:"bot_token"`
	NotificationsChannel string `mapstructure:"notifications_channel"`
}

type GitHubConfig struct {
	Token     string `mapstructure:"token"`
	RepoOwner string `mapstructure:"repo_owner"`
	RepoName  string `mapstructure:"repo_name"`
}

type ApprovalConfig struct {
	TokenSecret string `mapstructure:"token_secret"`
}

// Load reads the YAML config at path. Values may reference environment
// variables (GSC_ prefix), which take precedence over the file.
func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	viper.SetEnvPrefix("GSC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	var conf AppConfig
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return &conf, nil
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
