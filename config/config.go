package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Updater specifics
	ClickUp ClickUpConfig
	Rules   RulesConfig
	Poller  PollerConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Enabled         bool
	Port            int
	Mode            string
	AllowedOrigins  []string
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	FilePath     string
}

type ClickUpConfig struct {
	APIKey         string
	APIKeyEnv      string
	AuthMode       string
	RequestTimeout time.Duration

	TeamName   string
	TeamID     string // optional, cross-checked against the resolved id
	SpaceNames []string
	Dispatch   DispatchConfig
	URLs       URLConfig
}

// DispatchConfig names the folder and list whose tasks get cleaned.
type DispatchConfig struct {
	FolderName string
	FolderID   string // optional
	ListName   string
	ListID     string // optional
}

type URLConfig struct {
	Team   string
	Space  string
	Folder string
	List   string
	Task   string
	User   string
}

// RulesConfig holds the literal strings stripped from tasks.
type RulesConfig struct {
	Subjects []string
	Headers  []string
	Footers  []string
}

type PollerConfig struct {
	Cycles   int // 0 runs until cancelled
	Interval time.Duration
	Comment  string
}

// Load loads configuration using Viper.
// Config file name: config.{yaml,toml,json}, searched in ./config, ., /etc/task-description-updater/.
// A non-empty path points Viper at that file instead.
func Load(path string) (*Config, error) {
	// .env is optional; the API key usually lives there
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/task-description-updater/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Enabled = v.GetBool("http_server.enabled")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.AllowedOrigins = getList(v, "http_server.allowed_origins")
	cfg.HTTPServer.RateLimitPerMin = v.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.Logger.FilePath = v.GetString("logger.file_path")

	// ClickUp
	cfg.ClickUp.APIKeyEnv = v.GetString("clickup.api_key_env")
	cfg.ClickUp.APIKey = v.GetString("clickup.api_key")
	if cfg.ClickUp.APIKey == "" && cfg.ClickUp.APIKeyEnv != "" {
		cfg.ClickUp.APIKey = os.Getenv(cfg.ClickUp.APIKeyEnv)
	}
	cfg.ClickUp.AuthMode = v.GetString("clickup.auth_mode")
	cfg.ClickUp.RequestTimeout = v.GetDuration("clickup.request_timeout")
	cfg.ClickUp.TeamName = v.GetString("clickup.team_name")
	cfg.ClickUp.TeamID = v.GetString("clickup.team_id")
	cfg.ClickUp.SpaceNames = getList(v, "clickup.space_names")
	cfg.ClickUp.Dispatch.FolderName = v.GetString("clickup.dispatch.folder_name")
	cfg.ClickUp.Dispatch.FolderID = v.GetString("clickup.dispatch.folder_id")
	cfg.ClickUp.Dispatch.ListName = v.GetString("clickup.dispatch.list_name")
	cfg.ClickUp.Dispatch.ListID = v.GetString("clickup.dispatch.list_id")
	cfg.ClickUp.URLs.Team = v.GetString("clickup.urls.team")
	cfg.ClickUp.URLs.Space = v.GetString("clickup.urls.space")
	cfg.ClickUp.URLs.Folder = v.GetString("clickup.urls.folder")
	cfg.ClickUp.URLs.List = v.GetString("clickup.urls.list")
	cfg.ClickUp.URLs.Task = v.GetString("clickup.urls.task")
	cfg.ClickUp.URLs.User = v.GetString("clickup.urls.user")

	// Rules. Entries are used verbatim, whitespace included.
	cfg.Rules.Subjects = getRules(v, "rules.subjects")
	cfg.Rules.Headers = getRules(v, "rules.headers")
	cfg.Rules.Footers = getRules(v, "rules.footers")

	// Poller
	cfg.Poller.Cycles = v.GetInt("poller.cycles")
	cfg.Poller.Interval = v.GetDuration("poller.interval")
	cfg.Poller.Comment = v.GetString("poller.comment")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.enabled", true)
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "release")
	v.SetDefault("http_server.rate_limit_per_min", 60)
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("logger.file_path", "logs.log")

	v.SetDefault("clickup.api_key_env", "CLICKUP_API_KEY")
	v.SetDefault("clickup.auth_mode", "token")
	v.SetDefault("clickup.request_timeout", "30s")
	v.SetDefault("clickup.urls.team", "https://api.clickup.com/api/v2/team/")
	v.SetDefault("clickup.urls.space", "https://api.clickup.com/api/v2/space/")
	v.SetDefault("clickup.urls.folder", "https://api.clickup.com/api/v2/folder/")
	v.SetDefault("clickup.urls.list", "https://api.clickup.com/api/v2/list/")
	v.SetDefault("clickup.urls.task", "https://api.clickup.com/api/v2/task/")
	v.SetDefault("clickup.urls.user", "https://api.clickup.com/api/v2/user")

	v.SetDefault("poller.cycles", 250)
	v.SetDefault("poller.interval", "5m")
	v.SetDefault("poller.comment", "This task has been updated by the ClickUp Bot.")
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.ClickUp.APIKey == "" {
		errs = append(errs, fmt.Errorf("clickup api key is empty: set %s or clickup.api_key", c.ClickUp.APIKeyEnv))
	}
	if c.ClickUp.AuthMode != "token" && c.ClickUp.AuthMode != "oauth" {
		errs = append(errs, fmt.Errorf("clickup.auth_mode must be token or oauth, got %q", c.ClickUp.AuthMode))
	}
	if c.ClickUp.TeamName == "" {
		errs = append(errs, errors.New("clickup.team_name is required"))
	}
	if len(c.ClickUp.SpaceNames) == 0 {
		errs = append(errs, errors.New("clickup.space_names is required"))
	}
	if c.ClickUp.Dispatch.FolderName == "" {
		errs = append(errs, errors.New("clickup.dispatch.folder_name is required"))
	}
	if c.ClickUp.Dispatch.ListName == "" {
		errs = append(errs, errors.New("clickup.dispatch.list_name is required"))
	}
	for key, val := range map[string]string{
		"clickup.urls.team":   c.ClickUp.URLs.Team,
		"clickup.urls.space":  c.ClickUp.URLs.Space,
		"clickup.urls.folder": c.ClickUp.URLs.Folder,
		"clickup.urls.list":   c.ClickUp.URLs.List,
		"clickup.urls.task":   c.ClickUp.URLs.Task,
		"clickup.urls.user":   c.ClickUp.URLs.User,
	} {
		if val == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}
	if c.Poller.Cycles < 0 {
		errs = append(errs, errors.New("poller.cycles must not be negative"))
	}
	if c.Poller.Interval <= 0 {
		errs = append(errs, errors.New("poller.interval must be positive"))
	}
	if c.HTTPServer.Enabled && c.HTTPServer.Port == 0 {
		errs = append(errs, errors.New("http_server.port is required when the status server is enabled"))
	}

	return errors.Join(errs...)
}

// getList reads a list setting. Env vars arrive as one comma separated
// string, config files as a real list.
func getList(v *viper.Viper, key string) []string {
	var raw []string
	if s, ok := v.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = v.GetStringSlice(key)
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// getRules reads a rule list. Rules may contain spaces and commas, so an
// env string holds one rule per line. Nothing is trimmed and empty
// entries are dropped.
func getRules(v *viper.Viper, key string) []string {
	var raw []string
	if s, ok := v.Get(key).(string); ok {
		raw = strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	} else {
		raw = v.GetStringSlice(key)
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
