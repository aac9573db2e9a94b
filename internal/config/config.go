package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListen         = "127.0.0.1:8501"
	DefaultEventsFile     = "Updated_Marketing_Calendar.csv"
	DefaultCategoriesFile = "allowed_categories.csv"
	DefaultWindowDays     = 14
	DefaultLabelMax       = 30
	DefaultLogLevel       = "info"

	// DefaultBriefURL is the marketing brief request form linked after a
	// successful submission.
	DefaultBriefURL = "https://www.wrike.com/form/eyJhY2NvdW50SWQiOjYwNjQ3MjUsInRhc2tGb3JtSWQiOjkyNTU5OH0JNDg5MzY1OTc3OTI3NwljOWYyZDQxZDU0NzdmOGMyNzAwNDAwNzMxOWVlNjE5MWZkYTcxOTljMzNmNDExZjM5YWNhMjg3ZjIyY2JkMzM0"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the dashboard.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the dashboard and API.
	Listen string `yaml:"listen" json:"listen"`

	// EventsFile is the events CSV. It is read at startup and fully
	// rewritten on every accepted submission.
	EventsFile string `yaml:"events_file" json:"events_file"`

	// CategoriesFile lists the categories a new submission may use.
	CategoriesFile string `yaml:"categories_file" json:"categories_file"`

	// Timezone is the IANA zone used to decide what "today" is for the
	// default date window. Empty means the process local zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WindowDays is the half-width of the default date range (today ± N).
	WindowDays int `yaml:"window_days" json:"window_days"`

	// LabelMax is the maximum label length in runes before truncation.
	LabelMax int `yaml:"label_max" json:"label_max"`

	// Reload is a cron expression (e.g. "*/5 * * * *") for re-reading the
	// CSV files. Empty disables scheduled reloads.
	Reload string `yaml:"reload" json:"reload"`

	// BriefURL is shown after a successful submission. Set it to "" in the
	// file to hide the link.
	BriefURL string `yaml:"brief_url" json:"brief_url"`

	LogLevel string `yaml:"log_level" json:"log_level"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:         DefaultListen,
		EventsFile:     DefaultEventsFile,
		CategoriesFile: DefaultCategoriesFile,
		WindowDays:     DefaultWindowDays,
		LabelMax:       DefaultLabelMax,
		BriefURL:       DefaultBriefURL,
		LogLevel:       DefaultLogLevel,
	}
}

// Normalize fills in missing/zero values so partially-filled configs
// still behave.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.EventsFile == "" {
		c.EventsFile = DefaultEventsFile
	}
	if c.CategoriesFile == "" {
		c.CategoriesFile = DefaultCategoriesFile
	}
	if c.WindowDays <= 0 {
		c.WindowDays = DefaultWindowDays
	}
	if c.LabelMax <= 0 {
		c.LabelMax = DefaultLabelMax
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	// 사용자명/비밀번호 중 하나라도 비어 있으면 basic auth 를 끈다.
	if c.BasicAuth != nil && (c.BasicAuth.Username == "" || c.BasicAuth.Password == "") {
		c.BasicAuth = nil
	}
}

// Location resolves Timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ResolvePaths makes relative data file paths relative to the directory
// holding the config file.
func (c *Config) ResolvePaths(configPath string) {
	dir := filepath.Dir(configPath)
	if c.EventsFile != "" && !filepath.IsAbs(c.EventsFile) {
		c.EventsFile = filepath.Join(dir, c.EventsFile)
	}
	if c.CategoriesFile != "" && !filepath.IsAbs(c.CategoriesFile) {
		c.CategoriesFile = filepath.Join(dir, c.CategoriesFile)
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there
//     (0600) and returned.
//   - Otherwise the YAML is decoded and normalized.
//
// Data file paths are returned as written in the file; callers decide
// whether to ResolvePaths.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// 첫 실행: 기본 설정 파일을 만들어 두고 그대로 사용한다.
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".mktcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
