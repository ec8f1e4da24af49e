package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"folio/internal/errors"

	"gopkg.in/yaml.v3"
)

// Tool is an entry of the tools section.
type Tool struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
}

// Job is an entry of the experience section.
type Job struct {
	Company string `yaml:"company"`
	Role    string `yaml:"role"`
	Period  string `yaml:"period"`
	Summary string `yaml:"summary"`
}

// Config represents the site configuration: the profile shown in the
// portfolio, SEO and analytics settings, feature flags and runtime paths.
type Config struct {
	Profile struct {
		Name       string `yaml:"name"`
		Title      string `yaml:"title"`
		Bio        string `yaml:"bio"`
		Experience int    `yaml:"experience"` // Years of experience
		Handle     string `yaml:"handle"`     // Used as utm_source
	} `yaml:"profile"`
	TechStack []string `yaml:"tech_stack"`
	Tools     []Tool   `yaml:"tools"`
	Jobs      []Job    `yaml:"jobs"`
	Contact   struct {
		Email    string `yaml:"email"`
		GitHub   string `yaml:"github"`
		LinkedIn string `yaml:"linkedin"`
	} `yaml:"contact"`
	SEO struct {
		SiteURL       string `yaml:"site_url"`
		OGImage       string `yaml:"og_image"`
		TwitterHandle string `yaml:"twitter_handle"`
	} `yaml:"seo"`
	Analytics struct {
		GoogleAnalyticsID string `yaml:"google_analytics_id"` // GA4 measurement id, e.g. G-XXXXXXXXXX
		APISecret         string `yaml:"api_secret"`          // Measurement Protocol secret
		ClientID          string `yaml:"client_id"`
	} `yaml:"analytics"`
	Features struct {
		ShowProjects    bool `yaml:"show_projects"`
		ShowBlog        bool `yaml:"show_blog"`
		EnableAnalytics bool `yaml:"enable_analytics"`
	} `yaml:"features"`
	Sections []string `yaml:"sections"` // Ordered page index
	Theme    string   `yaml:"theme"`    // Default theme when nothing is stored
	Blog     struct {
		Dir      string `yaml:"dir"`
		Pattern  string `yaml:"pattern"`   // Glob matched against file names
		CacheTTL int    `yaml:"cache_ttl"` // Seconds
		Watch    bool   `yaml:"watch"`
	} `yaml:"blog"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	StateFile string `yaml:"state_file"`
	Log       struct {
		File  string `yaml:"file"`
		JSON  bool   `yaml:"json"`
		Debug bool   `yaml:"debug"`
	} `yaml:"log"`
}

// DefaultPath returns ~/.config/folio/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "folio", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal on top of the defaults so unset fields keep them
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns the reference portfolio configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Profile.Name = "Hong4rc"
	cfg.Profile.Title = "Backend Developer"
	cfg.Profile.Bio = "just a backend dev, lazy guy, do simple if can"
	cfg.Profile.Experience = 6
	cfg.Profile.Handle = "hong4rc"

	cfg.TechStack = []string{"Node.js", "NestJS", "MongoDB", "Docker", "AWS"}
	cfg.Tools = []Tool{
		{Name: "Neovim", Description: "Editor", URL: "https://neovim.io"},
		{Name: "tmux", Description: "Terminal multiplexer", URL: "https://github.com/tmux/tmux"},
		{Name: "Git", Description: "Version control", URL: "https://git-scm.com"},
	}
	cfg.Jobs = []Job{}

	cfg.Contact.Email = "hong4rc@gmail.com"
	cfg.Contact.GitHub = "https://github.com/hong4rc"
	cfg.Contact.LinkedIn = "https://linkedin.com/in/hong4rc"

	cfg.SEO.SiteURL = "https://hong4rc.github.io"
	cfg.SEO.OGImage = "/og-image.png"
	cfg.SEO.TwitterHandle = "@hong4rc"

	cfg.Features.ShowProjects = false
	cfg.Features.ShowBlog = false
	cfg.Features.EnableAnalytics = false

	cfg.Sections = []string{"hero", "experience", "tech", "tools", "contact"}
	cfg.Theme = "frappe"

	cfg.Blog.Dir = "posts"
	cfg.Blog.Pattern = "*.md"
	cfg.Blog.CacheTTL = 300 // 5 minutes
	cfg.Blog.Watch = true

	cfg.Server.Addr = ":3210"

	if home, err := os.UserHomeDir(); err == nil {
		cfg.StateFile = filepath.Join(home, ".config", "folio", "state.yaml")
	} else {
		cfg.StateFile = ".folio-state.yaml"
	}

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// CacheTTL returns the blog cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Blog.CacheTTL) * time.Second
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if c.Profile.Name == "" {
		return errors.NewConfigError("name is required", "profile.name", errors.InvalidConfig, nil)
	}

	u, err := url.Parse(c.SEO.SiteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NewConfigError("site url must be absolute", "seo.site_url", errors.InvalidConfig, err)
	}

	if len(c.Sections) == 0 {
		return errors.NewConfigError("at least one section is required", "sections", errors.InvalidConfig, nil)
	}
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if s == "" {
			return errors.NewConfigError(fmt.Sprintf("section %d: name is required", i), "sections", errors.InvalidConfig, nil)
		}
		if seen[s] {
			return errors.NewConfigError(fmt.Sprintf("duplicate section %q", s), "sections", errors.InvalidConfig, nil)
		}
		seen[s] = true
	}

	if c.Blog.CacheTTL < 0 {
		return errors.NewConfigError("cache ttl must be >= 0 seconds", "blog.cache_ttl", errors.InvalidConfig, nil)
	}

	if c.Features.EnableAnalytics && c.Analytics.GoogleAnalyticsID != "" && c.Analytics.APISecret == "" {
		return errors.NewConfigError("api secret is required with a measurement id", "analytics.api_secret", errors.InvalidConfig, nil)
	}

	return nil
}
