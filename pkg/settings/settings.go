// Package settings manages persistent user settings for the mistctl CLI.
package settings

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds persistent user preferences
type Settings struct {
	// DefaultOrgID is the org to use when -o is not specified
	DefaultOrgID string `yaml:"default_org_id,omitempty"`

	// EnvFile overrides the default credentials file (~/.mist_env)
	EnvFile string `yaml:"env_file,omitempty"`

	// LogFile overrides the default log file (./script.log)
	LogFile string `yaml:"log_file,omitempty"`

	// ReportDir is where report CSVs are written when -f gives a bare
	// filename
	ReportDir string `yaml:"report_dir,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mistctl_settings.yaml"
	}
	return filepath.Join(home, ".mistctl", "settings.yaml")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path. A missing file yields
// empty settings, not an error.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetEnvFile returns the credentials file path (with fallback)
func (s *Settings) GetEnvFile() string {
	if s.EnvFile != "" {
		return s.EnvFile
	}
	return "~/.mist_env"
}

// GetLogFile returns the log file path (with fallback)
func (s *Settings) GetLogFile() string {
	if s.LogFile != "" {
		return s.LogFile
	}
	return "./script.log"
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
