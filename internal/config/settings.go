package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"slices"

	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
)

// isoDuration accepts the subset of ISO 8601 durations calendar clients understand as alarm triggers.
var isoDuration = regexp.MustCompile(`^-?P(\d+W|\d+D)?(T(\d+H)?(\d+M)?(\d+S)?)?$`)

// Settings holds the user-tunable options of the contact book.
// Values come from an optional YAML file; flags may override them afterwards.
type Settings struct {
	DataFile string `yaml:"data-file"`
	Language string `yaml:"language"`
	Autoload bool   `yaml:"autoload"`

	// Reminder is the alarm trigger attached to exported calendar events. Empty disables alarms.
	Reminder string `yaml:"reminder"`
}

// SetDefaults implements defaults.Setter. Only empty fields are filled.
func (s *Settings) SetDefaults() {
	if s.DataFile == "" {
		s.DataFile = DefaultDataFile
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.Reminder == "" {
		s.Reminder = DefaultReminder
	}
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() (*Settings, error) {
	var s Settings
	if err := defaults.Set(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigDefaults, err)
	}
	return &s, nil
}

// LoadSettings reads the YAML settings at path.
// A missing file is only tolerated when required is false, in which case defaults are returned.
func LoadSettings(path string, required bool) (*Settings, error) {
	s, err := DefaultSettings()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			slog.Info(MsgSettingsAbsent,
				LogKeyComponent, CompSettings,
				LogKeyPath, path,
			)
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
	}
	defer func() { _ = f.Close() }()

	if err := yaml.NewDecoder(f).Decode(s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks that every option holds a usable value.
func (s *Settings) Validate() error {
	if s.DataFile == "" {
		return errors.New(ErrStorePathEmpty)
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrLanguage, s.Language)
	}
	if s.Reminder != "" && !validReminder(s.Reminder) {
		return fmt.Errorf("%s: %q", ErrReminder, s.Reminder)
	}
	return nil
}

func validReminder(v string) bool {
	if !isoDuration.MatchString(v) {
		return false
	}
	// "P", "-P" and "PT" match the pattern but carry no amount.
	switch v {
	case "P", "-P", "PT", "-PT":
		return false
	}
	return v[len(v)-1] != 'T'
}
