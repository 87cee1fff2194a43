package assistant

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/contactbook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Messages renders the user-facing replies in one language.
type Messages struct {
	localizer *i18n.Localizer
	Languages []string // Languages found in the embedded locales.
}

// NewMessages loads every embedded locale and selects lang, falling back to English
// for keys a locale does not translate.
func NewMessages(lang string) (*Messages, error) {
	if _, err := language.Parse(lang); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLanguage, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	if len(detected) == 0 {
		return nil, errors.New(config.ErrLocalesAccess)
	}

	return &Messages{
		localizer: i18n.NewLocalizer(bundle, lang),
		Languages: detected,
	}, nil
}

// Get translates key with data. Keys missing from the selected language use the English text;
// keys missing everywhere are returned as is so the gap stays visible.
func (m *Messages) Get(key string, data map[string]any) string {
	msg, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		if msg == "" {
			return key
		}
	}
	return msg
}
