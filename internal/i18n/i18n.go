package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Translator renders message ids into text for a single configured language.
// English defaults are always registered; locale files only override them.
type Translator struct {
	bundle *goi18n.Bundle
	lang   string

	mu        sync.RWMutex
	localizer *goi18n.Localizer
}

func New(lang string) (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	if err := bundle.AddMessages(language.English, defaultMessages...); err != nil {
		return nil, fmt.Errorf("register default messages: %w", err)
	}

	if lang == "" {
		lang = language.English.String()
	}
	return &Translator{
		bundle:    bundle,
		lang:      lang,
		localizer: goi18n.NewLocalizer(bundle, lang),
	}, nil
}

// LoadDir loads every *.json message file in dir. File names follow the
// go-i18n convention, e.g. active.ur.json.
func (t *Translator) LoadDir(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := t.bundle.LoadMessageFile(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	t.mu.Lock()
	t.localizer = goi18n.NewLocalizer(t.bundle, t.lang)
	t.mu.Unlock()
	return nil
}

// Localize renders id with data. Unknown ids render as the id itself so a
// missing translation never hides a notification.
func (t *Translator) Localize(id string, data map[string]any) string {
	t.mu.RLock()
	loc := t.localizer
	t.mu.RUnlock()

	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}

// DirExists is a small helper for callers that make the locales dir optional.
func DirExists(dir string) bool {
	if dir == "" {
		return false
	}
	st, err := os.Stat(dir)
	return err == nil && st.IsDir()
}
