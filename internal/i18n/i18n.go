// Package i18n holds the zh/en message catalog shown by every front-end.
package i18n

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Lang is a display language.
type Lang string

const (
	Chinese Lang = "zh"
	English Lang = "en"
)

// DefaultLang is used when nothing has been stored.
const DefaultLang = Chinese

// Langs lists the supported languages.
var Langs = []Lang{Chinese, English}

// ParseLang accepts "zh" or "en" in any case.
func ParseLang(s string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case Chinese:
		return Chinese, nil
	case English:
		return English, nil
	}
	return DefaultLang, fmt.Errorf("unsupported language %q (want zh or en)", s)
}

// Toggle returns the other language.
func (l Lang) Toggle() Lang {
	if l == English {
		return Chinese
	}
	return English
}

// Catalog resolves message IDs to text.
type Catalog struct {
	localizers map[Lang]*goi18n.Localizer
}

// New loads the embedded message files.
func New() (*Catalog, error) {
	bundle := goi18n.NewBundle(language.Chinese)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, name := range []string{"locales/active.zh.toml", "locales/active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
	}

	return &Catalog{
		localizers: map[Lang]*goi18n.Localizer{
			Chinese: goi18n.NewLocalizer(bundle, string(Chinese)),
			English: goi18n.NewLocalizer(bundle, string(English)),
		},
	}, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns a process-wide catalog. The message files are embedded,
// so failing to load them is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New()
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// T returns the message for id, or id itself if it is unknown.
func (c *Catalog) T(lang Lang, id string) string {
	return c.Tf(lang, id, nil)
}

// Tf renders a templated message.
func (c *Catalog) Tf(lang Lang, id string, data map[string]interface{}) string {
	loc, ok := c.localizers[lang]
	if !ok {
		loc = c.localizers[DefaultLang]
	}
	msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}

// Localizer binds a catalog to one language.
type Localizer struct {
	Catalog *Catalog
	Lang    Lang
}

func (l Localizer) T(id string) string {
	return l.Catalog.T(l.Lang, id)
}

func (l Localizer) Tf(id string, data map[string]interface{}) string {
	return l.Catalog.Tf(l.Lang, id, data)
}
