package justify

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// GetI18n returns an initialized internationalization bundle with embedded
// locales, for rendering Problem messages in something other than the
// built-in English fallback.
func GetI18n() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "ja"),
	)

	err := bundle.LoadFS(localesFS, "locales/*.json")

	return bundle, err
}
