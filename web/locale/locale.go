// Package locale localizes user-facing messages (en, uk, ru).
package locale

import (
	"embed"
	"io/fs"
	"strings"

	"pinboard/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

var i18nBundle *i18n.Bundle

// SupportedLanguages are the languages the board ships translations for.
var SupportedLanguages = []string{"en", "uk", "ru"}

func InitLocalizer(i18nFS embed.FS) error {
	i18nBundle = i18n.NewBundle(language.English)
	i18nBundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return parseTranslationFiles(i18nFS, i18nBundle)
}

// IsSupported reports whether lang is one of the shipped languages.
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// I18n localizes key with the given localizer, substituting "Name==value"
// params into the message template.
func I18n(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		return key
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, "==", 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		logger.Errorf("failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}

// Localize localizes key using the localizer the middleware attached to the
// request.
func Localize(c *gin.Context, key string, params ...string) string {
	if obj, ok := c.Get("localizer"); ok {
		if localizer, ok := obj.(*i18n.Localizer); ok {
			return I18n(localizer, key, params...)
		}
	}
	return key
}

// LocalizerMiddleware picks the request language from the session first and
// the Accept-Language header second, and exposes a localizer through the gin
// context.
func LocalizerMiddleware(sessionLang func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := sessionLang(c)
		if lang == "" {
			lang = c.GetHeader("Accept-Language")
		}

		localizer := i18n.NewLocalizer(i18nBundle, lang)
		c.Set("localizer", localizer)
		c.Next()
	}
}

func parseTranslationFiles(i18nFS embed.FS, bundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			data, err := i18nFS.ReadFile(path)
			if err != nil {
				return err
			}
			_, err = bundle.ParseMessageFileBytes(data, path)
			return err
		})
}
