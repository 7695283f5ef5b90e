package handler

import (
	"backoffice-service/internal/model"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

var (
	labelLanguages = []language.Tag{language.English, language.Spanish}
	labelMatcher   = language.NewMatcher(labelLanguages)

	statusLabels = map[language.Tag]map[model.OrderStatus]string{
		language.English: {
			model.StatusPending:    "Pending",
			model.StatusProcessing: "Processing",
			model.StatusCompleted:  "Completed",
			model.StatusDeclined:   "Declined",
		},
		language.Spanish: {
			model.StatusPending:    "Pendiente",
			model.StatusProcessing: "Procesando",
			model.StatusCompleted:  "Completado",
			model.StatusDeclined:   "Rechazado",
		},
	}

	defaultLanguage = language.Spanish
)

// SetDefaultLocale chooses the label language used when the request names none
func SetDefaultLocale(locale string) {
	tag, err := language.Parse(locale)
	if err != nil {
		return
	}
	_, idx, conf := labelMatcher.Match(tag)
	if conf != language.No {
		defaultLanguage = labelLanguages[idx]
	}
}

// requestLanguage picks the label language from ?locale= or Accept-Language
func requestLanguage(c echo.Context) language.Tag {
	var tags []language.Tag
	if locale := c.QueryParam("locale"); locale != "" {
		if tag, err := language.Parse(locale); err == nil {
			tags = append(tags, tag)
		}
	}
	if accept := c.Request().Header.Get("Accept-Language"); accept != "" {
		if parsed, _, err := language.ParseAcceptLanguage(accept); err == nil {
			tags = append(tags, parsed...)
		}
	}
	if len(tags) == 0 {
		return defaultLanguage
	}

	_, idx, conf := labelMatcher.Match(tags...)
	if conf == language.No {
		return defaultLanguage
	}
	return labelLanguages[idx]
}

// statusLabel is the display name of status in lang
func statusLabel(lang language.Tag, status model.OrderStatus) string {
	if label, ok := statusLabels[lang][status]; ok {
		return label
	}
	return string(status)
}
