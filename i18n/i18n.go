// Package i18n holds the static translation table for Persian, English and Kurdish (Sorani).
package i18n

import (
	"time"

	"kolan-weather/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FallbackLanguage is consulted when a key is missing from the active language
const FallbackLanguage = models.LanguageEnglish

// Info describes one supported language
type Info struct {
	Code       models.Language
	Name       string
	NativeName string
	Dir        string // "rtl" or "ltr"
}

// Languages lists the supported languages in display order
var Languages = []Info{
	{Code: models.LanguagePersian, Name: "Persian", NativeName: "فارسی", Dir: "rtl"},
	{Code: models.LanguageEnglish, Name: "English", NativeName: "English", Dir: "ltr"},
	{Code: models.LanguageKurdish, Name: "Kurdish (Sorani)", NativeName: "کوردی سورانی", Dir: "rtl"},
}

// CompassKeys are the translation keys for the eight compass sectors, clockwise from north
var CompassKeys = [8]string{"north", "northEast", "east", "southEast", "south", "southWest", "west", "northWest"}

// T returns the message for key in lang, then in English, then the key itself
func T(lang models.Language, key string) string {
	if msg, ok := translations[lang][key]; ok && msg != "" {
		return msg
	}
	if msg, ok := translations[FallbackLanguage][key]; ok && msg != "" {
		return msg
	}
	return key
}

// Direction returns the text direction of lang
func Direction(lang models.Language) string {
	for _, info := range Languages {
		if info.Code == lang {
			return info.Dir
		}
	}
	return "ltr"
}

// DayName returns the translated weekday name
func DayName(lang models.Language, day time.Weekday) string {
	names, ok := dayNames[lang]
	if !ok {
		names = dayNames[FallbackLanguage]
	}
	return names[day]
}

// MonthName returns the translated month name
func MonthName(lang models.Language, month time.Month) string {
	names, ok := monthNames[lang]
	if !ok {
		names = monthNames[FallbackLanguage]
	}
	return names[month-1]
}

// ParseLanguage maps a BCP 47 tag such as "fa-IR" to a supported language, or fallback
func ParseLanguage(raw string, fallback models.Language) models.Language {
	if raw == "" {
		return fallback
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return fallback
	}
	base, _ := tag.Base()
	lang := models.Language(base.String())
	if !lang.Valid() {
		return fallback
	}
	return lang
}

// Printer formats numbers using the conventions of lang
func Printer(lang models.Language) *message.Printer {
	return message.NewPrinter(language.Make(string(lang)))
}

// LocalizeDigits rewrites ASCII digits in s with the native digits of lang
func LocalizeDigits(lang models.Language, s string) string {
	zero := []rune(Printer(lang).Sprint(0))
	if len(zero) != 1 || zero[0] == '0' {
		return s
	}
	out := []rune(s)
	for i, r := range out {
		if r >= '0' && r <= '9' {
			out[i] = zero[0] + (r - '0')
		}
	}
	return string(out)
}
