package diagfmt

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"theoremc/internal/diag"
)

// template is a translated message. Args names the diagnostic arguments
// feeding %[1]s, %[2]s and so on.
type template struct {
	args []string
	text string
}

// English is the fallback: diagnostics already carry English text.
var supported = []language.Tag{language.English, language.Russian}

var translations = map[language.Tag]map[diag.Code]template{
	language.Russian: {
		diag.SchemaParseFailure:      {[]string{"reason"}, "не удалось разобрать документ: %[1]s"},
		diag.SchemaInvalidIdentifier: {[]string{"identifier", "reason"}, "недопустимый идентификатор '%[1]s': %[2]s"},
		diag.SchemaValidationFailure: {[]string{"theorem", "check", "reason"}, "теорема '%[1]s' не прошла проверку %[2]s: %[3]s"},
		diag.MangleCollision:         {[]string{"count", "symbols"}, "конфликтов имён: %[1]s (%[2]s)"},
		diag.IdentityAliasCycle:      {[]string{"cycle"}, "граф псевдонимов содержит цикл: %[1]s"},
		diag.IdentityAliasAmbiguous:  {[]string{"count"}, "неоднозначных переименований: %[1]s"},
		diag.IdentityAliasInvalid:    {[]string{"reason"}, "некорректный файл псевдонимов: %[1]s"},
		diag.IOReadFailure:           {[]string{"path"}, "не удалось прочитать файл %[1]s"},
	},
}

var (
	messages = buildCatalog()
	matcher  = language.NewMatcher(supported)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, codes := range translations {
		for code, t := range codes {
			if err := b.SetString(tag, code.ID(), t.text); err != nil {
				panic(fmt.Errorf("catalog %s/%s: %w", tag, code.ID(), err))
			}
		}
	}
	return b
}

type catalogLocalizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a localizer for lang, a BCP 47 tag. It returns nil
// for English, an empty tag, or a language without translations, in which
// case the diagnostics' own messages are shown.
func NewLocalizer(lang string) (diag.Localizer, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil, nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", lang, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No || supported[idx] == language.English {
		return nil, nil
	}
	matched := supported[idx]
	return &catalogLocalizer{
		tag:     matched,
		printer: message.NewPrinter(matched, message.Catalog(messages)),
	}, nil
}

// Localize fills the template for code from args. Codes without a
// translation, or diagnostics missing one of the arguments, fall back.
func (l *catalogLocalizer) Localize(code diag.Code, args []diag.Arg) (string, bool) {
	t, ok := translations[l.tag][code]
	if !ok {
		return "", false
	}
	values := make([]any, 0, len(t.args))
	for _, name := range t.args {
		v, found := lookupArg(args, name)
		if !found {
			return "", false
		}
		values = append(values, v)
	}
	return l.printer.Sprintf(code.ID(), values...), true
}

func lookupArg(args []diag.Arg, name string) (string, bool) {
	for _, a := range args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
