package views

import (
	"html/template"
	"regexp"
	"time"

	"github.com/alimgiray/devfinder/web"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// emojiPolicy keeps the markup GitHub uses for status emoji and nothing else.
var emojiPolicy = newEmojiPolicy()

func newEmojiPolicy() *bluemonday.Policy {
	httpsURL := regexp.MustCompile(`^https://[^\s"'<>]+$`)
	word := regexp.MustCompile(`^[\w\- ]+$`)

	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span", "g-emoji")
	p.AllowAttrs("class", "alias").Matching(word).OnElements("g-emoji")
	p.AllowAttrs("fallback-src").Matching(httpsURL).OnElements("g-emoji")
	p.AllowAttrs("src").Matching(httpsURL).OnElements("img")
	p.AllowAttrs("alt", "class").OnElements("img")
	p.AllowAttrs("height", "width").Matching(bluemonday.Integer).OnElements("img")
	return p
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"number":  FormatNumber,
		"date":    FormatDate,
		"isoDate": FormatISODate,
		"emoji":   SanitizeEmoji,
	}
}

// Load parses the embedded templates.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(web.Templates,
		"templates/layouts/*.html",
		"templates/*.html",
	)
}

// FormatNumber renders n with en-US thousands separators.
func FormatNumber(n int) string {
	return message.NewPrinter(language.AmericanEnglish).Sprintf("%d", n)
}

func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func FormatISODate(t time.Time) string {
	return t.Format(time.RFC3339)
}

// SanitizeEmoji strips status emoji markup down to the allowed subset and marks it safe.
func SanitizeEmoji(raw string) template.HTML {
	return template.HTML(emojiPolicy.Sanitize(raw))
}
