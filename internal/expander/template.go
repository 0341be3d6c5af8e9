// Package expander substitutes template variables in phrase text before it
// is typed or copied.
package expander

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// Sources supplies the values templates draw from. Clipboard is only
// consulted when the text actually contains the {clipboard} token.
type Sources struct {
	Now       func() time.Time
	Clipboard func() (string, error)
}

// SystemSources uses the wall clock and the system clipboard.
func SystemSources() Sources {
	return Sources{
		Now:       time.Now,
		Clipboard: clipboard.ReadAll,
	}
}

// Expand replaces the supported template variables in text:
// {date}, {time}, {datetime}, {day}, {month}, {year}, {clipboard}.
// Unknown braces are left untouched.
func Expand(text string, src Sources) string {
	now := src.Now()

	replacements := []struct{ token, value string }{
		{"{date}", now.Format("2006-01-02")},
		{"{time}", now.Format("15:04")},
		{"{datetime}", now.Format("2006-01-02 15:04")},
		{"{day}", now.Weekday().String()},
		{"{month}", now.Month().String()},
		{"{year}", now.Format("2006")},
	}
	for _, r := range replacements {
		text = strings.ReplaceAll(text, r.token, r.value)
	}

	if strings.Contains(text, "{clipboard}") && src.Clipboard != nil {
		paste, err := src.Clipboard()
		if err != nil {
			paste = ""
		}
		text = strings.ReplaceAll(text, "{clipboard}", paste)
	}

	return text
}
