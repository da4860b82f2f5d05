package report

import (
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"regexp"
	"strings"
	"time"
)

// TablePlaceholder is the template placeholder replaced with the report rows.
const TablePlaceholder = "table_json"

const nameDateLayout = "2006.01.02"

// placeholderRegexp matches "$$", "$name" and "${name}". Any other "$" is
// left untouched.
var placeholderRegexp = regexp.MustCompile(`\$(?:(\$)|([_a-zA-Z][_a-zA-Z0-9]*)|\{([_a-zA-Z][_a-zA-Z0-9]*)\})`)

// Name gets the report file name for a log dated date.
func Name(date time.Time) string {
	return "report-" + date.Format(nameDateLayout) + ".html"
}

// ReadTemplate reads the report template at path.
func ReadTemplate(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read report template: %w", err)
	}
	return string(content), nil
}

// Render substitutes rows, encoded as a JSON array, for $table_json in tmpl.
func Render(tmpl string, rows []Row) (string, error) {
	if rows == nil {
		rows = []Row{}
	}
	table, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("unable to encode report rows: %w", err)
	}
	return Substitute(tmpl, map[string]string{TablePlaceholder: string(table)}), nil
}

// Substitute replaces $name and ${name} placeholders in tmpl with their value
// in values and "$$" with "$". Placeholders missing from values, and a "$"
// not followed by a valid name, are kept as written.
func Substitute(tmpl string, values map[string]string) string {
	matches := placeholderRegexp.FindAllStringSubmatchIndex(tmpl, -1)
	if len(matches) == 0 {
		return tmpl
	}

	var sb strings.Builder
	sb.Grow(len(tmpl))
	last := 0
	for _, m := range matches {
		sb.WriteString(tmpl[last:m[0]])
		last = m[1]

		var name string
		switch {
		case m[2] >= 0:
			sb.WriteByte('$')
			continue
		case m[4] >= 0:
			name = tmpl[m[4]:m[5]]
		default:
			name = tmpl[m[6]:m[7]]
		}

		if value, ok := values[name]; ok {
			sb.WriteString(value)
		} else {
			sb.WriteString(tmpl[m[0]:m[1]])
		}
	}
	sb.WriteString(tmpl[last:])
	return sb.String()
}
