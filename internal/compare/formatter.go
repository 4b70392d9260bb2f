package compare

import (
	"fmt"
	"sort"
	"strings"
)

// Formatter renders a comparison set
type Formatter interface {
	Name() string
	Format(compSet *ComparisonSet) (string, error)
}

var formatAliases = map[string]func() Formatter{
	"table":    func() Formatter { return &TableFormatter{} },
	"console":  func() Formatter { return &TableFormatter{} },
	"csv":      func() Formatter { return &CSVFormatter{} },
	"json":     func() Formatter { return &JSONFormatter{Pretty: true} },
	"markdown": func() Formatter { return &MarkdownFormatter{} },
	"md":       func() Formatter { return &MarkdownFormatter{} },
	"html":     func() Formatter { return &HTMLFormatter{} },
}

// FormatterByName returns the formatter registered under name or an alias
func FormatterByName(name string) (Formatter, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f(), nil
}

// FormatNames lists accepted format names, sorted
func FormatNames() []string {
	names := make([]string, 0, len(formatAliases))
	for n := range formatAliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
