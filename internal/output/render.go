package output

import (
	"bytes"
	"fmt"
	"html"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts a markdown report to a standalone HTML page
func RenderHTML(title, md string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: .3rem .7rem; }
blockquote { border-left: 4px solid #d9822b; margin: 1rem 0; padding: .2rem 1rem; background: #fff7ed; }
</style>
</head>
<body>
`, html.EscapeString(title))
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// RenderTerminal renders markdown for a terminal. style is a glamour style
// name such as "dark", "light" or "notty"; empty picks one from the terminal.
func RenderTerminal(md string, width int, style string) (string, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
