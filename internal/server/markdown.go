package server

import (
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderInlineMarkdown renders a single-line task name. Raw HTML is dropped and
// only safe links survive.
func renderInlineMarkdown(s string) template.HTML {
	if strings.TrimSpace(s) == "" {
		return template.HTML(template.HTMLEscapeString(s))
	}
	// parser is single-use
	p := parser.NewWithExtensions(parser.NoIntraEmphasis | parser.Strikethrough | parser.Autolink)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.SkipHTML | html.Safelink | html.NofollowLinks | html.NoreferrerLinks | html.HrefTargetBlank,
	})
	out := strings.TrimSpace(string(markdown.ToHTML([]byte(s), p, renderer)))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}
