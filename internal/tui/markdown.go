package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Taishi66/folio-tui/internal/domain"
)

// markdownRenderer keeps one glamour renderer and rebuilds it only when the
// wrap width changes. The Model holds it by pointer so copies share it.
type markdownRenderer struct {
	wrap int
	r    *glamour.TermRenderer
}

func newMarkdownRenderer() *markdownRenderer { return &markdownRenderer{} }

// render renders md for a terminal of the given width. On any renderer
// failure the raw Markdown is returned.
func (mr *markdownRenderer) render(md string, width int) string {
	if mr == nil {
		mr = newMarkdownRenderer()
	}
	wrap := max(width-4, 20)
	if mr.r == nil || mr.wrap != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return md
		}
		mr.r, mr.wrap = r, wrap
	}
	out, err := mr.r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func projectMarkdown(p domain.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	if p.Language != "" {
		fmt.Fprintf(&b, "- **语言**: %s\n", p.Language)
	}
	fmt.Fprintf(&b, "- **Stars**: %d · **Forks**: %d\n", p.Stars, p.Forks)
	if p.HTMLURL != "" {
		fmt.Fprintf(&b, "- **仓库**: %s\n", p.HTMLURL)
	}
	if p.Homepage != "" {
		fmt.Fprintf(&b, "- **主页**: %s\n", p.Homepage)
	}
	if len(p.Topics) > 0 {
		tags := make([]string, len(p.Topics))
		for i, t := range p.Topics {
			tags[i] = "`" + t + "`"
		}
		fmt.Fprintf(&b, "- **标签**: %s\n", strings.Join(tags, " "))
	}
	if p.UpdatedAt != "" {
		fmt.Fprintf(&b, "- **更新于**: %s\n", shortDate(p.UpdatedAt))
	}
	return b.String()
}

func postMarkdown(p domain.BlogPost) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	var meta []string
	if p.Category != "" {
		meta = append(meta, p.Category)
	}
	if d := postDate(p); d != "" {
		meta = append(meta, shortDate(d))
	}
	meta = append(meta, fmt.Sprintf("%d 次阅读", p.ViewCount))
	fmt.Fprintf(&b, "_%s_\n\n", strings.Join(meta, " · "))

	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "标签: %s\n\n", strings.Join(p.Tags, ", "))
	}
	b.WriteString(p.Content)
	b.WriteString("\n")
	return b.String()
}

// shortDate keeps the date part of an RFC 3339 timestamp.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
