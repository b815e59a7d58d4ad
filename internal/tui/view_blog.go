package tui

import (
	"fmt"
	"strings"

	"github.com/Taishi66/folio-tui/internal/domain"
)

func renderPostList(posts []domain.BlogPost, cursor, width, maxVisible int, sortState SortState) string {
	if len(posts) == 0 {
		return "  暂无文章\n"
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-44s %-12s %-12s %s",
		"TITLE", "CATEGORY", SortIndicator("DATE", sortState), SortIndicator("VIEWS", sortState))
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(posts) && i < start+maxVisible; i++ {
		p := posts[i]
		title := p.Title
		if p.IsFeatured {
			title = "★ " + title
		}
		line := fmt.Sprintf("  %-44s %-12s %-12s %d",
			truncate(title, 43), truncate(p.Category, 12), shortDate(postDate(p)), p.ViewCount)

		if i == cursor {
			b.WriteString(selectedStyle.Width(width).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func blogHelpKeys() string {
	return "j/k:导航  enter:阅读  s:排序  /:筛选  r:刷新  q:退出"
}
