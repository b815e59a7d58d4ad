package tui

import (
	"fmt"
	"strings"

	"github.com/Taishi66/folio-tui/internal/domain"
)

func renderProjectList(projects []domain.Project, cursor, width, maxVisible int, sortState SortState) string {
	if len(projects) == 0 {
		return "  暂无项目\n"
	}

	var b strings.Builder

	wide := width >= 100
	if wide {
		header := fmt.Sprintf("  %-36s %-12s %-9s %-7s %s",
			SortIndicator("NAME", sortState), "LANGUAGE", SortIndicator("STARS", sortState), "FORKS", SortIndicator("UPDATED", sortState))
		b.WriteString(headerStyle.Render(header))
	} else {
		header := fmt.Sprintf("  %-30s %-12s %s", SortIndicator("NAME", sortState), "LANGUAGE", SortIndicator("STARS", sortState))
		b.WriteString(headerStyle.Render(header))
	}
	b.WriteString("\n")

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(projects) && i < start+maxVisible; i++ {
		p := projects[i]
		lang := languageStyle(p.Language).Render(fmt.Sprintf("%-12s", truncate(p.Language, 12)))
		var line string
		if wide {
			line = fmt.Sprintf("  %-36s %s %-9d %-7d %s",
				truncate(p.Name, 35), lang, p.Stars, p.Forks, shortDate(p.UpdatedAt))
		} else {
			line = fmt.Sprintf("  %-30s %s %d",
				truncate(p.Name, 29), lang, p.Stars)
		}

		if i == cursor {
			b.WriteString(selectedStyle.Width(width).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func projectHelpKeys() string {
	return "j/k:导航  enter:详情  o:按ID打开  s:排序  c:复制链接  /:筛选  r:刷新  X:清除缓存  q:退出"
}

func detailHelpKeys() string {
	return "j/k:滚动  c:复制链接  r:刷新  h:首页  esc:返回  q:返回"
}
