package tui

import (
	"fmt"
	"strings"

	"github.com/Taishi66/folio-tui/internal/domain"
)

const statsBarWidth = 30

func renderStats(s domain.Stats, width int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("  概览"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  项目总数   %d\n", s.TotalProjects)
	fmt.Fprintf(&b, "  提交总数   %d\n", s.TotalCommits)
	fmt.Fprintf(&b, "  代码变更   %s / %s\n",
		toastSuccessStyle.Render(fmt.Sprintf("+%d", s.TotalAdditions)),
		inlineErrorStyle.Render(fmt.Sprintf("-%d", s.TotalDeletions)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("  语言分布"))
	b.WriteString("\n")
	if len(s.Languages) == 0 {
		b.WriteString("  暂无数据\n")
		return b.String()
	}

	barWidth := statsBarWidth
	if width > 0 && width < 60 {
		barWidth = 10
	}
	for _, l := range s.Languages {
		filled := int(l.Percentage / 100 * float64(barWidth))
		if filled > barWidth {
			filled = barWidth
		}
		if filled < 0 {
			filled = 0
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		fmt.Fprintf(&b, "  %-12s %s %5.1f%% (%d)\n",
			truncate(l.Name, 12), languageStyle(l.Name).Render(bar), l.Percentage, l.Count)
	}
	return b.String()
}

func statsHelpKeys() string {
	return "r:刷新  tab:下一个视图  q:退出"
}
