package tui

import (
	"fmt"
	"strings"

	"github.com/Taishi66/folio-tui/internal/boundary"
)

// renderCrashScreen is shown instead of every view while the boundary
// holds a recovered panic.
func renderCrashScreen(b *boundary.Boundary, width, height int, dev bool) string {
	f := b.Failure()
	if f == nil {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("页面出现错误"))
	s.WriteString("\n\n")
	s.WriteString("抱歉，页面遇到了意外错误。我们已经记录了这个问题。\n\n")
	fmt.Fprintf(&s, "错误ID: %s\n", f.ID)
	if dev {
		fmt.Fprintf(&s, "错误消息: %s\n", f.Message)
		fmt.Fprintf(&s, "组件: %s\n", f.Component)
	}
	s.WriteString("\n")

	var actions []string
	if b.CanRetry() {
		actions = append(actions, fmt.Sprintf("[r] 重试 (%d 次机会)", b.RetriesLeft()))
	}
	actions = append(actions, "[h] 返回首页", "[R] 刷新", "[c] 复制错误信息", "[q] 退出")
	s.WriteString(strings.Join(actions, "  "))
	s.WriteString("\n\n")
	s.WriteString(mutedStyle.Render("如果问题持续出现，请联系技术支持或刷新重试"))

	box := crashBoxStyle
	if width > 8 {
		box = box.Width(min(width-4, 90))
	}
	out := "\n" + box.Render(s.String()) + "\n"

	lines := strings.Count(out, "\n")
	for i := lines; i < height; i++ {
		out += "\n"
	}
	return out
}
