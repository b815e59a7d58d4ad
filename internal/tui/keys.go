package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Enter      key.Binding
	Escape     key.Binding
	Filter     key.Binding
	Retry      key.Binding
	Home       key.Binding
	Reload     key.Binding
	Open       key.Binding
	Sort       key.Binding
	Copy       key.Binding
	ClearCache key.Binding
	Crash      key.Binding
	Tab1       key.Binding
	Tab2       key.Binding
	Tab3       key.Binding
	TabNext    key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "上移")),
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "下移")),
	Top:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "顶部")),
	Bottom:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "底部")),
	PageUp:     key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("C-u", "上一页")),
	PageDown:   key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("C-d", "下一页")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "打开")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "返回")),
	Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "筛选")),
	Retry:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "重试/刷新")),
	Home:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "首页")),
	Reload:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "强制刷新")),
	Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "按ID打开")),
	Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "排序")),
	Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "复制链接")),
	ClearCache: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "清除缓存")),
	Crash:      key.NewBinding(key.WithKeys("!"), key.WithHelp("!", "触发错误边界")),
	Tab1:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "项目")),
	Tab2:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "博客")),
	Tab3:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "统计")),
	TabNext:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "下一个视图")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "退出")),
}
