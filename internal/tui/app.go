package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Taishi66/folio-tui/internal/boundary"
	"github.com/Taishi66/folio-tui/internal/cache"
	"github.com/Taishi66/folio-tui/internal/config"
	"github.com/Taishi66/folio-tui/internal/domain"
	"github.com/Taishi66/folio-tui/internal/errstate"
	"github.com/Taishi66/folio-tui/internal/report"
)

// --- Views ---

type View int

const (
	ViewProjects View = iota
	ViewBlog
	ViewStats
	ViewProjectDetail
	ViewBlogPost
	viewCount
)

func (v View) String() string {
	switch v {
	case ViewProjects:
		return "PROJECTS"
	case ViewBlog:
		return "BLOG"
	case ViewStats:
		return "STATS"
	case ViewProjectDetail:
		return "PROJECT"
	case ViewBlogPost:
		return "POST"
	default:
		return ""
	}
}

// title is the user-facing name of the view.
func (v View) title() string {
	switch v {
	case ViewProjects:
		return "项目列表"
	case ViewBlog:
		return "博客"
	case ViewStats:
		return "统计"
	case ViewProjectDetail:
		return "项目详情"
	case ViewBlogPost:
		return "文章"
	default:
		return "页面"
	}
}

func (v View) isDetail() bool {
	return v == ViewProjectDetail || v == ViewBlogPost
}

// --- Messages ---

type projectsLoadedMsg struct{ items []domain.Project }
type projectLoadedMsg struct{ project domain.Project }
type postsLoadedMsg struct{ items []domain.BlogPost }
type postLoadedMsg struct{ post domain.BlogPost }
type statsLoadedMsg struct{ stats domain.Stats }
type apiErrMsg struct {
	view View
	err  *domain.APIError
}
type cacheClearedMsg struct{}

// resultMsg carries a message produced by a background load.
type resultMsg struct{ msg tea.Msg }

// ConfigReloadedMsg is sent when the config file changed on disk.
type ConfigReloadedMsg struct{ Config *config.AppConfig }

// --- Model ---

type Model struct {
	gw       *cache.CachedGateway
	cfg      *config.AppConfig
	logger   *zap.Logger
	reporter *report.Reporter
	boundary *boundary.Boundary
	ctx      context.Context

	// Background loads report here; listenResults re-arms after each one.
	results chan tea.Msg
	slots   [viewCount]*errstate.Async
	loaded  [viewCount]bool

	// Views
	view     View
	prevView View

	// Data
	projects    []domain.Project
	project     domain.Project
	detailSlug  string
	posts       []domain.BlogPost
	post        domain.BlogPost
	postSlug    string
	stats       domain.Stats
	detailLines []string
	scroll      int
	markdown    *markdownRenderer

	// UI state
	cursor  int
	width   int
	height  int
	toast   toast
	confirm confirmState
	spinner spinner.Model

	// Filter
	filter    textinput.Model
	filtering bool

	// Open-by-ID prompt
	prompt     textinput.Model
	prompting  bool
	fromPrompt bool
	form       *errstate.FieldErrors

	// Sort
	sortState map[View]SortState
}

func NewModel(gw *cache.CachedGateway, cfg *config.AppConfig, logger *zap.Logger, reporter *report.Reporter) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	hopts := errstate.Options{Logger: logger, Dev: cfg.IsDev()}
	bopts := boundary.Options{Logger: logger, Dev: cfg.IsDev()}
	if reporter != nil {
		hopts.Reporter = reporter
		bopts.Reporter = reporter
	}

	var slots [viewCount]*errstate.Async
	for i := range slots {
		var aopts []errstate.AsyncOption
		if View(i).isDetail() {
			// Opening B while A is still loading must not show A.
			aopts = append(aopts, errstate.LatestOnly())
		}
		slots[i] = errstate.NewAsync(errstate.NewHandler(hopts), aopts...)
	}

	fi := textinput.New()
	fi.Placeholder = "筛选..."
	fi.CharLimit = 64
	fi.Width = 30

	pi := textinput.New()
	pi.Placeholder = "项目ID"
	pi.CharLimit = 128
	pi.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		gw:        gw,
		cfg:       cfg,
		logger:    logger,
		reporter:  reporter,
		boundary:  boundary.New(bopts),
		ctx:       context.Background(),
		results:   make(chan tea.Msg, 32),
		slots:     slots,
		view:      ViewProjects,
		prevView:  ViewProjects,
		filter:    fi,
		prompt:    pi,
		form:      errstate.NewFieldErrors(errstate.NewHandler(hopts)),
		spinner:   sp,
		sortState: make(map[View]SortState),
		markdown:  newMarkdownRenderer(),
	}
}

func (m Model) Init() tea.Cmd {
	m.reporter.SetRoute(m.route())
	return tea.Batch(listenResults(m.results), m.spinner.Tick, m.loadCmd(m.view))
}

func listenResults(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{msg: <-ch}
	}
}

func (m Model) dev() bool { return m.cfg.IsDev() }

func (m Model) locale() domain.Locale { return m.cfg.LocaleValue() }

// --- Update ---

// Update runs the real update behind the panic boundary. A panic leaves
// the previous model in place and switches to the crash screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var rearm tea.Cmd
	if r, ok := msg.(resultMsg); ok {
		rearm = listenResults(m.results)
		msg = r.msg
	}

	if m.boundary.Tripped() {
		next, cmd := m.updateCrashed(msg)
		return next, batch(rearm, cmd)
	}

	var next tea.Model = m
	var cmd tea.Cmd
	if m.boundary.Guard("update:"+m.route(), func() { next, cmd = m.update(msg) }) {
		return m, rearm
	}
	return next, batch(rearm, cmd)
}

func batch(a, b tea.Cmd) tea.Cmd {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return tea.Batch(a, b)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderDetail()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case projectsLoadedMsg:
		m.projects = msg.items
		m.markLoaded(ViewProjects)
		return m, nil

	case projectLoadedMsg:
		m.project = msg.project
		m.markLoaded(ViewProjectDetail)
		m.renderDetail()
		return m, nil

	case postsLoadedMsg:
		m.posts = msg.items
		m.markLoaded(ViewBlog)
		return m, nil

	case postLoadedMsg:
		m.post = msg.post
		m.markLoaded(ViewBlogPost)
		m.renderDetail()
		return m, nil

	case statsLoadedMsg:
		m.stats = msg.stats
		m.markLoaded(ViewStats)
		return m, nil

	case apiErrMsg:
		return m.handleAPIError(msg)

	case cacheClearedMsg:
		m.toast = newToast("缓存已清除", toastSuccess)
		return m, tea.Batch(scheduleToastClear(m.toast.id), m.loadCmd(m.view))

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.cfg.Locale = msg.Config.Locale
		}
		m.toast = newToast("配置已重新加载", toastInfo)
		return m, scheduleToastClear(m.toast.id)

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) markLoaded(v View) {
	m.loaded[v] = true
	if m.toast.err != nil && m.toast.source == v {
		m.toast = toast{}
	}
	if m.view == v {
		m.cursor = min(m.cursor, max(m.listLen()-1, 0))
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirm dialog captures all input
	if m.confirm.isActive() {
		cmd, _ := m.confirm.update(msg)
		return m, cmd
	}

	if m.prompting {
		return m.handlePromptInput(msg)
	}

	if m.filtering {
		return m.handleFilterInput(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		if m.view.isDetail() && msg.String() == "q" {
			return m.back()
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Escape):
		if m.toast.isActive() {
			m.toast = toast{}
			return m, nil
		}
		if m.view.isDetail() {
			return m.back()
		}
		return m, nil

	// Tab switching
	case key.Matches(msg, keys.Tab1):
		return m.switchView(ViewProjects)
	case key.Matches(msg, keys.Tab2):
		return m.switchView(ViewBlog)
	case key.Matches(msg, keys.Tab3):
		return m.switchView(ViewStats)
	case key.Matches(msg, keys.TabNext):
		next := ViewProjects
		if !m.view.isDetail() {
			next = (m.view + 1) % 3 // cycle through Projects/Blog/Stats
		}
		return m.switchView(next)

	case key.Matches(msg, keys.Filter):
		if m.view == ViewProjects || m.view == ViewBlog {
			m.filtering = true
			m.filter.SetValue("")
			m.filter.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Retry):
		return m.retry()

	case key.Matches(msg, keys.Home):
		return m.switchView(ViewProjects)

	case key.Matches(msg, keys.Reload):
		m.gw.Invalidate()
		return m, m.loadCmd(m.view)

	case key.Matches(msg, keys.Open):
		if m.view == ViewProjects {
			m.prompt.SetValue("")
			m.form.ClearAll()
			return m.openPrompt()
		}

	case key.Matches(msg, keys.Sort):
		if m.view == ViewProjects || m.view == ViewBlog {
			return m.cycleSort()
		}

	case key.Matches(msg, keys.Copy):
		return m.copyLink()

	case key.Matches(msg, keys.ClearCache):
		gw := m.gw
		m.confirm.activate("清除缓存", "(项目/博客/统计)", func() tea.Msg {
			gw.Invalidate()
			return cacheClearedMsg{}
		})
		return m, nil

	case key.Matches(msg, keys.Crash):
		if m.dev() {
			panic("错误边界测试: 手动触发的错误")
		}

	// Navigation
	case key.Matches(msg, keys.Down):
		m.move(1)
	case key.Matches(msg, keys.Up):
		m.move(-1)
	case key.Matches(msg, keys.PageDown):
		m.move(20)
	case key.Matches(msg, keys.PageUp):
		m.move(-20)
	case key.Matches(msg, keys.Top):
		m.move(-1 << 30)
	case key.Matches(msg, keys.Bottom):
		m.move(1 << 30)

	case key.Matches(msg, keys.Enter):
		return m.handleEnter()
	}

	return m, nil
}

// move shifts the cursor in lists and the scroll offset in detail views.
func (m *Model) move(delta int) {
	if m.view.isDetail() {
		maxOff := max(len(m.detailLines)-m.contentHeight(), 0)
		m.scroll = min(max(m.scroll+delta, 0), maxOff)
		return
	}
	maxIdx := max(m.listLen()-1, 0)
	m.cursor = min(max(m.cursor+delta, 0), maxIdx)
}

// --- Key Handlers ---

func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		if msg.String() == "esc" {
			m.filter.SetValue("")
		}
		m.cursor = 0
		return m, nil
	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.cursor = 0
		return m, cmd
	}
}

func (m Model) openPrompt() (tea.Model, tea.Cmd) {
	m.prompting = true
	m.prompt.Focus()
	return m, textinput.Blink
}

func validateSlug(slug string) string {
	switch {
	case slug == "":
		return "项目ID不能为空"
	case strings.ContainsAny(slug, " \t/"):
		return "项目ID不能包含空格或斜杠"
	}
	return ""
}

func (m Model) handlePromptInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.prompt.Blur()
		m.prompt.SetValue("")
		m.form.ClearAll()
		return m, nil
	case "enter":
		slug := strings.TrimSpace(m.prompt.Value())
		m.form.ClearAll()
		if problem := validateSlug(slug); problem != "" {
			m.form.SetField("slug", problem)
			return m, nil
		}
		m.prompting = false
		m.prompt.Blur()
		next, cmd := m.openProject(slug)
		next.fromPrompt = true
		return next, cmd
	default:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		m.form.ClearField("slug")
		return m, cmd
	}
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewProjects:
		items := m.filteredProjects()
		if m.cursor < len(items) {
			return m.openProject(items[m.cursor].ID)
		}
	case ViewBlog:
		items := m.filteredPosts()
		if m.cursor < len(items) {
			return m.openPost(items[m.cursor].Slug)
		}
	}
	return m, nil
}

func (m Model) openProject(slug string) (Model, tea.Cmd) {
	m.prevView = ViewProjects
	m.view = ViewProjectDetail
	m.detailSlug = slug
	m.fromPrompt = false
	return m.openDetail()
}

func (m Model) openPost(slug string) (Model, tea.Cmd) {
	m.prevView = ViewBlog
	m.view = ViewBlogPost
	m.postSlug = slug
	return m.openDetail()
}

func (m Model) openDetail() (Model, tea.Cmd) {
	m.loaded[m.view] = false
	m.slots[m.view].ClearError()
	m.detailLines = nil
	m.scroll = 0
	m.reporter.SetRoute(m.route())
	return m, m.loadCmd(m.view)
}

func (m Model) back() (tea.Model, tea.Cmd) {
	m.view = m.prevView
	m.detailLines = nil
	m.scroll = 0
	m.reporter.SetRoute(m.route())
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.view = v
	m.cursor = 0
	m.scroll = 0
	m.filter.SetValue("")
	m.filtering = false
	m.reporter.SetRoute(m.route())
	m.logger.Debug("switch view", zap.String("route", m.route()))
	return m, m.loadCmd(v)
}

// retry re-runs the failed operation behind the visible error. Without a
// retryable error it reloads the current view, unless that view is showing
// a page error that offers no [r].
func (m Model) retry() (tea.Model, tea.Cmd) {
	if m.toast.isActive() && m.toast.err != nil {
		if slot := m.slots[m.toast.source]; slot.CanRetry() {
			m.toast = toast{}
			return m, retryCmd(slot)
		}
	}
	if slot := m.slots[m.view]; slot.CanRetry() {
		m.toast = toast{}
		return m, retryCmd(slot)
	}
	if !m.loaded[m.view] && m.slots[m.view].Err() != nil {
		return m, nil
	}
	return m, m.loadCmd(m.view)
}

func retryCmd(slot *errstate.Async) tea.Cmd {
	return func() tea.Msg {
		slot.Retry()
		return nil
	}
}

func (m Model) cycleSort() (tea.Model, tea.Cmd) {
	state := m.sortState[m.view]
	switch m.view {
	case ViewProjects:
		state.Column = NextProjectSort(state.Column)
	case ViewBlog:
		state.Column = NextPostSort(state.Column)
	}
	state.Ascending = true
	if m.sortState == nil {
		m.sortState = make(map[View]SortState)
	}
	m.sortState[m.view] = state
	m.cursor = 0
	return m, nil
}

func (m Model) copyLink() (tea.Model, tea.Cmd) {
	var link string
	switch m.view {
	case ViewProjects:
		items := m.filteredProjects()
		if m.cursor < len(items) {
			link = items[m.cursor].HTMLURL
		}
	case ViewProjectDetail:
		if m.loaded[ViewProjectDetail] {
			link = m.project.HTMLURL
		}
	}
	if link == "" {
		return m, nil
	}
	// Copy to clipboard via OSC52 escape sequence (works in most modern terminals)
	m.toast = newToast(fmt.Sprintf("已复制: %s", link), toastSuccess)
	return m, tea.Batch(
		scheduleToastClear(m.toast.id),
		tea.Printf("%s", boundary.OSC52(link)),
	)
}

// --- Crash screen ---

func (m Model) updateCrashed(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.boundary.Retry()
			return m, nil
		case "h":
			m.boundary.Home()
			m.prevView = ViewProjects
			return m.switchView(ViewProjects)
		case "R":
			m.boundary.Reload()
			m.gw.Invalidate()
			m.resetData()
			return m, m.loadCmd(m.view)
		case "c":
			seq, err := m.boundary.Copy(m.routeURL())
			if err != nil {
				m.toast = newToast("剪贴板不可用，已通过终端复制错误信息", toastInfo)
				return m, tea.Batch(tea.Printf("%s", seq), scheduleToastClear(m.toast.id))
			}
			m.toast = newToast("错误信息已复制到剪贴板", toastSuccess)
			return m, scheduleToastClear(m.toast.id)
		}
	}
	// Background results are dropped while frozen; leaving the crash
	// screen reloads.
	return m, nil
}

func (m *Model) resetData() {
	m.projects = nil
	m.posts = nil
	m.stats = domain.Stats{}
	m.project = domain.Project{}
	m.post = domain.BlogPost{}
	m.detailLines = nil
	m.loaded = [viewCount]bool{}
	m.cursor = 0
	m.scroll = 0
	m.toast = toast{}
}

// --- Error handling ---

func (m Model) handleAPIError(msg apiErrMsg) (tea.Model, tea.Cmd) {
	err := msg.err

	// Field-level problems from the open-by-ID prompt go back to the prompt.
	if msg.view == ViewProjectDetail && m.fromPrompt && err.Kind == domain.ValidationError {
		m.form.HandleValidationError(err)
		if m.form.HasAny() {
			m.view = ViewProjects
			m.prompt.SetValue(m.detailSlug)
			return m.openPrompt()
		}
	}

	// Nothing on screen yet: the view renders a page error from its slot.
	if msg.view == m.view && !m.loaded[msg.view] {
		return m, nil
	}

	sev := domain.SeverityOf(err.Kind)
	autoDismiss := !err.IsRetryable() && sev != domain.SeverityCritical
	m.toast = newErrorToast(err, toastOptions{
		Title:       msg.view.title() + "加载失败",
		Dismissible: true,
		ShowDetails: domain.ShouldShowDetails(err, m.dev()),
		Dev:         m.dev(),
		Locale:      m.locale(),
	}, autoDismiss)
	m.toast.source = msg.view
	if autoDismiss {
		return m, scheduleToastClear(m.toast.id)
	}
	return m, nil
}

// --- Data loading ---

// load runs op on slot in the background. Results and failures come back
// through the results channel.
func load[T any](ctx context.Context, slot *errstate.Async, results chan<- tea.Msg, v View,
	op func(context.Context) (T, error), wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		errstate.Execute(ctx, slot, op,
			errstate.OnSuccess(func(data T) { results <- wrap(data) }),
			errstate.OnError[T](func(err *domain.APIError) { results <- apiErrMsg{view: v, err: err} }),
		)
		return nil
	}
}

func (m Model) loadCmd(v View) tea.Cmd {
	if m.gw == nil {
		return nil
	}
	gw := m.gw
	slot := m.slots[v]

	switch v {
	case ViewProjects:
		return load(m.ctx, slot, m.results, v, gw.ListProjects,
			func(items []domain.Project) tea.Msg { return projectsLoadedMsg{items} })
	case ViewBlog:
		return load(m.ctx, slot, m.results, v, gw.ListBlogPosts,
			func(items []domain.BlogPost) tea.Msg { return postsLoadedMsg{items} })
	case ViewStats:
		return load(m.ctx, slot, m.results, v, gw.GetStats,
			func(s domain.Stats) tea.Msg { return statsLoadedMsg{s} })
	case ViewProjectDetail:
		slug := m.detailSlug
		return load(m.ctx, slot, m.results, v,
			func(ctx context.Context) (domain.Project, error) { return gw.GetProject(ctx, slug) },
			func(p domain.Project) tea.Msg { return projectLoadedMsg{p} })
	case ViewBlogPost:
		slug := m.postSlug
		return load(m.ctx, slot, m.results, v,
			func(ctx context.Context) (domain.BlogPost, error) {
				post, err := gw.GetBlogPost(ctx, slug)
				if err != nil {
					return domain.BlogPost{}, err
				}
				if post == nil {
					return domain.BlogPost{}, domain.NewNotFound("文章")
				}
				return *post, nil
			},
			func(p domain.BlogPost) tea.Msg { return postLoadedMsg{p} })
	}
	return nil
}

// --- Filtering ---

func (m Model) filterText() string {
	return strings.ToLower(m.filter.Value())
}

func (m Model) filteredProjects() []domain.Project {
	f := m.filterText()
	var result []domain.Project
	if f == "" {
		result = m.projects
	} else {
		for _, p := range m.projects {
			if strings.Contains(strings.ToLower(p.Name), f) ||
				strings.Contains(strings.ToLower(p.Description), f) ||
				strings.Contains(strings.ToLower(p.Language), f) ||
				containsFold(p.Topics, f) {
				result = append(result, p)
			}
		}
	}
	return SortProjects(result, m.sortState[ViewProjects])
}

func (m Model) filteredPosts() []domain.BlogPost {
	f := m.filterText()
	var result []domain.BlogPost
	if f == "" {
		result = m.posts
	} else {
		for _, p := range m.posts {
			if strings.Contains(strings.ToLower(p.Title), f) ||
				strings.Contains(strings.ToLower(p.Category), f) ||
				containsFold(p.Tags, f) {
				result = append(result, p)
			}
		}
	}
	return SortPosts(result, m.sortState[ViewBlog])
}

func containsFold(values []string, f string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), f) {
			return true
		}
	}
	return false
}

func (m Model) listLen() int {
	switch m.view {
	case ViewProjects:
		return len(m.filteredProjects())
	case ViewBlog:
		return len(m.filteredPosts())
	default:
		return 0
	}
}

func (m Model) contentHeight() int {
	// header(1) + tabs(1) + blank(1) + col_header(1) + status_bar(1) = 5 lines overhead
	ch := m.height - 6
	if ch < 1 {
		return 1
	}
	return ch
}

func (m *Model) renderDetail() {
	if !m.view.isDetail() || !m.loaded[m.view] || m.width == 0 {
		return
	}
	var md string
	if m.view == ViewProjectDetail {
		md = projectMarkdown(m.project)
	} else {
		md = postMarkdown(m.post)
	}
	m.detailLines = strings.Split(strings.TrimRight(m.markdown.render(md, m.width), "\n"), "\n")
	m.scroll = min(m.scroll, max(len(m.detailLines)-m.contentHeight(), 0))
}

func (m Model) route() string {
	switch m.view {
	case ViewProjectDetail:
		return "project/" + m.detailSlug
	case ViewBlogPost:
		return "blog/" + m.postSlug
	default:
		return strings.ToLower(m.view.String())
	}
}

func (m Model) routeURL() string { return "folio://" + m.route() }

// --- View ---

func (m Model) View() string {
	if m.width == 0 {
		return "加载中..."
	}
	if m.boundary.Tripped() {
		return m.crashView()
	}

	var out string
	if m.boundary.Guard("render:"+m.route(), func() { out = m.render() }) {
		return m.crashView()
	}
	return out
}

func (m Model) crashView() string {
	out := renderCrashScreen(m.boundary, m.width, m.height-1, m.dev())
	if m.toast.isActive() {
		out += m.toast.render()
	}
	return out
}

func (m Model) render() string {
	var b strings.Builder

	b.WriteString(m.renderContextBar())
	b.WriteString("\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if m.dev() {
		b.WriteString(bannerDevStyle.Width(m.width).Render("开发模式 · 错误详情可见 · [!] 触发错误边界"))
		b.WriteString("\n")
	}

	switch {
	case m.confirm.isActive():
		b.WriteString(m.confirm.view())
	case m.prompting:
		b.WriteString(fmt.Sprintf("\n  打开项目: %s\n", m.prompt.View()))
		if inline := renderInlineError(m.form.Field("slug")); inline != "" {
			b.WriteString("  " + inline + "\n")
		}
	default:
		b.WriteString(m.renderContent())
	}

	if m.filtering {
		b.WriteString(fmt.Sprintf("  /%s", m.filter.View()))
		b.WriteString("\n")
	}

	toastText := ""
	if m.toast.isActive() {
		toastText = m.toast.render()
	}

	// Fill remaining space
	lines := strings.Count(b.String(), "\n")
	reserved := 2 + strings.Count(toastText, "\n")
	for i := lines; i < m.height-reserved; i++ {
		b.WriteString("\n")
	}

	if toastText != "" {
		b.WriteString(toastText)
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderContextBar() string {
	title := titleStyle.Render("FOLIO")
	if m.gw == nil {
		return " " + title
	}
	return fmt.Sprintf(" %s  api:%s", title, urlStyle.Render(m.gw.BaseURL()))
}

func (m Model) renderTabs() string {
	tabs := []struct {
		view  View
		key   string
		label string
	}{
		{ViewProjects, "1", "项目"},
		{ViewBlog, "2", "博客"},
		{ViewStats, "3", "统计"},
	}

	active := m.view
	if m.view.isDetail() {
		active = m.prevView
	}
	var parts []string
	for _, t := range tabs {
		label := fmt.Sprintf("[%s] %s", t.key, t.label)
		if active == t.view {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(label))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderContent() string {
	slot := m.slots[m.view]
	if !m.loaded[m.view] {
		if err := slot.Err(); err != nil {
			return renderPageError(err, pageErrorOptions{
				Title:   m.view.title() + "加载失败",
				CanHome: m.view != ViewProjects,
				Dev:     m.dev(),
				Locale:  m.locale(),
			})
		}
		return fmt.Sprintf("\n  %s 加载中...\n", m.spinner.View())
	}

	ch := m.contentHeight()
	switch m.view {
	case ViewProjects:
		return renderProjectList(m.filteredProjects(), m.cursor, m.width, ch, m.sortState[ViewProjects])
	case ViewBlog:
		return renderPostList(m.filteredPosts(), m.cursor, m.width, ch, m.sortState[ViewBlog])
	case ViewStats:
		return renderStats(m.stats, m.width)
	case ViewProjectDetail, ViewBlogPost:
		end := min(m.scroll+ch, len(m.detailLines))
		if m.scroll >= end {
			return ""
		}
		return strings.Join(m.detailLines[m.scroll:end], "\n") + "\n"
	default:
		return ""
	}
}

func (m Model) renderStatusBar() string {
	var helpText string
	switch m.view {
	case ViewProjects:
		helpText = projectHelpKeys()
	case ViewBlog:
		helpText = blogHelpKeys()
	case ViewStats:
		helpText = statsHelpKeys()
	default:
		helpText = detailHelpKeys()
	}

	var itemInfo string
	switch {
	case m.view.isDetail():
		itemInfo = fmt.Sprintf("%d 行", len(m.detailLines))
	case m.view == ViewStats:
		itemInfo = fmt.Sprintf("%d 种语言", len(m.stats.Languages))
	default:
		itemInfo = fmt.Sprintf("%d 项", m.listLen())
	}

	loading := ""
	if m.slots[m.view].IsLoading() {
		loading = " " + m.spinner.View()
	}
	left := fmt.Sprintf(" %s | %s%s", m.view.String(), itemInfo, loading)
	return statusBarStyle.Width(m.width).Render(left + "  " + helpText)
}

// --- Helpers ---

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}
