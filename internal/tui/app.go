package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/zxzuuup/htsmail/internal/clipboard"
	"github.com/zxzuuup/htsmail/internal/processor"
	"github.com/zxzuuup/htsmail/internal/session"
)

// Runner generates one batch of codes into a saved document.
type Runner interface {
	Run(codes []string, logf processor.LogFunc) ([]processor.Result, error)
}

// OpenFunc loads the input files, reporting progress through logf.
type OpenFunc func(logf processor.LogFunc) (Runner, error)

// Focus identifies which pane receives key presses.
type Focus int

const (
	FocusInput Focus = iota
	FocusHistory
)

// FilesLoadedMsg is sent once the input files have been read.
type FilesLoadedMsg struct {
	Runner Runner
	Logs   []string
	Err    error
}

// LogMsg carries one progress line from a running batch.
type LogMsg string

// BatchDoneMsg is sent when a batch finishes.
type BatchDoneMsg struct {
	Results []processor.Result
	Err     error
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// waitForEvent delivers the next message from a running batch.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// AppModel is the main TUI model
type AppModel struct {
	open       OpenFunc
	runner     Runner
	outputFile string
	copy       func(string) error

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	focus   Focus
	input   textinput.Model
	content viewport.Model
	logView viewport.Model

	logs     []string
	history  []processor.Result
	selected int
	running  bool
	events   chan tea.Msg

	loadErr error
	status  string
	copied  bool

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI. open is called once at start-up; batches are
// saved to outputFile.
func NewApp(open OpenFunc, outputFile string) AppModel {
	ti := textinput.New()
	ti.Placeholder = "输入 HTS 编码，多个编码用空格分隔..."
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	return AppModel{
		open:         open,
		outputFile:   outputFile,
		copy:         clipboard.Write,
		sidebarWidth: 24,
		input:        ti,
		content:      viewport.New(60, 10),
		logView:      viewport.New(60, 6),
	}
}

// Init starts loading the input files.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadFiles())
}

func (m AppModel) loadFiles() tea.Cmd {
	open := m.open
	return func() tea.Msg {
		var logs []string
		r, err := open(func(s string) { logs = append(logs, s) })
		return FilesLoadedMsg{Runner: r, Logs: logs, Err: err}
	}
}

// startBatch runs codes on a background goroutine and streams its log
// lines back as LogMsg, ending with BatchDoneMsg.
func (m *AppModel) startBatch(codes []string) tea.Cmd {
	events := make(chan tea.Msg, 64)
	m.events = events
	m.running = true

	runner := m.runner
	go func() {
		defer close(events)
		results, err := runner.Run(codes, func(s string) { events <- LogMsg(s) })
		events <- BatchDoneMsg{Results: results, Err: err}
	}()
	return waitForEvent(events)
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case FilesLoadedMsg:
		for _, l := range msg.Logs {
			m.appendLog(l)
		}
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.runner = msg.Runner
		}
		return m, nil

	case LogMsg:
		m.appendLog(string(msg))
		return m, waitForEvent(m.events)

	case BatchDoneMsg:
		m.running = false
		m.events = nil
		if msg.Err != nil {
			m.status = msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("已保存 %s", m.outputFile)
		}
		if len(msg.Results) > 0 {
			m.history = append(m.history, msg.Results...)
			m.selected = len(m.history) - 1
			m.showSelected()
		}
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == FocusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay - any key closes it
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.toggleFocus()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}

	if m.focus == FocusInput {
		switch msg.String() {
		case "enter":
			return m.submit()
		case "esc":
			m.toggleFocus()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "j", "down":
		if m.selected < len(m.history)-1 {
			m.selected++
			m.showSelected()
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
			m.showSelected()
		}
	case "y":
		if len(m.history) == 0 {
			return m, nil
		}
		text := session.DisplayText(m.history[m.selected])
		if err := m.copy(text); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.copied = true
		return m, clearCopiedAfter(2 * time.Second)
	}
	return m, nil
}

func (m *AppModel) toggleFocus() {
	if m.focus == FocusInput {
		m.focus = FocusHistory
		m.input.Blur()
		return
	}
	m.focus = FocusInput
	m.input.Focus()
}

func (m AppModel) submit() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	if m.runner == nil {
		m.appendLog("❌ 请先确保 HTS 数据库和邮件模板已成功加载。")
		return m, nil
	}

	codes := processor.SplitCodes(m.input.Value())
	if len(codes) == 0 {
		m.status = "请输入至少一个编码"
		return m, nil
	}

	m.input.Reset()
	m.status = ""
	return m, m.startBatch(codes)
}

func (m *AppModel) appendLog(line string) {
	m.logs = append(m.logs, line)
	rendered := make([]string, len(m.logs))
	for i, l := range m.logs {
		rendered[i] = logLineStyle(l).Render(l)
	}
	m.logView.SetContent(strings.Join(rendered, "\n"))
	m.logView.GotoBottom()
}

func (m *AppModel) showSelected() {
	if m.selected < 0 || m.selected >= len(m.history) {
		return
	}
	m.content.SetContent(renderResult(m.history[m.selected]))
	m.content.GotoTop()
}

func (m *AppModel) resize() {
	w := m.width - m.sidebarWidth - 6
	if w < 20 {
		w = 20
	}
	// Input box (3), two pane borders (4), section titles (2) and status (1).
	h := m.height - 12
	if h < 6 {
		h = 6
	}
	logH := h / 3
	m.input.Width = w - 4
	m.content.Width = w - 2
	m.content.Height = h - logH
	m.logView.Width = w - 2
	m.logView.Height = logH
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var b strings.Builder
	b.WriteString(InputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("邮件内容"))
	b.WriteString("\n")
	b.WriteString(PaneStyle.Render(m.content.View()))
	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("日志"))
	b.WriteString("\n")
	b.WriteString(PaneStyle.Render(m.logView.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	contentWidth := m.width - m.sidebarWidth - 4
	main := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(b.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}

func (m AppModel) renderStatus() string {
	switch {
	case m.running:
		return LoadingStyle.Render("正在生成...")
	case m.loadErr != nil:
		return ErrorStyle.Render(m.loadErr.Error())
	case m.copied:
		return CopiedStyle.Render("已复制到剪贴板")
	case m.status != "":
		return HelpStyle.Render(m.status)
	}
	return HelpStyle.Render("enter 生成  tab 切换焦点  ? 帮助")
}

// historyLabel fits a result into the sidebar width.
func historyLabel(r processor.Result, width int) string {
	label := r.Code
	if r.Empty() {
		label += " ∅"
	}
	return runewidth.Truncate(label, width, "…")
}

// renderSidebar renders the history list
func (m AppModel) renderSidebar() string {
	var items []string
	items = append(items, SidebarTitleStyle.Render(" HTS Email "))
	items = append(items, "")

	itemWidth := m.sidebarWidth - 4
	if len(m.history) == 0 {
		items = append(items, SidebarItemStyle.Render("暂无记录"))
	}
	for i, r := range m.history {
		style := SidebarItemStyle
		if i == m.selected {
			if m.focus == FocusHistory {
				style = SidebarItemActiveStyle
			} else {
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		}
		items = append(items, style.Render(historyLabel(r, itemWidth)))
	}

	// Spacer
	usedHeight := len(items) + 4
	if m.height > usedHeight {
		for i := 0; i < m.height-usedHeight-2; i++ {
			items = append(items, "")
		}
	}
	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)
	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	helpText := titleStyle.Render("HTS Email Generator") + "\n\n"

	helpText += SectionStyle.Render("Input") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Generate emails for the codes") + "\n"
	helpText += keyStyle.Render("tab/esc") + descStyle.Render("Focus history") + "\n"

	helpText += SectionStyle.Render("History") + "\n"
	helpText += keyStyle.Render("j/k ↑/↓") + descStyle.Render("Select a result") + "\n"
	helpText += keyStyle.Render("y") + descStyle.Render("Copy content to clipboard") + "\n"
	helpText += keyStyle.Render("pgup/pgdn") + descStyle.Render("Scroll content") + "\n"
	helpText += keyStyle.Render("tab") + descStyle.Render("Focus input") + "\n"
	helpText += keyStyle.Render("q") + descStyle.Render("Quit") + "\n"

	helpText += "\n" + HelpStyle.Italic(true).Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(helpText))
}
