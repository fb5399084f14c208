package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docgraph/internal/adapters/tui/styles"
	"docgraph/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	NextOrphan key.Binding
	Copy       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	NextOrphan: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "next orphan"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// header and help line take this many rows
const browserChrome = 8

// BrowserData is one analysis as shown by the browser
type BrowserData struct {
	Root   *domain.MindmapNode
	Report domain.Report
}

// Loader runs an analysis for the browser
type Loader func() (*BrowserData, error)

// BrowserModel is the model for the mindmap browser view
type BrowserModel struct {
	ViewState

	load      Loader
	copy      func(string) error
	root      *TreeNode
	flatNodes []*TreeNode
	degrees   map[string]domain.DocumentDegree
	stats     domain.Statistics
	cursor    int
	offset    int
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(load Loader) *BrowserModel {
	return &BrowserModel{
		load: load,
		copy: clipboard.WriteAll,
	}
}

type dataLoadedMsg struct {
	data *BrowserData
}

type errMsg struct {
	err error
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadData
}

func (m *BrowserModel) loadData() tea.Msg {
	data, err := m.load()
	if err != nil {
		return errMsg{err}
	}
	return dataLoadedMsg{data}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case dataLoadedMsg:
		m.setData(msg.data)
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.flatNodes)-1 {
				m.cursor++
			}

		case key.Matches(msg, BrowserKeys.Left):
			if node := m.SelectedNode(); node != nil {
				if node.IsDir() && node.Expanded {
					node.Collapse()
					m.refreshFlatNodes()
				} else if node.Parent != nil && node.Parent != m.root {
					m.selectNode(node.Parent)
				}
			}

		case key.Matches(msg, BrowserKeys.Right):
			if node := m.SelectedNode(); node != nil && node.IsDir() && !node.Expanded {
				node.Expand()
				m.refreshFlatNodes()
			}

		case key.Matches(msg, BrowserKeys.Enter):
			if node := m.SelectedNode(); node != nil && node.IsDir() {
				node.Toggle()
				m.refreshFlatNodes()
			}

		case key.Matches(msg, BrowserKeys.NextOrphan):
			m.jumpToNextOrphan()

		case key.Matches(msg, BrowserKeys.Copy):
			if node := m.SelectedNode(); node != nil && !node.IsDir() {
				if err := m.copy(node.Node.Path); err != nil {
					m.SetError(fmt.Errorf("failed to copy path: %w", err))
				} else {
					m.SetMessage("Copied "+node.Node.Path, false)
				}
			}

		case key.Matches(msg, BrowserKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
		m.scrollToCursor()
	}

	return m, nil
}

func (m *BrowserModel) setData(data *BrowserData) {
	var selected string
	if node := m.SelectedNode(); node != nil {
		selected = node.Node.Path
	}

	m.root = NewTree(data.Root)
	m.stats = data.Report.Stats
	m.degrees = make(map[string]domain.DocumentDegree, len(data.Report.Documents))
	for _, d := range data.Report.Documents {
		m.degrees[d.Path] = d
	}
	m.refreshFlatNodes()

	// Keep the selection across reloads
	if selected != "" {
		for _, n := range m.root.All() {
			if n.Node.Path == selected {
				n.Reveal()
				m.refreshFlatNodes()
				m.selectNode(n)
				break
			}
		}
	}
}

func (m *BrowserModel) isOrphan(n *TreeNode) bool {
	if n.IsDir() {
		return false
	}
	d, ok := m.degrees[n.Node.Path]
	return ok && d.IsOrphaned()
}

// jumpToNextOrphan selects the next orphaned document after the cursor, wrapping around
func (m *BrowserModel) jumpToNextOrphan() {
	if m.root == nil {
		return
	}
	all := m.root.All()

	start := 0
	if node := m.SelectedNode(); node != nil {
		for i, n := range all {
			if n == node {
				start = i + 1
				break
			}
		}
	}

	for i := range all {
		n := all[(start+i)%len(all)]
		if m.isOrphan(n) {
			n.Reveal()
			m.refreshFlatNodes()
			m.selectNode(n)
			return
		}
	}
	m.SetMessage("No orphaned documents", false)
}

// SelectedNode returns the node under the cursor
func (m *BrowserModel) SelectedNode() *TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

func (m *BrowserModel) selectNode(target *TreeNode) {
	for i, n := range m.flatNodes {
		if n == target {
			m.cursor = i
			return
		}
	}
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// Skip root node in display
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	// Clamp cursor
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BrowserModel) scrollToCursor() {
	rows := m.visibleRows(browserChrome)
	if rows == 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		if m.Message != "" {
			return (&screen{}).status(m.Message, m.MessageErr).String()
		}
		return "Loading..."
	}

	v := (&screen{}).header(m.root.Node.Name+"/",
		fmt.Sprintf("%d documents • %d links • %d orphaned",
			m.stats.TotalDocuments, m.stats.TotalLinks, m.stats.Orphaned))

	if len(m.flatNodes) == 0 {
		v.line(styles.MutedText.Render("No markdown documents found"))
	}

	end := len(m.flatNodes)
	if rows := m.visibleRows(browserChrome); rows > 0 && m.offset+rows < end {
		end = m.offset + rows
	}
	for i := m.offset; i < end; i++ {
		v.line(m.renderNode(m.flatNodes[i], i == m.cursor))
	}

	return v.status(m.Message, m.MessageErr).
		keys(BrowserKeys.Down, BrowserKeys.Right, BrowserKeys.NextOrphan, BrowserKeys.Copy, BrowserKeys.Help, BrowserKeys.Quit).
		String()
}

func (m *BrowserModel) renderNode(node *TreeNode, selected bool) string {
	indent := strings.Repeat("  ", node.Depth()-1)

	// Prefix (expand indicator)
	var prefix string
	switch {
	case !node.IsDir():
		prefix = styles.TreeLeaf
	case node.Expanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	text := node.Node.Name
	var style lipgloss.Style
	var suffix string
	switch {
	case node.IsDir():
		text += "/"
		style = styles.NodeDirectory
	case m.isOrphan(node):
		style = styles.NodeOrphan
		suffix = styles.Degree.Render("  orphan")
	default:
		style = styles.NodeFile
		d := m.degrees[node.Node.Path]
		suffix = styles.Degree.Render(fmt.Sprintf("  ←%d →%d", d.Incoming, d.Outgoing))
	}

	styledText := style.Render(text)
	if selected {
		styledText = styles.NodeSelected.Render(text)
	}

	return fmt.Sprintf("%s%s%s%s", indent, styles.TreeBranch.Render(prefix), styledText, suffix)
}

// Reload runs the analysis again, keeping the selection
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadData
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}
