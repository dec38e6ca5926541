package main

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-dia/dia"
	"github.com/go-dia/dia/internal/term"
)

// listWidth is the fixed width of the asset id pane; the preview pane
// takes the rest of the terminal.
const listWidth = 34

var (
	listStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	previewStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Padding(1, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(1, 2)
)

// assetItem is one row of the id pane: the asset id, labeled with the
// archive entry filename it maps to.
type assetItem struct {
	id       string
	filename string
}

func (i assetItem) Title() string       { return i.id }
func (i assetItem) Description() string { return i.filename }
func (i assetItem) FilterValue() string { return i.id + " " + i.filename }

// renderDoneMsg carries a finished render back into the update loop.
// seq identifies the request; results from superseded requests are
// dropped on arrival.
type renderDoneMsg struct {
	seq int
	id  string
	pm  *dia.Pixmap
	err error
}

type model struct {
	archive dia.Archive
	catalog *dia.Catalog

	list list.Model
	spin spinner.Model

	width  int
	height int

	seq       int // latest render request
	rendering bool
	pixmap    *dia.Pixmap // last successful render
	renderErr error
	renderID  string // id the pixmap/renderErr belongs to
	preview   string // cached half-block rendering of pixmap
}

func newModel(ar dia.Archive, cat *dia.Catalog) model {
	items := make([]list.Item, 0, cat.Len())
	for _, id := range cat.IDs() {
		filename, _ := cat.FilenameOf(id)
		items = append(items, assetItem{id: id, filename: filename})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Assets"
	l.SetShowStatusBar(false)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := model{
		archive: ar,
		catalog: cat,
		list:    l,
		spin:    sp,
	}

	// Kick off a render of the first id immediately; Init returns the
	// matching command.
	if len(items) > 0 {
		m.seq = 1
		m.rendering = true
	}
	return m
}

// renderCmd composites id on its own goroutine and reports back through
// the message loop.
func renderCmd(ar dia.Archive, cat *dia.Catalog, id string, seq int) tea.Cmd {
	return func() tea.Msg {
		pm, err := dia.Render(cat, ar, id)
		return renderDoneMsg{seq: seq, id: id, pm: pm, err: err}
	}
}

func (m model) Init() tea.Cmd {
	if !m.rendering {
		return m.spin.Tick
	}
	item, ok := m.list.SelectedItem().(assetItem)
	if !ok {
		return m.spin.Tick
	}
	return tea.Batch(m.spin.Tick, renderCmd(m.archive, m.catalog, item.id, m.seq))
}

// startRender begins compositing the highlighted asset, superseding any
// render still in flight.
func (m *model) startRender() tea.Cmd {
	item, ok := m.list.SelectedItem().(assetItem)
	if !ok {
		return nil
	}
	m.seq++
	m.rendering = true
	return tea.Batch(m.spin.Tick, renderCmd(m.archive, m.catalog, item.id, m.seq))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(listWidth, msg.Height-2)
		m.rebuildPreview()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.list.FilterState() != list.Filtering && msg.String() == "q" {
			return m, tea.Quit
		}

		before := m.list.Index()
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		if m.list.Index() != before || msg.String() == "enter" {
			return m, tea.Batch(cmd, m.startRender())
		}
		return m, cmd

	case spinner.TickMsg:
		if !m.rendering {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case renderDoneMsg:
		if msg.seq != m.seq {
			// A newer selection superseded this render.
			return m, nil
		}
		m.rendering = false
		m.pixmap = msg.pm
		m.renderErr = msg.err
		m.renderID = msg.id
		m.rebuildPreview()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// rebuildPreview re-renders the cached half-block art for the current
// pixmap and pane size. Called on resize and on render completion, never
// per frame.
func (m *model) rebuildPreview() {
	cols, rows := m.previewSize()
	if m.pixmap == nil || cols <= 0 || rows <= 0 {
		m.preview = ""
		return
	}
	m.preview = term.FitAndRender(m.pixmap, cols, rows)
}

// previewSize returns the preview pane's inner size in cells.
func (m model) previewSize() (cols, rows int) {
	return m.width - listWidth - 4, m.height - 2
}

func (m model) View() string {
	cols, rows := m.previewSize()

	var content string
	switch {
	case m.rendering:
		content = statusStyle.Render(m.spin.View() + " compositing " + m.selectedID() + "…")
	case m.renderErr != nil:
		content = errStyle.Render("✗ cannot render " + m.renderID + "\n\n" + m.renderErr.Error())
	case m.preview != "":
		content = m.preview
	default:
		content = statusStyle.Render("no asset selected")
	}

	preview := previewStyle.Render(
		lipgloss.Place(max(cols, 0), max(rows, 0), lipgloss.Center, lipgloss.Center, content),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, listStyle.Render(m.list.View()), preview)
}

func (m model) selectedID() string {
	if item, ok := m.list.SelectedItem().(assetItem); ok {
		return item.id
	}
	return ""
}
