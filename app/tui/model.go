package main

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noelzubin/notefind/editor"
	"github.com/noelzubin/notefind/notes"
	"github.com/noelzubin/notefind/search"
	"github.com/noelzubin/notefind/utils"
	"github.com/samber/lo"
)

// Main app model for bubbletea
type Model struct {
	width      int               // width of terminal
	height     int               // height of terminal
	preview    *viewport.Model   // the preview widget model
	list       list.Model        // the list widget model
	textInput  textinput.Model   // the input search widget model
	engine     search.Engine     // runs the searches
	collection *notes.Collection // the notes being searched
	config     *utils.Config
	opts       search.Options  // current query and toggles
	results    []search.Result // results of the last finished search
	seq        int             // id of the latest requested search
	editor     editor.Editor   // for opening up external editor.
}

// Create a new model for the app
func New(engine search.Engine, collection *notes.Collection, config *utils.Config) *Model {
	return &Model{
		list:       create_list_model(),
		textInput:  create_text_input(),
		engine:     engine,
		collection: collection,
		config:     config,
		opts:       config.SearchOptions(),
		editor:     editor.Editor{Editing: false, EditorCmd: config.Editor},
	}
}

// ResultMsg carries the results of the search with id seq.
type ResultMsg struct {
	seq     int
	Results []search.Result
}

// debounceMsg fires when input has been quiet for the debounce interval.
type debounceMsg struct {
	seq int
}

// loadedMsg is sent after the notes snapshot was read again.
type loadedMsg struct {
	collection *notes.Collection
	err        error
}

func (m *Model) setListSize() {
	width := m.width
	height := m.height

	// If preview is open take half width
	if m.preview != nil {
		width = m.width / 2
	}

	m.list.SetSize(width, lo.Max([]int{height - 3, 0}))
}

func (m *Model) setPreviewSize() {
	if m.preview != nil {
		m.preview.Width = m.width / 2
		m.preview.Height = m.height - 3
	}
}

func (m *Model) updateSize(width, height int) {
	m.height = height
	m.width = width

	m.setListSize()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textinput.Blink)
}

// schedule asks for a search once input has settled. Searches requested
// in the meantime replace it.
func (m *Model) schedule() tea.Cmd {
	m.seq++
	if m.config.Debounce <= 0 {
		return m.search()
	}
	seq := m.seq
	return tea.Tick(m.config.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// search runs the current options against the snapshot.
func (m *Model) search() tea.Cmd {
	seq, opts, engine, collection := m.seq, m.opts, m.engine, m.collection
	return func() tea.Msg {
		return ResultMsg{
			seq:     seq,
			Results: engine.Search(collection.Notes, collection.Categories, opts),
		}
	}
}

// reload reads the notes snapshot from disk again.
func (m *Model) reload() tea.Cmd {
	path := m.config.NotesPath
	return func() tea.Msg {
		c, err := notes.Load(path)
		return loadedMsg{collection: c, err: err}
	}
}

func (m *Model) items() []list.Item {
	results := m.results
	if limit := m.config.ResultLimit; limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return lo.Map(results, func(r search.Result, _ int) list.Item {
		return Note{
			result:      r,
			title:       title(r, m.collection),
			description: snippet(r, m.engine, m.config.ContextSize),
		}
	})
}

func (m *Model) cyclePriority() {
	options := append([]search.Priority{""}, search.Priorities...)
	i := lo.IndexOf(options, m.opts.PriorityFilter)
	m.opts.PriorityFilter = options[(i+1)%len(options)]
}

func (m *Model) cycleCategory() {
	options := append([]string{""}, lo.Map(m.collection.Categories, func(c search.Category, _ int) string {
		return c.ID
	})...)
	i := lo.IndexOf(options, m.opts.CategoryFilter)
	m.opts.CategoryFilter = options[(i+1)%len(options)]
}

func (m *Model) openPreview() {
	item, ok := m.list.SelectedItem().(Note)
	if !ok {
		return
	}
	vp := viewport.New(m.width/2, m.height-3)
	vp.SetContent(renderNote(item.result))
	m.preview = &vp
}

// The update fn for the bubbletea model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ResultMsg:
		// A newer search is on its way.
		if msg.seq != m.seq {
			return m, nil
		}
		m.results = msg.Results
		m.list.SetItems(m.items())
		if m.preview != nil {
			m.openPreview()
		}
		return m, nil
	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.search()
	case loadedMsg:
		if msg.err != nil {
			log.Print("reloading notes: ", msg.err)
			return m, nil
		}
		m.collection = msg.collection
		return m, m.schedule()
	case editor.EditingFinished:
		m.editor, _ = m.editor.Update(msg)
		if msg.Err != nil {
			log.Print("editor: ", msg.Err)
		}
		return m, m.reload()
	case tea.KeyMsg:
		// Keybindings:
		// Tab - move down in the list
		// Shift+Tab - move up in the list
		// Enter - toggle preview for the selected note
		// Esc - close preview
		// Ctrl+R - reload the notes
		// Ctrl+K - Preview lineup
		// Ctrl+J - Preview line down
		// Ctrl+O - Open the notes in the editor
		// Alt+C / Alt+W / Alt+X / Alt+G - toggle case, whole word, regex, category names
		// Ctrl+P - cycle priority filter
		// Ctrl+T - cycle category filter
		// Ctrl+C - quit the application
		switch msg.String() {
		case "tab":
			m.list.CursorDown()
		case "shift+tab":
			m.list.CursorUp()
		case "enter":
			if m.preview != nil {
				m.preview = nil
			} else {
				m.openPreview()
			}
		case "esc":
			m.preview = nil
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			return m, m.reload()
		case "ctrl+k":
			if m.preview != nil {
				m.preview.LineUp(5)
			}
		case "ctrl+j":
			if m.preview != nil {
				m.preview.LineDown(5)
			}
		case "ctrl+o":
			return m, m.editor.EditFile(m.config.NotesPath)
		case "alt+c":
			m.opts.CaseSensitive = !m.opts.CaseSensitive
			return m, m.schedule()
		case "alt+w":
			m.opts.MatchWholeWord = !m.opts.MatchWholeWord
			return m, m.schedule()
		case "alt+x":
			m.opts.UseRegex = !m.opts.UseRegex
			return m, m.schedule()
		case "alt+g":
			m.opts.SearchInCategories = !m.opts.SearchInCategories
			return m, m.schedule()
		case "ctrl+p":
			m.cyclePriority()
			return m, m.schedule()
		case "ctrl+t":
			m.cycleCategory()
			return m, m.schedule()
		}
	case tea.WindowSizeMsg:
		m.updateSize(msg.Width, msg.Height)
	}

	// Update the widgets sizes
	m.setListSize()
	m.setPreviewSize()

	// save to commpare if changed
	oldValue := m.textInput.Value()

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	if m.preview != nil {
		var newPreview viewport.Model
		newPreview, cmd = m.preview.Update(msg)
		cmds = append(cmds, cmd)
		m.preview = &newPreview
	}

	// If input has changed, search for the new value
	newValue := m.textInput.Value()
	if oldValue != newValue {
		m.opts.Query = newValue
		cmds = append(cmds, m.schedule())
	}

	return m, tea.Batch(cmds...)
}

// View fn for bubbletea model
func (m Model) View() string {
	listContent := ListStyle.Render(m.list.View())

	// render list
	innerContent := listContent

	// if preview then preview takes up half the width
	if m.preview != nil {
		innerContent = lipgloss.JoinHorizontal(lipgloss.Top,
			listContent,      // render list
			m.preview.View(), // render preview.
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.textInput.View(), // render the text input
		status(m.opts, m.collection, len(m.results)),
		innerContent, // render the main content
	)
}

// Note implements list.Item interface
type Note struct {
	result      search.Result
	title       string
	description string
}

func (n Note) Title() string       { return n.title }
func (n Note) Description() string { return n.description }
func (n Note) FilterValue() string { return "" }

// Create the list model
func create_list_model() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.Styles.NoItems = l.Styles.NoItems.Copy().PaddingLeft(2)
	return l
}

// Create the text input model
func create_text_input() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "query"
	ti.Prompt = "Search:"
	ti.PromptStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230")).
		MarginRight(1).
		MarginLeft(2).
		Padding(0, 1)
	ti.Focus()
	return ti
}
