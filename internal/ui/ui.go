package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/snapup/internal/forms"
	"github.com/desertthunder/snapup/internal/services"
	"github.com/dustin/go-humanize"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	SignupView
	UploadView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	backend services.Backend
	width   int
	height  int
	menu    list.Model

	signup       *forms.SignupForm
	signupInputs []textinput.Model
	focus        int

	upload    *forms.UploadForm
	pathInput textinput.Model
	pathErr   string

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model that submits forms to backend.
func NewModel(ctx context.Context, backend services.Backend) *Model {
	menu := list.New(menuItems(), list.NewDefaultDelegate(), 60, 12)
	menu.Title = "snapup"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)

	return &Model{
		ctx:          ctx,
		view:         MenuView,
		backend:      backend,
		menu:         menu,
		signup:       forms.NewSignupForm(),
		signupInputs: newSignupInputs(),
		upload:       forms.NewUploadForm(),
		pathInput:    newPathInput(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

func newSignupInputs() []textinput.Model {
	inputs := make([]textinput.Model, len(forms.Fields))
	for i, field := range forms.Fields {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = strings.ToLower(field.String())
		in.CharLimit = 256
		if field == forms.PasswordField {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	return inputs
}

func newPathInput() textinput.Model {
	in := textinput.New()
	in.Prompt = "› "
	in.Placeholder = "path/to/image.png"
	return in
}

// Init implements [tea.Model]; the menu needs no startup work.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.exit) {
			return m, tea.Quit
		}
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case SignupView:
			return m.handleSignupKeys(msg)
		case UploadView:
			return m.handleUploadKeys(msg)
		}

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgSignupDone:
			r := msg.data.(signupResult)
			m.signup.Resolve(r.resp, r.err)
			if r.err == nil {
				m.clearSignupInputs()
			}
		case MsgUploadDone:
			r := msg.data.(uploadResult)
			m.upload.Resolve(r.resp, r.err)
		}
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case MenuView:
		return m.renderMenu()
	case SignupView:
		return m.renderSignup()
	case UploadView:
		return m.renderUpload()
	default:
		return ""
	}
}

func (m *Model) loading() bool {
	return m.signup.Loading() || m.upload.Loading()
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.menu.SelectedItem().(menuItem); ok {
			return m, m.open(item.view)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) open(view ViewState) tea.Cmd {
	m.view = view
	switch view {
	case SignupView:
		m.focus = 0
		return m.focusSignup()
	case UploadView:
		m.pathErr = ""
		return m.pathInput.Focus()
	}
	return nil
}

func (m *Model) handleSignupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.signup.Loading() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.back):
		m.view = MenuView
		return m, nil
	case key.Matches(msg, m.keys.submit):
		if m.focus < len(m.signupInputs)-1 {
			m.focus++
			return m, m.focusSignup()
		}
		return m, m.submitSignup()
	case key.Matches(msg, m.keys.next):
		m.focus = (m.focus + 1) % len(m.signupInputs)
		return m, m.focusSignup()
	case key.Matches(msg, m.keys.prev):
		m.focus = (m.focus + len(m.signupInputs) - 1) % len(m.signupInputs)
		return m, m.focusSignup()
	}

	var cmd tea.Cmd
	m.signupInputs[m.focus], cmd = m.signupInputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusSignup() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.signupInputs {
		if i == m.focus {
			cmd = m.signupInputs[i].Focus()
			continue
		}
		m.signupInputs[i].Blur()
	}
	return cmd
}

func (m *Model) clearSignupInputs() {
	for i := range m.signupInputs {
		m.signupInputs[i].SetValue("")
	}
	m.focus = 0
	m.focusSignup()
}

// submitSignup copies the inputs into the form and, when it validates, sends the request in a [tea.Cmd].
func (m *Model) submitSignup() tea.Cmd {
	for i, field := range forms.Fields {
		m.signup.Set(field, m.signupInputs[i].Value())
	}

	if err := m.signup.Begin(); err != nil {
		return nil
	}

	ctx, backend, req := m.ctx, m.backend, m.signup.Request()
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		resp, err := backend.Signup(ctx, req)
		return signupDoneMsg(resp, err)
	})
}

func (m *Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.upload.Loading() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.back):
		m.view = MenuView
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m, m.submitUpload()
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// submitUpload selects the typed path, if any, and uploads it in a [tea.Cmd].
//
// An empty path leaves the form to report that no file is selected.
func (m *Model) submitUpload() tea.Cmd {
	m.pathErr = ""

	if path := strings.TrimSpace(m.pathInput.Value()); path != "" {
		file, err := forms.FileFromPath(path)
		if err != nil {
			m.pathErr = err.Error()
			m.upload.Select(nil)
			return nil
		}
		m.upload.Select(file)
	} else {
		m.upload.Select(nil)
	}

	if err := m.upload.Begin(); err != nil {
		return nil
	}

	ctx, backend, form := m.ctx, m.backend, m.upload
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		resp, err := form.Send(ctx, backend)
		return uploadDoneMsg(resp, err)
	})
}

func (m *Model) renderMenu() string {
	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.menu.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderSignup() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Sign up"))
	b.WriteString("\n")

	for i, field := range forms.Fields {
		fmt.Fprintf(&b, "%s\n%s\n\n", styles.label.Render(field.String()), m.signupInputs[i].View())
	}

	switch {
	case m.signup.Loading():
		fmt.Fprintf(&b, "%s Signing up...\n", m.spinner.View())
	case m.signup.Error() != "":
		b.WriteString(styles.err.Render(m.signup.Error()) + "\n")
	case m.signup.Status() == forms.Succeeded:
		b.WriteString(styles.ok.Render("✓ Signed up") + "\n")
		if resp := m.signup.Response(); resp != nil {
			b.WriteString(styles.help.Render(fmt.Sprintf("status %d: %v", resp.StatusCode, resp.Data)) + "\n")
		}
	}

	helpKeys := []key.Binding{m.keys.next, m.keys.submit, m.keys.back, m.keys.exit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderUpload() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Upload image"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n%s\n\n", styles.label.Render("File"), m.pathInput.View())

	switch {
	case m.pathErr != "":
		b.WriteString(styles.warn.Render(m.pathErr) + "\n")
	case m.upload.Loading():
		f := m.upload.File()
		fmt.Fprintf(&b, "%s Uploading %s (%s)...\n", m.spinner.View(), f.Name, humanize.Bytes(uint64(f.Size)))
	case m.upload.Error() != "":
		b.WriteString(styles.err.Render(m.upload.Error()) + "\n")
	case m.upload.Result() != nil:
		resp := m.upload.Result()
		b.WriteString(styles.ok.Render("✓ "+resp.Message) + "\n")
		details := fmt.Sprintf("Stored as:     %s\nOriginal name: %s\nSize:          %s\nURL:           %s",
			resp.Result.StoredFilename,
			resp.Result.OriginalFilename,
			humanize.Bytes(uint64(resp.Result.FileSize)),
			m.backend.ImageURL(resp.Result.StoredFilename),
		)
		b.WriteString(styles.result.Render(details) + "\n")
	}

	helpKeys := []key.Binding{m.keys.submit, m.keys.back, m.keys.exit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}
