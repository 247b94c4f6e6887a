// Package shell is the interactive terminal front end: it asks for an email,
// loads that user's data and then answers questions until the user quits.
package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fin-assistant/internal/query"
	"fin-assistant/internal/service"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Assistant is the part of service.AssistantService the shell uses.
type Assistant interface {
	OpenSession(ctx context.Context, email string) (*service.Session, error)
	Ask(ctx context.Context, session *service.Session, question string) (*service.Reply, error)
}

type state int

const (
	stateEmail state = iota
	stateLoading
	stateChat
	stateAsking
)

// maxTranscript bounds the kept output lines.
const maxTranscript = 500

var (
	quitCommands   = []string{"thoát", "exit", "quit"}
	switchCommands = []string{"đổi", "đổi người dùng", "switch"}
	helpCommands   = []string{"giúp", "help", "hướng dẫn"}
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	youStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

type sessionMsg struct{ session *service.Session }

type replyMsg struct{ reply *service.Reply }

type errMsg struct {
	err    error
	asking bool
}

type Model struct {
	ctx        context.Context
	assistant  Assistant
	logger     *zap.Logger
	state      state
	input      textinput.Model
	session    *service.Session
	transcript []string
	status     string
}

func New(ctx context.Context, assistant Assistant, logger *zap.Logger) *Model {
	m := &Model{
		ctx:       ctx,
		assistant: assistant,
		logger:    logger,
		input:     textinput.New(),
	}
	m.input.CharLimit = 500
	m.input.Focus()
	m.promptEmail()
	return m
}

func (m *Model) promptEmail() {
	m.state = stateEmail
	m.session = nil
	m.input.Prompt = "Email: "
	m.input.Placeholder = "demo@fin-assistant.local"
	m.input.SetValue("")
}

func (m *Model) promptQuestion() {
	m.state = stateChat
	m.input.Prompt = "Bạn: "
	m.input.Placeholder = "Tôi đã chi bao nhiêu tháng này?"
	m.input.SetValue("")
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case sessionMsg:
		m.session = msg.session
		m.status = ""
		m.println(m.welcome())
		m.promptQuestion()
		return m, nil

	case replyMsg:
		m.status = ""
		m.state = stateChat
		m.println(botStyle.Render("Trợ lý:") + " " + msg.reply.Text)
		return m, nil

	case errMsg:
		m.status = ""
		if msg.asking {
			m.state = stateChat
			m.println(errorStyle.Render(askErrorText(msg.err)))
			return m, nil
		}
		m.println(errorStyle.Render(sessionErrorText(msg.err)))
		m.promptEmail()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.state == stateLoading || m.state == stateAsking {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	command := query.Normalize(text)
	m.input.SetValue("")

	if matches(command, quitCommands) {
		return m, tea.Quit
	}

	if m.state == stateEmail {
		if text == "" {
			return m, nil
		}
		m.state = stateLoading
		m.status = "Đang tải dữ liệu..."
		return m, m.openSessionCmd(text)
	}

	m.println(youStyle.Render("Bạn:") + " " + text)
	switch {
	case matches(command, switchCommands):
		m.println("Đổi người dùng.")
		m.promptEmail()
		return m, nil
	case matches(command, helpCommands):
		m.println(query.HelpText)
		return m, nil
	}

	m.state = stateAsking
	m.status = "Đang xử lý..."
	return m, m.askCmd(m.session, text)
}

func (m *Model) openSessionCmd(email string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.assistant.OpenSession(m.ctx, email)
		if err != nil {
			m.logger.Warn("Failed to open session", zap.Error(err))
			return errMsg{err: err}
		}
		return sessionMsg{session: session}
	}
}

func (m *Model) askCmd(session *service.Session, question string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.assistant.Ask(m.ctx, session, question)
		if err != nil {
			m.logger.Warn("Failed to answer question", zap.Error(err))
			return errMsg{err: err, asking: true}
		}
		return replyMsg{reply: reply}
	}
}

func (m *Model) welcome() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Xin chào %s!\nCác ví của bạn:", m.session.User.DisplayName())
	for _, w := range m.session.Wallets {
		fmt.Fprintf(&b, "\n- %s: %s", w.Name, query.FormatCurrency(w.Balance))
	}
	fmt.Fprintf(&b, "\nĐã tải %d giao dịch. Gõ 'giúp' để xem hướng dẫn, 'đổi' để đổi người dùng, 'thoát' để thoát.",
		len(m.session.Transactions))
	return b.String()
}

func (m *Model) println(s string) {
	m.transcript = append(m.transcript, s)
	if over := len(m.transcript) - maxTranscript; over > 0 {
		m.transcript = m.transcript[over:]
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Trợ lý tài chính"))
	b.WriteString("\n\n")
	for _, line := range m.transcript {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("[enter] Gửi  [esc] Thoát"))
	return b.String()
}

func matches(command string, set []string) bool {
	for _, c := range set {
		if command == c {
			return true
		}
	}
	return false
}

func sessionErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "Không tìm thấy người dùng với email này."
	case errors.Is(err, service.ErrNoWallets):
		return "Người dùng chưa có ví nào."
	default:
		return "Không thể tải dữ liệu: " + err.Error()
	}
}

func askErrorText(err error) string {
	if errors.Is(err, service.ErrChatUnavailable) {
		return "Lỗi khi gọi LLM: " + err.Error()
	}
	return "Lỗi: " + err.Error()
}
