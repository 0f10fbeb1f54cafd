// ABOUTME: Terminal assistant console using the bubbletea framework
// ABOUTME: Transcript view, input line, typing indicator, incoming-message poll
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1Lab-vibe/a1-client/assistant"
	"github.com/1Lab-vibe/a1-client/config"
	"github.com/1Lab-vibe/a1-client/models"
)

const welcomeText = "How can I help?"

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	timeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	attachStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

type pollDone struct{ added []models.Message }
type sendDone struct{}
type pollTick struct{}

// Model is the assistant console bubbletea model.
type Model struct {
	console *assistant.Console
	input   textinput.Model
	spin    spinner.Model
	filter  assistant.Filter

	messages []models.Message
	sending  bool
	width    int
	height   int
}

// NewModel builds the console model around a session.
func NewModel(console *assistant.Console) Model {
	input := textinput.New()
	input.Placeholder = "Message..."
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		console:  console,
		input:    input,
		spin:     spin,
		messages: console.Messages(),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.pollCmd(), m.spin.Tick)
}

// pollCmd performs one incoming poll and schedules the next tick.
func (m Model) pollCmd() tea.Cmd {
	console := m.console
	return func() tea.Msg {
		added := console.Poll(context.Background())
		return pollDone{added: added}
	}
}

func schedulePoll() tea.Cmd {
	return tea.Tick(config.IncomingPollInterval, func(time.Time) tea.Msg {
		return pollTick{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+l":
			m.filter.Clear(time.Now().UnixMilli())
			return m, nil
		case "ctrl+a":
			m.filter.ShowAll()
			return m, nil
		case "enter":
			return m.submit()
		}

	case pollTick:
		return m, m.pollCmd()

	case pollDone:
		m.messages = m.console.Messages()
		if len(msg.added) > 0 {
			ringBell()
		}
		return m, schedulePoll()

	case sendDone:
		m.sending = false
		m.messages = m.console.Messages()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.sending {
		return m, nil
	}
	m.input.SetValue("")
	m.sending = true
	// Local echo; the next refresh replaces it with the stored entry.
	m.messages = append(m.messages, models.Message{
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now().UnixMilli(),
	})
	console := m.console
	return m, func() tea.Msg {
		console.Send(context.Background(), text)
		return sendDone{}
	}
}

func (m Model) View() string {
	var b strings.Builder

	visible := m.filter.Apply(m.messages)
	if len(visible) == 0 {
		b.WriteString("\n  " + welcomeText + "\n")
	} else {
		lines := m.height - 4
		if lines < 1 {
			lines = 1
		}
		rendered := renderMessages(visible, m.width)
		if len(rendered) > lines {
			rendered = rendered[len(rendered)-lines:]
		}
		b.WriteString(strings.Join(rendered, "\n"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.sending {
		b.WriteString(m.spin.View() + " typing...\n")
	} else {
		b.WriteString(m.input.View() + "\n")
	}
	b.WriteString(helpStyle.Render("enter send · ctrl+l clear · ctrl+a show all · esc quit"))
	return b.String()
}

func renderMessages(messages []models.Message, width int) []string {
	var lines []string
	for _, msg := range messages {
		who := assistantStyle.Render("COO")
		if msg.Role == models.RoleUser {
			who = userStyle.Render("You")
		}
		stamp := timeStyle.Render(time.UnixMilli(msg.Timestamp).Format("15:04"))
		header := fmt.Sprintf("%s %s", who, stamp)
		lines = append(lines, header)
		content := msg.Content
		if width > 4 {
			content = lipgloss.NewStyle().Width(width - 2).Render(content)
		}
		lines = append(lines, strings.Split(content, "\n")...)
		for _, att := range msg.Attachments {
			lines = append(lines, attachStyle.Render("  📎 "+att.Name+" "+att.URL))
		}
	}
	return lines
}

// ringBell is the incoming-message notification (the console's sound).
func ringBell() {
	fmt.Fprint(os.Stderr, "\a")
}
