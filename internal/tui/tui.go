package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const inputHeight = 3

// cycle order for the mode switch key
var modes = []string{"auto", "llm", "docs"}

func NewApp() *Model {
	input := textinput.New()
	input.Placeholder = "ask something... (/reload rebuilds the docs index, tab switches mode)"
	input.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return &Model{
		input:   input,
		spinner: sp,
		client:  NewChatClient(),
		mode:    "auto",
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.mode = nextMode(m.mode)
			return m, nil

		case "enter":
			if m.isFetching {
				return m, nil
			}

			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}

			m.input.SetValue("")
			m.err = nil
			m.isFetching = true

			if text == "/reload" {
				return m, tea.Batch(m.spinner.Tick, m.client.ReloadCmd())
			}

			m.messages = append(m.messages, MessageModel{Role: "user", Content: text})
			m.refreshViewport()

			return m, tea.Batch(m.spinner.Tick, m.client.ChatCmd(text, m.mode))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(msg.Width-4),
		)
		if err == nil {
			m.glamourRenderer = renderer
		}

		m.refreshViewport()

	case ChatResponseMsg:
		m.isFetching = false

		assistantMsg := MessageModel{
			Role:    "assistant",
			Content: msg.answer,
			Mode:    msg.mode,
		}

		if len(msg.sources) > 0 {
			assistantMsg.Content += "\n\n" + sourceStyle.Render("sources: "+strings.Join(msg.sources, ", "))
		}

		m.messages = append(m.messages, assistantMsg)
		m.refreshViewport()

		return m, nil

	case ReloadDoneMsg:
		m.isFetching = false
		m.messages = append(m.messages, MessageModel{
			Role:    "assistant",
			Content: msg.message,
			Mode:    "reload",
		})
		m.refreshViewport()

		return m, nil

	case ChatErrorMsg:
		m.isFetching = false
		m.err = msg.err

		return m, nil

	case spinner.TickMsg:
		if m.isFetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)

			return m, cmd
		}

		return m, nil
	}

	var inputCmd, viewportCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, viewportCmd = m.viewport.Update(msg)

	return m, tea.Batch(inputCmd, viewportCmd)
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var status string

	switch {
	case m.isFetching:
		status = m.spinner.View() + " thinking..."
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("error: %v", m.err))
	default:
		status = statusStyle.Render("mode: ") + modeStyle.Render(m.mode)
	}

	return fmt.Sprintf("%s\n%s\n%s", m.viewport.View(), status, m.input.View())
}

// re-renders the conversation into the viewport and scrolls to the bottom
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var builder strings.Builder

	builder.WriteString(titleStyle.Render("brooffline chat"))
	builder.WriteString("\n\n")

	for _, message := range m.messages {
		if message.Role == "user" {
			builder.WriteString(userStyle.Render("you: "))
			builder.WriteString(message.Content)
			builder.WriteString("\n\n")

			continue
		}

		label := "assistant"
		if message.Mode != "" {
			label = fmt.Sprintf("assistant [%s]", message.Mode)
		}

		builder.WriteString(assistantStyle.Render(label + ": "))
		builder.WriteString("\n")
		builder.WriteString(m.renderMarkdown(message.Content))
		builder.WriteString("\n")
	}

	m.viewport.SetContent(builder.String())
	m.viewport.GotoBottom()
}

func (m *Model) renderMarkdown(content string) string {
	if m.glamourRenderer == nil {
		return content
	}

	rendered, err := m.glamourRenderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}

func nextMode(current string) string {
	for i, mode := range modes {
		if mode == current {
			return modes[(i+1)%len(modes)]
		}
	}

	return modes[0]
}
