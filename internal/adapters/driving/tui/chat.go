// Package tui provides the interactive chat view over the assistant,
// following the Elm architecture used by Bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
)

// ErrMissingAssistant is returned when no assistant is provided.
var ErrMissingAssistant = errors.New("tui: assistant is required")

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// responseMsg carries the assistant's reply back into the update loop.
type responseMsg struct {
	response *domain.Response
	err      error
}

// Chat is the chat TUI model. It implements tea.Model.
type Chat struct {
	assistant driving.Assistant
	ctx       context.Context

	input    textinput.Model
	viewport viewport.Model
	lines    []string

	waiting bool
	ready   bool
	err     error
}

// Ensure Chat implements tea.Model.
var _ tea.Model = (*Chat)(nil)

// NewChat creates the chat model around an assistant.
func NewChat(assistant driving.Assistant) (*Chat, error) {
	if assistant == nil {
		return nil, ErrMissingAssistant
	}

	input := textinput.New()
	input.Placeholder = "Ask about any programming topic..."
	input.Focus()

	return &Chat{
		assistant: assistant,
		ctx:       context.Background(),
		input:     input,
		lines: []string{
			hintStyle.Render("Type a question and press Enter. Esc or Ctrl+C exits."),
		},
	}, nil
}

// Init implements tea.Model.
func (c *Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return c, tea.Quit
		case tea.KeyEnter:
			return c, c.submit()
		}

	case tea.WindowSizeMsg:
		c.resize(msg.Width, msg.Height)
		return c, nil

	case responseMsg:
		c.waiting = false
		if msg.err != nil {
			c.err = msg.err
			c.appendLine(errorStyle.Render("error: " + msg.err.Error()))
		} else {
			c.err = nil
			c.appendLine(assistantStyle.Render(msg.response.Message))
			if msg.response.FeedbackRequest != "" {
				c.appendLine(hintStyle.Render(msg.response.FeedbackRequest))
			}
		}
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View implements tea.Model.
func (c *Chat) View() string {
	if !c.ready {
		return strings.Join(c.lines, "\n\n") + "\n\n> " + c.input.View()
	}

	status := ""
	if c.waiting {
		status = hintStyle.Render("thinking...")
	}
	return fmt.Sprintf("%s\n%s\n> %s", c.viewport.View(), status, c.input.View())
}

// submit sends the typed input to the assistant asynchronously.
func (c *Chat) submit() tea.Cmd {
	text := strings.TrimSpace(c.input.Value())
	if text == "" || c.waiting {
		return nil
	}

	if text == "/reset" {
		c.assistant.Reset()
		c.input.Reset()
		c.appendLine(hintStyle.Render("Session cleared; your profile is kept."))
		return nil
	}

	c.appendLine(userStyle.Render("you: ") + text)
	c.input.Reset()
	c.waiting = true

	return func() tea.Msg {
		response, err := c.assistant.Respond(c.ctx, text)
		return responseMsg{response: response, err: err}
	}
}

func (c *Chat) appendLine(line string) {
	c.lines = append(c.lines, line)
	if c.ready {
		c.viewport.SetContent(strings.Join(c.lines, "\n\n"))
		c.viewport.GotoBottom()
	}
}

func (c *Chat) resize(width, height int) {
	inputRows := 3
	if !c.ready {
		c.viewport = viewport.New(width, height-inputRows)
		c.ready = true
	} else {
		c.viewport.Width = width
		c.viewport.Height = height - inputRows
	}
	c.input.Width = width - 4
	c.viewport.SetContent(strings.Join(c.lines, "\n\n"))
	c.viewport.GotoBottom()
}

// Run starts the chat in the alternate screen until the user exits.
func Run(assistant driving.Assistant) error {
	chat, err := NewChat(assistant)
	if err != nil {
		return err
	}
	program := tea.NewProgram(chat, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
