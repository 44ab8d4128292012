package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// a chat message shown in the conversation view
type MessageModel struct {
	Role    string // "user" or "assistant"
	Content string
	Mode    string // mode the server answered in, assistant messages only
}

// main TUI application model
type Model struct {
	input           textinput.Model
	viewport        viewport.Model
	spinner         spinner.Model
	glamourRenderer *glamour.TermRenderer
	client          *ChatClient

	messages   []MessageModel
	mode       string // requested mode: auto, llm or docs
	width      int
	height     int
	isFetching bool
	ready      bool
	err        error
}

// sent when the server answers a chat request
type ChatResponseMsg struct {
	userQuery string
	answer    string
	mode      string
	sources   []string
}

// sent when the server finishes a docs reload
type ReloadDoneMsg struct {
	message string
}

// sent when a request fails
type ChatErrorMsg struct {
	err error
}
