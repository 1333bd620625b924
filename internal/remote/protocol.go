package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/muurk/notebook/internal/notebook"
	"github.com/muurk/notebook/internal/version"
)

// Command types sent by clients
const (
	CmdSelect  = "select"
	CmdRemove  = "remove"
	CmdAppend  = "append"
	CmdPrepend = "prepend"
	CmdLabel   = "label"
	CmdState   = "state"
)

// Message types sent by the server
const (
	MsgHello  = "hello"
	MsgSignal = "signal"
	MsgState  = "state"
	MsgError  = "error"
)

// ErrInvalidCommand is wrapped by every error ParseCommand returns.
var ErrInvalidCommand = errors.New("invalid command")

// ErrUnknownTab is returned when a command names a tab the notebook does not
// have.
var ErrUnknownTab = errors.New("unknown tab")

// Command is one client request.
//
//	{"type":"select","tab":"main_tab_1"}
//	{"type":"append","text":"Notes","data":"<p>hi</p>","selected":true}
type Command struct {
	Type string `json:"type"`
	// ID is echoed back as Ref on every message the command causes
	ID string `json:"id,omitempty"`
	// Tab is a tab id. Remove and label fall back to the current tab when
	// it is empty.
	Tab string `json:"tab,omitempty"`
	// Text is the label for append, prepend and label
	Text string `json:"text,omitempty"`
	// Data is page content for append and prepend, markup or a structured
	// description
	Data     any  `json:"data,omitempty"`
	Selected bool `json:"selected,omitempty"`
}

// Message is one server frame.
type Message struct {
	Type    string             `json:"type"`
	Ref     string             `json:"ref,omitempty"`
	Session string             `json:"session,omitempty"`
	Signal  string             `json:"signal,omitempty"`
	Tab     string             `json:"tab,omitempty"`
	Label   string             `json:"label,omitempty"`
	State   *notebook.Snapshot `json:"state,omitempty"`
	Server  *version.BuildInfo `json:"server,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// String renders the message on one line for terminal output.
func (m Message) String() string {
	switch m.Type {
	case MsgSignal:
		return fmt.Sprintf("%s %s (%s)", m.Signal, m.Tab, m.Label)
	case MsgState:
		if m.State == nil {
			return "state"
		}
		current := ""
		for _, t := range m.State.Tabs {
			if t.Selected {
				current = t.ID
			}
		}
		return fmt.Sprintf("state %s: %d tabs, current %s", m.State.ID, len(m.State.Tabs), current)
	case MsgError:
		return "error: " + m.Error
	case MsgHello:
		if m.Server != nil {
			return fmt.Sprintf("hello %s from notebook %s", m.Session, m.Server.Version)
		}
		return "hello " + m.Session
	default:
		return m.Type
	}
}

// ParseCommand decodes and validates a client frame.
func ParseCommand(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	switch cmd.Type {
	case CmdSelect:
		if cmd.Tab == "" {
			return nil, fmt.Errorf("%w: select needs a tab", ErrInvalidCommand)
		}
	case CmdRemove, CmdAppend, CmdPrepend, CmdLabel, CmdState:
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrInvalidCommand)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidCommand, cmd.Type)
	}
	return &cmd, nil
}

func errorMessage(ref string, err error) Message {
	return Message{Type: MsgError, Ref: ref, Error: err.Error()}
}

func stateMessage(ref string, s *notebook.Snapshot) Message {
	return Message{Type: MsgState, Ref: ref, State: s}
}
