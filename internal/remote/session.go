package remote

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/notebook/internal/logging"
	"github.com/muurk/notebook/internal/notebook"
)

// Session serialises access to one notebook shared by every connection.
type Session struct {
	mu       sync.Mutex
	nb       *notebook.Notebook
	observer *notebook.Observer
	pending  []Message
}

// NewSession starts observing nb. Call Close when done.
func NewSession(nb *notebook.Notebook) *Session {
	s := &Session{nb: nb}
	s.observer = notebook.Observe(nb, s.record)
	return s
}

// record runs inside Apply, with mu held.
func (s *Session) record(e notebook.Event) {
	s.pending = append(s.pending, Message{
		Type:   MsgSignal,
		Signal: e.Signal,
		Tab:    e.TabID,
		Label:  e.Label,
	})
}

// Apply runs cmd against the notebook. It returns one signal message per
// signal fired, in emission order, followed by a state message.
func (s *Session) Apply(cmd *Command) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	if err := s.apply(cmd); err != nil {
		s.pending = nil
		return nil, err
	}

	msgs := append(s.pending, stateMessage(cmd.ID, s.nb.Snapshot()))
	s.pending = nil
	for i := range msgs {
		msgs[i].Ref = cmd.ID
	}

	logging.Debug("Command applied",
		zap.String("type", cmd.Type),
		zap.String("tab", cmd.Tab),
		zap.Int("signals", len(msgs)-1),
	)
	return msgs, nil
}

func (s *Session) apply(cmd *Command) error {
	switch cmd.Type {
	case CmdSelect:
		tab, err := s.lookup(cmd.Tab)
		if err != nil {
			return err
		}
		s.nb.SelectTab(tab)

	case CmdRemove:
		if cmd.Tab == "" {
			s.nb.RemoveTab(nil)
			return nil
		}
		tab, err := s.lookup(cmd.Tab)
		if err != nil {
			return err
		}
		s.nb.RemoveTab(tab)

	case CmdAppend:
		s.nb.AppendTab(cmd.Text, cmd.Data, cmd.Selected)

	case CmdPrepend:
		s.nb.PrependTab(cmd.Text, cmd.Data, cmd.Selected)

	case CmdLabel:
		tab := s.nb.CurrentTab()
		if cmd.Tab != "" {
			var err error
			if tab, err = s.lookup(cmd.Tab); err != nil {
				return err
			}
		}
		if tab == nil {
			return fmt.Errorf("%w: notebook is empty", ErrUnknownTab)
		}
		tab.SetLabel(cmd.Text)

	case CmdState:

	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCommand, cmd.Type)
	}
	return nil
}

func (s *Session) lookup(id string) (*notebook.Tab, error) {
	tab := s.nb.TabByID(id)
	if tab == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTab, id)
	}
	return tab, nil
}

// State returns a snapshot of the notebook.
func (s *Session) State() *notebook.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nb.Snapshot()
}

// Len returns the number of tabs.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nb.Len()
}

// ID returns the notebook id.
func (s *Session) ID() string {
	return s.nb.ID()
}

// Close stops observing the notebook.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer.Close()
}
