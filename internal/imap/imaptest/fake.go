// Package imaptest provides an in-memory imap.Client for tests.
package imaptest

import (
	"bytes"
	"fmt"

	"github.com/emersion/go-imap"
)

// FakeClient records every call and serves raw messages from Messages.
type FakeClient struct {
	ConnectErr error
	LoginErr   error
	SelectErr  error
	SearchErr  error
	FetchErr   error

	Unseen   []uint32
	Messages map[uint32][]byte

	Calls    []string
	Selected string
	Closed   bool
}

func (f *FakeClient) Connect(server string) error {
	f.Calls = append(f.Calls, "connect")
	return f.ConnectErr
}

func (f *FakeClient) Login(user, password string) error {
	f.Calls = append(f.Calls, "login")
	return f.LoginErr
}

func (f *FakeClient) SelectMailbox(name string) error {
	f.Calls = append(f.Calls, "select")
	f.Selected = name
	return f.SelectErr
}

func (f *FakeClient) ListUnseen() ([]uint32, error) {
	f.Calls = append(f.Calls, "search")
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	return f.Unseen, nil
}

func (f *FakeClient) FetchMessage(id uint32) (*imap.Message, error) {
	f.Calls = append(f.Calls, "fetch")
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	raw, ok := f.Messages[id]
	if !ok {
		return nil, fmt.Errorf("no message retrieved for id %d", id)
	}
	return NewMessage(id, raw), nil
}

func (f *FakeClient) Close() error {
	f.Calls = append(f.Calls, "close")
	f.Closed = true
	return nil
}

// Called reports whether op was recorded at least once.
func (f *FakeClient) Called(op string) bool {
	for _, c := range f.Calls {
		if c == op {
			return true
		}
	}
	return false
}

// NewMessage wraps raw as the BODY[] section of a fetched message.
func NewMessage(id uint32, raw []byte) *imap.Message {
	section := &imap.BodySectionName{}
	msg := imap.NewMessage(id, []imap.FetchItem{section.FetchItem()})
	msg.Body[section] = bytes.NewBuffer(raw)
	return msg
}
