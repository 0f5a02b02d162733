package imap

import (
	"github.com/emersion/go-imap"
)

// Client is the session-scoped view of a mailbox. Message ids returned by
// ListUnseen are only valid inside the session that produced them.
type Client interface {
	Connect(server string) error
	Login(user, password string) error
	SelectMailbox(name string) error
	ListUnseen() ([]uint32, error)
	FetchMessage(id uint32) (*imap.Message, error)
	Close() error
}
