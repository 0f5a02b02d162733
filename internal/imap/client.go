package imap

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"mail-ticket-poller/internal/models"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

type StandardClient struct {
	client  *client.Client
	server  string
	timeout time.Duration
	dial    func(addr string, cfg *tls.Config) (*client.Client, error)
}

// NewStandardClient creates a new StandardClient with a default timeout of 30 seconds for IMAP operations
func NewStandardClient() *StandardClient {
	return &StandardClient{
		timeout: 30 * time.Second,
		dial:    client.DialTLS,
	}
}

// Address joins host and port into a dialable server address
func Address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Connect establishes a secure connection to the IMAP server using TLS. It returns a ConnectionError if the connection fails.
func (c *StandardClient) Connect(server string) error {
	host, _, err := net.SplitHostPort(server)
	if err != nil {
		host = server
	}

	cl, err := c.dial(server, &tls.Config{ServerName: host})
	if err != nil {
		return &models.ConnectionError{Server: server, Err: err}
	}
	c.client = cl
	c.server = server
	return nil
}

// Login authenticates the user with the IMAP server. A rejected login is reported as a ConnectionError.
func (c *StandardClient) Login(user, password string) error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}
	if err := c.client.Login(user, password); err != nil {
		return &models.ConnectionError{Server: c.server, Err: fmt.Errorf("login as %s: %w", user, err)}
	}
	return nil
}

// SelectMailbox selects the specified mailbox (e.g., "INBOX") in read-write mode.
func (c *StandardClient) SelectMailbox(name string) error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}
	_, err := c.client.Select(name, false)
	return err
}

// ListUnseen returns the sequence numbers of all messages without the \Seen flag, in server order.
func (c *StandardClient) ListUnseen() ([]uint32, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}

	ids, err := c.client.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("error searching for unseen emails: %w", err)
	}

	return ids, nil
}

// FetchMessage retrieves the full message for the given sequence number.
// BODY[] is fetched without PEEK, so most servers flag the message \Seen as a side effect.
func (c *StandardClient) FetchMessage(id uint32) (*imap.Message, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(id)
	section := &imap.BodySectionName{}

	prev := c.client.Timeout
	c.client.Timeout = c.timeout
	defer func() { c.client.Timeout = prev }()

	// Fetch closes the channel; the buffer absorbs unsolicited FETCH updates.
	messages := make(chan *imap.Message, 8)
	if err := c.client.Fetch(seqSet, []imap.FetchItem{section.FetchItem()}, messages); err != nil {
		return nil, fmt.Errorf("error fetching message %d: %w", id, err)
	}

	for msg := range messages {
		if msg.SeqNum == id && msg.GetBody(section) != nil {
			return msg, nil
		}
	}
	return nil, fmt.Errorf("no message retrieved for id %d", id)
}

// Close logs out from the IMAP server. If there is no active connection, it simply returns nil.
func (c *StandardClient) Close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Logout()
	c.client = nil
	return err
}
