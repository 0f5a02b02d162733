package imap

import "mail-ticket-poller/internal/models"

// FindLatestUnread selects mailbox and returns the unseen message that sorts last in the
// server's search response. found is false, with a nil error, when nothing is unseen.
//
// Only one message is returned per call. Older unseen messages are left for later cycles
// and may never be picked while newer mail keeps arriving.
func FindLatestUnread(c Client, mailbox string) (id uint32, found bool, err error) {
	if err := c.SelectMailbox(mailbox); err != nil {
		return 0, false, &models.FetchError{Op: "select " + mailbox, Err: err}
	}

	ids, err := c.ListUnseen()
	if err != nil {
		return 0, false, &models.FetchError{Op: "search unseen", Err: err}
	}

	if len(ids) == 0 {
		return 0, false, nil
	}

	return ids[len(ids)-1], true, nil
}
