package emailprocessor

import (
	"context"
	"time"

	"mail-ticket-poller/internal/classifier"
	imapclient "mail-ticket-poller/internal/imap"
	"mail-ticket-poller/internal/logging"
	"mail-ticket-poller/internal/mailparse"
	"mail-ticket-poller/internal/models"
	"mail-ticket-poller/internal/ticketstore"

	"github.com/google/uuid"
)

// SaveTimeout bounds a single ticket insert.
const SaveTimeout = 10 * time.Second

type Processor struct {
	imapClient imapclient.Client
	classifier *classifier.Classifier
	store      ticketstore.Store
	now        func() time.Time
}

// NewProcessor creates a new Processor bound to one mailbox session
func NewProcessor(imapClient imapclient.Client, c *classifier.Classifier, store ticketstore.Store) *Processor {
	return &Processor{
		imapClient: imapClient,
		classifier: c,
		store:      store,
		now:        time.Now,
	}
}

// ProcessEmail orchestrates the complete message workflow:
// fetch → parse → classify → save.
// The error is set alongside ResultFetchFailed and ResultPersistFailed.
func (p *Processor) ProcessEmail(ctx context.Context, id uint32) (models.ProcessResult, error) {
	msg, err := p.imapClient.FetchMessage(id)
	if err != nil {
		return models.ResultFetchFailed, &models.FetchError{Op: "fetch", Err: err}
	}

	email, err := mailparse.Parse(msg)
	email.TraceID = uuid.New().String()

	locallog := logging.Log.WithField("trace_id", email.TraceID)

	if err != nil {
		locallog.WithError(err).Warnf("Message %d could not be fully decoded, continuing with empty body", id)
	}

	keyword, ok := p.classifier.Classify(email.Subject, email.BodyText)
	if !ok {
		locallog.Infof("No keywords found in email: %s", email.Subject)
		return models.ResultNoKeyword, nil
	}
	locallog.Debugf("Message %d matched keyword %q", id, keyword)

	ticket := &models.Ticket{
		Subject: email.Subject,
		Sender:  email.From,
		Date:    p.now(),
		Content: email.BodyText,
	}

	// The message is already flagged \Seen by the fetch; shutdown must not drop it here.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SaveTimeout)
	defer cancel()

	if err := p.store.Save(saveCtx, ticket); err != nil {
		return models.ResultPersistFailed, err
	}

	locallog.Infof("Ticket saved: %s", ticket.Subject)
	return models.ResultTicketSaved, nil
}
