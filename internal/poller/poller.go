// Package poller runs the connect → locate → process → disconnect cycle on a fixed interval.
package poller

import (
	"context"
	"time"

	"mail-ticket-poller/internal/classifier"
	"mail-ticket-poller/internal/emailprocessor"
	imapclient "mail-ticket-poller/internal/imap"
	"mail-ticket-poller/internal/logging"
	"mail-ticket-poller/internal/metrics"
	"mail-ticket-poller/internal/models"
	"mail-ticket-poller/internal/ticketstore"
)

// State is the position of the poller within a cycle.
type State int

const (
	Idle State = iota
	Connecting
	Fetching
	Processing
	Sleeping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Fetching:
		return "fetching"
	case Processing:
		return "processing"
	case Sleeping:
		return "sleeping"
	}
	return "unknown"
}

// Poller is strictly sequential: one cycle at a time, at most one message per cycle.
type Poller struct {
	cfg        models.EmailConfig
	newClient  func() imapclient.Client
	classifier *classifier.Classifier
	store      ticketstore.Store

	state   State
	sleep   func(ctx context.Context, d time.Duration) error
	onState func(State)
}

// New creates a Poller. newClient is called once per cycle for a fresh session.
func New(cfg models.EmailConfig, newClient func() imapclient.Client, c *classifier.Classifier, store ticketstore.Store) *Poller {
	return &Poller{
		cfg:        cfg,
		newClient:  newClient,
		classifier: c,
		store:      store,
		state:      Idle,
		sleep:      sleepContext,
	}
}

func (p *Poller) State() State {
	return p.state
}

func (p *Poller) setState(s State) {
	logging.Log.Debugf("Poller state %s -> %s", p.state, s)
	p.state = s
	if p.onState != nil {
		p.onState(s)
	}
}

// Run repeats cycles until ctx is cancelled. Cancellation is observed while sleeping only;
// a cycle in progress always runs to completion.
func (p *Poller) Run(ctx context.Context) {
	logging.Log.Infof("Starting mailbox polling on %s, checking every %s", p.cfg.Imap, p.cfg.PollInterval)

	for {
		p.RunCycle(ctx)

		p.setState(Sleeping)
		logging.Log.Infof("Waiting %s before checking again...", p.cfg.PollInterval)
		if err := p.sleep(ctx, p.cfg.PollInterval); err != nil {
			p.setState(Idle)
			logging.Log.Info("Polling stopped")
			return
		}
	}
}

// RunCycle performs one connect → locate → process → logout pass. Errors never escape;
// they are logged and reported through the returned result.
func (p *Poller) RunCycle(ctx context.Context) models.CycleResult {
	start := time.Now()

	result := p.cycle(ctx)

	metrics.CyclesTotal.WithLabelValues(result.String()).Inc()
	metrics.CycleDuration.Observe(time.Since(start).Seconds())
	metrics.LastCycleTimestamp.SetToCurrentTime()

	return result
}

func (p *Poller) cycle(ctx context.Context) models.CycleResult {
	p.setState(Idle)
	p.setState(Connecting)

	client := p.newClient()
	server := imapclient.Address(p.cfg.Imap, p.cfg.Port)

	if err := client.Connect(server); err != nil {
		logging.Log.WithError(err).Error("Error connecting to email server")
		logging.Log.Error("Skipping email check due to connection failure.")
		return models.CycleConnectFailed
	}
	defer func(client imapclient.Client) {
		if err := client.Close(); err != nil {
			logging.Log.WithError(err).Warn("Logout error")
		}
	}(client)

	if err := client.Login(p.cfg.Login, p.cfg.Password); err != nil {
		logging.Log.WithError(err).Error("Login error")
		logging.Log.Error("Skipping email check due to connection failure.")
		return models.CycleConnectFailed
	}
	logging.Log.Info("Connected to the email server successfully.")

	p.setState(Fetching)

	id, found, err := imapclient.FindLatestUnread(client, p.cfg.MailBox)
	if err != nil {
		logging.Log.WithError(err).Error("Error fetching emails")
		return models.CycleFetchFailed
	}
	if !found {
		logging.Log.Info("No new unread emails.")
		return models.CycleNoMail
	}

	p.setState(Processing)

	processor := emailprocessor.NewProcessor(client, p.classifier, p.store)
	result, err := processor.ProcessEmail(ctx, id)
	metrics.MessagesProcessedTotal.WithLabelValues(result.String()).Inc()

	switch result {
	case models.ResultFetchFailed:
		logging.Log.WithError(err).Errorf("Error processing email %d", id)
		return models.CycleFetchFailed
	case models.ResultPersistFailed:
		logging.Log.WithError(err).Error("Error saving ticket")
	}

	return models.CycleProcessed
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
