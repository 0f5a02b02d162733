package models

// ProcessResult represents the outcome of processing a single message
type ProcessResult int

const (
	ResultFetchFailed ProcessResult = iota
	ResultNoKeyword
	ResultTicketSaved
	ResultPersistFailed
)

func (r ProcessResult) String() string {
	switch r {
	case ResultFetchFailed:
		return "fetch_failed"
	case ResultNoKeyword:
		return "no_keyword"
	case ResultTicketSaved:
		return "ticket_saved"
	case ResultPersistFailed:
		return "persist_failed"
	}
	return "unknown"
}

// CycleResult represents the outcome of one polling cycle
type CycleResult int

const (
	CycleConnectFailed CycleResult = iota
	CycleFetchFailed
	CycleNoMail
	CycleProcessed
)

func (r CycleResult) String() string {
	switch r {
	case CycleConnectFailed:
		return "connect_failed"
	case CycleFetchFailed:
		return "fetch_failed"
	case CycleNoMail:
		return "no_mail"
	case CycleProcessed:
		return "processed"
	}
	return "unknown"
}
