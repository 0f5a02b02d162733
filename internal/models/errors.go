package models

import "fmt"

// ConnectionError reports an unreachable server or a rejected login.
type ConnectionError struct {
	Server string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Server, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// FetchError reports a failed mailbox select, search or fetch.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports a malformed message. The decoder recovers from it with an empty body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PersistError reports a failed ticket write.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("saving ticket: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
