package mailparse

import (
	"errors"
	"io"
	"mime"
	"strings"

	"mail-ticket-poller/internal/models"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-message"
	"github.com/emersion/go-message/charset"
)

var wordDecoder = &mime.WordDecoder{CharsetReader: charset.Reader}

// Parse decodes the BODY[] section of a fetched message.
func Parse(msg *imap.Message) (*models.Email, error) {
	section := &imap.BodySectionName{}
	r := msg.GetBody(section)
	if r == nil {
		return &models.Email{ID: msg.SeqNum}, &models.DecodeError{Err: errors.New("message body could not be retrieved")}
	}

	email, err := Decode(r)
	email.ID = msg.SeqNum
	return email, err
}

// Decode parses a raw RFC 5322 message into subject, sender and plain-text body.
// The returned Email is never nil. A non-nil error is a DecodeError the decoder
// already recovered from: the body is empty and headers may be missing.
func Decode(r io.Reader) (*models.Email, error) {
	email := &models.Email{}

	entity, err := message.Read(r)
	if entity == nil {
		return email, &models.DecodeError{Err: err}
	}

	email.Subject = DecodeHeader(entity.Header.Get("Subject"))
	email.From = DecodeHeader(entity.Header.Get("From"))

	// Unknown charsets and transfer encodings leave the raw payload readable.
	if err != nil && !isRecoverable(err) {
		return email, &models.DecodeError{Err: err}
	}

	body, err := extractText(entity)
	if err != nil {
		return email, &models.DecodeError{Err: err}
	}
	email.BodyText = body

	return email, nil
}

// DecodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to plain text.
// Undecodable input is returned as-is with invalid UTF-8 replaced.
func DecodeHeader(encoded string) string {
	decoded, err := wordDecoder.DecodeHeader(encoded)
	if err != nil {
		return toValidUTF8(encoded)
	}
	return toValidUTF8(decoded)
}

// extractText returns the first inline text/plain part of a multipart entity,
// or the whole payload of a single-part one.
func extractText(e *message.Entity) (string, error) {
	if mr := e.MultipartReader(); mr != nil {
		text, _, err := firstPlainPart(mr)
		return text, err
	}
	return readBody(e.Body)
}

// firstPlainPart walks parts depth-first, in document order.
func firstPlainPart(mr message.MultipartReader) (string, bool, error) {
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return "", false, nil
		} else if err != nil && (p == nil || !isRecoverable(err)) {
			return "", false, err
		}

		if nested := p.MultipartReader(); nested != nil {
			text, found, err := firstPlainPart(nested)
			if err != nil || found {
				return text, found, err
			}
			continue
		}

		if isInlinePlainText(p.Header) {
			text, err := readBody(p.Body)
			return text, true, err
		}
	}
}

func isInlinePlainText(h message.Header) bool {
	if mediaType(h) != "text/plain" {
		return false
	}
	return !strings.Contains(strings.ToLower(h.Get("Content-Disposition")), "attachment")
}

// mediaType defaults to text/plain and tolerates malformed parameters.
func mediaType(h message.Header) string {
	raw := h.Get("Content-Type")
	if raw == "" {
		return "text/plain"
	}
	if t, _, err := h.ContentType(); err == nil {
		return t
	}
	t, _, _ := strings.Cut(raw, ";")
	return strings.ToLower(strings.TrimSpace(t))
}

func isRecoverable(err error) bool {
	return message.IsUnknownCharset(err) || message.IsUnknownEncoding(err)
}

func readBody(r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return toValidUTF8(string(body)), nil
}

func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}
