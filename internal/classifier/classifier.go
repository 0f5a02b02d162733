// Package classifier decides whether a message is a support request.
package classifier

import "strings"

// DefaultKeywords are Spanish support-request terms.
var DefaultKeywords = []string{
	"consulta",
	"pregunta",
	"duda",
	"ayuda",
	"información",
	"asistencia",
	"requerimiento",
}

type Classifier struct {
	keywords []string
}

// New creates a Classifier matching any of keywords, case-insensitively.
// Blank keywords are ignored.
func New(keywords []string) *Classifier {
	c := &Classifier{}
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			c.keywords = append(c.keywords, k)
		}
	}
	return c
}

// Classify returns the first keyword found as a substring of subject or body.
func (c *Classifier) Classify(subject, body string) (string, bool) {
	subject = strings.ToLower(subject)
	body = strings.ToLower(body)

	for _, k := range c.keywords {
		if strings.Contains(subject, k) || strings.Contains(body, k) {
			return k, true
		}
	}
	return "", false
}

func (c *Classifier) Matches(subject, body string) bool {
	_, ok := c.Classify(subject, body)
	return ok
}

// Keywords returns the normalized keyword list.
func (c *Classifier) Keywords() []string {
	return append([]string(nil), c.keywords...)
}
