// Package chat fabricates assistant replies. Replies are a pure function of
// the message, the requested persona, and the sender's plan tier; nothing is
// stored.
package chat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyMessage indicates a chat request without message content.
var ErrEmptyMessage = errors.New("chat: empty message")

// DefaultPersona is used when the request does not name one.
const DefaultPersona = "Arkadaş"

// tierStyles vary the canned reply by plan id. Unknown plans fall back to the
// free style.
var tierStyles = map[string]string{
	"free": "kısa demo yanıt",
	"pro":  "öncelikli demo yanıt",
	"team": "takım modunda demo yanıt",
}

// Reply synthesizes a canned assistant reply.
func Reply(message, persona, plan string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	persona = strings.TrimSpace(persona)
	if persona == "" {
		persona = DefaultPersona
	}

	style, ok := tierStyles[plan]
	if !ok {
		style = tierStyles["free"]
	}
	return fmt.Sprintf("%s modu: Mesajını aldım — %s.", capitalize(persona), style), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
