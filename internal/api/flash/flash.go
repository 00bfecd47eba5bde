// Package flash carries one-shot user-facing messages across the
// redirect boundary in a signed cookie. There is no server-side session
// store; the session secret only authenticates the cookie content.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
)

const cookieName = "flash"

// Levels mirror the message categories shown on the dashboard.
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Message is a one-shot notice for the next rendered page.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Codec signs and verifies flash cookies with HMAC-SHA256.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec from the configured session secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (c *Codec) sign(payload []byte) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Set attaches a flash message to the response.
func (c *Codec) Set(w http.ResponseWriter, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded + "." + c.sign(payload),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// Pop reads and clears the flash message on the request, if any.
// Unsigned or tampered cookies are discarded.
func (c *Codec) Pop(w http.ResponseWriter, r *http.Request) (Message, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return Message{}, false
	}

	c.clear(w)

	value := cookie.Value
	sep := -1
	for i := len(value) - 1; i >= 0; i-- {
		if value[i] == '.' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return Message{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(value[:sep])
	if err != nil {
		return Message{}, false
	}
	if !hmac.Equal([]byte(c.sign(payload)), []byte(value[sep+1:])) {
		return Message{}, false
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, false
	}
	return msg, true
}

func (c *Codec) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
