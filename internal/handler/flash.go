package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
)

// flashCookieName is the cookie carrying a one-time notice across a redirect.
const flashCookieName = "portfolio_flash"

const flashMaxAge = 600 // seconds

// NoticeKind classifies how a notice is presented.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-time status message shown on the next rendered page.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// Flash stores notices in a signed cookie that is cleared on first read.
type Flash struct {
	codec *securecookie.SecureCookie
}

// NewFlash creates a Flash signing cookies with hashKey (32 or 64 bytes recommended).
func NewFlash(hashKey []byte) *Flash {
	codec := securecookie.New(hashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(flashMaxAge)
	return &Flash{codec: codec}
}

// Write stores n for the next page render. Invalid notices are dropped.
func (f *Flash) Write(w http.ResponseWriter, r *http.Request, n Notice) {
	n, ok := normalizeNotice(n)
	if !ok {
		return
	}
	value, err := f.codec.Encode(flashCookieName, n)
	if err != nil {
		slog.ErrorContext(r.Context(), "encode flash cookie", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
// A cookie that fails verification is cleared and ignored.
func (f *Flash) ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return Notice{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})

	var n Notice
	if err := f.codec.Decode(flashCookieName, cookie.Value, &n); err != nil {
		return Notice{}, false
	}
	return normalizeNotice(n)
}

func normalizeNotice(n Notice) (Notice, bool) {
	n.Text = strings.TrimSpace(n.Text)
	if n.Text == "" {
		return Notice{}, false
	}
	switch n.Kind {
	case NoticeSuccess, NoticeWarning, NoticeError:
		return n, true
	default:
		return Notice{}, false
	}
}

func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
