// Package share hands a link to the CV to a native share target, falling
// back to the clipboard.
package share

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

// ErrShareUnavailable means a share target is not present. It triggers the
// next fallback and is not reported as a failure.
var ErrShareUnavailable = errors.New("share target unavailable")

// DefaultText is the message body of every share.
const DefaultText = "Check out my professional CV"

// Notices shown after a share attempt.
const (
	NoticeShared    = "CV shared successfully!"
	NoticeCopied    = "CV URL copied to clipboard!"
	NoticeCancelled = "Sharing failed. Please try again."
	NoticeNoTarget  = "Sharing is not available here. Copy the link manually."
)

// Payload is what gets shared.
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// NewPayload builds the share payload for a CV owner.
func NewPayload(fullName, url string) Payload {
	title := "My CV"
	if name := strings.TrimSpace(fullName); name != "" {
		title = name + "'s CV"
	}
	return Payload{Title: title, Text: DefaultText, URL: url}
}

// Method records how a share was delivered.
type Method string

const (
	MethodNative    Method = "native"
	MethodClipboard Method = "clipboard"
	MethodNone      Method = "none"
)

// Result is the outcome of Share. OK is false when nothing was delivered.
type Result struct {
	Method Method `json:"method"`
	OK     bool   `json:"ok"`
	Notice string `json:"notice"`
}

// NativeSharer delivers a payload to a platform share target.
type NativeSharer interface {
	Share(ctx context.Context, p Payload) error
}

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Sharer tries the native target first, then the clipboard.
type Sharer struct {
	native NativeSharer
	clip   Clipboard
	log    zerolog.Logger
}

// NewSharer creates a sharer. Either target may be nil.
func NewSharer(native NativeSharer, clip Clipboard, log zerolog.Logger) *Sharer {
	return &Sharer{native: native, clip: clip, log: log}
}

// Share never fails; problems are logged and reported through Result.
func (s *Sharer) Share(ctx context.Context, p Payload) Result {
	if s.native != nil {
		err := s.native.Share(ctx, p)
		switch {
		case err == nil:
			s.log.Info().Str("method", string(MethodNative)).Str("url", p.URL).Msg("shared CV")
			return Result{Method: MethodNative, OK: true, Notice: NoticeShared}
		case errors.Is(err, ErrShareUnavailable):
			s.log.Debug().Msg("native share unavailable, falling back to clipboard")
		default:
			// A native target that exists but fails does not fall back.
			s.log.Warn().Err(err).Msg("native share failed")
			return Result{Method: MethodNative, OK: false, Notice: NoticeCancelled}
		}
	}

	if s.clip != nil {
		err := s.clip.WriteAll(p.URL)
		if err == nil {
			s.log.Info().Str("method", string(MethodClipboard)).Str("url", p.URL).Msg("copied CV link")
			return Result{Method: MethodClipboard, OK: true, Notice: NoticeCopied}
		}
		s.log.Warn().Err(err).Msg("clipboard write failed")
	}

	return Result{Method: MethodNone, OK: false, Notice: NoticeNoTarget}
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrShareUnavailable
	}
	return clipboard.WriteAll(text)
}

// WebhookSharer posts the payload as JSON to a configured endpoint.
type WebhookSharer struct {
	URL    string
	Client *http.Client
}

// NewWebhookSharer returns a sharer posting to url with a short timeout.
func NewWebhookSharer(url string) *WebhookSharer {
	return &WebhookSharer{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (w *WebhookSharer) Share(ctx context.Context, p Payload) error {
	if w == nil || w.URL == "" {
		return ErrShareUnavailable
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode share payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build share request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("share request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("share endpoint returned %s", resp.Status)
	}
	return nil
}
