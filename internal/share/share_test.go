package share

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNative struct {
	err error
	got *Payload
}

func (f *fakeNative) Share(_ context.Context, p Payload) error {
	f.got = &p
	return f.err
}

type fakeClipboard struct {
	err  error
	text string
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestNewPayload(t *testing.T) {
	p := NewPayload("Ada Lovelace", "https://cv.example/ada")
	assert.Equal(t, Payload{Title: "Ada Lovelace's CV", Text: DefaultText, URL: "https://cv.example/ada"}, p)

	assert.Equal(t, "My CV", NewPayload("  ", "").Title)
}

func TestShare(t *testing.T) {
	payload := NewPayload("Ada", "https://cv.example/ada")

	tests := []struct {
		name       string
		native     *fakeNative
		clip       *fakeClipboard
		wantMethod Method
		wantOK     bool
		wantCopied string
	}{
		{"native succeeds", &fakeNative{}, &fakeClipboard{}, MethodNative, true, ""},
		{"native unavailable falls back", &fakeNative{err: ErrShareUnavailable}, &fakeClipboard{}, MethodClipboard, true, "https://cv.example/ada"},
		{"no native target", nil, &fakeClipboard{}, MethodClipboard, true, "https://cv.example/ada"},
		{"native fails without fallback", &fakeNative{err: errors.New("cancelled")}, &fakeClipboard{}, MethodNative, false, ""},
		{"nothing available", nil, &fakeClipboard{err: ErrShareUnavailable}, MethodNone, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var native NativeSharer
			if tt.native != nil {
				native = tt.native
			}
			s := NewSharer(native, tt.clip, zerolog.Nop())

			res := s.Share(context.Background(), payload)

			assert.Equal(t, tt.wantMethod, res.Method)
			assert.Equal(t, tt.wantOK, res.OK)
			assert.NotEmpty(t, res.Notice)
			assert.Equal(t, tt.wantCopied, tt.clip.text)
			if tt.native != nil {
				require.NotNil(t, tt.native.got)
				assert.Equal(t, payload, *tt.native.got)
			}
		})
	}
}

func TestWebhookSharer(t *testing.T) {
	var received Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := NewWebhookSharer(srv.URL).Share(context.Background(), NewPayload("Ada", "https://cv.example/ada"))
	require.NoError(t, err)
	assert.Equal(t, "Ada's CV", received.Title)
}

func TestWebhookSharer_Errors(t *testing.T) {
	assert.ErrorIs(t, NewWebhookSharer("").Share(context.Background(), Payload{}), ErrShareUnavailable)

	var nilSharer *WebhookSharer
	assert.ErrorIs(t, nilSharer.Share(context.Background(), Payload{}), ErrShareUnavailable)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	err := NewWebhookSharer(srv.URL).Share(context.Background(), Payload{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrShareUnavailable)
}
