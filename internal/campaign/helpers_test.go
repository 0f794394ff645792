package campaign

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/hr-outreach/internal/compose"
	"github.com/jonathan/hr-outreach/internal/mailer"
	"github.com/jonathan/hr-outreach/internal/types"
)

const testBody = "<p>Dear {hr_name} at {company_name},</p><p>{candidate_name} {phone_number} {email_address}</p>"

// monday is 2026-10-12, a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2026, time.October, 12, hour, minute, 0, 0, time.UTC)
}

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

type fakeTransport struct {
	connectFailures int
	connects        int
	closed          bool
	failFor         map[string]bool
	sent            []string
}

func (f *fakeTransport) Connect(context.Context) error {
	f.connects++
	if f.connectFailures > 0 {
		f.connectFailures--
		return errors.New("dial tcp: connection refused")
	}
	return nil
}

func (f *fakeTransport) Send(_ context.Context, env mailer.Envelope) error {
	to := env.To[0]
	if f.failFor[to] {
		return &mailer.TransportError{Op: "send", Attempt: 1, Cause: errors.New("550 mailbox unavailable")}
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

type memStore struct {
	entries   []types.SentEntry
	appendErr error
}

func (m *memStore) Entries(context.Context) ([]types.SentEntry, error) {
	return append([]types.SentEntry(nil), m.entries...), nil
}

func (m *memStore) Append(_ context.Context, e types.SentEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memStore) Close() error { return nil }

type harness struct {
	clock     *fakeClock
	transport *fakeTransport
	store     *memStore
	sender    *Sender
	tpl       *compose.Template
}

func newHarness(t *testing.T, now time.Time, opts Options, seeded ...types.SentEntry) *harness {
	t.Helper()
	h := &harness{
		clock:     &fakeClock{now: now},
		transport: &fakeTransport{failFor: map[string]bool{}},
		store:     &memStore{entries: seeded},
	}
	if opts.From == "" {
		opts.From = "jo@dev.io"
	}
	if opts.Profile.CandidateName == "" {
		opts.Profile = types.Profile{CandidateName: "Jo Dev", PhoneNumber: "+919876543210", EmailAddress: "jo@dev.io"}
	}
	tpl, err := compose.Parse(testBody, "")
	require.NoError(t, err)
	h.tpl = tpl

	s, err := NewSender(context.Background(), opts, Deps{
		Transport: h.transport,
		Store:     h.store,
		Clock:     h.clock,
		Sleep:     h.clock.sleep,
		Rand:      fixedRand(0.5),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	h.sender = s
	return h
}

func contactList(emails ...string) []types.Contact {
	out := make([]types.Contact, 0, len(emails))
	for _, e := range emails {
		out = append(out, types.Contact{Name: "HR " + e, Title: types.DefaultTitle, Company: "Acme", Email: e})
	}
	return out
}

func sentAt(email string, ts time.Time) types.SentEntry {
	return types.SentEntry{Timestamp: ts, Email: email}
}
