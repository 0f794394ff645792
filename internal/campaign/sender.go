// Package campaign paces personalized outreach sends under a daily quota,
// an optional business-hours window and transport retry with backoff.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jonathan/hr-outreach/internal/compose"
	"github.com/jonathan/hr-outreach/internal/mailer"
	"github.com/jonathan/hr-outreach/internal/sentlog"
	"github.com/jonathan/hr-outreach/internal/types"
)

// Phase is the sender's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseConnecting
	PhaseSending
	PhaseWaiting
	PhaseDailyLimitReached
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConnecting:
		return "connecting"
	case PhaseSending:
		return "sending"
	case PhaseWaiting:
		return "waiting"
	case PhaseDailyLimitReached:
		return "daily-limit-reached"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Options configures a Sender.
type Options struct {
	From       string
	Profile    types.Profile
	Attachment *compose.Attachment
	DailyLimit int
	Delay      DelayPolicy
	// Window gates sends; nil sends at any time.
	Window *Window

	ConnectAttempts int
	BackoffInitial  time.Duration
	BackoffMax      time.Duration
	BackoffJitter   float64
	// FailureBackoff is the pause after a failed send in continuous mode.
	FailureBackoff time.Duration

	RunID string
}

func (o Options) withDefaults() Options {
	if o.DailyLimit <= 0 {
		o.DailyLimit = 500
	}
	if o.Delay == nil {
		o.Delay = BoundedRandom{Min: 30 * time.Second, Max: 120 * time.Second}
	}
	if o.ConnectAttempts <= 0 {
		o.ConnectAttempts = 3
	}
	if o.BackoffInitial <= 0 {
		o.BackoffInitial = 60 * time.Second
	}
	if o.BackoffMax <= 0 {
		o.BackoffMax = 300 * time.Second
	}
	if o.FailureBackoff <= 0 {
		o.FailureBackoff = 5 * time.Minute
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	return o
}

// Deps are the collaborators of a Sender. Nil Clock, Sleep, Rand and Logger
// fall back to the system clock, a timer sleep, math/rand and slog.Default.
type Deps struct {
	Transport mailer.Transport
	Store     sentlog.Store
	Clock     Clock
	Sleep     Sleeper
	Rand      Rand
	Logger    *slog.Logger
}

// Outcome describes one successful send.
type Outcome struct {
	Contact types.Contact
	Subject string
	SentAt  time.Time
	// Delay is the pause the caller should take before the next send.
	Delay time.Duration
	// LogErr is set when the message went out but could not be recorded.
	LogErr error
}

// Sender owns the per-day counters and the exclusion set for one process.
type Sender struct {
	opts Options
	deps Deps

	phase     Phase
	day       string
	sentToday int
	sent      map[string]struct{}

	waitNotice rate.Sometimes
}

// NewSender loads the sent log to seed today's count and the exclusion set.
func NewSender(ctx context.Context, opts Options, deps Deps) (*Sender, error) {
	if deps.Transport == nil || deps.Store == nil {
		return nil, errors.New("campaign: transport and store are required")
	}
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}
	if deps.Sleep == nil {
		deps.Sleep = SleepContext
	}
	if deps.Rand == nil {
		deps.Rand = globalRand{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	entries, err := deps.Store.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sent log: %w", err)
	}

	now := deps.Clock.Now()
	s := &Sender{
		opts:       opts.withDefaults(),
		deps:       deps,
		day:        now.Format(time.DateOnly),
		sentToday:  sentlog.CountOn(entries, now),
		sent:       sentlog.ExclusionSet(entries),
		waitNotice: rate.Sometimes{First: 1, Interval: 10 * time.Minute},
	}
	return s, nil
}

// Phase returns the current state.
func (s *Sender) Phase() Phase { return s.phase }

// SentToday returns the number of sends counted for the current day.
func (s *Sender) SentToday() int { return s.sentToday }

// DailyLimit returns the configured quota.
func (s *Sender) DailyLimit() int { return s.opts.DailyLimit }

// RunID identifies this process in logs and sent-log entries.
func (s *Sender) RunID() string { return s.opts.RunID }

// rollover resets the daily counter when the calendar day changes.
func (s *Sender) rollover(now time.Time) {
	day := now.Format(time.DateOnly)
	if day == s.day {
		return
	}
	s.deps.Logger.Info("campaign.day.rollover", "previous", s.day, "day", day, "sent_previous", s.sentToday)
	s.day = day
	s.sentToday = 0
	if s.phase == PhaseDailyLimitReached {
		s.phase = PhaseIdle
	}
}

// Unsent returns contacts not yet in the exclusion set, without repeats.
func (s *Sender) Unsent(contacts []types.Contact) []types.Contact {
	seen := make(map[string]struct{}, len(contacts))
	out := make([]types.Contact, 0, len(contacts))
	for _, c := range contacts {
		key := c.EmailKey()
		if _, ok := s.sent[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// SendOne sends one personalized message. It refuses without touching the
// transport when the daily limit is reached or the window is closed. After a
// successful send the entry is appended to the log before anything else.
func (s *Sender) SendOne(ctx context.Context, c types.Contact, tpl *compose.Template) (Outcome, error) {
	now := s.deps.Clock.Now()
	s.rollover(now)

	if s.sentToday >= s.opts.DailyLimit {
		s.phase = PhaseDailyLimitReached
		return Outcome{}, ErrDailyLimitReached
	}
	if w := s.opts.Window; w != nil && !w.Open(now) {
		return Outcome{}, ErrOutsideWindow
	}
	if _, ok := s.sent[c.EmailKey()]; ok {
		return Outcome{}, ErrAlreadySent
	}

	msg, err := tpl.Personalize(c, s.opts.Profile)
	if err != nil {
		return Outcome{}, fmt.Errorf("personalize %s: %w", c.Email, err)
	}
	data, err := compose.BuildMIME(compose.Header{
		From:      s.opts.From,
		FromName:  s.opts.Profile.CandidateName,
		To:        c.Email,
		Date:      now,
		MessageID: messageID(s.opts.From),
	}, msg, s.opts.Attachment)
	if err != nil {
		return Outcome{}, fmt.Errorf("encode message for %s: %w", c.Email, err)
	}

	if err := s.connect(ctx); err != nil {
		s.phase = PhaseIdle
		return Outcome{}, err
	}

	s.phase = PhaseSending
	env := mailer.Envelope{From: s.opts.From, To: []string{c.Email}, Data: data}
	if err := s.deps.Transport.Send(ctx, env); err != nil {
		s.phase = PhaseIdle
		return Outcome{}, err
	}

	sentAt := s.deps.Clock.Now()
	out := Outcome{Contact: c, Subject: msg.Subject, SentAt: sentAt}
	entry := types.SentEntry{
		Timestamp: sentAt,
		Email:     c.Email,
		Company:   c.Company,
		HRName:    c.Name,
		Subject:   msg.Subject,
		RunID:     s.opts.RunID,
	}
	if err := s.deps.Store.Append(ctx, entry); err != nil {
		out.LogErr = err
		s.deps.Logger.Error("campaign.sentlog.append_failed", "email", c.Email, "error", err)
	}

	s.sent[c.EmailKey()] = struct{}{}
	s.sentToday++
	s.phase = PhaseIdle
	out.Delay = s.opts.Delay.Next(sentAt, s.sentToday, s.opts.DailyLimit, s.deps.Rand)

	s.deps.Logger.Info("campaign.send.ok",
		"email", c.Email,
		"company", c.Company,
		"sent_today", s.sentToday,
		"daily_limit", s.opts.DailyLimit,
		"next_delay", out.Delay.String(),
	)
	return out, nil
}

// connect brings up the transport, retrying with exponential backoff.
func (s *Sender) connect(ctx context.Context) error {
	s.phase = PhaseConnecting
	var lastErr error
	for attempt := 1; attempt <= s.opts.ConnectAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.deps.Transport.Connect(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		s.deps.Logger.Warn("campaign.connect.failed", "attempt", attempt, "max_attempts", s.opts.ConnectAttempts, "error", err)
		if attempt == s.opts.ConnectAttempts {
			break
		}

		wait := backoffDelay(s.opts.BackoffInitial, s.opts.BackoffMax, s.opts.BackoffJitter, attempt, s.deps.Rand)
		if err := s.deps.Sleep(ctx, wait); err != nil {
			return err
		}
	}
	return &mailer.TransportError{Op: "connect", Attempt: s.opts.ConnectAttempts, Cause: lastErr}
}

// wait pauses in PhaseWaiting. Notices for long waits are throttled.
func (s *Sender) wait(ctx context.Context, d time.Duration, reason string) error {
	if d <= 0 {
		return ctx.Err()
	}
	prev := s.phase
	s.phase = PhaseWaiting
	s.waitNotice.Do(func() {
		s.deps.Logger.Info("campaign.wait", "reason", reason, "duration", d.String(),
			"resume_at", s.deps.Clock.Now().Add(d).Format(time.RFC3339))
	})
	err := s.deps.Sleep(ctx, d)
	if prev == PhaseDailyLimitReached {
		s.phase = prev
	} else {
		s.phase = PhaseIdle
	}
	return err
}

// Close shuts down the transport. Entries already appended are kept.
func (s *Sender) Close() error {
	s.phase = PhaseTerminated
	return s.deps.Transport.Close()
}

func messageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
