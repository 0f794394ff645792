package campaign

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jonathan/hr-outreach/internal/compose"
	"github.com/jonathan/hr-outreach/internal/types"
)

// Failure records a contact whose send failed.
type Failure struct {
	Email string
	Err   error
}

// BatchReport summarizes a run.
type BatchReport struct {
	RunID        string
	Queued       int
	Sent         int
	Failed       int
	Failures     []Failure
	LogErrors    int
	LimitReached bool
	WindowWaits  int
	NoOpenWindow bool
	Cancelled    bool
	SentToday    int
	DailyLimit   int
	Duration     time.Duration
}

func (r *BatchReport) absorb(o BatchReport) {
	r.Queued += o.Queued
	r.Sent += o.Sent
	r.Failed += o.Failed
	r.Failures = append(r.Failures, o.Failures...)
	r.LogErrors += o.LogErrors
	r.LimitReached = r.LimitReached || o.LimitReached
	r.WindowWaits += o.WindowWaits
	r.NoOpenWindow = r.NoOpenWindow || o.NoOpenWindow
	r.Cancelled = r.Cancelled || o.Cancelled
}

func (s *Sender) newReport() BatchReport {
	return BatchReport{RunID: s.opts.RunID, DailyLimit: s.opts.DailyLimit}
}

func (s *Sender) finish(r *BatchReport, started time.Time) {
	r.SentToday = s.sentToday
	r.Duration = s.deps.Clock.Now().Sub(started)
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// RunBatch sends to at most n unsent contacts in order. Failures are recorded
// and the batch continues. Outside the window it waits for the next open
// period and retries the same contact. It stops once the quota left at entry
// is spent, on cancellation, or when the window never opens. No delay follows
// the last send.
func (s *Sender) RunBatch(ctx context.Context, contacts []types.Contact, tpl *compose.Template, n int) (report BatchReport) {
	started := s.deps.Clock.Now()
	report = s.newReport()
	defer s.finish(&report, started)

	s.rollover(started)
	budget := s.opts.DailyLimit - s.sentToday

	queue := s.Unsent(contacts)
	if n > 0 && len(queue) > n {
		queue = queue[:n]
	}
	report.Queued = len(queue)
	s.deps.Logger.Info("campaign.batch.start", "run_id", s.opts.RunID, "queued", len(queue),
		"sent_today", s.sentToday, "daily_limit", s.opts.DailyLimit)

	if budget <= 0 && len(queue) > 0 {
		s.limitReached(&report)
		return report
	}

	for i := 0; i < len(queue); {
		c := queue[i]
		out, err := s.SendOne(ctx, c, tpl)
		switch {
		case err == nil:
			i++
			report.Sent++
			if out.LogErr != nil {
				report.LogErrors++
			}
			if report.Sent >= budget {
				if i < len(queue) {
					s.limitReached(&report)
				}
				return report
			}
			if i < len(queue) {
				if err := s.wait(ctx, out.Delay, "pacing"); err != nil {
					report.Cancelled = true
					return report
				}
			}
		case errors.Is(err, ErrDailyLimitReached):
			s.limitReached(&report)
			return report
		case errors.Is(err, ErrOutsideWindow):
			report.WindowWaits++
			if err := s.waitForWindow(ctx); err != nil {
				report.Cancelled = isCancel(err)
				report.NoOpenWindow = errors.Is(err, ErrNoOpenWindow)
				return report
			}
		case errors.Is(err, ErrAlreadySent):
			i++
		case isCancel(err):
			report.Cancelled = true
			return report
		default:
			i++
			report.Failed++
			report.Failures = append(report.Failures, Failure{Email: c.Email, Err: err})
			s.deps.Logger.Error("campaign.send.failed", "email", c.Email, "error", err)
		}
	}
	return report
}

func (s *Sender) limitReached(r *BatchReport) {
	r.LimitReached = true
	s.deps.Logger.Info("campaign.limit.reached", "sent_today", s.sentToday, "daily_limit", s.opts.DailyLimit)
}

// waitForWindow sleeps until the window next opens.
func (s *Sender) waitForWindow(ctx context.Context) error {
	now := s.deps.Clock.Now()
	next, ok := s.opts.Window.NextOpen(now)
	if !ok {
		s.deps.Logger.Error("campaign.window.never_open", "now", now.Format(time.RFC3339))
		return ErrNoOpenWindow
	}
	s.deps.Logger.Info("campaign.window.closed", "now", now.Format(time.RFC3339), "opens_at", next.Format(time.RFC3339))
	return s.wait(ctx, next.Sub(now), "outside-window")
}

// RunContinuous sends until every contact has been attempted. It sleeps to the
// next day at the daily limit and to the next open period outside the window.
// A contact that fails is not retried in this run. It returns nil once nothing
// is left, ctx.Err() when cancelled and ErrNoOpenWindow when the window never
// opens.
func (s *Sender) RunContinuous(ctx context.Context, contacts []types.Contact, tpl *compose.Template) (report BatchReport, err error) {
	started := s.deps.Clock.Now()
	report = s.newReport()
	defer s.finish(&report, started)

	failed := make(map[string]struct{})
	report.Queued = len(s.Unsent(contacts))

	for {
		pending := s.pending(contacts, failed)
		if len(pending) == 0 {
			s.deps.Logger.Info("campaign.continuous.done", "sent", report.Sent, "failed", report.Failed)
			return report, nil
		}
		c := pending[0]

		out, err := s.SendOne(ctx, c, tpl)
		var waitFor time.Duration
		reason := "pacing"
		switch {
		case err == nil:
			report.Sent++
			if out.LogErr != nil {
				report.LogErrors++
			}
			if len(pending) == 1 {
				continue
			}
			waitFor = out.Delay
		case errors.Is(err, ErrDailyLimitReached):
			report.LimitReached = true
			waitFor, reason = UntilNextDay(s.deps.Clock.Now()), "daily-limit"
		case errors.Is(err, ErrOutsideWindow):
			report.WindowWaits++
			if err := s.waitForWindow(ctx); err != nil {
				report.Cancelled = isCancel(err)
				report.NoOpenWindow = errors.Is(err, ErrNoOpenWindow)
				return report, err
			}
			continue
		case errors.Is(err, ErrAlreadySent):
			continue
		case isCancel(err):
			report.Cancelled = true
			return report, err
		default:
			report.Failed++
			report.Failures = append(report.Failures, Failure{Email: c.Email, Err: err})
			failed[c.EmailKey()] = struct{}{}
			s.deps.Logger.Error("campaign.send.failed", "email", c.Email, "error", err)
			waitFor, reason = s.opts.FailureBackoff, "failure-backoff"
		}

		if err := s.wait(ctx, waitFor, reason); err != nil {
			report.Cancelled = true
			return report, err
		}
	}
}

// RunScheduled runs a batch of perSlot sends at each slot, given as offsets
// from local midnight. Slots on closed days are skipped.
func (s *Sender) RunScheduled(ctx context.Context, contacts []types.Contact, tpl *compose.Template, slots []time.Duration, perSlot int) (report BatchReport, err error) {
	started := s.deps.Clock.Now()
	report = s.newReport()
	defer s.finish(&report, started)

	if len(slots) == 0 {
		return report, errors.New("campaign: no schedule slots")
	}
	ordered := append([]time.Duration(nil), slots...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	var last time.Time
	for {
		if len(s.Unsent(contacts)) == 0 {
			return report, nil
		}
		now := s.deps.Clock.Now()
		next, ok := s.nextSlot(now, last, ordered)
		if !ok {
			return report, errors.New("campaign: no open schedule slot found")
		}
		s.deps.Logger.Info("campaign.schedule.next", "at", next.Format(time.RFC3339), "per_slot", perSlot)
		if err := s.wait(ctx, next.Sub(now), "schedule"); err != nil {
			report.Cancelled = true
			return report, err
		}

		batch := s.RunBatch(ctx, contacts, tpl, perSlot)
		report.absorb(batch)
		if batch.Cancelled {
			return report, ctx.Err()
		}
		last = next
	}
}

// nextSlot finds the first slot at or after now and strictly after last.
func (s *Sender) nextSlot(now, last time.Time, slots []time.Duration) (time.Time, bool) {
	y, m, d := now.Date()
	for i := 0; i < maxLookahead; i++ {
		midnight := time.Date(y, m, d+i, 0, 0, 0, 0, now.Location())
		if w := s.opts.Window; w != nil && w.ClosedDay(midnight) {
			continue
		}
		for _, off := range slots {
			cand := midnight.Add(off)
			if cand.Before(now) || !cand.After(last) {
				continue
			}
			return cand, true
		}
	}
	return time.Time{}, false
}

func (s *Sender) pending(contacts []types.Contact, failed map[string]struct{}) []types.Contact {
	unsent := s.Unsent(contacts)
	out := unsent[:0]
	for _, c := range unsent {
		if _, ok := failed[c.EmailKey()]; !ok {
			out = append(out, c)
		}
	}
	return out
}
