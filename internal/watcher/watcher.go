// Package watcher runs the public IP change detection workflow:
// read the previous observation, resolve the current address,
// append it to the history and classify what happened.
package watcher

import (
	"context"
	"net/netip"
	"strconv"
	"time"

	"github.com/qdm12/ipget/internal/models"
)

type Database interface {
	Insert(ctx context.Context, t time.Time, address netip.Addr) (id int64, err error)
	SelectLatest(ctx context.Context) (observation models.Observation, ok bool, err error)
	TableCreated() bool
}

type Fetcher interface {
	IP(ctx context.Context) (publicIP netip.Addr, err error)
}

type Notifier interface {
	Notify(message string)
}

type Pinger interface {
	Success(ctx context.Context, payload string) error
	Fail(ctx context.Context, payload string) error
}

type Logger interface {
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(s string)
}

type Runner struct {
	database Database
	fetcher  Fetcher
	notifier Notifier
	pinger   Pinger
	logger   Logger
	timeNow  func() time.Time
}

func New(database Database, fetcher Fetcher, notifier Notifier,
	pinger Pinger, logger Logger, timeNow func() time.Time) *Runner {
	return &Runner{
		database: database,
		fetcher:  fetcher,
		notifier: notifier,
		pinger:   pinger,
		logger:   logger,
		timeNow:  timeNow,
	}
}

type baselineState uint8

const (
	baselineKnown baselineState = iota
	baselineFirstRun
	baselineUnknown
)

// Run performs one full invocation of the workflow and returns its
// outcome. Run level errors are collected in the outcome after being
// logged and dispatched to the notifier and healthcheck pinger; they
// never terminate the process from here.
func (r *Runner) Run(ctx context.Context) (outcome Outcome) {
	previous, baseline := r.previousState(ctx)

	current, err := r.fetcher.IP(ctx)
	if err != nil {
		r.logger.Error(err.Error())
		outcome.Kind = KindResolutionFailed
		outcome.Errors = append(outcome.Errors, err)
		r.dispatch(ctx, outcome)
		return outcome
	}
	outcome.Current = current
	r.logger.Info("Current public IP address: " + current.String())

	// The history is authoritative so the observation is appended
	// even when the address has not changed.
	rowID, err := r.database.Insert(ctx, r.timeNow(), current)
	if err != nil {
		r.logger.Error("recording observation: " + err.Error())
		outcome.Errors = append(outcome.Errors, err)
	} else {
		outcome.RowID = rowID
		r.logger.Debug("observation recorded with row id " +
			strconv.FormatInt(rowID, 10))
	}

	switch baseline {
	case baselineFirstRun:
		outcome.Kind = KindFirstRun
	case baselineUnknown:
		outcome.Kind = KindBaselineUnknown
	case baselineKnown:
		outcome.Previous = previous
		if previous == current {
			outcome.Kind = KindUnchanged
		} else {
			outcome.Kind = KindChanged
		}
	}

	r.logger.Info(outcome.Message())
	r.dispatch(ctx, outcome)
	return outcome
}

func (r *Runner) previousState(ctx context.Context) (
	previous netip.Addr, baseline baselineState) {
	if r.database.TableCreated() {
		r.logger.Warn("first run on a new database, previous address is unknown")
		return previous, baselineFirstRun
	}

	observation, ok, err := r.database.SelectLatest(ctx)
	switch {
	case err != nil:
		// a failed read is not fatal to the run: the current
		// address is still recorded, without a baseline.
		r.logger.Warn("reading previous address: " + err.Error())
		return previous, baselineUnknown
	case !ok:
		r.logger.Warn("no previous address found in the database")
		return previous, baselineUnknown
	}

	r.logger.Info("Previous public IP address: " + observation.Address.String())
	return observation.Address, baselineKnown
}

func (r *Runner) dispatch(ctx context.Context, outcome Outcome) {
	if outcome.Kind == KindResolutionFailed {
		err := r.pinger.Fail(ctx, errorsMessage(outcome.Errors))
		if err != nil {
			r.logger.Error("pinging healthcheck: " + err.Error())
		}
		r.notifier.Notify(errorsMessage(outcome.Errors))
		return
	}

	err := r.pinger.Success(ctx, outcome.Current.String())
	if err != nil {
		r.logger.Error("pinging healthcheck: " + err.Error())
	}

	switch outcome.Kind {
	case KindChanged, KindFirstRun, KindBaselineUnknown:
		r.notifier.Notify(outcome.Message())
	case KindUnchanged: // not notified
	}

	if len(outcome.Errors) > 0 {
		r.notifier.Notify(errorsMessage(outcome.Errors))
	}
}
