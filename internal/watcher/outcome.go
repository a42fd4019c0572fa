package watcher

import "net/netip"

// Kind classifies what a single run concluded.
// Exactly one kind holds per run.
type Kind uint8

const (
	// KindFirstRun means the observations table was just created,
	// so the current address was recorded without a baseline.
	KindFirstRun Kind = iota
	// KindBaselineUnknown means the table existed but no previous
	// address could be read from it, so the current address was
	// recorded and the change status is unknown.
	KindBaselineUnknown
	// KindUnchanged means the current address equals the latest
	// recorded address.
	KindUnchanged
	// KindChanged means the current address differs from the
	// latest recorded address.
	KindChanged
	// KindResolutionFailed means no provider returned the current
	// address, so nothing was recorded.
	KindResolutionFailed
)

func (k Kind) String() string {
	switch k {
	case KindFirstRun:
		return "first run"
	case KindBaselineUnknown:
		return "baseline unknown"
	case KindUnchanged:
		return "unchanged"
	case KindChanged:
		return "changed"
	case KindResolutionFailed:
		return "resolution failed"
	default:
		return "unknown"
	}
}

// Outcome is the in-memory classification of a single run.
// It is never persisted.
type Outcome struct {
	Kind Kind
	// Previous is only valid for KindUnchanged and KindChanged.
	Previous netip.Addr
	// Current is valid unless Kind is KindResolutionFailed.
	Current netip.Addr
	// RowID is the id of the appended observation, or 0 when no
	// row was appended.
	RowID int64
	// Errors are the run level errors encountered: provider
	// exhaustion and/or the storage append failure.
	Errors []error
}

// ExitCode maps the outcome to the process exit status: any run
// level error means 1, independently of the change status.
func (o Outcome) ExitCode() int {
	if len(o.Errors) > 0 {
		return 1
	}
	return 0
}

// Message is the human readable summary sent to notifiers and logs.
func (o Outcome) Message() string {
	switch o.Kind {
	case KindFirstRun:
		return "Public IP address recorded: " + o.Current.String() +
			" (first run, no baseline to compare against)"
	case KindBaselineUnknown:
		return "Public IP address recorded: " + o.Current.String() +
			" (previous address unknown, change status unknown)"
	case KindUnchanged:
		return "Public IP address has not changed (" + o.Current.String() + ")"
	case KindChanged:
		return "Public IP address has changed! Previous: " +
			o.Previous.String() + ", New: " + o.Current.String()
	case KindResolutionFailed:
		return "Public IP address could not be retrieved"
	default:
		return "unknown outcome"
	}
}

func errorsMessage(errs []error) string {
	message := "Encountered errors:"
	for _, err := range errs {
		message += "\n" + err.Error()
	}
	return message
}
