package service

// Action is the reconciler's decision for a single scraped entry.
type Action int

const (
	// ActionInsert stores a record not yet present.
	ActionInsert Action = iota
	// ActionSkip leaves an already-present record untouched.
	ActionSkip
	// ActionUpdate overwrites an already-present record with fresh data.
	ActionUpdate
)

// String returns the action name for logs and run summaries.
func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionSkip:
		return "skip"
	case ActionUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// outcome is the past-tense counter label for a completed action.
func (a Action) outcome() string {
	switch a {
	case ActionInsert:
		return "inserted"
	case ActionSkip:
		return "skipped"
	case ActionUpdate:
		return "updated"
	default:
		return "unknown"
	}
}

// Reconcile decides what to do with a scraped entry given whether a record
// with the same external ID already exists. Default runs skip existing
// records so re-imports stay cheap; refresh runs rewrite them.
func Reconcile(exists, refresh bool) Action {
	switch {
	case !exists:
		return ActionInsert
	case refresh:
		return ActionUpdate
	default:
		return ActionSkip
	}
}
