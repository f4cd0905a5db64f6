package reconcile

// Action describes what an apply or delete operation did.
type Action string

const (
	ActionNone    Action = "none"
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Result reports the outcome of a reconcile operation. Changed is false
// when the remote state already matched the desired state and no write
// was issued.
type Result struct {
	Changed bool
	Action  Action

	// ID of the resource acted on, when one exists.
	ID string
}

func noop() *Result {
	return &Result{Changed: false, Action: ActionNone}
}

func created(id string) *Result {
	return &Result{Changed: true, Action: ActionCreated, ID: id}
}

func updated(id string) *Result {
	return &Result{Changed: true, Action: ActionUpdated, ID: id}
}

func deleted(id string) *Result {
	return &Result{Changed: true, Action: ActionDeleted, ID: id}
}

func unchanged(id string) *Result {
	return &Result{Changed: false, Action: ActionNone, ID: id}
}
