package order

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFulfilled, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// Decremented reports whether inventory has been committed for an order in
// this status.
func (s Status) Decremented() bool {
	return s == StatusPaid || s == StatusFulfilled
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled, StatusRefunded},
	StatusPaid:      {StatusFulfilled, StatusCancelled, StatusRefunded},
	StatusFulfilled: {StatusCancelled, StatusRefunded},
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
