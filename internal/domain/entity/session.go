package entity

// Session identifies who triggered an operation and which request carried it.
// It travels explicitly through use case inputs instead of living in process state.
type Session struct {
	Operator  string
	RequestID string
}
