package ui

// stateChangedMsg tells the UI the store changed; the new state is read
// from the store when handling it.
type stateChangedMsg struct{}

// clearNotificationMsg expires a notification after its display time.
type clearNotificationMsg struct {
	id string
}

// pagerDoneMsg contains the result of a full-pattern pager run.
type pagerDoneMsg struct {
	err error
}
