package tui

// exportDoneMsg reports the outcome of writing the CSV exports.
type exportDoneMsg struct {
	err   error
	paths []string
}
