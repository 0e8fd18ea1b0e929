package tui

// BuildInfo holds build-time metadata for display in the TUI.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Short returns the version for the header line.
func (b BuildInfo) Short() string {
	if b.Version == "" {
		return "dev"
	}
	return b.Version
}
