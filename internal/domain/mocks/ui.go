// Package mocks provides hand-written fakes of the domain ports.
package mocks

// UI is a mock implementation of ports.UI.
type UI struct {
	// Answer is returned by Ask.
	Answer    bool
	Questions []string
	Statuses  []string
}

// Ask records the question and returns Answer.
func (m *UI) Ask(question string) bool {
	m.Questions = append(m.Questions, question)
	return m.Answer
}

// SetStatus records the status line.
func (m *UI) SetStatus(message string) {
	m.Statuses = append(m.Statuses, message)
}

// LockChecker is a mock implementation of ports.LockChecker.
type LockChecker struct {
	Locked map[string]bool
}

// IsLocked reports whether path was marked as locked.
func (m *LockChecker) IsLocked(path string) bool {
	return m.Locked[path]
}

// Files is an in-memory mock of ports.Files.
type Files struct {
	Paths   map[string]bool
	Renames [][2]string
	Err     error
}

// NewFiles returns a file system holding paths.
func NewFiles(paths ...string) *Files {
	m := &Files{Paths: make(map[string]bool)}
	for _, p := range paths {
		m.Paths[p] = true
	}
	return m
}

// Exists reports whether path is present.
func (m *Files) Exists(path string) bool {
	return m.Paths[path]
}

// Rename moves a path.
func (m *Files) Rename(oldPath, newPath string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Paths, oldPath)
	m.Paths[newPath] = true
	m.Renames = append(m.Renames, [2]string{oldPath, newPath})
	return nil
}
