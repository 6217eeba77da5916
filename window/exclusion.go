package window

import (
	"strings"
)

// ExclusionPolicy decides whether a process must be left alone by an action.
// It receives the full executable path of the foreground window's process.
type ExclusionPolicy interface {
	Excludes(processPath string) bool
}

// ProcessList excludes processes by executable base name, case-insensitively.
type ProcessList struct {
	names map[string]struct{}
}

// NewProcessList builds a policy from base names such as "vlc.exe". Blank
// entries are ignored.
func NewProcessList(names []string) *ProcessList {
	p := &ProcessList{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(baseName(n)))
		if n != "" {
			p.names[n] = struct{}{}
		}
	}
	return p
}

// Excludes reports whether the base name of processPath is on the list,
// ignoring case. A nil list excludes nothing.
func (p *ProcessList) Excludes(processPath string) bool {
	if p == nil || len(p.names) == 0 {
		return false
	}
	_, ok := p.names[strings.ToLower(baseName(processPath))]
	return ok
}

// Len returns the number of distinct names.
func (p *ProcessList) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// baseName splits on both separators so Windows paths work on any host.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return path
}
