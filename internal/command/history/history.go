// Package history stores and cycles through command-line history.
package history

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultMaxItems is the default maximum number of stored commands.
const DefaultMaxItems = 100

// Direction selects the cycle direction through history.
type Direction uint8

const (
	// Next selects the next (older) history entry.
	Next Direction = iota
	// Prev selects the previous (newer) history entry.
	Prev
)

// History stores recently run commands, newest first.
// Cycling stores the in-progress command line as a temporary element so the
// user can return to it; running or editing a command resets the cycle.
type History struct {
	mu sync.Mutex

	items    []string
	maxItems int

	index           int
	temporaryStored bool
	substrMatches   []string
}

// New creates a history pre-populated with commands, newest first.
func New(commands []string, maxItems int) *History {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	h := &History{maxItems: maxItems}
	if len(commands) > maxItems {
		commands = commands[:maxItems]
	}
	h.items = append(h.items, commands...)
	return h
}

// Update inserts a freshly run command at the front, removing any older
// duplicate.
func (h *History) Update(cmd string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.resetLocked()
	for i, existing := range h.items {
		if existing == cmd {
			h.items = append(h.items[:i], h.items[i+1:]...)
			break
		}
	}
	h.items = append([]string{cmd}, h.items...)
	if len(h.items) > h.maxItems {
		h.items = h.items[:h.maxItems]
	}
}

// Reset ends a cycle, dropping the temporary element.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resetLocked()
}

func (h *History) resetLocked() {
	h.index = 0
	if h.temporaryStored {
		h.items = h.items[1:]
		h.temporaryStored = false
		h.substrMatches = nil
	}
}

// Cycle steps through history and returns the command to show in the
// command line. The current text is stored as a temporary element on the
// first step of a cycle.
func (h *History) Cycle(dir Direction, text string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return ""
	}
	if !h.temporaryStored {
		h.items = append([]string{text}, h.items...)
		h.temporaryStored = true
	}
	h.index = step(h.index, dir, len(h.items))
	return h.items[h.index]
}

// SubstrCycle steps through the history entries containing the current
// text as a substring.
func (h *History) SubstrCycle(dir Direction, text string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return ""
	}
	if !h.temporaryStored {
		h.items = append([]string{text}, h.items...)
		h.temporaryStored = true
		for _, cmd := range h.items {
			if strings.Contains(cmd, text) {
				h.substrMatches = append(h.substrMatches, cmd)
			}
		}
	}
	if len(h.substrMatches) == 0 {
		return text
	}
	h.index = step(h.index, dir, len(h.substrMatches))
	return h.substrMatches[h.index]
}

// step advances an index cyclically.
func step(index int, dir Direction, length int) int {
	if dir == Next {
		return (index + 1) % length
	}
	return ((index-1)%length + length) % length
}

// Commands returns a copy of the stored commands, newest first, excluding
// any temporary cycle element.
func (h *History) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	items := h.items
	if h.temporaryStored {
		items = items[1:]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// Len returns the number of stored commands.
func (h *History) Len() int {
	return len(h.Commands())
}

// Read loads command history from the file at path, one command per line.
// A missing file yields an empty history.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var commands []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			commands = append(commands, line)
		}
	}
	return commands, scanner.Err()
}

// Write stores command history to the file at path, creating parent
// directories as needed.
func Write(path string, commands []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var sb strings.Builder
	for _, cmd := range commands {
		sb.WriteString(cmd)
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// DefaultPath returns the default history file location following the XDG
// data directory convention.
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "pictor", "history")
}
