// Package symbol interns identifier text into cheap comparable handles.
//
// The table is process wide and append only: an ID stays valid for the
// lifetime of the process and there is no way to release one.
package symbol

import (
	"strings"
	"sync"
)

// ID is an interned identifier. Two IDs are equal exactly when their text is equal.
// The zero ID is the empty string.
type ID uint32

type table struct {
	mu    sync.RWMutex
	ids   map[string]ID
	texts []string
}

var global = &table{
	ids:   map[string]ID{"": 0},
	texts: []string{""},
}

// Intern returns the handle for text, adding it to the table on first use.
func Intern(text string) ID {
	global.mu.RLock()
	id, ok := global.ids[text]
	global.mu.RUnlock()
	if ok {
		return id
	}

	global.mu.Lock()
	defer global.mu.Unlock()
	if id, ok := global.ids[text]; ok {
		return id
	}
	id = ID(len(global.texts))
	global.texts = append(global.texts, text)
	global.ids[text] = id
	return id
}

// String returns the interned text.
func (id ID) String() string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	if int(id) >= len(global.texts) {
		return ""
	}
	return global.texts[id]
}

// IsZero reports whether id is the empty identifier.
func (id ID) IsZero() bool {
	return id == 0
}

// Compare orders two IDs by their text, for deterministic iteration.
func Compare(a, b ID) int {
	if a == b {
		return 0
	}
	return strings.Compare(a.String(), b.String())
}

// Len returns the number of interned identifiers, including the empty one.
func Len() int {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return len(global.texts)
}
