package keymap

import "strings"

// maxHelpKeys caps the keys listed per action in the help panel.
const maxHelpKeys = 2

// Resolver maps key strings to actions and lists bindings for help.
type Resolver struct {
	bindings []Binding
	byKey    map[string]Action
}

// HelpEntry is one line of the key help panel.
type HelpEntry struct {
	Keys        string // display form, e.g. "n/pgdown"
	Description string
}

// NewResolver creates a resolver from bindings. When a key appears twice
// the later binding wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: bindings,
		byKey:    make(map[string]Action),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.byKey[key] = b.Action
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key]
}

// Help lists the bindings of the given contexts, grouped in the order the
// contexts are passed and in binding order within each.
func (r *Resolver) Help(contexts ...string) []HelpEntry {
	var out []HelpEntry
	for _, ctx := range contexts {
		for _, b := range r.bindings {
			if b.Context != ctx || len(b.Keys) == 0 {
				continue
			}
			keys := b.Keys[:min(len(b.Keys), maxHelpKeys)]
			labels := make([]string, len(keys))
			for i, k := range keys {
				labels[i] = KeyLabel(k)
			}
			out = append(out, HelpEntry{
				Keys:        strings.Join(labels, "/"),
				Description: b.Description,
			})
		}
	}
	return out
}

// KeyLabel returns the display form of a bubbletea key string.
func KeyLabel(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
