package blueprint

import (
	"fmt"
	"sort"
)

// Library is an explicit name to blueprint-function registry. It is not a
// global: construct one, register the blueprints a component needs, and pass
// it to the cursors that should see them. Registration is not synchronized;
// register everything before sharing the library across goroutines.
type Library struct {
	funcs map[string]BlueprintFunc
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{funcs: make(map[string]BlueprintFunc)}
}

// Register binds a name to a blueprint function. Re-registering a name is an
// error; shadowing a blueprint silently is never what the caller wants.
func (l *Library) Register(name string, fn BlueprintFunc) error {
	if _, ok := l.funcs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBlueprint, name)
	}
	l.funcs[name] = fn
	return nil
}

// Get resolves a blueprint function by name.
func (l *Library) Get(name string) (BlueprintFunc, error) {
	fn, ok := l.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlueprint, name)
	}
	return fn, nil
}

// Names lists registered blueprint names, sorted.
func (l *Library) Names() []string {
	out := make([]string, 0, len(l.funcs))
	for name := range l.funcs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
