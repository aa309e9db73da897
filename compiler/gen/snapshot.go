package gen

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotFile is the name of the rules snapshot in the target directory.
const SnapshotFile = "rules.msgpack"

// Snapshot records the rendered rules of every generated entity.
type Snapshot struct {
	Version  int                 `msgpack:"version"`
	Entities map[string][]string `msgpack:"entities"`
}

const snapshotVersion = 1

// ReadSnapshot reads the snapshot at path. A missing file yields an empty
// snapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Snapshot{Version: snapshotVersion, Entities: map[string][]string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := msgpack.Unmarshal(buf, &s); err != nil {
		return nil, err
	}
	if s.Entities == nil {
		s.Entities = map[string][]string{}
	}
	return &s, nil
}

// Write writes the snapshot to path.
func (s *Snapshot) Write(path string) error {
	buf, err := msgpack.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// Diff returns the sorted names of the entities added, removed or whose
// rules differ in next.
func (s *Snapshot) Diff(next *Snapshot) []string {
	var changed []string
	for name, rules := range next.Entities {
		if prev, ok := s.Entities[name]; !ok || !slices.Equal(prev, rules) {
			changed = append(changed, name)
		}
	}
	for name := range s.Entities {
		if _, ok := next.Entities[name]; !ok {
			changed = append(changed, name)
		}
	}
	slices.Sort(changed)
	return changed
}

// Names returns the sorted entity names of the snapshot.
func (s *Snapshot) Names() []string {
	return slices.Sorted(maps.Keys(s.Entities))
}

func (g *Generator) snapshot(items []entityRules) ([]string, error) {
	path := g.path(SnapshotFile)
	prev, err := ReadSnapshot(path)
	if err != nil {
		return nil, NewGenerationError("", SnapshotFile, "read snapshot", err)
	}
	next := &Snapshot{Version: snapshotVersion, Entities: make(map[string][]string, len(items))}
	for _, it := range items {
		decls := make([]string, 0, len(it.rules))
		for _, r := range it.rules {
			decls = append(decls, r.String())
		}
		next.Entities[it.entity.Name] = decls
	}
	if err := next.Write(path); err != nil {
		return nil, NewGenerationError("", SnapshotFile, "write snapshot", err)
	}
	return prev.Diff(next), nil
}
