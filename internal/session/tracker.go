package session

// MutationAction tags a pending mutation.
type MutationAction string

const (
	MutationAdd            MutationAction = "add"
	MutationUpdate         MutationAction = "update"
	MutationDelete         MutationAction = "delete"
	MutationLibraryReplace MutationAction = "library_replace"
)

// Mutation is one pending change descriptor. Fields holds the partial field
// set accumulated across re-records; Prior keeps each field's value from
// before its first pending edit so a discard can restore it.
type Mutation struct {
	Action MutationAction
	Fields map[string]any
	Prior  map[string]any
}

// Tracker maps entity refs to their pending mutation. It backs the
// single-writer edit lock: while anything is pending, other entities' edits
// are refused.
type Tracker map[string]*Mutation

// Record merges a mutation into the tracker. Re-recording merges fields
// rather than overwriting. An add action keeps precedence over a later
// update: an entity that was never persisted must never go out as an update.
// A delete always wins.
func (t Tracker) Record(ref string, action MutationAction, fields, prior map[string]any) {
	existing, ok := t[ref]
	if !ok {
		mutation := &Mutation{
			Action: action,
			Fields: make(map[string]any, len(fields)),
			Prior:  make(map[string]any, len(prior)),
		}
		for k, v := range fields {
			mutation.Fields[k] = v
		}
		for k, v := range prior {
			mutation.Prior[k] = v
		}
		t[ref] = mutation
		return
	}

	for k, v := range fields {
		existing.Fields[k] = v
	}
	for k, v := range prior {
		if _, seen := existing.Prior[k]; !seen {
			existing.Prior[k] = v
		}
	}

	switch {
	case action == MutationDelete:
		existing.Action = MutationDelete
	case existing.Action == MutationDelete:
		// delete wins over anything recorded after it
	case existing.Action == MutationAdd:
		// add precedence
	default:
		existing.Action = action
	}
}

func (t Tracker) Clear(ref string) {
	delete(t, ref)
}

func (t Tracker) Has(ref string) bool {
	_, ok := t[ref]
	return ok
}

func (t Tracker) Get(ref string) *Mutation {
	return t[ref]
}

// HasPending reports whether any entity in the session has unsaved work.
func (t Tracker) HasPending() bool {
	return len(t) > 0
}

// HasPendingOutside reports pending work on any ref not in the allowed set.
func (t Tracker) HasPendingOutside(allowed map[string]bool) bool {
	for ref := range t {
		if !allowed[ref] {
			return true
		}
	}
	return false
}

func (t Tracker) clone() Tracker {
	out := make(Tracker, len(t))
	for ref, mutation := range t {
		copied := &Mutation{
			Action: mutation.Action,
			Fields: make(map[string]any, len(mutation.Fields)),
			Prior:  make(map[string]any, len(mutation.Prior)),
		}
		for k, v := range mutation.Fields {
			copied.Fields[k] = v
		}
		for k, v := range mutation.Prior {
			copied.Prior[k] = v
		}
		out[ref] = copied
	}
	return out
}
