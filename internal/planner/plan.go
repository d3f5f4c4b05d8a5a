package planner

// Plan represents an ordered set of filesystem operations for a package set.
type Plan struct {
	// Packages is the ordered list of packages the plan covers
	Packages []string

	// Operations is the ordered list of operations to execute
	Operations []Operation

	// Conflicts is a list of detected conflicts (empty if no conflicts)
	Conflicts []Conflict
}

// Operation represents a single planned filesystem operation.
type Operation struct {
	// Action is one of the Action* constants
	Action string

	// RelPath is the path relative to the target root (slash-separated)
	RelPath string

	// Source is the absolute path of the package entry backing this
	// operation (empty for directory creation and pruning)
	Source string

	// Target is the absolute destination path under the target root
	Target string

	// Package is the package contributing this operation; for a directory
	// shared across packages, the first contributor
	Package string

	// Packages lists every contributing package, in request order
	Packages []string

	// Reason explains skip and conflict operations
	Reason string
}

// Conflict represents a conflict detected during planning.
type Conflict struct {
	// RelPath is the target-relative path where the conflict was detected
	RelPath string

	// Package is the package whose entry could not be placed
	Package string

	// Reason is a human-readable explanation of the conflict
	Reason string

	// Existing describes what currently occupies the path
	Existing string

	// Incoming describes what the plan wanted to create
	Incoming string
}

// Operation action constants
const (
	ActionCreateDir  = "create_dir"
	ActionCreateLink = "create_link"
	ActionRemoveLink = "remove_link"
	ActionPruneDir   = "prune_dir"
	ActionSkip       = "skip"
	ActionConflict   = "conflict"
)

// NewPlan creates a new empty Plan for the given packages.
func NewPlan(pkgs []string) *Plan {
	return &Plan{
		Packages:   pkgs,
		Operations: []Operation{},
		Conflicts:  []Conflict{},
	}
}

// HasConflicts returns true if the plan has any conflicts.
func (p *Plan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddOperation adds an operation to the plan.
func (p *Plan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// AddConflict adds a conflict to the plan.
func (p *Plan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}

// Count returns the number of operations with the given action.
func (p *Plan) Count(action string) int {
	n := 0
	for _, op := range p.Operations {
		if op.Action == action {
			n++
		}
	}
	return n
}
