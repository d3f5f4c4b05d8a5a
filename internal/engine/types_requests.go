package engine

// ApplyRequest represents a request to link packages into the target tree.
type ApplyRequest struct {
	// Packages is the ordered list of package names; order decides which
	// package wins bookkeeping for directories shared between packages
	Packages []string

	// Ignore is extra ignore patterns applied to every package
	Ignore []string

	// DryRun performs planning only without making changes
	DryRun bool

	// Restow removes the packages' links first, then applies fresh
	Restow bool
}

// RemoveRequest represents a request to withdraw packages from the target tree.
type RemoveRequest struct {
	// Packages is the list of package names to withdraw
	Packages []string

	// Ignore is extra ignore patterns applied to every package
	Ignore []string

	// DryRun shows what would be removed without actually removing
	DryRun bool
}

// StatusRequest represents a request to classify the packages' paths.
type StatusRequest struct {
	// Packages is the list of package names to inspect
	Packages []string

	// Ignore is extra ignore patterns applied to every package
	Ignore []string
}
