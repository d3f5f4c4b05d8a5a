// Package planner handles the planning phase of overlay operations.
//
// The planner merges package manifests into deterministic execution plans
// for linking and unlinking. It inspects the live target tree, classifies
// what sits at each path, detects conflicts, and orders operations so
// directories are created before the links inside them (and removed after).
//
// Key responsibilities:
//   - Merge manifests across packages (shared directories collapse)
//   - Classify target paths (absent, owned link, foreign link, existing)
//   - Collect every conflict instead of aborting on the first
//   - Guarantee plans are pure: planning never mutates the filesystem
package planner
