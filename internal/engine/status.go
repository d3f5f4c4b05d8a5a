package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/linkfarm/internal/planner"
)

// Path states reported by Status.
const (
	// PathLinked means a symlink resolving into the package.
	PathLinked = "linked"

	// PathAbsent means nothing occupies the path.
	PathAbsent = "absent"

	// PathForeign means a symlink resolving somewhere else.
	PathForeign = "foreign"

	// PathOccupied means a regular file or real directory. For directory
	// entries a real directory is the applied state.
	PathOccupied = "occupied"
)

// Status classifies every path the named packages would farm against what
// currently occupies it. Nothing is mutated; this is the read-only
// counterpart of a dry-run apply, answering "what is live right now" rather
// than "what would change".
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	scan, err := e.scanPackages(ctx, req.Packages, req.Ignore)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Packages:     req.Packages,
		ScanFailures: scan.failures,
	}

	for _, m := range scan.manifests {
		for _, entry := range m.Entries {
			target := filepath.Join(e.layout.TargetRoot, filepath.FromSlash(entry.RelPath))
			result.Paths = append(result.Paths, e.classify(m.Package.Name, entry.RelPath, entry.Source, target))
		}
	}

	return result, scan.errs.ErrorOrNil()
}

// classify inspects one target path and maps its live state to a status.
func (e *Engine) classify(pkgName, relPath, source, target string) PathStatus {
	ps := PathStatus{RelPath: relPath, Package: pkgName}

	st, err := planner.InspectTarget(e.fs, target, source)
	if err != nil {
		ps.State = PathOccupied
		ps.Detail = fmt.Sprintf("cannot inspect: %v", err)
		return ps
	}

	switch st.Kind {
	case planner.StateOwnedLink:
		ps.State = PathLinked
		ps.Detail = st.LinkDest
	case planner.StateAbsent:
		ps.State = PathAbsent
	case planner.StateForeignLink:
		ps.State = PathForeign
		ps.Detail = st.LinkDest
	case planner.StateExisting:
		ps.State = PathOccupied
		switch {
		case st.IsDir && st.Empty:
			ps.Detail = "empty directory"
		case st.IsDir:
			ps.Detail = "directory"
		default:
			ps.Detail = "file"
		}
	}

	return ps
}
