package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/danieljhkim/linkfarm/internal/ignore"
	"github.com/danieljhkim/linkfarm/internal/logger"
	"github.com/danieljhkim/linkfarm/internal/manifest"
)

// scanOutcome carries what a scan pass produced: the manifests that scanned
// cleanly, the per-package failures, and the failures as wrapped errors for
// the run error.
type scanOutcome struct {
	manifests []*manifest.Manifest
	failures  []ScanFailure
	errs      *multierror.Error
}

// scanPackages validates the request and scans every named package into a
// manifest.
//
// Request-level problems (no packages, missing target root, malformed
// --ignore pattern) are hard errors. Package-level problems (unknown name,
// unreadable subtree, malformed .lfignore pattern) fail only that package:
// the scan records the failure and moves on, so one bad package never blocks
// the rest of the run.
func (e *Engine) scanPackages(ctx context.Context, names, extraIgnore []string) (*scanOutcome, error) {
	log := logger.G(ctx)

	if len(names) == 0 {
		return nil, ErrNoPackages
	}

	info, err := e.fs.Stat(e.layout.TargetRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, e.layout.TargetRoot)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrTargetNotFound, e.layout.TargetRoot)
	}

	baseMatcher, err := ignore.NewMatcher(extraIgnore)
	if err != nil {
		return nil, fmt.Errorf("invalid ignore pattern: %w", err)
	}

	out := &scanOutcome{}
	seen := make(map[string]bool)

	for _, name := range names {
		// A package named twice contributes once; re-merging it with
		// itself would fabricate conflicts.
		if seen[name] {
			log.WithField("package", name).Debug("skipping duplicate package")
			continue
		}
		seen[name] = true

		pkg, err := e.pkgRepo.Resolve(name)
		if err != nil {
			out.fail(name, err)
			continue
		}

		matcher := baseMatcher
		filePatterns, err := ignore.ReadFile(filepath.Join(pkg.Dir, ignore.FileName))
		if err != nil {
			out.fail(name, err)
			continue
		}
		if len(filePatterns) > 0 {
			matcher, err = ignore.NewMatcher(append(append([]string{}, extraIgnore...), filePatterns...))
			if err != nil {
				out.fail(name, fmt.Errorf("%s: %w", ignore.FileName, err))
				continue
			}
		}

		m, err := e.scanner.Scan(pkg, matcher)
		if err != nil {
			out.fail(name, err)
			continue
		}

		log.WithFields(logrus.Fields{
			"package": name,
			"entries": len(m.Entries),
			"ignore":  matcher.Patterns(),
		}).Debug("scanned package")
		out.manifests = append(out.manifests, m)
	}

	return out, nil
}

func (o *scanOutcome) fail(name string, err error) {
	o.failures = append(o.failures, ScanFailure{Package: name, Reason: err.Error()})
	o.errs = multierror.Append(o.errs, fmt.Errorf("package %s: %w", name, err))
}
