package engine

import (
	"context"
	"fmt"
)

// PackageInfo describes one package directory.
type PackageInfo struct {
	// Name is the package name (the directory basename)
	Name string

	// Dir is the absolute package directory
	Dir string
}

// List returns all packages available under the package directory.
func (e *Engine) List(ctx context.Context) ([]PackageInfo, error) {
	names, err := e.pkgRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	var infos []PackageInfo
	for _, name := range names {
		pkg, err := e.pkgRepo.Resolve(name)
		if err != nil {
			// Skip entries that vanished between listing and resolving
			continue
		}
		infos = append(infos, PackageInfo{Name: pkg.Name, Dir: pkg.Dir})
	}

	return infos, nil
}
