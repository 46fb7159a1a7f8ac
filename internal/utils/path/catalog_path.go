package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	emptyCatalogPathMessageConstant        = "catalog path must not be empty"
	executableLookupErrorTemplateConstant  = "unable to determine executable location: %w"
	executableResolveErrorTemplateConstant = "unable to resolve executable symlinks: %w"
	projectRootResolutionTemplateConstant  = "unable to determine project root: %w"
)

// ExecutableProvider reports the path of the running executable.
type ExecutableProvider func() (string, error)

// CatalogPathResolver turns a configured catalog path into a file system path.
//
// Relative paths are anchored at the project root. When no root is configured
// the project root is the parent of the directory holding the executable, so a
// binary installed as <root>/bin/repoctx reads <root>/config/repositories.json.
type CatalogPathResolver struct {
	homeExpander       *HomeExpander
	executableProvider ExecutableProvider
}

// NewCatalogPathResolver constructs a resolver backed by the operating system.
func NewCatalogPathResolver() *CatalogPathResolver {
	return NewCatalogPathResolverWithProviders(nil, nil)
}

// NewCatalogPathResolverWithProviders constructs a resolver with custom lookups.
func NewCatalogPathResolverWithProviders(homeExpander *HomeExpander, executableProvider ExecutableProvider) *CatalogPathResolver {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	if executableProvider == nil {
		executableProvider = os.Executable
	}
	return &CatalogPathResolver{homeExpander: homeExpander, executableProvider: executableProvider}
}

// Resolve returns the catalog location for catalogPath under rootDirectory.
func (resolver *CatalogPathResolver) Resolve(catalogPath string, rootDirectory string) (string, error) {
	trimmedCatalogPath := strings.TrimSpace(catalogPath)
	if len(trimmedCatalogPath) == 0 {
		return "", errors.New(emptyCatalogPathMessageConstant)
	}

	expandedCatalogPath := resolver.homeExpander.Expand(trimmedCatalogPath)
	if filepath.IsAbs(expandedCatalogPath) {
		return filepath.Clean(expandedCatalogPath), nil
	}

	projectRoot, rootError := resolver.projectRoot(rootDirectory)
	if rootError != nil {
		return "", fmt.Errorf(projectRootResolutionTemplateConstant, rootError)
	}

	return filepath.Join(projectRoot, expandedCatalogPath), nil
}

func (resolver *CatalogPathResolver) projectRoot(rootDirectory string) (string, error) {
	trimmedRootDirectory := strings.TrimSpace(rootDirectory)
	if len(trimmedRootDirectory) > 0 {
		return filepath.Abs(resolver.homeExpander.Expand(trimmedRootDirectory))
	}

	executablePath, executableError := resolver.executableProvider()
	if executableError != nil {
		return "", fmt.Errorf(executableLookupErrorTemplateConstant, executableError)
	}

	resolvedExecutablePath, symlinkError := filepath.EvalSymlinks(executablePath)
	if symlinkError != nil {
		return "", fmt.Errorf(executableResolveErrorTemplateConstant, symlinkError)
	}

	return filepath.Dir(filepath.Dir(resolvedExecutablePath)), nil
}
