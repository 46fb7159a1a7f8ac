package catalog

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/filesystem"
)

const (
	catalogStatErrorTemplateConstant = "unable to inspect repository catalog %s: %w"
	catalogReadErrorTemplateConstant = "unable to read repository catalog %s: %w"
	catalogLoadedMessageConstant     = "repository catalog loaded"
	logFieldCatalogPathConstant      = "catalog_path"
	logFieldSectionCountConstant     = "section_count"
)

// Loader reads catalog documents from a file system.
type Loader struct {
	fileSystem filesystem.FileSystem
	logger     *zap.Logger
}

// NewLoader constructs a Loader. A nil file system falls back to the operating system.
func NewLoader(fileSystem filesystem.FileSystem, logger *zap.Logger) *Loader {
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fileSystem: fileSystem, logger: logger}
}

// Load reads and parses the catalog stored at catalogPath.
func (loader *Loader) Load(catalogPath string) (*Catalog, error) {
	if _, statError := loader.fileSystem.Stat(catalogPath); statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return nil, ConfigurationNotFoundError{Path: catalogPath}
		}
		return nil, fmt.Errorf(catalogStatErrorTemplateConstant, catalogPath, statError)
	}

	contents, readError := loader.fileSystem.ReadFile(catalogPath)
	if readError != nil {
		return nil, fmt.Errorf(catalogReadErrorTemplateConstant, catalogPath, readError)
	}

	document, parseError := ParseDocument(contents)
	if parseError != nil {
		return nil, parseError
	}

	loader.logger.Debug(
		catalogLoadedMessageConstant,
		zap.String(logFieldCatalogPathConstant, catalogPath),
		zap.Int(logFieldSectionCountConstant, document.Len()),
	)

	return NewCatalog(document, loader.logger), nil
}
