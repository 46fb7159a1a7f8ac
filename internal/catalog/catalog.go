package catalog

import (
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/gitrepo"
)

const (
	metadataKeyPrefixConstant            = "_"
	settingsSectionKeyConstant           = "settings"
	prefectContextSectionKeyConstant     = "prefect_context"
	unresolvableRepositoryMessage        = "skipping repository with unresolvable url"
	repositoryResolvedMessage            = "repository resolved"
	repositoryMissingMessage             = "repository not found"
	repositoriesListedMessage            = "repositories listed"
	logFieldRepositoryNameConstant       = "repository"
	logFieldRepositoryURLConstant        = "url"
	logFieldOwnerRepositoryConstant      = "owner_repository"
	logFieldRepositoryCountConstant      = "repository_count"
	logFieldSectionConstant              = "section"
	logFieldSubsectionConstant           = "subsection"
	directEntrySubsectionPlaceholderText = ""
)

// Catalog resolves repository names against a parsed catalog document.
type Catalog struct {
	document *Node
	logger   *zap.Logger
}

// NewCatalog wraps a parsed document.
func NewCatalog(document *Node, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{document: document, logger: logger}
}

// Find returns the first resolvable repository named repositoryName.
//
// Each non-metadata section is checked for a direct entry first, then each of
// its subsections is scanned in document order. Entries whose URL does not
// resolve to a GitHub repository are skipped.
func (catalog *Catalog) Find(repositoryName string) (ResolvedRepository, error) {
	for _, section := range catalog.sections() {
		if directEntry, exists := section.Value.Get(repositoryName); exists {
			resolved, resolvable, resolveError := catalog.resolveEntry(section.Key, directEntrySubsectionPlaceholderText, repositoryName, directEntry)
			if resolveError != nil {
				return ResolvedRepository{}, resolveError
			}
			if resolvable {
				return resolved, nil
			}
		}

		for _, subsection := range subsectionsOf(section.Value) {
			for _, entry := range subsection.Value.Entries() {
				if entry.Key != repositoryName {
					continue
				}

				resolved, resolvable, resolveError := catalog.resolveEntry(section.Key, subsection.Key, entry.Key, entry.Value)
				if resolveError != nil {
					return ResolvedRepository{}, resolveError
				}
				if resolvable {
					return resolved, nil
				}
			}
		}
	}

	catalog.logger.Debug(repositoryMissingMessage, zap.String(logFieldRepositoryNameConstant, repositoryName))
	return ResolvedRepository{}, RepositoryNotFoundError{Name: repositoryName}
}

// List collects every resolvable repository found inside section subsections.
// Repositories placed directly under a section are not listed. A name seen
// more than once keeps its last occurrence.
func (catalog *Catalog) List() (Listing, error) {
	listing := Listing{}
	for _, section := range catalog.sections() {
		for _, subsection := range subsectionsOf(section.Value) {
			for _, entry := range subsection.Value.Entries() {
				resolved, resolvable, resolveError := catalog.resolveEntry(section.Key, subsection.Key, entry.Key, entry.Value)
				if resolveError != nil {
					return nil, resolveError
				}
				if resolvable {
					listing[entry.Key] = resolved
				}
			}
		}
	}

	catalog.logger.Debug(repositoriesListedMessage, zap.Int(logFieldRepositoryCountConstant, len(listing)))
	return listing, nil
}

func (catalog *Catalog) sections() []Entry {
	var sections []Entry
	for _, entry := range catalog.document.Entries() {
		if isMetadataSectionKey(entry.Key) || !entry.Value.IsMapping() {
			continue
		}
		sections = append(sections, entry)
	}
	return sections
}

func subsectionsOf(section *Node) []Entry {
	var subsections []Entry
	for _, entry := range section.Entries() {
		if strings.HasPrefix(entry.Key, metadataKeyPrefixConstant) || !entry.Value.IsMapping() {
			continue
		}
		subsections = append(subsections, entry)
	}
	return subsections
}

func isMetadataSectionKey(key string) bool {
	return strings.HasPrefix(key, metadataKeyPrefixConstant) ||
		key == settingsSectionKeyConstant ||
		key == prefectContextSectionKeyConstant
}

func (catalog *Catalog) resolveEntry(sectionKey string, subsectionKey string, name string, node *Node) (ResolvedRepository, bool, error) {
	repositoryURL, isRecord, urlError := decodeRecordURL(name, node)
	if urlError != nil {
		return ResolvedRepository{}, false, urlError
	}
	if !isRecord {
		return ResolvedRepository{}, false, nil
	}

	remoteURL, resolvable := gitrepo.ParseGitHubRepositoryURL(repositoryURL)
	if !resolvable {
		catalog.logger.Debug(
			unresolvableRepositoryMessage,
			zap.String(logFieldRepositoryNameConstant, name),
			zap.String(logFieldRepositoryURLConstant, repositoryURL),
			zap.String(logFieldSectionConstant, sectionKey),
			zap.String(logFieldSubsectionConstant, subsectionKey),
		)
		return ResolvedRepository{}, false, nil
	}

	record, decodeError := decodeRepositoryRecord(name, node)
	if decodeError != nil {
		return ResolvedRepository{}, false, decodeError
	}

	catalog.logger.Debug(
		repositoryResolvedMessage,
		zap.String(logFieldRepositoryNameConstant, name),
		zap.String(logFieldOwnerRepositoryConstant, remoteURL.OwnerRepository()),
		zap.String(logFieldSectionConstant, sectionKey),
		zap.String(logFieldSubsectionConstant, subsectionKey),
	)

	return ResolvedRepository{
		Owner:       remoteURL.Owner,
		Repository:  remoteURL.Repository,
		URL:         record.URL,
		Branch:      record.Branch,
		Description: record.Description,
		Folder:      record.Folder,
	}, true, nil
}
