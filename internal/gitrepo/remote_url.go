package gitrepo

import (
	"fmt"
	"regexp"
)

const (
	localRepositoryMarkerConstant   = "local"
	gitHubHostConstant              = "github.com"
	gitHubHTTPSPatternConstant      = `^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?$`
	ownerRepositoryTemplateConstant = "%s/%s"
	ownerMatchIndexConstant         = 1
	repositoryMatchIndexConstant    = 2
	expectedMatchCountConstant      = 3
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// RemoteProtocolHTTPS is the only protocol repository catalogs resolve.
const RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")

var gitHubHTTPSPattern = regexp.MustCompile(gitHubHTTPSPatternConstant)

// RemoteURL represents a structured GitHub repository URL.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// OwnerRepository renders the owner/repository pair.
func (remote RemoteURL) OwnerRepository() string {
	return fmt.Sprintf(ownerRepositoryTemplateConstant, remote.Owner, remote.Repository)
}

// ParseGitHubRepositoryURL extracts owner and repository from a GitHub HTTPS URL.
// The second return value is false for the "local" marker and for any URL
// outside the https://github.com/<owner>/<repo>[.git] form.
func ParseGitHubRepositoryURL(repositoryURL string) (RemoteURL, bool) {
	if repositoryURL == localRepositoryMarkerConstant {
		return RemoteURL{}, false
	}

	matches := gitHubHTTPSPattern.FindStringSubmatch(repositoryURL)
	if len(matches) != expectedMatchCountConstant {
		return RemoteURL{}, false
	}

	return RemoteURL{
		Protocol:   RemoteProtocolHTTPS,
		Host:       gitHubHostConstant,
		Owner:      matches[ownerMatchIndexConstant],
		Repository: matches[repositoryMatchIndexConstant],
	}, true
}
