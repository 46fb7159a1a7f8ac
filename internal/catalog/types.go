package catalog

import "sort"

const (
	defaultBranchConstant   = "main"
	recordURLKeyConstant    = "url"
	mapstructureTagConstant = "mapstructure"
)

// RepositoryRecord is the catalog leaf describing one repository.
type RepositoryRecord struct {
	URL         string `mapstructure:"url"`
	Branch      string `mapstructure:"branch"`
	Description string `mapstructure:"description"`
	Folder      string `mapstructure:"folder"`
}

// ResolvedRepository is a repository record augmented with the owner and
// repository parsed from its GitHub URL.
type ResolvedRepository struct {
	Owner       string `json:"owner" yaml:"owner"`
	Repository  string `json:"repo" yaml:"repo"`
	URL         string `json:"url" yaml:"url"`
	Branch      string `json:"branch" yaml:"branch"`
	Description string `json:"description" yaml:"description"`
	Folder      string `json:"folder" yaml:"folder"`
}

// Listing maps repository names to their resolved information.
type Listing map[string]ResolvedRepository

// Names returns the listed repository names in ascending order.
func (listing Listing) Names() []string {
	names := make([]string, 0, len(listing))
	for name := range listing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
