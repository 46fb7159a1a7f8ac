package gitrepo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoctx/internal/gitrepo"
)

const (
	remoteURLSubtestTemplateConstant = "%d_%s"
	testOwnerConstant                = "acme"
	testRepositoryConstant           = "widgets"
)

func TestParseGitHubRepositoryURL(testInstance *testing.T) {
	testCases := []struct {
		name               string
		input              string
		expectResolved     bool
		expectedOwner      string
		expectedRepository string
	}{
		{
			name:               "https_with_git_suffix",
			input:              "https://github.com/acme/widgets.git",
			expectResolved:     true,
			expectedOwner:      testOwnerConstant,
			expectedRepository: testRepositoryConstant,
		},
		{
			name:               "https_without_git_suffix",
			input:              "https://github.com/acme/widgets",
			expectResolved:     true,
			expectedOwner:      testOwnerConstant,
			expectedRepository: testRepositoryConstant,
		},
		{
			name:               "dotted_repository_name",
			input:              "https://github.com/acme/widgets.io.git",
			expectResolved:     true,
			expectedOwner:      testOwnerConstant,
			expectedRepository: "widgets.io",
		},
		{
			name:           "local_marker",
			input:          "local",
			expectResolved: false,
		},
		{
			name:           "trailing_newline_rejected",
			input:          "https://github.com/acme/widgets\n",
			expectResolved: false,
		},
		{
			name:           "ssh_form_unsupported",
			input:          "git@github.com:acme/widgets.git",
			expectResolved: false,
		},
		{
			name:           "non_github_host",
			input:          "https://gitlab.com/acme/widgets.git",
			expectResolved: false,
		},
		{
			name:           "nested_path",
			input:          "https://github.com/acme/widgets/tree/main",
			expectResolved: false,
		},
		{
			name:           "plain_http",
			input:          "http://github.com/acme/widgets.git",
			expectResolved: false,
		},
		{
			name:           "empty",
			input:          "",
			expectResolved: false,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(remoteURLSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			remoteURL, resolved := gitrepo.ParseGitHubRepositoryURL(testCase.input)
			require.Equal(testInstance, testCase.expectResolved, resolved)
			if !testCase.expectResolved {
				require.Equal(testInstance, gitrepo.RemoteURL{}, remoteURL)
				return
			}

			require.Equal(testInstance, gitrepo.RemoteProtocolHTTPS, remoteURL.Protocol)
			require.Equal(testInstance, "github.com", remoteURL.Host)
			require.Equal(testInstance, testCase.expectedOwner, remoteURL.Owner)
			require.Equal(testInstance, testCase.expectedRepository, remoteURL.Repository)
			require.Equal(testInstance, testCase.expectedOwner+"/"+testCase.expectedRepository, remoteURL.OwnerRepository())
		})
	}
}
