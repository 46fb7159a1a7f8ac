package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoctx/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTREPOCTX"
	testCatalogPathKeyConstant                     = "catalog.path"
	testCatalogPathEnvironmentConstant             = "TESTREPOCTX_CATALOG_PATH"
	testDefaultCatalogPathConstant                 = "config/repositories.json"
	testEmbeddedCatalogPathConstant                = "embedded/repositories.json"
	testFileCatalogPathConstant                    = "file/repositories.json"
	testEnvironmentCatalogPathConstant             = "environment/repositories.json"
	testConfigFileNameConstant                     = "repoctx.yaml"
	testConfigContentTemplateConstant              = "catalog:\n  path: %s\n"
	testConfigurationNameConstant                  = "repoctx"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
)

type configurationFixture struct {
	Catalog catalogConfigurationFixture `mapstructure:"catalog"`
}

type catalogConfigurationFixture struct {
	Path string `mapstructure:"path"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name            string
		embeddedPath    string
		filePath        string
		environmentPath string
		explicitFile    bool
		expectedPath    string
	}{
		{
			name:         "defaults_are_applied",
			expectedPath: testDefaultCatalogPathConstant,
		},
		{
			name:         "embedded_configuration_overrides_defaults",
			embeddedPath: testEmbeddedCatalogPathConstant,
			expectedPath: testEmbeddedCatalogPathConstant,
		},
		{
			name:         "search_path_file_overrides_embedded",
			embeddedPath: testEmbeddedCatalogPathConstant,
			filePath:     testFileCatalogPathConstant,
			expectedPath: testFileCatalogPathConstant,
		},
		{
			name:         "explicit_file_overrides_embedded",
			embeddedPath: testEmbeddedCatalogPathConstant,
			filePath:     testFileCatalogPathConstant,
			explicitFile: true,
			expectedPath: testFileCatalogPathConstant,
		},
		{
			name:            "environment_overrides_file",
			embeddedPath:    testEmbeddedCatalogPathConstant,
			filePath:        testFileCatalogPathConstant,
			environmentPath: testEnvironmentCatalogPathConstant,
			expectedPath:    testEnvironmentCatalogPathConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			searchDirectory := testInstance.TempDir()
			expectedConfigFile := ""
			explicitConfigurationFile := ""
			if len(testCase.filePath) > 0 {
				expectedConfigFile = filepath.Join(searchDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.filePath)
				require.NoError(testInstance, os.WriteFile(expectedConfigFile, []byte(configurationContent), 0o600))
				if testCase.explicitFile {
					explicitConfigurationFile = expectedConfigFile
				}
			}

			if len(testCase.environmentPath) > 0 {
				testInstance.Setenv(testCatalogPathEnvironmentConstant, testCase.environmentPath)
			}

			searchPaths := []string{searchDirectory}
			if testCase.explicitFile {
				searchPaths = []string{testInstance.TempDir()}
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, searchPaths)
			if len(testCase.embeddedPath) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedPath)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{
				testCatalogPathKeyConstant: testDefaultCatalogPathConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(explicitConfigurationFile, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedPath, loadedConfiguration.Catalog.Path)
			require.Equal(testInstance, expectedConfigFile, metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderRejectsMissingExplicitFile(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})

	missingFile := filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)
	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(missingFile, map[string]any{testCatalogPathKeyConstant: testDefaultCatalogPathConstant}, &loadedConfiguration)
	require.Error(testInstance, loadError)
}
