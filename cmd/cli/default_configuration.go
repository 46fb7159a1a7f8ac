package cli

import (
	_ "embed"

	"github.com/temirov/repoctx/internal/utils"
)

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns the embedded default configuration data and type identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte{}, embeddedDefaultConfigurationContent...), configurationTypeConstant
}

// DefaultApplicationConfiguration mirrors the embedded defaults.
func DefaultApplicationConfiguration() ApplicationConfiguration {
	return ApplicationConfiguration{
		Common: ApplicationCommonConfiguration{
			LogLevel:  string(utils.LogLevelError),
			LogFormat: string(utils.LogFormatConsole),
		},
		Catalog: ApplicationCatalogConfiguration{
			Path: defaultCatalogPathConstant,
			Root: "",
		},
	}
}

func defaultConfigurationValues() map[string]any {
	defaults := DefaultApplicationConfiguration()
	return map[string]any{
		commonLogLevelConfigKeyConstant:  defaults.Common.LogLevel,
		commonLogFormatConfigKeyConstant: defaults.Common.LogFormat,
		catalogPathConfigKeyConstant:     defaults.Catalog.Path,
		catalogRootConfigKeyConstant:     defaults.Catalog.Root,
	}
}
