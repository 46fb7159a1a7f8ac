package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/catalog"
	"github.com/temirov/repoctx/internal/filesystem"
	"github.com/temirov/repoctx/internal/report"
	"github.com/temirov/repoctx/internal/utils"
	pathutils "github.com/temirov/repoctx/internal/utils/path"
)

const (
	applicationUseConstant                  = "repoctx <repo_name>"
	applicationShortDescriptionConstant     = "Resolve repository names to GitHub owner and repository identifiers"
	applicationLongDescriptionConstant      = "repoctx looks up repositories in the config/repositories.json catalog and prints their GitHub owner and repository."
	applicationExampleConstant              = "  repoctx dbt_cloud\n  repoctx --list\n  repoctx --json dbt_cloud"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	catalogFlagNameConstant                 = "catalog"
	catalogFlagUsageConstant                = "Path to the repository catalog; relative paths resolve against the project root."
	rootFlagNameConstant                    = "root"
	rootFlagUsageConstant                   = "Project root used to resolve a relative catalog path (defaults to the parent of the executable directory)."
	listFlagNameConstant                    = "list"
	listFlagUsageConstant                   = "List every repository in the catalog."
	jsonFlagNameConstant                    = "json"
	jsonFlagUsageConstant                   = "Print the resolved repository as JSON."
	outputFlagNameConstant                  = "output"
	outputFlagShorthandConstant             = "o"
	outputFlagUsageConstant                 = "Listing format used with --list (text, json, or yaml)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	catalogConfigurationKeyConstant         = "catalog"
	catalogPathConfigKeyConstant            = catalogConfigurationKeyConstant + ".path"
	catalogRootConfigKeyConstant            = catalogConfigurationKeyConstant + ".root"
	defaultCatalogPathConstant              = "config/repositories.json"
	environmentPrefixConstant               = "REPOCTX"
	configurationNameConstant               = "repoctx"
	configurationTypeConstant               = "yaml"
	defaultConfigurationSearchPathConstant  = "."
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationCatalogPathFieldConstant   = "catalog_path"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	catalogPathErrorTemplateConstant        = "unable to resolve catalog path: %w"
	repositoryNotFoundInTemplateConstant    = "%w in %s"
	jsonRequiresNameMessageConstant         = "--json requires repo_name argument"
	missingRepositoryNameMessageConstant    = "missing repo_name argument"
	rootCommandInfoMessageConstant          = "repoctx invoked"
	rootCommandDebugMessageConstant         = "repoctx diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	logFieldModeConstant                    = "mode"
	modeListConstant                        = "list"
	modeJSONConstant                        = "json"
	modeTextConstant                        = "text"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	catalogLoadingMessageConstant           = "loading repository catalog"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common  ApplicationCommonConfiguration  `mapstructure:"common"`
	Catalog ApplicationCatalogConfiguration `mapstructure:"catalog"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationCatalogConfiguration locates the repository catalog.
type ApplicationCatalogConfiguration struct {
	Path string `mapstructure:"path"`
	Root string `mapstructure:"root"`
}

// ReportedError marks a failure whose message has already been written to the error stream.
type ReportedError struct {
	Cause error
}

// Error returns the underlying failure message.
func (reportedError ReportedError) Error() string {
	return reportedError.Cause.Error()
}

// Unwrap exposes the underlying failure.
func (reportedError ReportedError) Unwrap() error {
	return reportedError.Cause
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	catalogPathResolver   *pathutils.CatalogPathResolver
	fileSystem            filesystem.FileSystem
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	catalogFlagValue      string
	rootFlagValue         string
	outputFlagValue       string
	listFlagValue         bool
	jsonFlagValue         bool
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		catalogPathResolver: pathutils.NewCatalogPathResolver(),
		fileSystem:          filesystem.OSFileSystem{},
		logger:              zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationUseConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Example:       applicationExampleConstant,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.catalogFlagValue, catalogFlagNameConstant, "", catalogFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.rootFlagValue, rootFlagNameConstant, "", rootFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.listFlagValue, listFlagNameConstant, false, listFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.jsonFlagValue, jsonFlagNameConstant, false, jsonFlagUsageConstant)
	cobraCommand.Flags().StringVarP(&application.outputFlagValue, outputFlagNameConstant, outputFlagShorthandConstant, string(report.ListingFormatText), outputFlagUsageConstant)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if application.persistentFlagChanged(command, catalogFlagNameConstant) {
		application.configuration.Catalog.Path = application.catalogFlagValue
	}
	if application.persistentFlagChanged(command, rootFlagNameConstant) {
		application.configuration.Catalog.Root = application.rootFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(configurationCatalogPathFieldConstant, application.configuration.Catalog.Path),
	)

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)
	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	switch {
	case application.listFlagValue:
		return application.listRepositories(command.OutOrStdout())
	case application.jsonFlagValue:
		if len(arguments) == 0 {
			return errors.New(jsonRequiresNameMessageConstant)
		}
		return application.resolveRepositoryJSON(command.OutOrStdout(), command.ErrOrStderr(), arguments[0])
	case len(arguments) == 0:
		if _, writeError := io.WriteString(command.ErrOrStderr(), command.UsageString()); writeError != nil {
			return writeError
		}
		return ReportedError{Cause: errors.New(missingRepositoryNameMessageConstant)}
	default:
		return application.resolveRepository(command.OutOrStdout(), arguments[0])
	}
}

func (application *Application) listRepositories(output io.Writer) error {
	listingFormat, formatError := report.ParseListingFormat(application.outputFlagValue)
	if formatError != nil {
		return formatError
	}

	repositoryCatalog, loadError := application.loadCatalog(modeListConstant)
	if loadError != nil {
		return loadError
	}

	listing, listError := repositoryCatalog.List()
	if listError != nil {
		return listError
	}

	return report.WriteListing(output, listing, listingFormat)
}

func (application *Application) resolveRepositoryJSON(output io.Writer, errorOutput io.Writer, repositoryName string) error {
	repositoryCatalog, loadError := application.loadCatalog(modeJSONConstant)
	if loadError != nil {
		return loadError
	}

	resolved, findError := repositoryCatalog.Find(repositoryName)
	if findError != nil {
		var notFoundError catalog.RepositoryNotFoundError
		if !errors.As(findError, &notFoundError) {
			return findError
		}
		if writeError := report.WriteErrorJSON(errorOutput, notFoundError.Error()); writeError != nil {
			return writeError
		}
		return ReportedError{Cause: findError}
	}

	return report.WriteRepositoryJSON(output, resolved)
}

func (application *Application) resolveRepository(output io.Writer, repositoryName string) error {
	repositoryCatalog, loadError := application.loadCatalog(modeTextConstant)
	if loadError != nil {
		return loadError
	}

	resolved, findError := repositoryCatalog.Find(repositoryName)
	if findError != nil {
		var notFoundError catalog.RepositoryNotFoundError
		if errors.As(findError, &notFoundError) {
			return fmt.Errorf(repositoryNotFoundInTemplateConstant, notFoundError, application.configuration.Catalog.Path)
		}
		return findError
	}

	return report.WriteOwnerRepository(output, resolved)
}

func (application *Application) loadCatalog(mode string) (*catalog.Catalog, error) {
	catalogPath, resolveError := application.catalogPathResolver.Resolve(application.configuration.Catalog.Path, application.configuration.Catalog.Root)
	if resolveError != nil {
		return nil, fmt.Errorf(catalogPathErrorTemplateConstant, resolveError)
	}

	application.logger.Debug(
		catalogLoadingMessageConstant,
		zap.String(configurationCatalogPathFieldConstant, catalogPath),
		zap.String(logFieldModeConstant, mode),
	)

	return catalog.NewLoader(application.fileSystem, application.logger).Load(catalogPath)
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
