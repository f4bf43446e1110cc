package pagebuilder

import "github.com/goliatone/go-pagebuilder/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
	ErrMarkdownEngineUnknown             = runtimeconfig.ErrMarkdownEngineUnknown
	ErrMarkdownClassesUnknown            = runtimeconfig.ErrMarkdownClassesUnknown
	ErrMarkdownExtensionsRequireGoldmark = runtimeconfig.ErrMarkdownExtensionsRequireGoldmark
	ErrDebounceWindowNegative            = runtimeconfig.ErrDebounceWindowNegative
	ErrPreviewModeInvalid                = runtimeconfig.ErrPreviewModeInvalid
	ErrHTTPAddrRequired                  = runtimeconfig.ErrHTTPAddrRequired
	ErrMaxRetriesNegative                = runtimeconfig.ErrMaxRetriesNegative
)

type (
	Config         = runtimeconfig.Config
	LoggingConfig  = runtimeconfig.LoggingConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	EditorConfig   = runtimeconfig.EditorConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	Features       = runtimeconfig.Features
)

// DefaultConfig returns the defaults used by the page builder binary.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
