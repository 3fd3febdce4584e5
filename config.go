package promptscript

import "github.com/mrwogu/promptscript/internal/runtimeconfig"

var (
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrGeneratorTargetUnknown     = runtimeconfig.ErrGeneratorTargetUnknown
	ErrGeneratorSizeLimitInvalid  = runtimeconfig.ErrGeneratorSizeLimitInvalid
	ErrRenderConventionRequired   = runtimeconfig.ErrRenderConventionRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	RenderConfig    = runtimeconfig.RenderConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
