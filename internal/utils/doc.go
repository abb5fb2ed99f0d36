// Package utils holds the configuration and logging plumbing shared by the
// fsaudit commands.
//
// ConfigurationLoader layers the embedded defaults, an optional configuration
// file and FSAUDIT_* environment variables through Viper. LoggerFactory builds
// zap loggers in structured or console form.
package utils
