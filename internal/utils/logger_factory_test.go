package utils_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/fsaudit/internal/utils"
)

const (
	testLoggerSubtestTemplateConstant = "%d_%s"
	testLoggerDiagnosticMessage       = "statement batch diagnostics"
)

func TestLoggerFactoryLevels(testInstance *testing.T) {
	testCases := []struct {
		name               string
		requestedLogLevel  utils.LogLevel
		requestedLogFormat utils.LogFormat
		expectedErrorText  string
		enabledLevels      []zapcore.Level
		disabledLevels     []zapcore.Level
	}{
		{
			name:               "debug_enables_everything",
			requestedLogLevel:  utils.LogLevelDebug,
			requestedLogFormat: utils.LogFormatStructured,
			enabledLevels:      []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.ErrorLevel},
		},
		{
			name:               "info_hides_debug",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatConsole,
			enabledLevels:      []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel},
			disabledLevels:     []zapcore.Level{zapcore.DebugLevel},
		},
		{
			name:               "padded_mixed_case_values",
			requestedLogLevel:  utils.LogLevel(" WARN "),
			requestedLogFormat: utils.LogFormat("Console"),
			enabledLevels:      []zapcore.Level{zapcore.WarnLevel},
			disabledLevels:     []zapcore.Level{zapcore.InfoLevel},
		},
		{
			name:               "error_only",
			requestedLogLevel:  utils.LogLevelError,
			requestedLogFormat: utils.LogFormatStructured,
			enabledLevels:      []zapcore.Level{zapcore.ErrorLevel},
			disabledLevels:     []zapcore.Level{zapcore.WarnLevel},
		},
		{
			name:               "unsupported_level",
			requestedLogLevel:  utils.LogLevel("verbose"),
			requestedLogFormat: utils.LogFormatStructured,
			expectedErrorText:  "unsupported log level: verbose",
		},
		{
			name:               "unsupported_format",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat("xml"),
			expectedErrorText:  "unsupported log format: xml",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			logger, creationError := utils.NewLoggerFactory().CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)
			if len(testCase.expectedErrorText) > 0 {
				require.EqualError(testInstance, creationError, testCase.expectedErrorText)
				require.Nil(testInstance, logger)
				return
			}

			require.NoError(testInstance, creationError)
			for _, level := range testCase.enabledLevels {
				require.True(testInstance, logger.Core().Enabled(level), level.String())
			}
			for _, level := range testCase.disabledLevels {
				require.False(testInstance, logger.Core().Enabled(level), level.String())
			}
		})
	}
}

func TestLoggerFactoryEncodings(testInstance *testing.T) {
	testCases := []struct {
		name           string
		logFormat      utils.LogFormat
		expectJSONLine bool
	}{
		{name: "structured_writes_json", logFormat: utils.LogFormatStructured, expectJSONLine: true},
		{name: "console_writes_text", logFormat: utils.LogFormatConsole, expectJSONLine: false},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			capturedOutput := captureStandardError(testInstance, func() {
				logger, creationError := utils.NewLoggerFactory().CreateLogger(utils.LogLevelInfo, testCase.logFormat)
				require.NoError(testInstance, creationError)
				logger.Info(testLoggerDiagnosticMessage)
				_ = logger.Sync()
			})

			require.Contains(testInstance, capturedOutput, testLoggerDiagnosticMessage)
			require.Equal(testInstance, testCase.expectJSONLine, json.Valid(bytes.TrimSpace([]byte(capturedOutput))))
		})
	}
}

func captureStandardError(testInstance *testing.T, action func()) string {
	testInstance.Helper()
	pipeReader, pipeWriter, pipeError := os.Pipe()
	require.NoError(testInstance, pipeError)

	previousStandardError := os.Stderr
	os.Stderr = pipeWriter
	action()
	os.Stderr = previousStandardError

	require.NoError(testInstance, pipeWriter.Close())
	capturedBytes, readError := io.ReadAll(pipeReader)
	require.NoError(testInstance, readError)
	require.NoError(testInstance, pipeReader.Close())
	return string(capturedBytes)
}
