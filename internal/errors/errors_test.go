package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []Code{
		ErrConfig,
		ErrTransport,
		ErrDecode,
		ErrRender,
		ErrServer,
		ErrCollect,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       Code
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .hwmon.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "transport error",
			code:       ErrTransport,
			message:    "Cannot reach telemetry server",
			suggestion: "Check server.url or pass --server",
		},
		{
			name:       "decode error",
			code:       ErrDecode,
			message:    "Malformed response from /api/latest",
			suggestion: "",
		},
		{
			name:       "render error",
			code:       ErrRender,
			message:    "Could not write chart.png",
			suggestion: "Check that the output directory exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name:          "basic error formatting",
			err:           New(ErrConfig, "Invalid configuration", "Check .hwmon.yaml syntax"),
			expectedParts: []string{"✗", "Invalid configuration", "Check .hwmon.yaml syntax"},
		},
		{
			name:          "error without suggestion",
			err:           New(ErrRender, "Render failed", ""),
			expectedParts: []string{"Render failed"},
			notExpected:   []string{"\n\n  \n"},
		},
		{
			name:          "error with cause",
			err:           WrapWithCode(errors.New("connection refused"), ErrTransport, "Fetch failed", "Is the server running?"),
			expectedParts: []string{"Fetch failed", "connection refused", "Is the server running?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := Wrap(cause, "Websocket connection failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrTransport, wrapped.Code, "Wrap should default to ErrTransport code")
	assert.Equal(t, "Websocket connection failed", wrapped.Message)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("file not found")
	wrapped := WrapWithCode(cause, ErrConfig, "Failed to load config", "Run: hwmon init")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrConfig, wrapped.Code)
	assert.Equal(t, "Run: hwmon init", wrapped.Suggestion)
	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, errors.Is(wrapped, cause))
}

func TestErrorsAs(t *testing.T) {
	var err error = New(ErrDecode, "Bad frame", "")

	var hwErr *Error
	require.True(t, errors.As(err, &hwErr))
	assert.Equal(t, ErrDecode, hwErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrTransport))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("GET /api/latest: 503 Service Unavailable"),
		ErrTransport,
		"Cannot load fleet snapshot",
		"Check that the telemetry server is running",
	)

	lines := strings.Split(err.Error(), "\n")

	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"))
	assert.Contains(t, lines[0], "Cannot load fleet snapshot")
}

func TestCodeOf(t *testing.T) {
	inner := New(ErrDecode, "Bad frame", "")
	outer := fmt.Errorf("refresh: %w", WrapWithCode(inner, ErrTransport, "Refresh failed", ""))

	assert.Equal(t, ErrTransport, CodeOf(outer), "outermost structured error wins")
	assert.Equal(t, ErrDecode, CodeOf(inner))
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.Equal(t, "TRANSPORT", ErrTransport.String())
}

func TestErrorsIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("loading: %w", New(ErrConfig, "Bad config", ""))

	assert.True(t, errors.Is(err, &Error{Code: ErrConfig}))
	assert.False(t, errors.Is(err, &Error{Code: ErrRender}))
	assert.False(t, errors.Is(err, &Error{Code: ErrConfig, Message: "other"}))
}

func TestErrorIndentsNestedCause(t *testing.T) {
	inner := New(ErrTransport, "Couldn't reach server", "Is it running?")
	outer := WrapWithCode(inner, ErrRender, "Render failed", "Try again")

	assert.Equal(t, "✗ Render failed\n\n  ✗ Couldn't reach server\n\n    Is it running?\n\n  Try again\n", outer.Error())
}
