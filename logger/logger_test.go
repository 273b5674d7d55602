package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		wantLevel  zapcore.Level
	}{
		{
			name:       "JSON output mode",
			jsonOutput: true,
			verbosity:  VerbosityInfo,
			wantLevel:  zapcore.InfoLevel,
		},
		{
			name:       "Console output mode",
			jsonOutput: false,
			verbosity:  VerbosityUser,
			wantLevel:  zapcore.WarnLevel,
		},
		{
			name:       "Console debug",
			jsonOutput: false,
			verbosity:  VerbosityDebug,
			wantLevel:  zapcore.DebugLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.True(t, Logger.Desugar().Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, Logger.Desugar().Core().Enabled(tt.wantLevel-1))
			}

			Cleanup()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Debug (-vv+)", LevelName(5))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	Logger = nil
	require.NoError(t, Initialize(false, VerbosityUser))
	l := ComponentLogger("codegen")
	assert.Same(t, l, OrNop(l))
}

func TestPackageHelpersBeforeInitialize(t *testing.T) {
	Logger = nil
	assert.NotPanics(t, func() {
		Infow("no logger yet")
		Warnw("no logger yet")
		Errorw("no logger yet")
		Debugw("no logger yet")
		Cleanup()
	})
}
