package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("dev environment", func(t *testing.T) {
		l, err := New(EnvDevelopment, LevelDebug)
		require.NoError(t, err)
		require.NotNil(t, l)
	})

	t.Run("prod environment", func(t *testing.T) {
		l, err := New(EnvProduction, LevelInfo)
		require.NoError(t, err)
		require.NotNil(t, l)
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, err := New("staging", LevelInfo)
		require.Error(t, err)
	})
}

func TestTrimSourceDir(t *testing.T) {
	t.Run("source attr keeps only the filename", func(t *testing.T) {
		source := &slog.Source{File: "/home/app/internal/logger/slog.go", Line: 42}

		trimSourceDir(nil, slog.Any(slog.SourceKey, source))

		require.Equal(t, "slog.go", source.File)
	})

	t.Run("other attrs pass through unchanged", func(t *testing.T) {
		attr := slog.String("user", "admin")

		got := trimSourceDir(nil, attr)

		require.True(t, attr.Equal(got))
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			require.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}
