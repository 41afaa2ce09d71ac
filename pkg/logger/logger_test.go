package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    zapcore.Level
		wantErr string
	}{
		{name: "empty defaults to info", give: "", want: zapcore.InfoLevel},
		{name: "debug", give: "debug", want: zapcore.DebugLevel},
		{name: "upper case warn", give: "WARN", want: zapcore.WarnLevel},
		{name: "invalid", give: "loud", wantErr: `invalid log level "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.give)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamed(t *testing.T) {
	t.Parallel()

	lggr, logs := TestObserved(t, zapcore.InfoLevel)
	child := lggr.Named("registry")

	child.Infow("registered", "id", "mean")

	assert.Equal(t, "registry", child.Name())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "registry", entry.LoggerName)
	assert.Equal(t, "mean", entry.ContextMap()["id"])
}

func TestNop(t *testing.T) {
	t.Parallel()

	lggr := Nop()
	lggr.Infow("dropped", "k", "v")
	assert.Empty(t, lggr.Name())
}
