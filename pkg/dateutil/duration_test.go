package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_ParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "30s", want: 30 * time.Second},
		{input: "30m", want: 30 * time.Minute},
		{input: "1h", want: time.Hour},
		{input: "2d", want: 48 * time.Hour},
		{input: "1w", want: 7 * 24 * time.Hour},
		{input: "10h", want: 10 * time.Hour},
		{input: "", wantErr: true},
		{input: "h", wantErr: true},
		{input: "1", wantErr: true},
		{input: "1y", wantErr: true},
		{input: "xh", wantErr: true},
		{input: "0m", wantErr: true},
		{input: "-5m", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.input)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.input)
			continue
		}

		require.NoError(t, err, "input %q", tt.input)
		require.Equal(t, tt.want, got, "input %q", tt.input)
	}
}
