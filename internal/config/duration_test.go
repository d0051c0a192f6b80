package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_EnvDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "days", input: "7d", want: 7 * 24 * time.Hour},
		{name: "minutes", input: "15m", want: 15 * time.Minute},
		{name: "compound", input: "1h30m", want: 90 * time.Minute},
		{name: "empty keeps zero", input: "", want: 0},
		{name: "bad days", input: "xd", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
		{name: "negative", input: "-5m", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.EnvDecode(context.Background(), tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}
