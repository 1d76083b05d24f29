package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantEnv   string
		wantDebug bool
		wantDemo  bool
	}{
		{name: "default", wantEnv: "DEV", wantDebug: true, wantDemo: true},
		{name: "qa", env: map[string]string{"ENV": "qa"}, wantEnv: "QA", wantDebug: true, wantDemo: true},
		{name: "prod", env: map[string]string{"ENV": "prod"}, wantEnv: "PROD"},
		{
			name:    "prod override",
			env:     map[string]string{"ENV": "PROD", "PROD_DEBUG": "true", "PROD_SEED_DEMO": "true"},
			wantEnv: "PROD", wantDebug: true, wantDemo: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			conf := NewConfig()
			assert.Equal(t, tt.wantEnv, conf.Env)
			assert.Equal(t, tt.wantDebug, conf.Debug)
			assert.Equal(t, tt.wantDemo, conf.Seed.Demo)
		})
	}
}
