package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-a", "http://localhost:5000", "-x", "nope"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", "http://localhost:5000"},
		},
		{
			name:         "equals form",
			args:         []string{"--config=conf.json", "-v"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=conf.json"},
		},
		{
			name:         "boolean flag without value",
			args:         []string{"-v", "-a", "addr"},
			allowedFlags: []string{"-v"},
			want:         []string{"-v"},
		},
		{
			name:         "flag followed by another flag keeps no value",
			args:         []string{"-a", "-v"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a"},
		},
		{
			name:         "nothing allowed",
			args:         []string{"-a", "addr"},
			allowedFlags: nil,
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cli", "-c", "conf.json", "-a", "addr"}
	assert.Equal(t, "conf.json", ConfigFileFlag())

	os.Args = []string{"cli", "-config=other.json"}
	assert.Equal(t, "other.json", ConfigFileFlag())

	os.Args = []string{"cli", "-a", "addr"}
	assert.Equal(t, "", ConfigFileFlag())
}
