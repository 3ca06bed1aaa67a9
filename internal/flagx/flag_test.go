package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		owned []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-d", "postgres://db", "-a", ":50051"},
			owned: []string{"-d"},
			want:  []string{"-d", "postgres://db"},
		},
		{
			name:  "equals form",
			args:  []string{"--config=alt.json", "-a", ":50051"},
			owned: []string{"-c", "--config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "value starting with dash inside equals form",
			args:  []string{"-s=-secret-"},
			owned: []string{"-s"},
			want:  []string{"-s=-secret-"},
		},
		{
			name:  "foreign flags and subcommands ignored",
			args:  []string{"-d", "dsn", "create-user", "-name", "alice", "-role", "admin"},
			owned: []string{"-d", "-a"},
			want:  []string{"-d", "dsn"},
		},
		{
			name:  "trailing flag without value",
			args:  []string{"-x"},
			owned: []string{"-x"},
			want:  []string{"-x"},
		},
		{
			name:  "next flag is not a value",
			args:  []string{"-x", "-i", "1m"},
			owned: []string{"-x", "-i"},
			want:  []string{"-x", "-i", "1m"},
		},
		{
			name:  "repeated flag keeps order",
			args:  []string{"-l", "debug", "-l", "warn"},
			owned: []string{"-l"},
			want:  []string{"-l", "debug", "-l", "warn"},
		},
		{
			name:  "stops at terminator",
			args:  []string{"-l", "debug", "--", "-l", "warn"},
			owned: []string{"-l"},
			want:  []string{"-l", "debug"},
		},
		{
			name:  "empty args",
			args:  nil,
			owned: []string{"-l"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.owned))
		})
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/contentdesk.json"}, "/etc/contentdesk.json"},
		{"long", []string{"-config", "/tmp/cd.json"}, "/tmp/cd.json"},
		{"double dash equals", []string{"--config=/tmp/cd.json"}, "/tmp/cd.json"},
		{"mixed with other flags", []string{"-a", ":1", "-c", "a.json", "list-users"}, "a.json"},
		{"last wins", []string{"-c", "1.json", "-config", "2.json"}, "2.json"},
		{"absent", []string{"-x", "1"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigPath(tt.args))
		})
	}
}
