package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("LEDGERLIFT_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"tilde slash", "~/ledgerlift.db", filepath.Join(home, "ledgerlift.db")},
		{"bare tilde", "~", home},
		{"env var", "$LEDGERLIFT_TEST_DIR/ledgerlift.db", "/var/data/ledgerlift.db"},
		{"plain", "/tmp/ledgerlift.db", "/tmp/ledgerlift.db"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandPath(tt.path))
		})
	}
}
