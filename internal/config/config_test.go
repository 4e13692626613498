package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reqdump.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, Validate(cfg))

	// Test: an empty file keeps every default
	cfg, err = Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
address = " 0.0.0.0:9090 "
read_buffer_size = 512
max_request_bytes = 2048
read_timeout = "2s"
write_timeout = "250ms"
strict = true
single_read = true
reply = true
color = false
max_body_render = 0
log_level = "DEBUG"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Address:         "0.0.0.0:9090",
		ReadBufferSize:  512,
		MaxRequestBytes: 2048,
		ReadTimeout:     2 * time.Second,
		WriteTimeout:    250 * time.Millisecond,
		Strict:          true,
		SingleRead:      true,
		Reply:           true,
		Color:           false,
		MaxBodyRender:   0,
		LogLevel:        "debug",
	}, cfg)
}

func TestLoadPartial(t *testing.T) {
	cfg, err := Load(writeConfig(t, "strict = true\n"))
	require.NoError(t, err)

	want := Default()
	want.Strict = true
	assert.Equal(t, want, cfg)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"bad duration":       `read_timeout = "soon"`,
		"bad toml":           `address = `,
		"unknown key":        `port = 8080`,
		"zero buffer":        `read_buffer_size = 0`,
		"buffer exceeds max": "read_buffer_size = 10\nmax_request_bytes = 5",
		"bad level":          `log_level = "loud"`,
		"empty address":      `address = ""`,
		"negative render":    `max_body_render = -1`,
		"zero read timeout":  `read_timeout = "0s"`,
		"negative write":     `write_timeout = "-1s"`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
