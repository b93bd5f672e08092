package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected string
	}{
		{
			name:     "rpc url wins",
			env:      map[string]string{"RPC_URL": "http://localhost:8545", "INFURA_API_KEY": "abc"},
			expected: "http://localhost:8545",
		},
		{
			name:     "infura key",
			env:      map[string]string{"INFURA_API_KEY": "abc"},
			expected: "https://mainnet.infura.io/v3/abc",
		},
		{
			name:     "empty rpc url falls through",
			env:      map[string]string{"RPC_URL": "", "INFURA_API_KEY": "abc"},
			expected: "https://mainnet.infura.io/v3/abc",
		},
		{
			name:     "placeholder",
			env:      map[string]string{},
			expected: "https://mainnet.infura.io/v3/",
		},
		{
			name:     "nil env",
			env:      nil,
			expected: "https://mainnet.infura.io/v3/",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveEndpoint(tc.env))
		})
	}
}

func TestFromDefaults(t *testing.T) {
	conf, err := From(map[string]string{"INFURA_API_KEY": "k"})
	require.NoError(t, err)

	assert.Equal(t, "https://mainnet.infura.io/v3/k", conf.NodeUrl)
	assert.Equal(t, DefaultLogFile, conf.LogFile)
	assert.Equal(t, DefaultLabel, conf.Label)
	assert.Equal(t, DefaultTimeout, conf.Timeout)
}

func TestFromFileAndEnv(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yaml")
	content := `label: mainnet-checker
node_url: http://file.example:8545
log_file: /tmp/file-log.txt
timeout: 5s
`
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))

	conf, err := From(map[string]string{"CONF_FILE": filename})
	require.NoError(t, err)

	assert.Equal(t, "mainnet-checker", conf.Label)
	assert.Equal(t, "http://file.example:8545", conf.NodeUrl)
	assert.Equal(t, "/tmp/file-log.txt", conf.LogFile)
	assert.Equal(t, 5*time.Second, conf.Timeout)

	conf, err = From(map[string]string{
		"CONF_FILE":   filename,
		"RPC_URL":     "http://env.example:8545",
		"LOG_FILE":    "env-log.txt",
		"RPC_TIMEOUT": "1m",
		"LABEL":       "env-label",
	})
	require.NoError(t, err)

	assert.Equal(t, "env-label", conf.Label)
	assert.Equal(t, "http://env.example:8545", conf.NodeUrl)
	assert.Equal(t, "env-log.txt", conf.LogFile)
	assert.Equal(t, time.Minute, conf.Timeout)
}

func TestFromErrors(t *testing.T) {
	_, err := From(map[string]string{"CONF_FILE": filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = From(map[string]string{"RPC_TIMEOUT": "soon"})
	assert.Error(t, err)

	_, err = From(map[string]string{"RPC_TIMEOUT": "-1s"})
	assert.Error(t, err)
}
