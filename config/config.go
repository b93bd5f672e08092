package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/soyart/gsl/soyutils"
)

const (
	DefaultLabel   = "bytecode-verifier"
	DefaultLogFile = "verification_log.txt"
	DefaultTimeout = 30 * time.Second

	infuraMainnet = "https://mainnet.infura.io/v3/"
)

type Config struct {
	Label         string        `yaml:"label" json:"label"`
	NodeUrl       string        `yaml:"node_url" json:"-"` // May embed an API key
	LogFile       string        `yaml:"log_file" json:"logFile"`
	TimeoutConfig string        `yaml:"timeout" json:"-"`
	Timeout       time.Duration `yaml:"-" json:"timeout"` // Will be parsed from TimeoutConfig
}

// Environ snapshots the process environment into a map for From and ResolveEndpoint
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, found := strings.Cut(kv, "=")
		if !found {
			continue
		}

		env[k] = v
	}

	return env
}

// ResolveEndpoint picks the JSON-RPC endpoint from env.
// RPC_URL wins, then an Infura mainnet URL built from INFURA_API_KEY,
// then the bare Infura URL which will most likely refuse the connection.
func ResolveEndpoint(env map[string]string) string {
	if rpcUrl := env["RPC_URL"]; rpcUrl != "" {
		return rpcUrl
	}

	if apiKey := env["INFURA_API_KEY"]; apiKey != "" {
		return infuraMainnet + apiKey
	}

	return infuraMainnet
}

// From builds Config from an optional YAML file named by CONF_FILE, then applies env overrides
func From(env map[string]string) (*Config, error) {
	conf := &Config{}

	if filename := env["CONF_FILE"]; filename != "" {
		fromFile, err := soyutils.ReadFileYAMLPointer[Config](filename)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", filename)
		}

		conf = fromFile
	}

	// Env endpoint beats the file, but the file beats the placeholder URL
	if env["RPC_URL"] != "" || env["INFURA_API_KEY"] != "" || conf.NodeUrl == "" {
		conf.NodeUrl = ResolveEndpoint(env)
	}

	if logFile := env["LOG_FILE"]; logFile != "" {
		conf.LogFile = logFile
	}

	if conf.LogFile == "" {
		conf.LogFile = DefaultLogFile
	}

	if label := env["LABEL"]; label != "" {
		conf.Label = label
	}

	if conf.Label == "" {
		conf.Label = DefaultLabel
	}

	if timeout := env["RPC_TIMEOUT"]; timeout != "" {
		conf.TimeoutConfig = timeout
	}

	conf.Timeout = DefaultTimeout
	if conf.TimeoutConfig != "" {
		timeout, err := time.ParseDuration(conf.TimeoutConfig)
		if err != nil {
			return nil, errors.Wrapf(err, "bad timeout %s", conf.TimeoutConfig)
		}

		if timeout <= 0 {
			return nil, fmt.Errorf("illegal timeout: %s", conf.TimeoutConfig)
		}

		conf.Timeout = timeout
	}

	return conf, nil
}
