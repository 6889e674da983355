package config

import (
	"bytes"
	"os"

	"github.com/sanctum-app/sanctum/pkg/chain"
	"github.com/sanctum-app/sanctum/pkg/gate"
	"github.com/sanctum-app/sanctum/pkg/vault"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	DataDir string

	Origins []string
	Limiter *rate.Limiter

	Gate  *gate.Gate
	Vault *vault.Vault

	Chain chain.Provider
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	c.Origins = file.CORSOrigins
	c.Limiter = createLimiter(file.RateLimit)

	if err := c.registerVault(file); err != nil {
		return nil, err
	}

	if err := c.registerProvider(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	DataDir string `yaml:"data_dir"`

	Provider providerConfig `yaml:"provider"`

	RateLimit   *int     `yaml:"rate_limit"`
	CORSOrigins []string `yaml:"cors_origins"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
