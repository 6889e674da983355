// Package config: storage, gate and vault wiring.
package config

import (
	"os"
	"path/filepath"

	"github.com/sanctum-app/sanctum/pkg/gate"
	"github.com/sanctum-app/sanctum/pkg/storage"
	"github.com/sanctum-app/sanctum/pkg/vault"
)

func (c *Config) registerVault(f *configFile) error {
	dir := f.DataDir

	if dir == "" {
		home, err := os.UserHomeDir()

		if err != nil {
			return err
		}

		dir = filepath.Join(home, ".sanctum")
	}

	c.DataDir = dir

	store, err := storage.New(filepath.Join(dir, "vault"))

	if err != nil {
		return err
	}

	g, err := gate.New(dir, store)

	if err != nil {
		return err
	}

	c.Gate = g
	c.Vault = vault.New(store)

	return nil
}
