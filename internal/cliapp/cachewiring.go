package cliapp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rustyhook/rustyhook/internal/cachestore"
)

// provisionStore bundles the environment Store rooted at a resolved cache
// directory. When --no-cache is set, RootDir is a fresh temporary directory
// instead of the persistent cache root, so Store.IsReady can never find a
// pre-existing .ready marker and every hook is forced to provision from
// scratch without disturbing the real cache for subsequent runs.
type provisionStore struct {
	Store     *cachestore.Store
	ephemeral bool
}

func newProvisionStore(cacheDir string, noCache bool) (*provisionStore, error) {
	root := filepath.Join(cacheDir, "envs")

	if noCache {
		tmp, err := os.MkdirTemp("", "rustyhook-nocache-*")
		if err != nil {
			return nil, fmt.Errorf("creating --no-cache staging root: %w", err)
		}
		store, err := cachestore.New(tmp)
		if err != nil {
			return nil, err
		}
		return &provisionStore{Store: store, ephemeral: true}, nil
	}

	store, err := cachestore.New(root)
	if err != nil {
		return nil, err
	}
	return &provisionStore{Store: store}, nil
}
