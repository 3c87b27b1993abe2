// Package provision implements the Toolchain Provisioner: given a Hook's
// EnvSpec, it ensures a ready environment exists (installing it if not),
// deduplicating concurrent requests for the same Fingerprint within one
// process (via a keyed gate) and across processes (via internal/provision's
// flock-based lease).
package provision

import (
	"context"
	"fmt"
	"sync"

	"github.com/rustyhook/rustyhook/internal/cachestore"
	"github.com/rustyhook/rustyhook/internal/fingerprint"
	"github.com/rustyhook/rustyhook/internal/hook"
)

// Installer knows how to materialize one Language's toolchains into a
// staging directory.
type Installer interface {
	// Install populates stagingDir with a working toolchain satisfying
	// spec, returning the BinDirs/ExtraEnv an EnvHandle needs.
	Install(ctx context.Context, spec hook.EnvSpec, stagingDir string) (binDirs []string, extraEnv map[string]string, err error)

	// HandleFor derives the same BinDirs/ExtraEnv for an already-committed
	// environment root, without reinstalling anything.
	HandleFor(root string) (binDirs []string, extraEnv map[string]string)
}

// Provisioner is the entry point hooks use to obtain a ready EnvHandle.
type Provisioner struct {
	Store      *cachestore.Store
	Installers map[hook.Language]Installer

	mu    sync.Mutex
	gates map[fingerprint.Digest]*gate
}

type gate struct {
	done   chan struct{}
	handle *hook.EnvHandle
	err    error
}

// New builds a Provisioner with the default installer set (see python.go,
// node.go, ruby.go, system.go).
func New(store *cachestore.Store) *Provisioner {
	return &Provisioner{
		Store: store,
		Installers: map[hook.Language]Installer{
			hook.LanguagePython: PythonInstaller{},
			hook.LanguageNode:   NodeInstaller{},
			hook.LanguageRuby:   RubyInstaller{},
			hook.LanguageSystem: SystemInstaller{},
		},
		gates: make(map[fingerprint.Digest]*gate),
	}
}

// Ensure returns a ready EnvHandle for spec, provisioning it if necessary.
// Concurrent callers requesting the same Fingerprint within this process
// share a single install attempt; concurrent rustyhook processes serialize
// via a cross-process flock on the environment's staging path.
func (p *Provisioner) Ensure(ctx context.Context, spec hook.EnvSpec) (*hook.EnvHandle, error) {
	digest := fingerprint.Compute(spec)

	p.mu.Lock()
	g, inFlight := p.gates[digest]
	if !inFlight {
		g = &gate{done: make(chan struct{})}
		p.gates[digest] = g
	}
	p.mu.Unlock()

	if inFlight {
		select {
		case <-g.done:
			return g.handle, g.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	handle, err := p.installOnce(ctx, spec, digest)
	g.handle, g.err = handle, err
	close(g.done)

	p.mu.Lock()
	delete(p.gates, digest)
	p.mu.Unlock()

	return handle, err
}

func (p *Provisioner) installOnce(ctx context.Context, spec hook.EnvSpec, digest fingerprint.Digest) (*hook.EnvHandle, error) {
	if p.Store.IsReady(digest, spec) {
		return p.handleFor(spec, digest), nil
	}

	envDir := p.Store.EnvDir(digest)
	lease, err := acquireLease(envDir)
	if err != nil {
		return nil, fmt.Errorf("acquiring provisioning lease: %w", err)
	}
	defer lease.release()

	// Re-check now that we hold the lease: another process may have
	// finished installing while we waited.
	if p.Store.IsReady(digest, spec) {
		return p.handleFor(spec, digest), nil
	}

	installer, ok := p.Installers[spec.Language]
	if !ok {
		return nil, fmt.Errorf("no installer registered for language %q", spec.Language)
	}

	staging, err := p.Store.StagingDir(digest)
	if err != nil {
		return nil, fmt.Errorf("creating staging dir: %w", err)
	}

	binDirs, extraEnv, err := installer.Install(ctx, spec, staging)
	if err != nil {
		p.Store.Discard(staging)
		return nil, fmt.Errorf("installing %s %s: %w", spec.Language, spec.Tool, err)
	}

	if err := p.Store.Commit(digest, staging, spec); err != nil {
		return nil, fmt.Errorf("committing environment: %w", err)
	}

	return &hook.EnvHandle{Spec: spec, RootDir: p.Store.EnvDir(digest), BinDirs: binDirs, ExtraEnv: extraEnv}, nil
}

func (p *Provisioner) handleFor(spec hook.EnvSpec, digest fingerprint.Digest) *hook.EnvHandle {
	root := p.Store.EnvDir(digest)
	installer := p.Installers[spec.Language]
	binDirs, extraEnv := installer.HandleFor(root)
	return &hook.EnvHandle{Spec: spec, RootDir: root, BinDirs: binDirs, ExtraEnv: extraEnv}
}
