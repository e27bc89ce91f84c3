package main

import (
	"errors"
	"os"
	"testing"

	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"
)

const validManifest = `package: sheldon
source: .
toolchain: rust-stable
extensions: [rust-overlay]
inputs: [openssl]
actions:
  - run: "true"
metadata:
  program: sheldon
`

const validLock = `version: 1
dependencies:
  openssl:
    version: 3.2.1
    source: registry+https://static.crates.io
    integrity: sha256-abc
`

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		manifest     string
		lock         string
		args         []string
		expectedExit int
	}{
		{
			name:         "resolve succeeds with pinned inputs",
			manifest:     validManifest,
			lock:         validLock,
			args:         []string{"resolve", "-p", "x86_64-linux"},
			expectedExit: 0,
		},
		{
			name:         "version command",
			manifest:     validManifest,
			lock:         validLock,
			args:         []string{"version"},
			expectedExit: 0,
		},
		{
			name:     "malformed lock record",
			manifest: validManifest,
			lock: `version: 1
dependencies:
  openssl:
    version: 3.2.1
    source: registry
    integrity: sha256-abc
  openssl:
    version: 3.2.0
    source: registry
    integrity: sha256-def
`,
			args:         []string{"resolve", "-p", "x86_64-linux"},
			expectedExit: 2,
		},
		{
			name: "unknown extension layer",
			manifest: `package: sheldon
source: .
extensions: [haskell-overlay]
`,
			lock:         validLock,
			args:         []string{"resolve", "-p", "x86_64-linux"},
			expectedExit: 3,
		},
		{
			name:         "unsupported platform",
			manifest:     validManifest,
			lock:         validLock,
			args:         []string{"resolve", "-p", "riscv64-linux"},
			expectedExit: 4,
		},
		{
			name: "unpinned dependency",
			manifest: `package: sheldon
source: .
toolchain: rust-stable
extensions: [rust-overlay]
inputs: [openssl, libgit2]
`,
			lock:         validLock,
			args:         []string{"resolve", "-p", "x86_64-linux"},
			expectedExit: 5,
		},
		{
			name:         "unknown output",
			manifest:     validManifest,
			lock:         validLock,
			args:         []string{"resolve", "-o", "nightly", "-p", "x86_64-linux"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			err := os.WriteFile(tmpDir+"/plank.yaml", []byte(tt.manifest), 0o600)
			if err != nil {
				t.Fatalf("failed to write manifest: %v", err)
			}
			err = os.WriteFile(tmpDir+"/plank.lock.yaml", []byte(tt.lock), 0o600)
			if err != nil {
				t.Fatalf("failed to write lock record: %v", err)
			}

			originalWd, _ := os.Getwd()
			if err := os.Chdir(tmpDir); err != nil {
				t.Fatalf("failed to chdir: %v", err)
			}
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			exitCode := run(tt.args)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

// Exit codes must survive metadata decoration: errors reach exitCode wrapped
// and annotated, not as bare sentinels.
func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "malformed lock record",
			err:      zerr.With(zerr.Wrap(domain.ErrMalformedLockRecord, "lock entry rejected"), "dependency", "openssl"),
			expected: 2,
		},
		{
			name:     "unresolved extension",
			err:      zerr.With(zerr.Wrap(domain.ErrUnresolvedExtension, "no such extension layer"), "layer", "haskell-overlay"),
			expected: 3,
		},
		{
			name:     "unsupported platform",
			err:      zerr.With(zerr.Wrap(domain.ErrUnsupportedPlatform, "no registry pin for platform"), "platform", "riscv64-linux"),
			expected: 4,
		},
		{
			name:     "unpinned dependency",
			err:      zerr.With(zerr.Wrap(domain.ErrUnpinnedDependency, "dependency missing from lock record"), "dependency", "libgit2"),
			expected: 5,
		},
		{
			name:     "dangling alias",
			err:      zerr.With(zerr.Wrap(domain.ErrDanglingAlias, "alias has no concrete target"), "alias", "nightly"),
			expected: 6,
		},
		{
			name:     "alias cycle",
			err:      zerr.With(zerr.Wrap(domain.ErrAliasCycle, "alias chain revisits a name"), "alias", "default"),
			expected: 7,
		},
		{
			name:     "double decoration keeps the class",
			err:      zerr.With(zerr.With(zerr.Wrap(domain.ErrUnpinnedDependency, "dependency missing from lock record"), "dependency", "libgit2"), "platform", "x86_64-linux"),
			expected: 5,
		},
		{
			name:     "unclassified error",
			err:      errors.New("registry unreachable"),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCode(tt.err))
		})
	}
}
