package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/plankbuild/plank/internal/adapters/shell"
	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type stubFetcher struct {
	paths map[string]string
}

func (f *stubFetcher) Fetch(_ context.Context, dep domain.PinnedDependency) (string, error) {
	return f.paths[dep.Name], nil
}

func TestExecutor_Execute(t *testing.T) {
	workDir := t.TempDir()
	e := shell.NewExecutor(&stubFetcher{}, nopLogger{}, workDir)

	plan := &domain.BuildPlan{
		Package:  "demo",
		Platform: domain.PlatformLinuxX86,
		Toolchain: domain.RegistryEntry{
			Name: "rust-1.75.0", Version: "1.75.0",
		},
		Actions: []domain.Action{
			{Run: "printf built > $out/result"},
		},
		Metadata: domain.Metadata{Program: "demo"},
	}

	out, err := e.Execute(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, "demo-x86_64-linux"), out)

	content, err := os.ReadFile(filepath.Join(out, "result")) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Equal(t, "built", string(content))
}

func TestExecutor_ActionFailure(t *testing.T) {
	e := shell.NewExecutor(&stubFetcher{}, nopLogger{}, t.TempDir())

	plan := &domain.BuildPlan{
		Package:  "demo",
		Platform: domain.PlatformLinuxX86,
		Actions:  []domain.Action{{Run: "exit 3"}},
	}

	_, err := e.Execute(context.Background(), plan)
	require.Error(t, err)
}

func TestEnvironmentVariables(t *testing.T) {
	env := &domain.EnvironmentDescriptor{
		Platform:  domain.PlatformDarwinARM,
		Toolchain: domain.RegistryEntry{Name: "rust-1.75.0", Version: "1.75.0"},
		Entries: []domain.RegistryEntry{
			{Name: "pkg-config", Version: "0.29.2"},
		},
	}

	vars := shell.EnvironmentVariables(env)
	assert.Contains(t, vars, "PLANK_PLATFORM=aarch64-darwin")
	assert.Contains(t, vars, "PLANK_TOOLCHAIN=rust-1.75.0@1.75.0")
	assert.Contains(t, vars, "PLANK_ENTRY_PKG_CONFIG=0.29.2")
}
