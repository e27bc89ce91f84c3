// Package shell provides the build executor and dev shell launcher adapters.
package shell

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/plankbuild/plank/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.BuildExecutor using os/exec. Each plan action is
// run as a shell line, in order, inside an artifact root created per plan.
type Executor struct {
	fetcher ports.Fetcher
	logger  ports.Logger
	workDir string
}

// NewExecutor creates a new build executor rooted at workDir.
func NewExecutor(fetcher ports.Fetcher, logger ports.Logger, workDir string) *Executor {
	return &Executor{
		fetcher: fetcher,
		logger:  logger,
		workDir: filepath.Clean(workDir),
	}
}

var _ ports.BuildExecutor = (*Executor)(nil)

// Execute materializes the plan's pinned dependencies, then runs its actions
// in order. Returns the artifact root path.
func (e *Executor) Execute(ctx context.Context, plan *domain.BuildPlan) (string, error) {
	out := filepath.Join(e.workDir, plan.Package+"-"+string(plan.Platform))
	if err := os.MkdirAll(out, 0o750); err != nil {
		return "", zerr.Wrap(err, "failed to create artifact root")
	}

	depPaths := make([]string, 0, len(plan.Dependencies))
	for _, dep := range plan.Dependencies {
		path, err := e.fetcher.Fetch(ctx, dep)
		if err != nil {
			return "", zerr.Wrap(err, "failed to materialize dependency")
		}
		depPaths = append(depPaths, path)
	}

	env := planEnvironment(plan, out, depPaths)
	for _, action := range plan.Actions {
		if err := e.runAction(ctx, action, out, env); err != nil {
			return "", err
		}
	}

	e.logger.Info("built " + plan.Package + " for " + string(plan.Platform))
	return out, nil
}

func (e *Executor) runAction(ctx context.Context, action domain.Action, dir string, env []string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", action.Run) //nolint:gosec // actions come from the manifest
	cmd.Dir = dir
	cmd.Env = env

	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = v.Stdout()
		cmd.Stderr = v.Stderr()
	} else {
		cmd.Stdout = &logWriter{logger: e.logger}
		cmd.Stderr = &logWriter{logger: e.logger, errStream: true}
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, "build action failed"), "action", action.Run)
		return zerr.With(err, "exit_code", exitCode)
	}
	return nil
}

// planEnvironment constructs the action environment: the process environment
// plus the plan's $out, $program and dependency locations.
func planEnvironment(plan *domain.BuildPlan, out string, depPaths []string) []string {
	env := append([]string{}, os.Environ()...)
	env = append(env,
		"out="+out,
		"program="+plan.Metadata.Program,
		"PLANK_PLATFORM="+string(plan.Platform),
		"PLANK_TOOLCHAIN="+plan.Toolchain.Name+"@"+plan.Toolchain.Version,
	)
	if len(depPaths) > 0 {
		env = append(env, "PLANK_DEP_PATH="+strings.Join(depPaths, string(os.PathListSeparator)))
	}
	return env
}

type logWriter struct {
	logger    ports.Logger
	errStream bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if w.errStream {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
