package shell

import (
	"context"
	"os"
	"os/exec"

	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/plankbuild/plank/internal/core/ports"
	"go.trai.ch/zerr"
)

// Launcher implements ports.ShellLauncher by spawning the user's shell with
// the provisioned environment exported.
type Launcher struct {
	logger ports.Logger
}

// NewLauncher creates a new shell launcher.
func NewLauncher(logger ports.Logger) *Launcher {
	return &Launcher{logger: logger}
}

var _ ports.ShellLauncher = (*Launcher)(nil)

// Launch starts an interactive shell exposing the environment's entries.
func (l *Launcher) Launch(ctx context.Context, env *domain.EnvironmentDescriptor) error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	l.logger.Info("entering " + string(env.Platform) + " shell with " +
		env.Toolchain.Name + "@" + env.Toolchain.Version)

	cmd := exec.CommandContext(ctx, shell) //nolint:gosec // user's own shell
	cmd.Env = EnvironmentVariables(env)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return zerr.Wrap(err, "shell exited with error")
	}
	return nil
}

// EnvironmentVariables renders the descriptor as KEY=VALUE pairs layered on
// the process environment.
func EnvironmentVariables(env *domain.EnvironmentDescriptor) []string {
	vars := append([]string{}, os.Environ()...)
	vars = append(vars,
		"PLANK_PLATFORM="+string(env.Platform),
		"PLANK_TOOLCHAIN="+env.Toolchain.Name+"@"+env.Toolchain.Version,
	)
	for _, e := range env.Entries {
		vars = append(vars, "PLANK_ENTRY_"+sanitizeVarName(e.Name)+"="+e.Version)
	}
	return vars
}

func sanitizeVarName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-'a'+'A')
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
