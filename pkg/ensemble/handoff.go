package ensemble

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

const JVMFlagsVar = "JVMFLAGS"

const (
	DefaultLauncherCommand = "bin/zkServer.sh"
	DefaultLauncherArgv0   = "zookeeper"
)

var DefaultLauncherArgs = []string{"start-foreground"}

type ExecFunc func(argv0 string, argv []string, envv []string) error

func JVMFlags(containerName, jvmOpts string) string {
	flags := []string{
		"-server",
		"-showversion",
		`-Dvisualvm.display.name="local/` + containerName + `"`,
	}

	if opts := strings.TrimSpace(jvmOpts); opts != "" {
		flags = append(flags, opts)
	}

	return strings.Join(flags, " ")
}

// SetEnvVar returns a copy of environ where name is set to value, replacing
// every existing definition.
func SetEnvVar(environ []string, name, value string) []string {
	prefix := name + "="

	env := make([]string, 0, len(environ)+1)
	for _, entry := range environ {
		if !strings.HasPrefix(entry, prefix) {
			env = append(env, entry)
		}
	}

	return append(env, prefix+value)
}

type Launcher struct {
	Home    string
	Command string
	Argv0   string
	Args    []string

	Environ []string
	Exec    ExecFunc

	Log Logger
}

func NewLauncher(home string, logger Logger) *Launcher {
	return &Launcher{
		Home:    home,
		Command: DefaultLauncherCommand,
		Argv0:   DefaultLauncherArgv0,
		Args:    DefaultLauncherArgs,

		Environ: os.Environ(),
		Exec:    syscall.Exec,

		Log: loggerOrNop(logger),
	}
}

func (l *Launcher) CommandPath() string {
	if filepath.IsAbs(l.Command) {
		return l.Command
	}

	return filepath.Join(l.Home, l.Command)
}

func (l *Launcher) Argv() []string {
	argv := make([]string, 0, len(l.Args)+1)
	argv = append(argv, l.Argv0)
	return append(argv, l.Args...)
}

// Start replaces the current process by the launcher. It only returns on
// failure.
func (l *Launcher) Start(jvmFlags string) error {
	if l.Home != "" {
		if err := os.Chdir(l.Home); err != nil {
			return fmt.Errorf("cannot change directory to %q: %w", l.Home, err)
		}
	}

	commandPath := l.CommandPath()
	argv := l.Argv()
	env := SetEnvVar(l.Environ, JVMFlagsVar, jvmFlags)

	l.Log.Debug(1, "executing %s %s with %s=%q",
		commandPath, strings.Join(argv[1:], " "), JVMFlagsVar, jvmFlags)

	if err := l.Exec(commandPath, argv, env); err != nil {
		return fmt.Errorf("cannot execute %q: %w", commandPath, err)
	}

	return nil
}
