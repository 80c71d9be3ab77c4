package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/galdor/go-log"
	"github.com/galdor/go-program"
)

func main() {
	p := program.NewProgram("zkstart",
		"render the configuration of a zookeeper node and start it")

	p.AddOption("c", "cfg", "path", "",
		"the path of an optional toml configuration file")
	p.AddOption("", "home", "path", "",
		"the zookeeper installation directory")
	p.AddFlag("n", "dry-run",
		"write configuration files without starting zookeeper")

	p.SetMain(cmdMain)

	p.ParseCommandLine()
	p.Run()
}

func cmdMain(p *program.Program) {
	cfg := DefaultCfg()

	if p.IsOptionSet("cfg") {
		cfgPath := p.OptionValue("cfg")

		if err := cfg.LoadFile(cfgPath); err != nil {
			p.Fatal("cannot load configuration: %v", err)
		}
	}

	if p.IsOptionSet("home") {
		cfg.Launcher.Home = p.OptionValue("home")
	}

	if cfg.Launcher.Home == "" {
		home, err := defaultHome()
		if err != nil {
			p.Fatal("cannot locate zookeeper installation directory: %v", err)
		}

		cfg.Launcher.Home = home
	}

	logger := log.DefaultLogger("zkstart")

	b := NewBootstrap(cfg, logger)
	b.DryRun = p.IsOptionSet("dry-run")

	if err := b.Run(); err != nil {
		p.Fatal("%v", err)
	}
}

// The executable is installed in a subdirectory of the zookeeper
// installation directory.
func defaultHome() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot locate executable: %w", err)
	}

	exePath, err = filepath.EvalSymlinks(exePath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve executable path: %w", err)
	}

	return filepath.Dir(filepath.Dir(exePath)), nil
}
