package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/galdor/go-zkstart/pkg/ensemble"
)

type Bootstrap struct {
	Cfg *Cfg
	Log ensemble.Logger

	Lookup ensemble.LookupFunc
	Exec   ensemble.ExecFunc
	DryRun bool

	env     *ensemble.Env
	cluster *ensemble.Ensemble
	node    ensemble.Instance

	dataDirectory string
	files         *ensemble.NodeFiles
}

func NewBootstrap(cfg *Cfg, logger ensemble.Logger) *Bootstrap {
	if logger == nil {
		logger = ensemble.NopLogger{}
	}

	return &Bootstrap{
		Cfg: cfg,
		Log: logger,

		Lookup: os.LookupEnv,
	}
}

func (b *Bootstrap) Run() error {
	if err := b.Init(); err != nil {
		return err
	}

	if err := b.Render(); err != nil {
		return err
	}

	if err := b.Write(); err != nil {
		return err
	}

	if b.DryRun {
		b.Log.Info("dry run, not starting %s", b.env.ServiceName)
		return nil
	}

	return b.Start()
}

func (b *Bootstrap) Init() error {
	if err := b.Cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	env, err := ensemble.ReadEnv(b.Lookup)
	if err != nil {
		return fmt.Errorf("cannot read environment: %w", err)
	}
	b.env = env

	e, err := ensemble.NewEnsemble(env)
	if err != nil {
		return fmt.Errorf("cannot load ensemble: %w", err)
	}
	b.cluster = e

	node, err := e.Resolve(env.ContainerName)
	if err != nil {
		return fmt.Errorf("cannot resolve node: %w", err)
	}
	b.node = node

	baseDataDirectory, err := b.resolveBaseDataDirectory()
	if err != nil {
		return err
	}

	b.dataDirectory = filepath.Join(baseDataDirectory,
		fmt.Sprintf("%d", node.Id))

	b.Log.Debug(1, "resolved %s as node %d (client port %d) of %d",
		node.Host, node.Id, node.ClientPort, e.Size())

	return nil
}

// ZooKeeper runs from the installation directory, so a relative base data
// directory is relative to it and not to our working directory.
func (b *Bootstrap) resolveBaseDataDirectory() (string, error) {
	dirPath := b.env.BaseDataDirectory

	if filepath.IsAbs(dirPath) {
		return filepath.Clean(dirPath), nil
	}

	if home := b.Cfg.Launcher.Home; home != "" {
		dirPath = filepath.Join(home, dirPath)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve data directory %q: %w",
			b.env.BaseDataDirectory, err)
	}

	return absPath, nil
}

func (b *Bootstrap) Render() error {
	tuning := b.Cfg.Tuning.Tuning()
	tuning.ApplyEnv(b.env)

	props := ensemble.NewServerProperties(tuning, b.dataDirectory, b.node,
		b.cluster)
	props.Extra = b.Cfg.Properties

	loggingCfg := ensemble.LoggingCfg{
		ServiceName:   b.env.ServiceName,
		ContainerName: b.env.ContainerName,
		LogDirectory:  b.Cfg.Logging.Directory,
	}

	var loggingData []byte
	var err error

	if b.Cfg.Logging.Template == "" {
		loggingData, err = ensemble.RenderLoggingCfg(loggingCfg)
	} else {
		loggingData, err = ensemble.RenderLoggingCfgFile(
			b.Cfg.Logging.Template, loggingCfg)
	}
	if err != nil {
		return err
	}

	b.files = &ensemble.NodeFiles{
		ServerCfg:  props.Bytes(),
		LoggingCfg: loggingData,
	}

	if b.cluster.IsCluster() {
		b.files.NodeId = ensemble.NodeIdFileContent(b.node.Id)
	}

	b.Log.Debug(1, "server configuration:\n%s", b.files.ServerCfg)

	return nil
}

func (b *Bootstrap) Write() error {
	w := ensemble.NewFileWriter(b.dataDirectory, b.Log)

	if err := w.Write(b.files); err != nil {
		return fmt.Errorf("cannot write configuration files: %w", err)
	}

	if b.cluster.IsCluster() {
		b.Log.Info("starting %s, node id #%d of a %d-node cluster",
			b.env.ContainerName, b.node.Id, b.cluster.Size())
	} else {
		b.Log.Info("starting %s as a standalone server", b.env.ContainerName)
	}

	return nil
}

func (b *Bootstrap) Start() error {
	l := ensemble.NewLauncher(b.Cfg.Launcher.Home, b.Log)

	l.Command = b.Cfg.Launcher.Command
	l.Args = b.Cfg.Launcher.Args

	if b.Exec != nil {
		l.Exec = b.Exec
	}

	return l.Start(ensemble.JVMFlags(b.env.ContainerName, b.env.JVMOpts))
}
