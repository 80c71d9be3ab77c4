package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	jsonvalidator "github.com/galdor/go-json-validator"
	"github.com/galdor/go-zkstart/pkg/ensemble"
)

type Cfg struct {
	Tuning     TuningCfg         `toml:"tuning"`
	Properties map[string]string `toml:"properties"`
	Logging    LoggingCfg        `toml:"logging"`
	Launcher   LauncherCfg       `toml:"launcher"`
}

type TuningCfg struct {
	TickTime             int  `toml:"tickTime"`
	InitLimit            int  `toml:"initLimit"`
	SyncLimit            int  `toml:"syncLimit"`
	QuorumListenOnAllIPs bool `toml:"quorumListenOnAllIPs"`
	SnapRetainCount      int  `toml:"snapRetainCount"`
	PurgeInterval        int  `toml:"purgeInterval"`
}

type LoggingCfg struct {
	Directory string `toml:"directory"`
	Template  string `toml:"template"`
}

type LauncherCfg struct {
	Home    string   `toml:"home"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

func DefaultCfg() *Cfg {
	tuning := ensemble.DefaultTuning()

	cfg := &Cfg{
		Tuning: TuningCfg{
			TickTime:             tuning.TickTime,
			InitLimit:            tuning.InitLimit,
			SyncLimit:            tuning.SyncLimit,
			QuorumListenOnAllIPs: tuning.QuorumListenOnAllIPs,
			SnapRetainCount:      tuning.SnapRetainCount,
			PurgeInterval:        tuning.PurgeInterval,
		},

		Properties: make(map[string]string),

		Logging: LoggingCfg{
			Directory: ensemble.DefaultLogDirectory,
		},

		Launcher: LauncherCfg{
			Command: ensemble.DefaultLauncherCommand,
			Args:    append([]string(nil), ensemble.DefaultLauncherArgs...),
		},
	}

	return cfg
}

func (cfg *Cfg) LoadFile(filePath string) error {
	md, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("cannot decode toml file %s: %w", filePath, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}

		return fmt.Errorf("unknown setting(s) in %s: %s",
			filePath, strings.Join(keys, ", "))
	}

	return nil
}

func (cfg *Cfg) Validate() error {
	v := jsonvalidator.NewValidator()
	cfg.ValidateJSON(v)

	if err := v.Error(); err != nil {
		return err
	}

	return nil
}

func (cfg *Cfg) ValidateJSON(v *jsonvalidator.Validator) {
	v.CheckObject("tuning", &cfg.Tuning)

	v.WithChild("properties", func() {
		for key, value := range cfg.Properties {
			if !ensemble.IsValidPropertyKey(key) {
				v.Check(key, false, "invalidKey", "invalid property key %q", key)
				continue
			}

			v.Check(key, !ensemble.IsReservedKey(key), "reservedKey",
				"property %q is derived and cannot be set", key)

			v.Check(key, ensemble.IsValidPropertyValue(value), "invalidValue",
				"invalid value for property %q", key)
		}
	})

	v.CheckObject("logging", &cfg.Logging)
	v.CheckObject("launcher", &cfg.Launcher)
}

func (cfg *TuningCfg) ValidateJSON(v *jsonvalidator.Validator) {
	v.CheckIntMin("tickTime", cfg.TickTime, 1)
	v.CheckIntMin("initLimit", cfg.InitLimit, 1)
	v.CheckIntMin("syncLimit", cfg.SyncLimit, 1)
	v.CheckIntMin("snapRetainCount", cfg.SnapRetainCount, 0)
	v.CheckIntMin("purgeInterval", cfg.PurgeInterval, 0)
}

func (cfg *LoggingCfg) ValidateJSON(v *jsonvalidator.Validator) {
	v.CheckStringNotEmpty("directory", cfg.Directory)
}

func (cfg *LauncherCfg) ValidateJSON(v *jsonvalidator.Validator) {
	v.CheckStringNotEmpty("command", cfg.Command)
}

func (cfg *TuningCfg) Tuning() ensemble.Tuning {
	return ensemble.Tuning{
		TickTime:             cfg.TickTime,
		InitLimit:            cfg.InitLimit,
		SyncLimit:            cfg.SyncLimit,
		QuorumListenOnAllIPs: cfg.QuorumListenOnAllIPs,
		SnapRetainCount:      cfg.SnapRetainCount,
		PurgeInterval:        cfg.PurgeInterval,
	}
}
