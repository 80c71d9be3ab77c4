package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCfgFile(t *testing.T, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), "zkstart.toml")
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write configuration file: %v", err)
	}

	return filePath
}

func TestCfgLoadFile(t *testing.T) {
	filePath := writeCfgFile(t, `
[tuning]
tickTime = 4000
syncLimit = 2

[properties]
maxClientCnxns = "100"
"4lw.commands.whitelist" = "ruok"

[logging]
directory = "/srv/log"

[launcher]
home = "/opt/zookeeper"
args = ["start-foreground", "/opt/zookeeper/conf/zoo.cfg"]
`)

	cfg := DefaultCfg()
	if err := cfg.LoadFile(filePath); err != nil {
		t.Fatalf("cannot load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid configuration: %v", err)
	}

	if cfg.Tuning.TickTime != 4000 || cfg.Tuning.SyncLimit != 2 {
		t.Fatalf("unexpected tuning %+v", cfg.Tuning)
	}

	if cfg.Tuning.InitLimit != 10 || !cfg.Tuning.QuorumListenOnAllIPs {
		t.Fatalf("default tuning values must be kept: %+v", cfg.Tuning)
	}

	wantProperties := map[string]string{
		"maxClientCnxns":         "100",
		"4lw.commands.whitelist": "ruok",
	}
	if !reflect.DeepEqual(cfg.Properties, wantProperties) {
		t.Fatalf("want-properties: %v, got-properties: %v",
			wantProperties, cfg.Properties)
	}

	if cfg.Logging.Directory != "/srv/log" {
		t.Fatalf("unexpected log directory %q", cfg.Logging.Directory)
	}

	if cfg.Launcher.Home != "/opt/zookeeper" ||
		cfg.Launcher.Command != "bin/zkServer.sh" ||
		len(cfg.Launcher.Args) != 2 {
		t.Fatalf("unexpected launcher %+v", cfg.Launcher)
	}
}

func TestCfgLoadFileUnknownKey(t *testing.T) {
	filePath := writeCfgFile(t, `
[tuning]
tickTimeout = 4000
`)

	cfg := DefaultCfg()
	if err := cfg.LoadFile(filePath); err == nil {
		t.Fatalf("unknown settings must be rejected")
	}
}

func TestCfgValidate(t *testing.T) {
	tt := []struct {
		name   string
		update func(*Cfg)
		iserr  bool
	}{
		{"default", func(cfg *Cfg) {}, false},
		{"extra property", func(cfg *Cfg) {
			cfg.Properties["maxClientCnxns"] = "10"
		}, false},
		{"reserved property", func(cfg *Cfg) {
			cfg.Properties["clientPort"] = "2182"
		}, true},
		{"server entry", func(cfg *Cfg) {
			cfg.Properties["server.9"] = "zk9:2888:3888"
		}, true},
		{"padded reserved key", func(cfg *Cfg) {
			cfg.Properties["dataDir "] = "/elsewhere"
		}, true},
		{"key with separator", func(cfg *Cfg) {
			cfg.Properties["dataDir=x"] = "y"
		}, true},
		{"key with colon", func(cfg *Cfg) {
			cfg.Properties["clientPort:"] = "2182"
		}, true},
		{"comment key", func(cfg *Cfg) {
			cfg.Properties["#note"] = "x"
		}, true},
		{"key with control character", func(cfg *Cfg) {
			cfg.Properties["max\tClientCnxns"] = "10"
		}, true},
		{"value with newline", func(cfg *Cfg) {
			cfg.Properties["maxClientCnxns"] = "10\nserver.99=evil:1:2"
		}, true},
		{"value with carriage return", func(cfg *Cfg) {
			cfg.Properties["maxClientCnxns"] = "10\r"
		}, true},
		{"value with trailing backslash", func(cfg *Cfg) {
			cfg.Properties["maxClientCnxns"] = "10\\"
		}, true},
		{"zero tick time", func(cfg *Cfg) {
			cfg.Tuning.TickTime = 0
		}, true},
		{"negative purge interval", func(cfg *Cfg) {
			cfg.Tuning.PurgeInterval = -1
		}, true},
		{"empty log directory", func(cfg *Cfg) {
			cfg.Logging.Directory = ""
		}, true},
		{"empty launcher command", func(cfg *Cfg) {
			cfg.Launcher.Command = ""
		}, true},
	}

	for _, tc := range tt {
		cfg := DefaultCfg()
		tc.update(cfg)

		err := cfg.Validate()
		if tc.iserr && err == nil || !tc.iserr && err != nil {
			t.Fatalf("[%s] want-err: %v, got-err: %v", tc.name, tc.iserr, err)
		}
	}
}

func TestDefaultCfgValidate(t *testing.T) {
	if err := DefaultCfg().Validate(); err != nil {
		t.Fatalf("default configuration must be valid: %v", err)
	}
}
