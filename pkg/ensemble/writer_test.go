package ensemble

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileWriterWrite(t *testing.T) {
	tt := []struct {
		name   string
		nodeId []byte
	}{
		{"cluster", NodeIdFileContent(2)},
		{"single instance", nil},
	}

	for _, tc := range tt {
		dataDirectory := filepath.Join(t.TempDir(), "2")

		files := NodeFiles{
			ServerCfg:  []byte("tickTime=2000\n"),
			LoggingCfg: []byte("log4j.rootLogger=INFO,R\n"),
			NodeId:     tc.nodeId,
		}

		w := NewFileWriter(dataDirectory, nil)
		if err := w.Write(&files); err != nil {
			t.Fatalf("[%s] cannot write files: %v", tc.name, err)
		}

		assertFileContent(t, filepath.Join(dataDirectory, "conf", "zoo.cfg"),
			"tickTime=2000\n")
		assertFileContent(t,
			filepath.Join(dataDirectory, "conf", "log4j.properties"),
			"log4j.rootLogger=INFO,R\n")

		nodeIdPath := filepath.Join(dataDirectory, "myid")
		if tc.nodeId == nil {
			if _, err := os.Stat(nodeIdPath); !os.IsNotExist(err) {
				t.Fatalf("[%s] node id file must not exist", tc.name)
			}
		} else {
			assertFileContent(t, nodeIdPath, "2\n")
		}

		info, err := os.Stat(filepath.Join(dataDirectory, "conf"))
		if err != nil {
			t.Fatalf("[%s] cannot stat conf directory: %v", tc.name, err)
		}

		if !info.IsDir() {
			t.Fatalf("[%s] conf is not a directory", tc.name)
		}
	}
}

func TestFileWriterTruncates(t *testing.T) {
	dataDirectory := t.TempDir()
	w := NewFileWriter(dataDirectory, nil)

	files := NodeFiles{
		ServerCfg:  []byte("a very long line which will be replaced\n"),
		LoggingCfg: []byte("x\n"),
	}
	if err := w.Write(&files); err != nil {
		t.Fatalf("cannot write files: %v", err)
	}

	files.ServerCfg = []byte("short\n")
	if err := w.Write(&files); err != nil {
		t.Fatalf("cannot rewrite files: %v", err)
	}

	assertFileContent(t, filepath.Join(dataDirectory, ServerCfgPath), "short\n")
}

func assertFileContent(t *testing.T, filePath, want string) {
	t.Helper()

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("cannot read %q: %v", filePath, err)
	}

	if string(data) != want {
		t.Fatalf("%s: want: %q, got: %q", filePath, want, data)
	}
}
