package ensemble

import (
	"fmt"
	"os"
	"path"
	"strconv"
)

const (
	ServerCfgPath  = "conf/zoo.cfg"
	LoggingCfgPath = "conf/log4j.properties"
	NodeIdPath     = "myid"
)

// NodeFiles is the content of the files written in the data directory of a
// node. NodeId is nil for single instance deployments.
type NodeFiles struct {
	ServerCfg  []byte
	LoggingCfg []byte
	NodeId     []byte
}

func NodeIdFileContent(id ServerId) []byte {
	return []byte(strconv.FormatInt(int64(id), 10) + "\n")
}

type FileWriter struct {
	DataDirectory string
	Log           Logger
}

func NewFileWriter(dataDirectory string, logger Logger) *FileWriter {
	return &FileWriter{
		DataDirectory: dataDirectory,
		Log:           loggerOrNop(logger),
	}
}

func (w *FileWriter) Write(files *NodeFiles) error {
	confDirectory := path.Join(w.DataDirectory, path.Dir(ServerCfgPath))

	if err := os.MkdirAll(confDirectory, 0750); err != nil {
		return fmt.Errorf("cannot create directory %q: %w", confDirectory, err)
	}

	if err := w.WriteFile(ServerCfgPath, files.ServerCfg); err != nil {
		return err
	}

	if err := w.WriteFile(LoggingCfgPath, files.LoggingCfg); err != nil {
		return err
	}

	if files.NodeId != nil {
		if err := w.WriteFile(NodeIdPath, files.NodeId); err != nil {
			return err
		}
	}

	return nil
}

func (w *FileWriter) WriteFile(relPath string, data []byte) error {
	filePath := path.Join(w.DataDirectory, relPath)

	w.Log.Debug(1, "writing %q", filePath)

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return fmt.Errorf("cannot open %q: %w", filePath, err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("cannot write %q: %w", filePath, err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("cannot sync %q: %w", filePath, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("cannot close %q: %w", filePath, err)
	}

	return nil
}
