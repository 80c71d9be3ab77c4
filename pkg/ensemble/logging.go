package ensemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drone/envsubst"
)

const DefaultLogDirectory = "/var/log"

const LogPattern = "%d{yyyy'-'MM'-'dd'T'HH:mm:ss.SSSXXX} %-5p " +
	"[%-35.35t] [%-36.36c]: %m%n"

const DefaultLoggingTemplate = `# Log4j configuration, logs to rotating file
log4j.rootLogger=INFO,R

log4j.appender.R=org.apache.log4j.RollingFileAppender
log4j.appender.R.File=${LOG_DIRECTORY}/${SERVICE_NAME}/${CONTAINER_NAME}.log
log4j.appender.R.MaxFileSize=100MB
log4j.appender.R.MaxBackupIndex=10
log4j.appender.R.layout=org.apache.log4j.PatternLayout
log4j.appender.R.layout.ConversionPattern=${LOG_PATTERN}
`

type LoggingCfg struct {
	ServiceName   string
	ContainerName string
	LogDirectory  string
}

func (cfg LoggingCfg) variables() map[string]string {
	logDirectory := cfg.LogDirectory
	if logDirectory == "" {
		logDirectory = DefaultLogDirectory
	}

	return map[string]string{
		"SERVICE_NAME":   cfg.ServiceName,
		"CONTAINER_NAME": cfg.ContainerName,
		"LOG_DIRECTORY":  strings.TrimRight(logDirectory, "/"),
		"LOG_PATTERN":    LogPattern,
	}
}

func RenderLoggingCfg(cfg LoggingCfg) ([]byte, error) {
	tpl, err := envsubst.Parse(DefaultLoggingTemplate)
	if err != nil {
		return nil, fmt.Errorf("cannot parse logging template: %w", err)
	}

	return renderLoggingTemplate(tpl, cfg)
}

func RenderLoggingCfgFile(filePath string, cfg LoggingCfg) ([]byte, error) {
	tpl, err := envsubst.ParseFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot parse logging template %q: %w",
			filePath, err)
	}

	return renderLoggingTemplate(tpl, cfg)
}

func renderLoggingTemplate(tpl *envsubst.Template, cfg LoggingCfg) ([]byte, error) {
	vars := cfg.variables()
	unknown := make(map[string]struct{})

	data, err := tpl.Execute(func(name string) string {
		value, found := vars[name]
		if !found {
			unknown[name] = struct{}{}
		}

		return value
	})
	if err != nil {
		return nil, fmt.Errorf("cannot render logging template: %w", err)
	}

	if len(unknown) > 0 {
		names := make([]string, 0, len(unknown))
		for name := range unknown {
			names = append(names, name)
		}
		sort.Strings(names)

		return nil, fmt.Errorf("unknown variable(s) in logging template: %s",
			strings.Join(names, ", "))
	}

	return []byte(data), nil
}
