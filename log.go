package pidperf

import (
	"os"
	"strings"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const logFormat = "%{color}%{time:2006-01-02T15:04:05.000} %{module} %{level:.4s}%{color:reset}: %{message}"

var LogLevelFlag = cli.StringFlag{
	Name:  "log",
	Usage: "level of the logging (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
	Value: "info",
}

// NewLogger returns a module logger writing to stderr at the given level.
// Unknown levels fall back to INFO.
func NewLogger(level string, module string) *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(logFormat))
	leveled := logging.AddModuleLevel(formatted)

	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, module)
	logging.SetLevel(lvl, module)

	log := logging.MustGetLogger(module)
	log.SetBackend(leveled)
	return log
}
