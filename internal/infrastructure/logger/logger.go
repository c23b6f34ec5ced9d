package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

type Options struct {
	Level   string
	Format  string // json | text
	Service string
	Env     string
	Output  io.Writer
}

// defaultFields stamps service metadata on every entry.
type defaultFields struct{ fields logrus.Fields }

func (h defaultFields) Levels() []logrus.Level { return logrus.AllLevels }

func (h defaultFields) Fire(e *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := e.Data[k]; !ok {
			e.Data[k] = v
		}
	}
	return nil
}

func New(o Options) *logrus.Logger {
	l := logrus.New()
	if strings.EqualFold(o.Format, "text") {
		l.SetFormatter(&logrus.TextFormatter{TimestampFormat: timestampFormat, FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "time",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "msg",
			},
		})
	}
	level, err := logrus.ParseLevel(o.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	if o.Output != nil {
		l.SetOutput(o.Output)
	} else {
		l.SetOutput(os.Stdout)
	}
	fields := logrus.Fields{}
	if o.Service != "" {
		fields["service"] = o.Service
	}
	if o.Env != "" {
		fields["env"] = o.Env
	}
	if len(fields) > 0 {
		l.AddHook(defaultFields{fields: fields})
	}
	return l
}

// Install makes l's setup the process-wide logrus configuration so package-level logrus calls share it.
func Install(l *logrus.Logger) {
	std := logrus.StandardLogger()
	std.SetFormatter(l.Formatter)
	std.SetLevel(l.GetLevel())
	std.SetOutput(l.Out)
	std.ReplaceHooks(l.Hooks)
}
