package organizer

import (
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Reporter 接收整理过程中的每个事件
type Reporter interface {
	Report(Event)
}

// ReporterFunc 将函数适配为 Reporter
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) {
	f(e)
}

type multiReporter []Reporter

func (m multiReporter) Report(e Event) {
	for _, r := range m {
		r.Report(e)
	}
}

// MultiReporter 将事件依次转发给所有 reporter，忽略 nil
func MultiReporter(reporters ...Reporter) Reporter {
	out := make(multiReporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// LogReporter 将事件写入 zerolog，错误事件使用 ERROR 级别，其余使用 INFO
type LogReporter struct {
	Logger *zerolog.Logger
}

func NewLogReporter(l *zerolog.Logger) *LogReporter {
	return &LogReporter{Logger: l}
}

func (r *LogReporter) Report(e Event) {
	evt := r.Logger.Info()
	if e.Failed() {
		evt = r.Logger.Error()
	}

	if e.Kind == EventFileMoved {
		if base := baseName(e.Path); base != "" && base != e.Name {
			evt = evt.Str("renamed_to", base)
		}
	}

	evt.Msg(e.Message())
}

// ConsoleReporter 在终端回显事件
type ConsoleReporter struct {
	Out io.Writer

	success *color.Color
	fail    *color.Color
	warn    *color.Color
	info    *color.Color
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		Out:     out,
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
	}
}

func (r *ConsoleReporter) Report(e Event) {
	c := r.info
	switch {
	case e.Failed():
		c = r.fail
	case e.Kind == EventFileMoved:
		c = r.success
	case e.Kind == EventFileSkipped:
		c = r.warn
	}

	c.Fprintln(r.Out, e.ConsoleMessage())
}
