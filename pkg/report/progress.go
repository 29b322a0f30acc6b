package report

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 ConsoleSink is a ProgressSink that gives live per-file feedback while a
// rule runs.
type ConsoleSink struct {
	zlog zerolog.Logger
}

// 🎯 NewConsoleSink creates a console progress sink
func NewConsoleSink(zlog zerolog.Logger) *ConsoleSink {
	return &ConsoleSink{zlog: zlog}
}

// 📝 OnFileStart is invoked once per matched file, before its transfer
func (s *ConsoleSink) OnFileStart(ruleName, filename string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "⏳"})
	printer.Println(fmt.Sprintf("%s › %s", ruleName, filename))

	s.zlog.Debug().
		Str("rule", ruleName).
		Str("file", filename).
		Msg("processing file")
}
