package opts

import (
	"github.com/walteh/filo/pkg/engine"
	"github.com/walteh/filo/pkg/report"
	"github.com/walteh/filo/pkg/rule"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	RuleFile    *rule.File
	RulePath    string
	Coordinator *engine.Coordinator
	Printer     *report.Printer
	Sink        engine.ProgressSink
}
