package report_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/walteh/filo/pkg/engine"
	"github.com/walteh/filo/pkg/report"
)

func TestResultListsEveryBucket(t *testing.T) {
	var buf bytes.Buffer
	p := report.New(&buf, zerolog.Nop())

	p.Result(engine.ExecutionResult{
		RuleName: "sort screenshots",
		Status:   engine.StatusPartialFailure,
		Succeeded: []engine.FileRecord{
			{Filename: "a.png", DestinationPath: "/sorted/a.png"},
		},
		Skipped: []engine.FileRecord{
			{Filename: "b.png", Reason: "destination exists"},
		},
		Errors: []engine.FileRecord{
			{Filename: "c.png", Reason: "Permission denied: open /sorted/c.png"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "sort screenshots")
	assert.Contains(t, out, "partial failure")
	assert.Contains(t, out, "a.png")
	assert.Contains(t, out, "→ /sorted/a.png")
	assert.Contains(t, out, "destination exists")
	assert.Contains(t, out, "Permission denied")
	assert.Contains(t, out, "1 succeeded, 1 skipped, 1 errors")
}

func TestResultShowsFolderLevelFailure(t *testing.T) {
	var buf bytes.Buffer
	p := report.New(&buf, zerolog.Nop())

	p.Result(engine.ExecutionResult{
		RuleName:      "broken rule",
		Status:        engine.StatusFailed,
		FailureReason: "Source directory does not exist",
	})

	out := buf.String()
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Source directory does not exist")
	assert.Contains(t, out, "0 succeeded, 0 skipped, 0 errors")
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	p := report.New(&buf, zerolog.Nop())

	p.Header("running 2 rules")
	p.Success("done")
	p.Warning("no enabled rules")
	p.Errorf("%d of %d rules failed", 1, 2)

	out := buf.String()
	assert.Contains(t, out, "filo")
	assert.Contains(t, out, "running 2 rules")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "no enabled rules")
	assert.Contains(t, out, "1 of 2 rules failed")
}
