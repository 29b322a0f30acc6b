package engine

import "github.com/walteh/filo/pkg/rule"

// Status is the overall outcome of one rule execution.
type Status string

const (
	StatusCompleted      Status = "completed"
	StatusPartialFailure Status = "partial_failure"
	StatusFailed         Status = "failed"
)

// FileRecord is the externally visible unit appended to one of the three
// result buckets.
type FileRecord struct {
	Filename        string `json:"filename"`
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// ExecutionResult aggregates one rule execution. It is created fresh per
// invocation and immutable once returned.
type ExecutionResult struct {
	RuleID   string      `json:"rule_id"`
	RuleName string      `json:"rule_name"`
	Action   rule.Action `json:"action"`
	Status   Status      `json:"status"`

	// FailureReason is set only when the run failed before any file was
	// visited (missing source folder, invalid filters).
	FailureReason string `json:"failure_reason,omitempty"`

	Succeeded []FileRecord `json:"succeeded"`
	Skipped   []FileRecord `json:"skipped"`
	Errors    []FileRecord `json:"errors"`
}

func newResult(r rule.Rule) ExecutionResult {
	return ExecutionResult{
		RuleID:   r.ID,
		RuleName: r.Name,
		Action:   r.Action,
	}
}

// fail marks a folder-level failure: status Failed, all buckets empty.
func (res ExecutionResult) fail(reason string) ExecutionResult {
	res.Status = StatusFailed
	res.FailureReason = reason
	return res
}

// A run with no errors is Completed, even when every visited file was
// skipped. Errors without any success mean the whole run failed.
func deriveStatus(succeeded, errs []FileRecord) Status {
	switch {
	case len(errs) == 0:
		return StatusCompleted
	case len(succeeded) == 0:
		return StatusFailed
	default:
		return StatusPartialFailure
	}
}

// ProgressSink receives one notification per matched file, emitted before
// the transfer begins. Execution is single-threaded, so implementations
// need not be safe for concurrent use.
type ProgressSink interface {
	OnFileStart(ruleName, filename string)
}

// SinkFunc adapts a function to the ProgressSink interface.
type SinkFunc func(ruleName, filename string)

func (f SinkFunc) OnFileStart(ruleName, filename string) { f(ruleName, filename) }
