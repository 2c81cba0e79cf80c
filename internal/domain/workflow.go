package domain

// Step names a stage of the recharge workflow.
type Step string

// Workflow steps in the order they can occur.
const (
	StepGetSession     Step = "get_session"
	StepVerifyCode     Step = "verify_code"
	StepReuseRecord    Step = "reuse_record"
	StepSubmitRecharge Step = "submit_recharge"
	StepDecision       Step = "decision"
)

// StepUpdateToken is the standalone token replacement call. It never occurs
// inside a workflow run.
const StepUpdateToken Step = "update_token"

// StepRecord is one entry of a workflow trace.
type StepRecord struct {
	Step    Step            `json:"step"`
	Success bool            `json:"success"`
	Session SessionHandle   `json:"session,omitempty"`
	Result  *UpstreamResult `json:"-"`
	Error   string          `json:"error,omitempty"`
}

// Trace is the append-only list of steps a workflow run went through.
type Trace struct {
	steps []StepRecord
}

// Append records a step.
func (t *Trace) Append(rec StepRecord) {
	t.steps = append(t.steps, rec)
}

// Steps returns a copy of the recorded steps.
func (t *Trace) Steps() []StepRecord {
	out := make([]StepRecord, len(t.steps))
	copy(out, t.steps)

	return out
}

// Last returns the most recent step, or false if the trace is empty.
func (t *Trace) Last() (StepRecord, bool) {
	if len(t.steps) == 0 {
		return StepRecord{}, false
	}

	return t.steps[len(t.steps)-1], true
}

// Len returns the number of recorded steps.
func (t *Trace) Len() int {
	return len(t.steps)
}
