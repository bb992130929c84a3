package pipeline

import (
	"github.com/zyxkv/PaperPlot/pkg/errors"
)

// Stage is a named point in the init→style→draw→save lifecycle.
type Stage int

const (
	StageUninitialized Stage = iota
	StageInitialized
	StageStyleSet
	StageDrawn
	StageSaved
)

// String returns the stage name used in logs and violation errors.
func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "UNINITIALIZED"
	case StageInitialized:
		return "INITIALIZED"
	case StageStyleSet:
		return "STYLE_SET"
	case StageDrawn:
		return "DRAWN"
	case StageSaved:
		return "SAVED"
	}
	return "UNKNOWN"
}

// op identifies a lifecycle operation in the transition table.
type op string

const (
	opInit     op = "Init"
	opSetStyle op = "SetStyle"
	opDraw     op = "Draw"
	opDrawGrid op = "DrawGrid"
	opSave     op = "Save"
	opDestroy  op = "Destroy"
)

// transition is one row of the table: the stages an operation may be
// invoked from and the stage it results in.
type transition struct {
	from map[Stage]bool
	to   Stage
}

func stages(ss ...Stage) map[Stage]bool {
	m := make(map[Stage]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// transitions is the single authoritative table mapping
// (current stage, operation) to the next stage. Operations invoked from
// a stage not listed here are rejected with STAGE_VIOLATION.
var transitions = map[op]transition{
	opInit:     {from: stages(StageUninitialized), to: StageInitialized},
	opSetStyle: {from: stages(StageInitialized, StageStyleSet, StageDrawn, StageSaved), to: StageStyleSet},
	opDraw:     {from: stages(StageStyleSet, StageDrawn, StageSaved), to: StageDrawn},
	opDrawGrid: {from: stages(StageStyleSet, StageDrawn, StageSaved), to: StageDrawn},
	opSave:     {from: stages(StageDrawn, StageSaved), to: StageSaved},
	opDestroy: {
		from: stages(StageUninitialized, StageInitialized, StageStyleSet, StageDrawn, StageSaved),
		to:   StageUninitialized,
	},
}

// stageViolation builds the error returned for a rejected transition,
// naming the offending operation and the current stage.
func stageViolation(o op, current Stage) error {
	return errors.New(errors.ErrCodeStageViolation,
		"%s not allowed from stage %s", string(o), current)
}

// require checks that o may run from the session's current stage.
// The stage is not modified; callers advance only after the operation
// succeeds far enough to count.
func (s *Session) require(o op) error {
	t := transitions[o]
	if !t.from[s.stage] {
		return stageViolation(o, s.stage)
	}
	return nil
}

// advance moves the session to the operation's result stage.
func (s *Session) advance(o op) {
	s.stage = transitions[o].to
}
