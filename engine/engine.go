// Package engine provides the Session orchestrator that wires together
// classification, entity extraction, command normalization, and the
// dialogue controller into a single input cycle.
package engine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mlowen/simcore/engine/classify"
	"github.com/mlowen/simcore/engine/dialogue"
	"github.com/mlowen/simcore/engine/extract"
	"github.com/mlowen/simcore/engine/normalize"
	"github.com/mlowen/simcore/engine/text"
	"github.com/mlowen/simcore/engine/unknowns"
	"github.com/mlowen/simcore/engine/vocab"
	"github.com/mlowen/simcore/types"
)

// Executor runs a canonical command against the simulation and returns
// its output lines. Handlers may open a dialogue state as a side
// effect before the command is allowed to complete.
type Executor func(cmd types.Command) []string

// ContextFunc supplies the content-derived vocabulary for the current
// recognition call. It is consulted fresh on every input.
type ContextFunc func() types.Context

// Session holds the interpreter state for one play session. Sessions
// are explicitly constructed and independent: multiple sessions never
// share vocabulary, dialogue state, or logs.
type Session struct {
	ID string

	vocab      *vocab.Registry
	classifier *classify.Classifier
	normalizer *normalize.Normalizer
	unknowns   *unknowns.Log
	controller *dialogue.Controller

	contextFn ContextFunc
	exec      Executor

	// CommandLog records every non-empty input line, in order.
	CommandLog []string

	// Per-cycle scratch. Execution is single-threaded and synchronous:
	// one input is fully processed before the next is accepted.
	out     []string
	lastRec types.Recognition
	lastCmd types.Command
}

// New creates a session over the given vocabulary. A nil registry gets
// the built-in default vocabulary.
func New(registry *vocab.Registry, contextFn ContextFunc, exec Executor) *Session {
	if registry == nil {
		registry = vocab.DefaultRegistry()
	}
	if contextFn == nil {
		contextFn = func() types.Context { return types.Context{} }
	}
	if exec == nil {
		exec = func(types.Command) []string { return nil }
	}

	log := unknowns.NewLog()
	s := &Session{
		ID:         uuid.NewString(),
		vocab:      registry,
		classifier: classify.New(registry, log),
		normalizer: normalize.New(registry),
		unknowns:   log,
		controller: dialogue.New(),
		contextFn:  contextFn,
		exec:       exec,
	}

	s.controller.Dispatch = s.dispatch
	s.controller.Exec = s.execute
	s.controller.Emit = s.emit
	s.controller.Resolve = s.resolveSlot
	return s
}

// Dialogue exposes the controller so simulation handlers can open
// follow-up interactions.
func (s *Session) Dialogue() *dialogue.Controller {
	return s.controller
}

// RegisterIntent extends the vocabulary without touching the
// classifier.
func (s *Session) RegisterIntent(def types.IntentDef) error {
	return s.vocab.Register(def)
}

// UnknownInputs returns the recorded unrecognized utterances, oldest
// first.
func (s *Session) UnknownInputs() []string {
	return s.unknowns.Snapshot()
}

// ClearUnknownInputs discards the unknown-input log.
func (s *Session) ClearUnknownInputs() {
	s.unknowns.Clear()
}

// RestoreUnknownInputs replaces the unknown-input log, for save
// restore.
func (s *Session) RestoreUnknownInputs(entries []string) {
	s.unknowns.Restore(entries)
}

// Handle processes one raw input line: the dialogue controller
// consumes it if a pending state exists, otherwise it flows through
// classification, extraction, normalization, and execution.
func (s *Session) Handle(input string) types.Result {
	s.out = nil
	s.lastRec = types.Recognition{}
	s.lastCmd = types.Command{}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" && !s.controller.Active() {
		return types.Result{Output: []string{"What do you want to do?"}}
	}
	if trimmed != "" {
		s.CommandLog = append(s.CommandLog, trimmed)
	}

	s.controller.Handle(trimmed)

	return types.Result{
		Recognition: s.lastRec,
		Command:     s.lastCmd,
		Output:      s.out,
	}
}

// Recognize classifies the input and extracts the winning intent's
// declared slots from it.
func (s *Session) Recognize(input string, ctx types.Context) types.Recognition {
	normalized := text.Normalize(input)
	rec := s.classifier.Classify(normalized)
	rec.Raw = input

	if rec.Intent == classify.Unknown {
		return rec
	}

	def, ok := s.vocab.Get(rec.Intent)
	if !ok {
		return rec
	}
	rec.Entities = map[string]types.Entity{}
	for _, slot := range def.Slots {
		kind, known := vocab.SlotKind(slot)
		if !known {
			continue
		}
		if ent, found := extract.Extract(kind, normalized, ctx); found {
			rec.Entities[slot] = ent
		}
	}
	return rec
}

// Normalize builds the canonical command for a recognition result.
func (s *Session) Normalize(rec types.Recognition, ctx types.Context) types.Command {
	return s.normalizer.Normalize(rec, ctx)
}

// dispatch is the pass-through path used when no dialogue state is
// pending.
func (s *Session) dispatch(input string) {
	ctx := s.contextFn()
	rec := s.Recognize(input, ctx)
	s.lastRec = rec
	s.execute(s.normalizer.Normalize(rec, ctx))
}

func (s *Session) execute(cmd types.Command) {
	s.lastCmd = cmd
	s.out = append(s.out, s.exec(cmd)...)
}

func (s *Session) emit(line string) {
	s.out = append(s.out, line)
}

// resolveSlot extracts a single slot value from a bare dialogue
// response.
func (s *Session) resolveSlot(slot, input string) (types.Entity, bool) {
	kind, ok := vocab.SlotKind(slot)
	if !ok {
		return types.Entity{}, false
	}
	return extract.Extract(kind, text.Normalize(input), s.contextFn())
}
