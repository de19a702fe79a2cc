package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// StepDef declares one wizard step: its name, the fields that must be
// non-empty before the wizard may advance past it, and its initial field
// values. For edit mode the initial values are seeded from the record being
// edited; Cancel restores these seeds, it does not clear to empty.
type StepDef struct {
	Name     string
	Required []string
	Initial  FieldSet
}

// Coercions declares the type fixups applied to the merged payload at
// submit time.
type Coercions struct {
	// Numeric fields arrive as strings from text inputs and are converted
	// to numbers. Integral values become int64, everything else float64.
	Numeric []string
	// OptionalEnum fields left as "" are removed from the payload rather
	// than sent as an empty string.
	OptionalEnum []string
}

// SaveFunc issues the wizard's single outbound create-or-update request.
type SaveFunc func(ctx context.Context, record map[string]any) error

// Wizard is a linear forward/back step sequence over independent per-step
// field sets. Forward movement is gated by the current step's required
// fields; backward movement is unguarded. There is no terminal state: a
// successful submit resets the wizard to step 0 ready for reuse. The
// mutex serializes concurrent requests against the same mounted form;
// steps and Options are immutable after construction.
type Wizard struct {
	mu         sync.Mutex
	steps      []StepDef
	fields     []FieldSet
	initial    []FieldSet
	index      int
	coerce     Coercions
	save       SaveFunc
	onComplete func()
	// Options carries immutable snapshots injected at construction, such
	// as the departments list backing a dropdown. Never a live reference.
	Options map[string][]Record
}

// NewWizard builds a wizard from its step definitions. The initial field
// values are snapshotted at construction so Cancel can restore them
// exactly.
func NewWizard(steps []StepDef, coerce Coercions, save SaveFunc) *Wizard {
	w := &Wizard{
		steps:   steps,
		fields:  make([]FieldSet, len(steps)),
		initial: make([]FieldSet, len(steps)),
		coerce:  coerce,
		save:    save,
		Options: make(map[string][]Record),
	}
	for i, s := range steps {
		init := s.Initial
		if init == nil {
			init = FieldSet{}
		}
		w.initial[i] = init.Clone()
		w.fields[i] = init.Clone()
	}
	return w
}

// OnComplete registers a callback invoked after a successful submit, before
// the wizard resets.
func (w *Wizard) OnComplete(fn func()) {
	w.mu.Lock()
	w.onComplete = fn
	w.mu.Unlock()
}

// Step returns the current step index, always in [0, StepCount).
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index
}

// StepCount returns the number of steps.
func (w *Wizard) StepCount() int { return len(w.steps) }

// StepName returns the name of the step at index i.
func (w *Wizard) StepName(i int) string { return w.steps[i].Name }

// Fields returns a snapshot of the field set for step i.
func (w *Wizard) Fields(i int) FieldSet {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.fields) {
		return nil
	}
	return w.fields[i].Clone()
}

// CanAdvance reports whether every required field of the current step is
// present. The UI disables the forward control when this is false.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvance()
}

// canAdvance is CanAdvance with the lock held.
func (w *Wizard) canAdvance() bool {
	for _, path := range w.steps[w.index].Required {
		if IsMissing(w.fields[w.index].Get(path)) {
			return false
		}
	}
	return true
}

// Next advances one step when the current step's required fields are all
// present; otherwise it is a no-op. The index clamps at the last step.
// Returns whether the index changed.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.canAdvance() {
		return false
	}
	if w.index >= len(w.steps)-1 {
		return false
	}
	w.index++
	return true
}

// Back moves one step backward with no validation, clamped at 0.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.index > 0 {
		w.index--
	}
}

// UpdateField writes a value into the targeted step's field set, leaving
// all other steps untouched. The path may nest one level.
func (w *Wizard) UpdateField(step int, path string, value any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if step < 0 || step >= len(w.fields) {
		return fmt.Errorf("step %d out of range", step)
	}
	return w.fields[step].Set(path, value)
}

// Toggle applies checkbox-set semantics to a multi-select field of the
// targeted step.
func (w *Wizard) Toggle(step int, path string, option any, checked bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if step < 0 || step >= len(w.fields) {
		return fmt.Errorf("step %d out of range", step)
	}
	return w.fields[step].Toggle(path, option, checked)
}

// Cancel restores every step's field set to the snapshot captured at
// construction (including edit-mode seeds) and returns to step 0.
func (w *Wizard) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

// reset is Cancel with the lock held.
func (w *Wizard) reset() {
	for i := range w.fields {
		w.fields[i] = w.initial[i].Clone()
	}
	w.index = 0
}

// Submit is only callable from the last step. It shallow-merges all steps
// into one payload, applies the declared coercions, and issues exactly one
// save request. On success the completion callback runs and the wizard
// resets as Cancel does; on failure the wizard state is preserved unchanged
// so the user can retry without re-entering data. The lock is held across
// the save, so a double-click cannot fire two requests.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.index != len(w.steps)-1 {
		return fmt.Errorf("submit from step %d of %d: not on final step", w.index, len(w.steps))
	}
	payload := w.merged()
	if err := w.save(ctx, payload); err != nil {
		return err
	}
	if w.onComplete != nil {
		w.onComplete()
	}
	w.reset()
	return nil
}

// merged builds the outbound payload: a shallow union of all steps' field
// sets with the declared coercions applied. Later steps win on key
// collisions.
func (w *Wizard) merged() map[string]any {
	payload := make(map[string]any)
	for _, fs := range w.fields {
		for k, v := range fs.Clone() {
			payload[k] = v
		}
	}
	for _, path := range w.coerce.Numeric {
		coerceNumeric(payload, path)
	}
	for _, path := range w.coerce.OptionalEnum {
		dropEmpty(payload, path)
	}
	return payload
}

func coerceNumeric(payload map[string]any, path string) {
	parent, child, err := splitPath(path)
	if err != nil {
		return
	}
	target := payload
	if parent != "" {
		nested, ok := payload[parent].(FieldSet)
		if !ok {
			return
		}
		target = nested
	}
	s, ok := target[child].(string)
	if !ok || s == "" {
		return
	}
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			target[child] = n
			return
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		target[child] = f
	}
}

func dropEmpty(payload map[string]any, path string) {
	parent, child, err := splitPath(path)
	if err != nil {
		return
	}
	target := payload
	if parent != "" {
		nested, ok := payload[parent].(FieldSet)
		if !ok {
			return
		}
		target = nested
	}
	if s, ok := target[child].(string); ok && s == "" {
		delete(target, child)
	}
}
