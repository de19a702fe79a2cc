package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func registrationSteps() []StepDef {
	return []StepDef{
		{Name: "Personal", Required: []string{"firstName", "lastName"}},
		{Name: "Contact", Required: []string{"phone"}},
		{Name: "Medical"},
	}
}

type recordingSave struct {
	calls   int
	last    map[string]any
	failErr error
}

func (r *recordingSave) fn(_ context.Context, record map[string]any) error {
	r.calls++
	r.last = record
	return r.failErr
}

func TestWizardNextGuardedByRequiredFields(t *testing.T) {
	sv := &recordingSave{}
	w := NewWizard(registrationSteps(), Coercions{}, sv.fn)

	if w.CanAdvance() {
		t.Fatal("empty required fields should block advancing")
	}
	if w.Next() {
		t.Fatal("Next must be a no-op while required fields are missing")
	}
	if w.Step() != 0 {
		t.Fatalf("index moved to %d", w.Step())
	}

	_ = w.UpdateField(0, "firstName", "Ada")
	if w.Next() {
		t.Fatal("one of two required fields is still missing")
	}

	_ = w.UpdateField(0, "lastName", "Okafor")
	if !w.Next() {
		t.Fatal("all required fields present, Next should advance")
	}
	if w.Step() != 1 {
		t.Fatalf("expected step 1, got %d", w.Step())
	}
}

func TestWizardBackIsUnguardedAndClamped(t *testing.T) {
	sv := &recordingSave{}
	w := NewWizard(registrationSteps(), Coercions{}, sv.fn)

	w.Back()
	if w.Step() != 0 {
		t.Fatalf("Back at step 0 must clamp, got %d", w.Step())
	}

	_ = w.UpdateField(0, "firstName", "Ada")
	_ = w.UpdateField(0, "lastName", "Okafor")
	w.Next()

	// Step 1's required phone is empty, but backward movement never checks.
	w.Back()
	if w.Step() != 0 {
		t.Fatalf("expected step 0 after Back, got %d", w.Step())
	}
	if got := w.Fields(0).Get("firstName"); got != "Ada" {
		t.Errorf("field lost on Back: %v", got)
	}
}

func TestWizardNextClampsAtLastStep(t *testing.T) {
	sv := &recordingSave{}
	w := NewWizard([]StepDef{{Name: "Only"}}, Coercions{}, sv.fn)

	if w.Next() {
		t.Error("Next on the last step must not move")
	}
	if w.Step() != 0 {
		t.Errorf("index moved to %d", w.Step())
	}
}

func TestWizardCancelRestoresConstructionSnapshot(t *testing.T) {
	steps := registrationSteps()
	// Edit mode: seeds come from the record under edit, not empty values.
	steps[0].Initial = FieldSet{"firstName": "Grace", "lastName": "Obi"}
	steps[1].Initial = FieldSet{"phone": "+234800"}

	sv := &recordingSave{}
	w := NewWizard(steps, Coercions{}, sv.fn)

	_ = w.UpdateField(0, "firstName", "Changed")
	_ = w.UpdateField(1, "phone", "+111")
	_ = w.UpdateField(2, "notes", "scratch")
	w.Next()
	w.Next()

	w.Cancel()

	if w.Step() != 0 {
		t.Errorf("Cancel must return to step 0, got %d", w.Step())
	}
	if !w.Fields(0).Equal(FieldSet{"firstName": "Grace", "lastName": "Obi"}) {
		t.Errorf("step 0 not restored to its seed: %v", w.Fields(0))
	}
	if !w.Fields(1).Equal(FieldSet{"phone": "+234800"}) {
		t.Errorf("step 1 not restored to its seed: %v", w.Fields(1))
	}
	if !w.Fields(2).Equal(FieldSet{}) {
		t.Errorf("step 2 should be empty again: %v", w.Fields(2))
	}
	if sv.calls != 0 {
		t.Errorf("Cancel must not save, got %d calls", sv.calls)
	}
}

func TestWizardSubmitOnlyFromLastStep(t *testing.T) {
	sv := &recordingSave{}
	w := NewWizard(registrationSteps(), Coercions{}, sv.fn)

	if err := w.Submit(context.Background()); err == nil {
		t.Fatal("expected error submitting from step 0")
	}
	if sv.calls != 0 {
		t.Fatalf("no save should have been issued, got %d", sv.calls)
	}
}

func TestWizardSubmitMergesAndCoerces(t *testing.T) {
	steps := []StepDef{
		{Name: "Profile", Required: []string{"firstName"}},
		{Name: "Practice"},
	}
	sv := &recordingSave{}
	w := NewWizard(steps, Coercions{
		Numeric:      []string{"experienceYears", "consultationFee"},
		OptionalEnum: []string{"bloodGroup"},
	}, sv.fn)

	_ = w.UpdateField(0, "firstName", "Grace")
	_ = w.UpdateField(0, "bloodGroup", "")
	_ = w.UpdateField(1, "experienceYears", "12")
	_ = w.UpdateField(1, "consultationFee", "150.50")
	w.Next()

	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sv.calls != 1 {
		t.Fatalf("expected exactly one save, got %d", sv.calls)
	}

	if got := sv.last["experienceYears"]; got != int64(12) {
		t.Errorf("integral string should coerce to int64, got %#v", got)
	}
	if got := sv.last["consultationFee"]; got != 150.50 {
		t.Errorf("decimal string should coerce to float64, got %#v", got)
	}
	if _, present := sv.last["bloodGroup"]; present {
		t.Error("empty optional enum must be dropped from the payload")
	}
	if got := sv.last["firstName"]; got != "Grace" {
		t.Errorf("merge lost a field: %#v", got)
	}

	// Success resets the wizard for reuse.
	if w.Step() != 0 {
		t.Errorf("expected reset to step 0, got %d", w.Step())
	}
	if !w.Fields(0).Equal(FieldSet{}) {
		t.Errorf("fields should be back to their seeds: %v", w.Fields(0))
	}
}

func TestWizardLaterStepsWinOnCollision(t *testing.T) {
	steps := []StepDef{
		{Name: "One", Initial: FieldSet{"status": "Draft"}},
		{Name: "Two", Initial: FieldSet{"status": "Active"}},
	}
	sv := &recordingSave{}
	w := NewWizard(steps, Coercions{}, sv.fn)
	w.Next()

	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sv.last["status"]; got != "Active" {
		t.Errorf("later step should win the collision, got %#v", got)
	}
}

func TestWizardFailedSubmitPreservesState(t *testing.T) {
	sv := &recordingSave{failErr: errors.New("backend down")}
	w := NewWizard([]StepDef{
		{Name: "One", Required: []string{"name"}},
		{Name: "Two"},
	}, Coercions{}, sv.fn)

	_ = w.UpdateField(0, "name", "Cardiology")
	_ = w.UpdateField(1, "head", "Grace Obi")
	w.Next()

	if err := w.Submit(context.Background()); err == nil {
		t.Fatal("expected submit failure")
	}
	if w.Step() != 1 {
		t.Errorf("failed submit must not move the index, got %d", w.Step())
	}
	if got := w.Fields(0).Get("name"); got != "Cardiology" {
		t.Errorf("entered data lost after failure: %v", got)
	}
	if got := w.Fields(1).Get("head"); got != "Grace Obi" {
		t.Errorf("entered data lost after failure: %v", got)
	}

	// Retry succeeds without re-entering anything.
	sv.failErr = nil
	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if sv.calls != 2 {
		t.Errorf("expected two save attempts, got %d", sv.calls)
	}
}

func TestWizardOnComplete(t *testing.T) {
	sv := &recordingSave{}
	w := NewWizard([]StepDef{{Name: "Only"}}, Coercions{}, sv.fn)

	completed := false
	w.OnComplete(func() { completed = true })

	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !completed {
		t.Error("completion callback did not run")
	}
}

func TestWizardCoercionSkipsNonNumericStrings(t *testing.T) {
	sv := &recordingSave{}
	w := NewWizard([]StepDef{{Name: "Only"}}, Coercions{Numeric: []string{"experienceYears"}}, sv.fn)

	_ = w.UpdateField(0, "experienceYears", "a lot")
	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sv.last["experienceYears"]; got != "a lot" {
		t.Errorf("unparseable value should pass through unchanged, got %#v", got)
	}
}

func TestWizardConcurrentFieldWritesAreSerialized(t *testing.T) {
	sv := &recordingSave{}
	w := NewWizard(registrationSteps(), Coercions{}, sv.fn)

	// Two request goroutines hammer the same mounted form while a third
	// reads its state, the way overlapping HTTP calls from one user do.
	const writes = 100
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			_ = w.UpdateField(0, "firstName", "Ada")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			_ = w.UpdateField(0, "lastName", "Okafor")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			_ = w.Fields(0)
			_ = w.CanAdvance()
			_ = w.Step()
		}
	}()
	wg.Wait()

	if got := w.Fields(0).Get("firstName"); got != "Ada" {
		t.Errorf("firstName = %v, want Ada", got)
	}
	if got := w.Fields(0).Get("lastName"); got != "Okafor" {
		t.Errorf("lastName = %v, want Okafor", got)
	}
	if !w.CanAdvance() {
		t.Error("both required fields present, step should validate")
	}
}

func TestWizardFieldsReturnsSnapshot(t *testing.T) {
	sv := &recordingSave{}
	w := NewWizard(registrationSteps(), Coercions{}, sv.fn)
	_ = w.UpdateField(0, "firstName", "Ada")

	snap := w.Fields(0)
	snap["firstName"] = "tampered"

	if got := w.Fields(0).Get("firstName"); got != "Ada" {
		t.Errorf("mutating the snapshot must not reach the wizard, got %v", got)
	}
}
