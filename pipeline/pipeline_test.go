package pipeline

import (
	"context"
	"testing"

	kv "github.com/gokin/validator"
)

func recordingPhase(name string, order *[]string, issues ...kv.Issue) Phase {
	return NewPhaseFunc(name, func(_ context.Context, _ *Context) []kv.Issue {
		*order = append(*order, name)
		return issues
	})
}

func TestPipeline_ExecutesInPriorityOrder(t *testing.T) {
	p := NewPipeline(nil)

	var order []string
	p.Register(PhaseIDRelationships, recordingPhase("relationships", &order), WithPriority(PriorityLate))
	p.Register(PhaseIDRoot, recordingPhase("root", &order), WithPriority(PriorityFirst))
	p.Register(PhaseIDMembers, recordingPhase("members", &order), WithPriority(PriorityEarly))

	pctx := NewContext()
	pctx.Result = kv.NewResult()
	p.Execute(context.Background(), pctx)

	want := []string{"root", "members", "relationships"}
	if len(order) != len(want) {
		t.Fatalf("executed %v; want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("executed %v; want %v", order, want)
		}
	}
}

func TestPipeline_CollectsIssuesInOrder(t *testing.T) {
	p := NewPipeline(nil)

	var order []string
	first := kv.Error(kv.IssueTypeRequired).Diagnostics("from root").At("version").Build()
	second := kv.Error(kv.IssueTypeRequired).Diagnostics("from members").At("members[0].id").Build()

	p.Register(PhaseIDRoot, recordingPhase("root", &order, first), WithPriority(PriorityFirst))
	p.Register(PhaseIDMembers, recordingPhase("members", &order, second), WithPriority(PriorityEarly))

	pctx := NewContext()
	pctx.Result = kv.NewResult()
	result := p.Execute(context.Background(), pctx)

	if result.Valid {
		t.Error("result should be invalid")
	}
	if len(result.Issues) != 2 {
		t.Fatalf("len(Issues) = %d; want 2", len(result.Issues))
	}
	if result.Issues[0].Path != "version" || result.Issues[1].Path != "members[0].id" {
		t.Errorf("issue order = %q, %q", result.Issues[0].Path, result.Issues[1].Path)
	}
}

func TestPipeline_SkipsHaltedPhases(t *testing.T) {
	p := NewPipeline(nil)

	var order []string
	halting := NewPhaseFunc("root", func(_ context.Context, pctx *Context) []kv.Issue {
		order = append(order, "root")
		pctx.Halt()
		return nil
	})

	p.Register(PhaseIDRoot, halting, WithPriority(PriorityFirst))
	p.Register(PhaseIDMembers, recordingPhase("members", &order),
		WithPriority(PriorityEarly), WithSkipWhenHalted(true))
	p.Register(PhaseIDRelationships, recordingPhase("relationships", &order),
		WithPriority(PriorityLate), WithSkipWhenHalted(true))

	pctx := NewContext()
	pctx.Result = kv.NewResult()
	p.Execute(context.Background(), pctx)

	if len(order) != 1 || order[0] != "root" {
		t.Errorf("executed %v; want only root", order)
	}
}

func TestPipeline_MaxErrorsStopsExecution(t *testing.T) {
	p := NewPipeline(&Options{MaxErrors: 1})

	var order []string
	issue := kv.Error(kv.IssueTypeRequired).Diagnostics("boom").Build()

	p.Register(PhaseIDRoot, recordingPhase("root", &order, issue), WithPriority(PriorityFirst))
	p.Register(PhaseIDMembers, recordingPhase("members", &order), WithPriority(PriorityEarly))

	pctx := NewContext()
	pctx.Result = kv.NewResult()
	p.Execute(context.Background(), pctx)

	if len(order) != 1 {
		t.Errorf("executed %v; want execution to stop after the error budget", order)
	}
}

func TestPipeline_Cancellation(t *testing.T) {
	p := NewPipeline(nil)

	var order []string
	p.Register(PhaseIDRoot, recordingPhase("root", &order), WithPriority(PriorityFirst))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pctx := NewContext()
	pctx.Result = kv.NewResult()
	result := p.Execute(ctx, pctx)

	if len(order) != 0 {
		t.Errorf("executed %v; want no phases after cancellation", order)
	}
	if len(result.Issues) != 1 || result.Issues[0].Code != kv.IssueTypeTimeout {
		t.Fatalf("expected a single timeout issue, got %+v", result.Issues)
	}
	if !result.Issues[0].IsError() {
		t.Error("cancellation issue must be error severity")
	}
	if result.Valid {
		t.Error("an interrupted validation must not read as valid")
	}
}

func TestPipeline_DisableRespectsRequired(t *testing.T) {
	p := NewPipeline(nil)

	var order []string
	p.Register(PhaseIDRoot, recordingPhase("root", &order),
		WithPriority(PriorityFirst), WithRequired(true))
	p.Register(PhaseIDMembers, recordingPhase("members", &order), WithPriority(PriorityEarly))

	p.Disable(PhaseIDRoot)
	p.Disable(PhaseIDMembers)

	if p.PhaseCount() != 1 {
		t.Errorf("PhaseCount() = %d; want 1 (required phase stays)", p.PhaseCount())
	}

	p.Enable(PhaseIDMembers)
	if p.PhaseCount() != 2 {
		t.Errorf("PhaseCount() = %d after Enable; want 2", p.PhaseCount())
	}
}

func TestPipeline_RecordsPhaseMetrics(t *testing.T) {
	p := NewPipeline(&Options{CollectMetrics: true})

	var order []string
	issue := kv.Error(kv.IssueTypeValue).Diagnostics("bad").Build()
	p.Register(PhaseIDRoot, recordingPhase("root", &order, issue), WithPriority(PriorityFirst))

	pctx := NewContext()
	pctx.Result = kv.NewResult()
	p.Execute(context.Background(), pctx)

	stats, ok := p.Metrics().PhaseStats("root")
	if !ok {
		t.Fatal("no phase stats recorded for root")
	}
	if stats.Invocations != 1 || stats.IssuesFound != 1 {
		t.Errorf("stats = %+v; want 1 invocation, 1 issue", stats)
	}
}
