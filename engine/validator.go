// Package engine provides the main dataset validation engine.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	santhosh "github.com/santhosh-tekuri/jsonschema/v5"

	kv "github.com/gokin/validator"
	"github.com/gokin/validator/phase"
	"github.com/gokin/validator/pipeline"
	"github.com/gokin/validator/schema"
	"github.com/gokin/validator/specs"
)

// Validator is the import/export gate for family-tree datasets.
// It coordinates the validation phases and accumulates metrics.
//
// Validate never fails for malformed input: malformedness is reported
// through the returned Result, not through an error or a panic. The
// error return is reserved for engine misuse, and is currently always
// nil.
type Validator struct {
	options *kv.Options
	pipe    *pipeline.Pipeline
	metrics *kv.Metrics

	// Worker pool for batch validation
	workerPool     chan struct{}
	workerPoolOnce sync.Once
}

// New creates a new Validator with the specified options.
func New(ctx context.Context, opts ...kv.Option) (*Validator, error) {
	options := kv.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	v := &Validator{
		options: options,
		metrics: kv.NewMetrics(),
	}

	v.buildPipeline()

	return v, nil
}

// buildPipeline constructs the fixed-order validation pipeline.
func (v *Validator) buildPipeline() {
	v.pipe = pipeline.NewPipeline(&pipeline.Options{
		MaxErrors:      v.options.MaxErrors,
		CollectMetrics: v.options.CollectMetrics,
	})

	v.pipe.RegisterConfig(pipeline.PhaseIDRoot, phase.RootPhaseConfig())
	v.pipe.RegisterConfig(pipeline.PhaseIDMembers, phase.MembersPhaseConfig())
	v.pipe.RegisterConfig(pipeline.PhaseIDRelationships, phase.RelationshipsPhaseConfig())
}

// Validate validates a raw JSON dataset document.
func (v *Validator) Validate(ctx context.Context, doc []byte) (*kv.Result, error) {
	var candidate any
	if err := json.Unmarshal(doc, &candidate); err != nil {
		start := time.Now()
		result := v.acquireResult()
		result.AddError(kv.IssueTypeStructure, fmt.Sprintf("Invalid JSON: %v", err), "")
		v.recordValidation(time.Since(start), false)
		return result, nil
	}

	return v.ValidateValue(ctx, candidate)
}

// ValidateValue validates an arbitrary parsed JSON value. A candidate
// that is not a non-null JSON object yields a single structure error
// and no further checks: there is nothing safe to index into.
func (v *Validator) ValidateValue(ctx context.Context, candidate any) (*kv.Result, error) {
	m, ok := candidate.(map[string]any)
	if !ok || m == nil {
		start := time.Now()
		result := v.acquireResult()
		result.AddError(kv.IssueTypeStructure, "Dataset must be a JSON object", "")
		v.recordValidation(time.Since(start), false)
		return result, nil
	}

	return v.ValidateMap(ctx, m)
}

// ValidateMap validates a dataset that has already been parsed to a map.
// The candidate is never mutated; on success the Result carries the
// typed Dataset, a faithful view of the accepted document.
func (v *Validator) ValidateMap(ctx context.Context, m map[string]any) (*kv.Result, error) {
	pctx := pipeline.AcquireContext()
	pctx.Document = m
	pctx.Options = v.options
	pctx.Result = v.acquireResult()

	v.pipe.Execute(ctx, pctx)

	result := pctx.Result
	pctx.Result = nil // Don't release the result with the context
	pipeline.ReleaseContext(pctx)

	if result.Valid {
		result.Dataset = schema.FromMap(m)
	}

	return result, nil
}

// Check validates a document and reports the outcome as a yes/no plus a
// single human-readable message, for callers that only need the legacy
// result shape. It performs no additional checks and accepts exactly
// the same inputs as Validate.
func (v *Validator) Check(ctx context.Context, doc []byte) (bool, string) {
	result, _ := v.Validate(ctx, doc)
	defer result.Release()

	if result.Valid {
		return true, ""
	}
	return false, result.JoinedMessage()
}

// QuickValidate performs fast structural screening of a document
// against the embedded wire-format JSON Schema. It checks shape and
// patterns only; calendar validity, id uniqueness and referential
// integrity require a full Validate. A document rejected here would
// also be rejected by Validate, but not vice versa.
func (v *Validator) QuickValidate(ctx context.Context, doc []byte) (*kv.Result, error) {
	result := v.acquireResult()

	var candidate any
	if err := json.Unmarshal(doc, &candidate); err != nil {
		result.AddError(kv.IssueTypeStructure, fmt.Sprintf("Invalid JSON: %v", err), "")
		return result, nil
	}

	sch, err := specs.Compiled()
	if err != nil {
		result.Release()
		return nil, fmt.Errorf("compile dataset schema: %w", err)
	}

	if err := sch.Validate(candidate); err != nil {
		var ve *santhosh.ValidationError
		if errors.As(err, &ve) {
			for _, msg := range specs.CollectErrors(ve) {
				result.AddError(kv.IssueTypeStructure, msg, "")
			}
		} else {
			result.AddError(kv.IssueTypeStructure, err.Error(), "")
		}
	}

	return result, nil
}

// ValidateBatch validates multiple documents in parallel, bounded by
// the configured worker count. Results are returned in input order.
// Safe because each validation operates only on its own arguments and
// local accumulator state.
func (v *Validator) ValidateBatch(ctx context.Context, docs [][]byte) []*kv.Result {
	results := make([]*kv.Result, len(docs))

	v.workerPoolOnce.Do(func() {
		workers := v.options.WorkerCount
		if workers <= 0 {
			workers = 4
		}
		v.workerPool = make(chan struct{}, workers)
	})

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(idx int, doc []byte) {
			defer wg.Done()

			// Acquire worker slot
			v.workerPool <- struct{}{}
			defer func() { <-v.workerPool }()

			result, err := v.Validate(ctx, doc)
			if err != nil {
				result = v.acquireResult()
				result.AddError(kv.IssueTypeProcessing, err.Error(), "")
			}
			results[idx] = result
		}(i, doc)
	}

	wg.Wait()
	return results
}

// acquireResult gets a result, pooled or not per options.
func (v *Validator) acquireResult() *kv.Result {
	if v.options.EnablePooling {
		return kv.AcquireResult()
	}
	return kv.NewResult()
}

// recordValidation records a validation that bypassed the pipeline
// (parse failures and shape-gate rejections).
func (v *Validator) recordValidation(duration time.Duration, valid bool) {
	if v.options.CollectMetrics {
		v.metrics.RecordValidation(duration, valid)
	}
}

// Metrics returns the validator's own metrics (pipeline-bypassing
// rejections). Pipeline phase metrics are available via PipelineMetrics.
func (v *Validator) Metrics() *kv.Metrics {
	return v.metrics
}

// PipelineMetrics returns timing and issue counts per validation phase.
func (v *Validator) PipelineMetrics() *kv.Metrics {
	return v.pipe.Metrics()
}

// Options returns the validator's options.
func (v *Validator) Options() *kv.Options {
	return v.options
}
