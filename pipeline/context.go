// Package pipeline provides the validation pipeline infrastructure.
package pipeline

import (
	"sync"

	kv "github.com/gokin/validator"
)

// Context holds all state needed during validation of a single
// candidate document. It is passed through all validation phases and
// provides shared access to the parsed document, the id indexes built
// while validating members, and the accumulated result.
//
// Context instances are pooled for efficiency. Use AcquireContext() and
// Release() to manage them properly.
type Context struct {
	// Document is the candidate dataset as a parsed map
	Document map[string]any

	// Members is the members array extracted by the root phase,
	// nil until the root phase has confirmed it is an array
	Members []any

	// Relationships is the relationships array extracted by the root
	// phase, nil until confirmed
	Relationships []any

	// MemberIDs maps each valid member id to the index of its first
	// occurrence. Later duplicates never overwrite the first claim, so
	// referential checks always resolve against the first occurrence.
	MemberIDs map[string]int

	// RelationshipIDs tracks relationship ids the same way, in their own
	// namespace
	RelationshipIDs map[string]int

	// Result accumulates validation issues
	Result *kv.Result

	// Options holds validation options
	Options *kv.Options

	// halted is set when per-element validation cannot proceed (the
	// members or relationships field is absent or not an array)
	halted bool

	// mu protects halted
	mu sync.Mutex
}

// contextPool holds reusable Context instances.
var contextPool = sync.Pool{
	New: func() any {
		return &Context{
			MemberIDs:       make(map[string]int, 32),
			RelationshipIDs: make(map[string]int, 32),
		}
	},
}

// AcquireContext gets a Context from the pool.
// Call Release() when done to return it to the pool.
func AcquireContext() *Context {
	ctx := contextPool.Get().(*Context)
	ctx.Reset()
	return ctx
}

// Release returns the Context to the pool.
// After calling Release, the Context should not be used.
func (c *Context) Release() {
	if c == nil {
		return
	}
	// Don't return contexts with oversized maps
	if len(c.MemberIDs) <= 4096 && len(c.RelationshipIDs) <= 4096 {
		contextPool.Put(c)
	}
}

// Reset clears the context for reuse.
func (c *Context) Reset() {
	c.Document = nil
	c.Members = nil
	c.Relationships = nil
	c.Result = nil
	c.Options = nil
	c.halted = false

	// Clear maps without reallocating
	for k := range c.MemberIDs {
		delete(c.MemberIDs, k)
	}
	for k := range c.RelationshipIDs {
		delete(c.RelationshipIDs, k)
	}
}

// Halt marks the context so later phases skip per-element validation.
// Used when the members or relationships field is absent or not an
// array: there is nothing safe to iterate.
func (c *Context) Halt() {
	c.mu.Lock()
	c.halted = true
	c.mu.Unlock()
}

// Halted returns true if per-element validation should not run.
func (c *Context) Halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halted
}

// AddIssue adds a validation issue to the result.
func (c *Context) AddIssue(issue kv.Issue) {
	if c.Result != nil {
		c.Result.AddIssue(issue)
	}
}

// AddError is a convenience method to add an error issue.
func (c *Context) AddError(code kv.IssueType, diagnostics, path string) {
	if c.Result != nil {
		c.Result.AddError(code, diagnostics, path)
	}
}

// ShouldStop returns true if validation should stop (max errors reached).
func (c *Context) ShouldStop() bool {
	if c.Options == nil || c.Options.MaxErrors <= 0 {
		return false
	}
	if c.Result == nil {
		return false
	}
	return c.Result.ErrorCount() >= c.Options.MaxErrors
}

// ResolveMember returns the first-occurrence index of a member id.
func (c *Context) ResolveMember(id string) (int, bool) {
	idx, ok := c.MemberIDs[id]
	return idx, ok
}

// ClaimMemberID records a member id at the given index. Returns the
// index of the earlier claim and false if the id was already taken;
// first occurrence wins.
func (c *Context) ClaimMemberID(id string, index int) (int, bool) {
	if prev, ok := c.MemberIDs[id]; ok {
		return prev, false
	}
	c.MemberIDs[id] = index
	return index, true
}

// ClaimRelationshipID records a relationship id at the given index, in
// the relationship namespace. Same first-occurrence-wins contract as
// ClaimMemberID.
func (c *Context) ClaimRelationshipID(id string, index int) (int, bool) {
	if prev, ok := c.RelationshipIDs[id]; ok {
		return prev, false
	}
	c.RelationshipIDs[id] = index
	return index, true
}

// NewContext creates a new Context (non-pooled).
// Prefer AcquireContext() for better performance.
func NewContext() *Context {
	return &Context{
		MemberIDs:       make(map[string]int, 32),
		RelationshipIDs: make(map[string]int, 32),
	}
}

// ReleaseContext returns a Context to the pool.
// This is a convenience function equivalent to ctx.Release().
func ReleaseContext(ctx *Context) {
	if ctx != nil {
		ctx.Release()
	}
}
