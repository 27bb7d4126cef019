package search

import (
	"errors"
	"fmt"

	"github.com/matzehuels/pipeflow/pkg/network"
)

// ErrRejected marks a path that fails a validity check at some step.
var ErrRejected = errors.New("connection rejected")

// Step is the verdict for one connection of a verified path.
type Step struct {
	Index      int                `json:"index"`
	Connection network.Connection `json:"connection"`
	Verdict    Verdict            `json:"-"`
}

// Verification is the step-by-step outcome of checking a fixed path.
type Verification struct {
	// Steps holds one entry per checked connection. Checking stops at the
	// first rejection, so a rejected path has fewer steps than connections.
	Steps []Step
	// Final is the configuration reached by the accepted prefix.
	Final network.Nodes
}

// Accepted reports whether every connection of the path passed.
func (v *Verification) Accepted() bool {
	return len(v.Steps) == 0 || v.Steps[len(v.Steps)-1].Verdict.Accepted()
}

// Saturated reports whether the accepted prefix leaves no empty capacity.
func (v *Verification) Saturated() bool { return v.Final.Saturated() }

// Err returns nil for an accepted path and an error wrapping [ErrRejected]
// that names the failing step otherwise.
func (v *Verification) Err() error {
	if v.Accepted() {
		return nil
	}
	last := v.Steps[len(v.Steps)-1]
	return fmt.Errorf("%w: step %d (%s): %s", ErrRejected, last.Index+1, last.Connection, last.Verdict)
}

// Verify checks path one connection at a time, the same way [Engine.Expand]
// checks a candidate against its parent state. Unknown nodes and self-loops
// are reported as errors before any check runs.
func (e *Engine) Verify(path network.State) (*Verification, error) {
	if err := e.topo.Validate(path); err != nil {
		return nil, err
	}
	v := &Verification{}
	for i, c := range path {
		prefix := path[:i]
		verdict := e.filter.Check(prefix, e.topo.Replay(prefix), c)
		v.Steps = append(v.Steps, Step{Index: i, Connection: c, Verdict: verdict})
		if !verdict.Accepted() {
			v.Final = e.topo.Replay(prefix)
			return v, nil
		}
	}
	v.Final = e.topo.Replay(path)
	return v, nil
}
