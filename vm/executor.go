package vm

import "github.com/distributed-lab/bitvm2-splitter/errors"

// ErrNonEmptyAltStack is returned by Executor.Execute when a fragment
// sequence terminates with values left on the alt stack. Boundary
// states cover the data stack only, so a sequence eligible to end a
// shard must consume everything it moved aside.
var ErrNonEmptyAltStack = errors.New("non-empty alt stack at fragment boundary")

// Executor runs fragment sequences for the splitter. The zero value
// is ready to use.
type Executor struct {
	// RunLimit bounds the cost of a single execution. Zero means
	// DefaultRunLimit.
	RunLimit int64
}

// Execute runs prog with entry as the initial data stack and returns
// the final data stack. It implements the executor contract the
// splitter consumes: deterministic, synchronous, and failing rather
// than producing a partial state.
func (e Executor) Execute(prog []byte, entry [][]byte) ([][]byte, error) {
	limit := e.RunLimit
	if limit == 0 {
		limit = DefaultRunLimit
	}
	res, err := RunLimited(prog, entry, limit)
	if err != nil {
		return nil, err
	}
	if len(res.AltStack) > 0 {
		return nil, ErrNonEmptyAltStack
	}
	return res.Stack, nil
}
