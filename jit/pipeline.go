package jit

import (
	"io"
	"os"
)

// PassOptions configures the CFG pass pipeline for one function.
type PassOptions struct {
	// Pipeline control flags
	SkipClean bool

	// Debug output
	DumpCFG       bool
	DumpPostCFG   bool
	DumpPostorder bool
	Output        io.Writer
}

// DefaultPassOptions returns the default pipeline options: build and clean,
// no dumps.
func DefaultPassOptions() *PassOptions {
	return &PassOptions{
		Output: os.Stdout,
	}
}

// PassResult carries the outcome of a pipeline run.
type PassResult struct {
	Postorder []*Block

	// Error tracking
	BuildError error

	// Success flag
	Success bool
}

// RunPasses drives the CFG services over a function whose blocks and labels
// the front end has already populated: build the edge graph, optionally
// clean it, and leave a fresh postorder behind. On a build error the
// function is in a partial state and should be released with Free.
func RunPasses(fn *Function, opts *PassOptions) *PassResult {
	if opts == nil {
		opts = DefaultPassOptions()
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	result := &PassResult{}

	if err := fn.BuildCFG(); err != nil {
		result.BuildError = err
		return result
	}
	if opts.DumpCFG {
		io.WriteString(out, fn.String())
	}

	if !opts.SkipClean {
		fn.CleanCFG()
		if opts.DumpPostCFG {
			io.WriteString(out, fn.String())
		}
	}

	result.Postorder = fn.ComputePostorder()
	fn.clearVisited()
	if opts.DumpPostorder {
		for _, b := range result.Postorder {
			io.WriteString(out, fn.blockName(b))
			io.WriteString(out, "\n")
		}
	}

	result.Success = true
	return result
}
