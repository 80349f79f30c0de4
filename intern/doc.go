package intern

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'flatfiles.intern'
func tracer() tracing.Trace {
	return tracing.Select("flatfiles.intern")
}
