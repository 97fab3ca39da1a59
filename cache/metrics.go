package cache

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is the default when no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) PageLoaded(int)                 {}
func (NoopMetrics) PageUnloaded(int, UnloadReason) {}
func (NoopMetrics) Size(pages, clips int)          {}
func (NoopMetrics) Overflow(int)                   {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
