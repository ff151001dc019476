package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/glyphstorm/metric"
)

// PerformanceMonitor publishes per-frame timing and counters the debug
// overlay reads back.
//
// Grounded on clock_scheduler.go's cached-atomic-pointer idiom
// (statTicks, statEvDispatches, etc., fetched once at construction time
// from status.Registry and written to directly on every tick) —
// generalized from the teacher's fixed hand-picked stat set to whatever
// keys this engine's tick loop and patterns want, via metric.Registry's
// first-call-allocates Map.
type PerformanceMonitor struct {
	reg *metric.Registry

	frameCount       *atomic.Int64
	patternRenderMs  *metric.Float
	terminalRenderMs *metric.Float
	changedCells     *atomic.Int64
	frameDrops       *atomic.Int64
	actualFPS        *metric.Float
}

func newPerformanceMonitor(reg *metric.Registry) *PerformanceMonitor {
	return &PerformanceMonitor{
		reg:              reg,
		frameCount:       reg.Ints.Get("engine.frame_count"),
		patternRenderMs:  reg.Floats.Get("engine.pattern_render_ms"),
		terminalRenderMs: reg.Floats.Get("engine.terminal_render_ms"),
		changedCells:     reg.Ints.Get("engine.changed_cells"),
		frameDrops:       reg.Ints.Get("engine.frame_drops"),
		actualFPS:        reg.Floats.Get("engine.actual_fps"),
	}
}

// PatternError returns (creating if absent) the error counter for a named
// pattern, incremented by the safe render wrapper on a recovered panic.
func (p *PerformanceMonitor) PatternError(name string) *atomic.Int64 {
	return p.reg.Ints.Get("pattern.error." + name)
}

func (p *PerformanceMonitor) recordFrame(patternMs, terminalMs float64, changed uint32) {
	p.frameCount.Add(1)
	p.patternRenderMs.Set(patternMs)
	p.terminalRenderMs.Set(terminalMs)
	p.changedCells.Store(int64(changed))
}

func (p *PerformanceMonitor) recordDrop() {
	p.frameDrops.Add(1)
}

func (p *PerformanceMonitor) recordActualFPS(fps float64) {
	p.actualFPS.Set(fps)
}
