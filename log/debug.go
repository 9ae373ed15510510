package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *charmlog.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "masonry-debug.log")

// slowFrame is one frame at 60fps.
const slowFrame = 16 * time.Millisecond

// InitDebug initializes debug logging if MASONRY_DEBUG=1 is set.
// Initialize calls it; call it directly only in tests.
func InitDebug() {
	if os.Getenv("MASONRY_DEBUG") != "1" {
		DebugLog = NewLogger(io.Discard, charmlog.DebugLevel)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		if ErrorLog != nil {
			ErrorLog.Error("could not open debug log file", "err", err)
		}
		DebugLog = NewLogger(io.Discard, charmlog.DebugLevel)
		return
	}

	DebugLog = NewLogger(f, charmlog.DebugLevel).WithPrefix("DEBUG")
	debugLogFile = f

	DebugLog.Debug("debug mode enabled", "path", debugLogFileName)
}

// CloseDebug writes the render profile and closes the debug log file.
func CloseDebug() {
	if debugLogFile == nil {
		return
	}
	profiler.LogStats()
	_ = debugLogFile.Close()
	debugLogFile = nil
	fmt.Println("wrote debug logs to " + debugLogFileName)
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Debugf(format, v...)
	}
}

// RenderProfiler tracks rendering performance metrics.
type RenderProfiler struct {
	mu           sync.RWMutex
	components   map[string]*ComponentMetrics
	frameCount   int64
	totalTime    time.Duration
	frameTimings []time.Duration // rolling window
}

// ComponentMetrics tracks metrics for a single component.
type ComponentMetrics struct {
	Name        string
	RenderCount int64
	TotalTime   time.Duration
	MinTime     time.Duration
	MaxTime     time.Duration
}

const frameWindow = 100

var profiler = &RenderProfiler{
	components:   make(map[string]*ComponentMetrics),
	frameTimings: make([]time.Duration, 0, frameWindow),
}

// GetProfiler returns the global render profiler.
func GetProfiler() *RenderProfiler {
	return profiler
}

// StartRender begins timing a component render.
// Returns a function to call when render completes.
func (p *RenderProfiler) StartRender(component string) func() {
	if !DebugEnabled {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.recordRender(component, time.Since(start))
	}
}

func (p *RenderProfiler) recordRender(component string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	metrics, ok := p.components[component]
	if !ok {
		metrics = &ComponentMetrics{
			Name:    component,
			MinTime: elapsed,
			MaxTime: elapsed,
		}
		p.components[component] = metrics
	}

	metrics.RenderCount++
	metrics.TotalTime += elapsed
	metrics.MinTime = min(metrics.MinTime, elapsed)
	metrics.MaxTime = max(metrics.MaxTime, elapsed)
}

// RecordFrame records a complete frame render.
func (p *RenderProfiler) RecordFrame(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	p.totalTime += elapsed

	if len(p.frameTimings) >= frameWindow {
		p.frameTimings = p.frameTimings[1:]
	}
	p.frameTimings = append(p.frameTimings, elapsed)

	if elapsed > slowFrame && DebugLog != nil {
		DebugLog.Warn("slow frame", "elapsed", elapsed)
	}
}

// GetStats returns a summary of render statistics.
func (p *RenderProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\n=== Render Profile ===\n")
	sb.WriteString(fmt.Sprintf("Total frames: %d\n", p.frameCount))

	if p.frameCount > 0 {
		avgFrame := p.totalTime / time.Duration(p.frameCount)
		sb.WriteString(fmt.Sprintf("Avg frame time: %v\n", avgFrame))
	}

	if len(p.frameTimings) > 0 {
		var sum time.Duration
		lo, hi := p.frameTimings[0], p.frameTimings[0]
		for _, t := range p.frameTimings {
			sum += t
			lo = min(lo, t)
			hi = max(hi, t)
		}
		avg := sum / time.Duration(len(p.frameTimings))
		sb.WriteString(fmt.Sprintf("Recent %d frames: avg=%v min=%v max=%v\n",
			len(p.frameTimings), avg, lo, hi))
	}

	sb.WriteString("\n--- Components ---\n")

	sorted := make([]*ComponentMetrics, 0, len(p.components))
	for _, m := range p.components {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TotalTime > sorted[j].TotalTime
	})

	for _, m := range sorted {
		avg := time.Duration(0)
		if m.RenderCount > 0 {
			avg = m.TotalTime / time.Duration(m.RenderCount)
		}
		sb.WriteString(fmt.Sprintf("  %s: count=%d total=%v avg=%v min=%v max=%v\n",
			m.Name, m.RenderCount, m.TotalTime, avg, m.MinTime, m.MaxTime))
	}

	return sb.String()
}

// LogStats logs the current render statistics.
func (p *RenderProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.GetStats())
	}
}

// Reset clears all profiling data.
func (p *RenderProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.components = make(map[string]*ComponentMetrics)
	p.frameCount = 0
	p.totalTime = 0
	p.frameTimings = make([]time.Duration, 0, frameWindow)
}

// LayoutTrace logs layout computation events.
func LayoutTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Debugf("[LAYOUT] "+format, v...)
	}
}

// RenderTrace logs render events.
func RenderTrace(component, format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Debugf("[RENDER:%s] %s", component, fmt.Sprintf(format, v...))
	}
}

// InputTrace logs input handling events.
func InputTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Debugf("[INPUT] "+format, v...)
	}
}
