package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	checkInStartedTotal   atomic.Uint64
	checkInCompletedTotal atomic.Uint64
	checkInFailedTotal    atomic.Uint64
	fallbackUsedTotal     atomic.Uint64

	recommendDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncCheckInStarted increments the started counter.
func IncCheckInStarted() {
	checkInStartedTotal.Add(1)
}

// IncCheckInCompleted increments the completed counter.
func IncCheckInCompleted() {
	checkInCompletedTotal.Add(1)
}

// IncCheckInFailed increments the failed counter.
func IncCheckInFailed() {
	checkInFailedTotal.Add(1)
}

// IncFallbackUsed increments the fallback-recommendation counter.
func IncFallbackUsed() {
	fallbackUsedTotal.Add(1)
}

// ObserveRecommendDurationMs records one recommendation round-trip in milliseconds.
func ObserveRecommendDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	recommendDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "checkin_started_total", "Total check-ins started", checkInStartedTotal.Load())
	writeCounter(&buf, "checkin_completed_total", "Total check-ins completed", checkInCompletedTotal.Load())
	writeCounter(&buf, "checkin_failed_total", "Total check-ins failed", checkInFailedTotal.Load())
	writeCounter(&buf, "checkin_fallback_used_total", "Total check-ins answered by the fallback scorer", fallbackUsedTotal.Load())
	writeHistogram(&buf, "recommend_duration_ms", "Recommendation duration in milliseconds", recommendDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
