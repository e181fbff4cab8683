package logging

import "strings"

// ProgressSampler suppresses repetitive pull progress while preserving signal
// when a layer changes status or its percentage crosses a bucket boundary.
// Layers are tracked independently because the daemon interleaves them.
type ProgressSampler struct {
	bucketSize float64
	layers     map[string]layerState
}

type layerState struct {
	status string
	bucket int
}

// NewProgressSampler constructs a sampler that emits when the percent crosses
// bucket boundaries (default 5%) or when a layer's status changes.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 5
	}
	return &ProgressSampler{bucketSize: bucketSize, layers: make(map[string]layerState)}
}

// ShouldLog reports whether a progress event should be shown. Percent can be
// negative to indicate "unknown". Status is trimmed before comparison.
func (s *ProgressSampler) ShouldLog(layer, status string, percent float64) bool {
	if s == nil {
		return true
	}
	status = strings.TrimSpace(status)
	state, seen := s.layers[layer]
	emit := false
	if !seen || status != state.status {
		state = layerState{status: status, bucket: -1}
		emit = true
	}
	if percent >= 0 {
		bucket := int(percent / s.bucketSize)
		if percent >= 100 {
			bucket = int(100 / s.bucketSize)
		}
		if bucket > state.bucket {
			state.bucket = bucket
			emit = true
		}
	}
	s.layers[layer] = state
	return emit
}

// Reset clears the sampler state (e.g. when a new pull starts).
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	clear(s.layers)
}
