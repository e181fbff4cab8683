package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 5},
		{"default bucket size for negative", -1, 5},
		{"custom bucket size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
		})
	}
}

func TestProgressSamplerNilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog("abc", "Downloading", 50) {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset()
}

func TestProgressSamplerStatusChange(t *testing.T) {
	s := NewProgressSampler(5)
	if !s.ShouldLog("abc", "Pulling fs layer", -1) {
		t.Error("first status should log")
	}
	if s.ShouldLog("abc", "Pulling fs layer", -1) {
		t.Error("repeated status should not log")
	}
	if !s.ShouldLog("abc", "Downloading", 0) {
		t.Error("status change should log")
	}
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	if !s.ShouldLog("abc", "Downloading", 1) {
		t.Fatal("first event should log")
	}
	if s.ShouldLog("abc", "Downloading", 9) {
		t.Error("same bucket should not log")
	}
	if !s.ShouldLog("abc", "Downloading", 10) {
		t.Error("crossing a bucket should log")
	}
	if s.ShouldLog("abc", "Downloading", 5) {
		t.Error("going backwards should not log")
	}
	if !s.ShouldLog("abc", "Downloading", 150) {
		t.Error("completion should log")
	}
}

func TestProgressSamplerTracksLayersIndependently(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog("one", "Downloading", 50)
	if !s.ShouldLog("two", "Downloading", 10) {
		t.Error("a new layer should log regardless of other layers")
	}
	if s.ShouldLog("one", "Downloading", 55) {
		t.Error("layer one should keep its own bucket")
	}
	s.Reset()
	if !s.ShouldLog("one", "Downloading", 55) {
		t.Error("reset should forget layers")
	}
}
