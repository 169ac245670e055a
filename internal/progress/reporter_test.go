package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{256 * 1024 * 1024, "256.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1024 * 1024 * 1024 * 1024, "1.00 TB"},
	}

	for _, tt := range tests {
		result := FormatBytes(tt.input)
		if result != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{3661 * time.Second, "1h 1m 1s"},
	}

	for _, tt := range tests {
		result := formatDuration(tt.input)
		if result != tt.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestReporterItemTracking(t *testing.T) {
	reporter := NewReporter(Options{
		Workers:        2,
		UpdateInterval: 100 * time.Millisecond,
	})

	// Track items without starting the display loop
	reporter.ItemStarted()
	if reporter.inProgress.Load() != 1 {
		t.Errorf("expected 1 in-progress, got %d", reporter.inProgress.Load())
	}

	reporter.ItemCompleted(256)
	if reporter.inProgress.Load() != 0 {
		t.Errorf("expected 0 in-progress after complete, got %d", reporter.inProgress.Load())
	}
	if reporter.completedItems.Load() != 1 {
		t.Errorf("expected 1 completed, got %d", reporter.completedItems.Load())
	}
	if reporter.completedBytes.Load() != 256 {
		t.Errorf("expected 256 bytes, got %d", reporter.completedBytes.Load())
	}

	reporter.ItemStarted()
	reporter.ItemFailed()
	if reporter.inProgress.Load() != 0 {
		t.Errorf("expected 0 in-progress after fail, got %d", reporter.inProgress.Load())
	}
	if reporter.failedItems.Load() != 1 {
		t.Errorf("expected 1 failed, got %d", reporter.failedItems.Load())
	}
}

func TestReporterStartStop(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(Options{
		Workers:        2,
		UpdateInterval: 10 * time.Millisecond,
		Output:         &buf,
		SourceURL:      "http://rest.kegg.jp/list/pathway/hsa",
	})

	reporter.Start()

	reporter.ItemStarted()
	reporter.ItemCompleted(1024)
	reporter.ItemStarted()
	reporter.ItemCompleted(1024)

	time.Sleep(50 * time.Millisecond) // Let updates run

	reporter.Stop()
	reporter.Stop() // Stop is idempotent

	time.Sleep(20 * time.Millisecond) // Let the final status flush

	if reporter.completedItems.Load() != 2 {
		t.Errorf("expected 2 completed items, got %d", reporter.completedItems.Load())
	}
	if reporter.completedBytes.Load() != 2048 {
		t.Errorf("expected 2048 bytes completed, got %d", reporter.completedBytes.Load())
	}
	if !strings.Contains(buf.String(), "http://rest.kegg.jp/list/pathway/hsa") {
		t.Error("expected header to contain the source URL")
	}
}
