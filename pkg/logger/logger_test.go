package logger

import (
	"context"
	"testing"
)

func TestInitAndGet(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	ctx := context.Background()
	Get().Info(ctx, "test message", String("k", "v"), Int("n", 1))
}

func TestNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("standings")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Warn(context.Background(), "test message", Float64("rank", 7.5))
}

func TestSetLevelString(t *testing.T) {
	cases := []struct {
		level string
		ok    bool
	}{
		{"debug", true},
		{"info", true},
		{"", true},
		{"WARN", true},
		{"warning", true},
		{"error", true},
		{"verbose", false},
	}
	for _, tc := range cases {
		err := SetLevelString(tc.level)
		if tc.ok && err != nil {
			t.Errorf("SetLevelString(%q) returned %v, want nil", tc.level, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("SetLevelString(%q) returned nil, want error", tc.level)
		}
	}
}
