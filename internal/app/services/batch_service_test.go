package services

import (
	"context"
	"testing"
	"time"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/eligibility"
)

func TestBatchServiceCurrent(t *testing.T) {
	ctx := context.Background()
	windows := eligibility.NewWindowEvaluator(func() time.Time { return testNow }, false, time.UTC)

	t.Run("open batch reports its gates", func(t *testing.T) {
		svc := NewBatchService(&fakeBatchStore{batch: openBatch()}, windows)

		status, err := svc.Current(ctx)
		if err != nil {
			t.Fatalf("Current() error = %v", err)
		}
		if status.Batch == nil {
			t.Fatal("batch is nil")
		}
		if !status.SignUpOpen || !status.NewApplicationOpen || !status.EditingOpen {
			t.Errorf("gates = %v/%v/%v, want all open",
				status.SignUpOpen, status.NewApplicationOpen, status.EditingOpen)
		}
	})

	t.Run("missing batch reads closed, not an error", func(t *testing.T) {
		svc := NewBatchService(&fakeBatchStore{}, windows)

		status, err := svc.Current(ctx)
		if err != nil {
			t.Fatalf("Current() error = %v", err)
		}
		if status.Batch != nil {
			t.Error("batch should be nil")
		}
		if status.SignUpOpen || status.NewApplicationOpen || status.EditingOpen {
			t.Error("all gates should read closed without a batch")
		}
	})
}
