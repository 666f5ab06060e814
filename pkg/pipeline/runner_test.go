package pipeline

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/dbgtools/closetig/pkg/closure"
	"github.com/dbgtools/closetig/pkg/errors"
)

const sampleInput = `>0 LN:i:6 ab:Z:5 5 6 7 L:+:1:+
AACCAT
>1 LN:i:3 ab:Z:9 L:-:0:- L:-:2:+
ATT
>2 LN:i:3 ab:Z:2 L:-:1:+
ATA
`

func TestExecute(t *testing.T) {
	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:         strings.NewReader(sampleInput),
		Workers:       1,
		Check:         true,
		SortBySupport: true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if result.K != 3 {
		t.Errorf("K = %d, want 3", result.K)
	}

	s := result.Stats
	if s.Records != 3 || s.Nodes != 6 || s.Components != 5 {
		t.Errorf("Stats = {Records: %d, Nodes: %d, Components: %d}, want {3, 6, 5}", s.Records, s.Nodes, s.Components)
	}
	if s.Unitigs != len(result.Unitigs) {
		t.Errorf("Stats.Unitigs = %d, want %d", s.Unitigs, len(result.Unitigs))
	}

	want := []closure.Unitig{
		{Seq: "AACCAT", Support: 2},
		{Seq: "AAT", Support: 2},
		{Seq: "ATA", Support: 2},
		{Seq: "AACCATT", Support: 5},
		{Seq: "CCATT", Support: 6},
		{Seq: "CATT", Support: 7},
		{Seq: "AAT", Support: 9},
	}
	if !reflect.DeepEqual(result.Unitigs, want) {
		t.Errorf("Unitigs = %v, want %v", result.Unitigs, want)
	}
}

func TestExecuteKeepsSweepOrder(t *testing.T) {
	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:   strings.NewReader(sampleInput),
		Workers: 1,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Without SortBySupport the sweep's descending emission order is kept.
	want := []closure.Unitig{
		{Seq: "AAT", Support: 9},
		{Seq: "CATT", Support: 7},
		{Seq: "CCATT", Support: 6},
		{Seq: "AACCATT", Support: 5},
		{Seq: "AACCAT", Support: 2},
		{Seq: "AAT", Support: 2},
		{Seq: "ATA", Support: 2},
	}
	if !reflect.DeepEqual(result.Unitigs, want) {
		t.Errorf("Unitigs = %v, want %v", result.Unitigs, want)
	}
}

func TestExecuteParallelDeterministic(t *testing.T) {
	runner := NewRunner(nil)

	sequential, err := runner.Execute(context.Background(), Options{
		Input:         strings.NewReader(sampleInput),
		Workers:       1,
		SortBySupport: true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		parallel, err := runner.Execute(context.Background(), Options{
			Input:         strings.NewReader(sampleInput),
			Workers:       4,
			SortBySupport: true,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !reflect.DeepEqual(parallel.Unitigs, sequential.Unitigs) {
			t.Fatalf("parallel run %d differs: %v vs %v", i, parallel.Unitigs, sequential.Unitigs)
		}
	}
}

func TestExecuteEmptyInput(t *testing.T) {
	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), Options{
		Input: strings.NewReader(""),
		Check: true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Unitigs) != 0 {
		t.Errorf("Unitigs = %v, want empty", result.Unitigs)
	}
}

func TestExecuteOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no input", Options{}},
		{"negative workers", Options{Input: strings.NewReader(""), Workers: -1}},
	}

	runner := NewRunner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Execute(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("Execute() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestExecutePropagatesFormatError(t *testing.T) {
	runner := NewRunner(nil)
	_, err := runner.Execute(context.Background(), Options{
		Input: strings.NewReader(">0 LN:i:3\nACG\n"),
	})
	if err == nil {
		t.Fatal("Execute() error = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeFormat) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFormat)
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(nil)
	_, err := runner.Execute(ctx, Options{Input: strings.NewReader(sampleInput)})
	if err == nil {
		t.Fatal("Execute() error = nil, want context error")
	}
}
