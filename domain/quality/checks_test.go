package quality

import (
	"strings"
	"testing"

	"datagate/domain/dataset"
)

func fiveRowDataset() *dataset.Dataset {
	return dataset.New("orders", []dataset.Column{
		{Name: "id", Type: dataset.TypeCategorical, Values: []string{"a", "b", "c", "d", "e"}},
		{Name: "amount", Type: dataset.TypeNumeric, Values: []string{"10", "20", "30", "40", "50"}},
	})
}

func TestMissingValueCheck_TwentyPercentDoesNotStop(t *testing.T) {
	ds := fiveRowDataset()
	ds.Columns[1].Values = []string{"10", "", "30", "40", "50"} // 1 of 5 missing

	check := NewMissingValueCheck(DefaultThresholds())
	outcome := check.Check(ds, nil)

	if outcome.Status == StatusStop {
		t.Fatalf("20%% missing must not STOP, got %s", outcome.Status)
	}
	if outcome.Status != StatusWarn {
		t.Errorf("20%% missing should WARN at the default low watermark, got %s", outcome.Status)
	}
}

func TestMissingValueCheck_FortyPercentStops(t *testing.T) {
	ds := fiveRowDataset()
	ds.Columns[1].Values = []string{"10", "", "30", "", "50"} // 2 of 5 missing

	check := NewMissingValueCheck(DefaultThresholds())
	outcome := check.Check(ds, nil)

	if outcome.Status != StatusStop {
		t.Fatalf("40%% missing must STOP, got %s", outcome.Status)
	}
	if len(outcome.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(outcome.Messages))
	}
	if !strings.Contains(outcome.Messages[0], "amount") {
		t.Errorf("message must name the column: %q", outcome.Messages[0])
	}
}

func TestMissingValueCheck_ZeroRowsIsClean(t *testing.T) {
	ds := dataset.New("empty", []dataset.Column{
		{Name: "id", Type: dataset.TypeCategorical},
	})

	check := NewMissingValueCheck(DefaultThresholds())
	outcome := check.Check(ds, nil)

	if outcome.Status != StatusPass || len(outcome.Messages) != 0 {
		t.Errorf("zero-row dataset must pass with no messages, got %s %v",
			outcome.Status, outcome.Messages)
	}
}

func TestDuplicateKeyCheck_FortyPercentStops(t *testing.T) {
	ds := fiveRowDataset()
	ds.Columns[0].Values = []string{"a", "a", "b", "b", "c"} // 2 duplicate pairs among 5 rows

	check := NewDuplicateKeyCheck(DefaultThresholds())
	outcome := check.Check(ds, dataset.KeySpec{"id"})

	if outcome.Status != StatusStop {
		t.Fatalf("40%% duplicates must STOP, got %s", outcome.Status)
	}
	if !strings.Contains(outcome.Messages[0], "duplicates") {
		t.Errorf("message must mention duplicates: %q", outcome.Messages[0])
	}
	if !strings.Contains(outcome.Messages[0], "id") {
		t.Errorf("message must name the key columns: %q", outcome.Messages[0])
	}
}

func TestDuplicateKeyCheck_EmptyKeySpecPasses(t *testing.T) {
	ds := fiveRowDataset()
	ds.Columns[0].Values = []string{"a", "a", "a", "a", "a"}

	check := NewDuplicateKeyCheck(DefaultThresholds())
	outcome := check.Check(ds, nil)

	if outcome.Status != StatusPass || len(outcome.Messages) != 0 {
		t.Errorf("empty key spec must skip the check, got %s %v",
			outcome.Status, outcome.Messages)
	}
}

func TestDuplicateKeyCheck_CompositeKeyTuples(t *testing.T) {
	ds := dataset.New("events", []dataset.Column{
		{Name: "user", Type: dataset.TypeCategorical, Values: []string{"u1", "u1", "u2", "u2"}},
		{Name: "day", Type: dataset.TypeDatetime, Values: []string{"d1", "d2", "d1", "d2"}},
	})

	check := NewDuplicateKeyCheck(DefaultThresholds())
	outcome := check.Check(ds, dataset.KeySpec{"user", "day"})

	if outcome.Status != StatusPass {
		t.Errorf("distinct composite tuples must pass, got %s %v",
			outcome.Status, outcome.Messages)
	}
}

func TestNullKeyCheck_FortyPercentStops(t *testing.T) {
	ds := fiveRowDataset()
	ds.Columns[0].Values = []string{"a", "", "b", "", "c"} // 2 of 5 null keys

	check := NewNullKeyCheck(DefaultThresholds())
	outcome := check.Check(ds, dataset.KeySpec{"id"})

	if outcome.Status != StatusStop {
		t.Fatalf("40%% null keys must STOP, got %s", outcome.Status)
	}
	if !strings.Contains(outcome.Messages[0], "nulls") {
		t.Errorf("message must mention nulls: %q", outcome.Messages[0])
	}
}

func TestNullKeyCheck_RowCountedOncePerRow(t *testing.T) {
	// Both key cells missing in the same row still count that row once
	ds := dataset.New("events", []dataset.Column{
		{Name: "user", Type: dataset.TypeCategorical, Values: []string{"", "u2", "u3", "u4", "u5"}},
		{Name: "day", Type: dataset.TypeDatetime, Values: []string{"", "d2", "d3", "d4", "d5"}},
	})

	check := NewNullKeyCheck(DefaultThresholds())
	outcome := check.Check(ds, dataset.KeySpec{"user", "day"})

	if outcome.Status != StatusWarn {
		t.Errorf("1 of 5 rows (20%%) should WARN, got %s %v", outcome.Status, outcome.Messages)
	}
}

func TestThresholds_Classify(t *testing.T) {
	thresholds := Thresholds{LowWatermark: 0.20, HighWatermark: 0.40}

	cases := []struct {
		fraction float64
		want     Status
	}{
		{0.0, StatusPass},
		{0.19, StatusPass},
		{0.20, StatusWarn},
		{0.39, StatusWarn},
		{0.40, StatusStop},
		{1.0, StatusStop},
	}
	for _, tc := range cases {
		if got := thresholds.Classify(tc.fraction); got != tc.want {
			t.Errorf("Classify(%.2f) = %s, want %s", tc.fraction, got, tc.want)
		}
	}
}

func TestThresholds_Validate(t *testing.T) {
	bad := []Thresholds{
		{LowWatermark: 0.4, HighWatermark: 0.2},
		{LowWatermark: 0.2, HighWatermark: 0.2},
		{LowWatermark: -0.1, HighWatermark: 0.4},
		{LowWatermark: 0.2, HighWatermark: 1.1},
	}
	for _, thresholds := range bad {
		if err := thresholds.Validate(); err == nil {
			t.Errorf("expected %+v to fail validation", thresholds)
		}
	}
	if err := DefaultThresholds().Validate(); err != nil {
		t.Errorf("default thresholds must validate, got %v", err)
	}
}

func TestWorst_Ordering(t *testing.T) {
	if Worst(StatusPass, StatusWarn) != StatusWarn {
		t.Error("WARN must dominate PASS")
	}
	if Worst(StatusStop, StatusWarn) != StatusStop {
		t.Error("STOP must dominate WARN")
	}
	if Worst(StatusPass, StatusPass) != StatusPass {
		t.Error("PASS vs PASS must stay PASS")
	}
}
