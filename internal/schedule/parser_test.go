package schedule

import (
	"errors"
	"testing"

	"goaltrack/internal/types"
)

func TestParse_WellFormedLines(t *testing.T) {
	raw := "2024-02-26: Research basic Python syntax\n2024-02-27: Practice writing scripts"

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Date != "2024-02-26" || records[0].Task != "Research basic Python syntax" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].Date != "2024-02-27" {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestParse_TaskKeepsColons(t *testing.T) {
	records, err := Parse("2024-02-26: Read Ch.3: Intro")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if records[0].Date != "2024-02-26" {
		t.Errorf("date = %q", records[0].Date)
	}
	if records[0].Task != "Read Ch.3: Intro" {
		t.Errorf("task = %q, want colon preserved", records[0].Task)
	}
}

func TestParse_DropsMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []types.TaskRecord
	}{
		{
			name: "surrounding prose dropped",
			raw:  "Here is your schedule!\n\n2024-03-01: Write unit tests\n\nGood luck!",
			want: []types.TaskRecord{{Date: "2024-03-01", Task: "Write unit tests"}},
		},
		{
			name: "non zero-padded date dropped",
			raw:  "2024-2-5: too short\n2024-03-01: kept",
			want: []types.TaskRecord{{Date: "2024-03-01", Task: "kept"}},
		},
		{
			name: "whitespace trimmed",
			raw:  "  2024-03-01 :   spaced out  ",
			want: []types.TaskRecord{{Date: "2024-03-01", Task: "spaced out"}},
		},
		{
			name: "no calendar validation",
			raw:  "2024-13-45: impossible but shaped right",
			want: []types.TaskRecord{{Date: "2024-13-45", Task: "impossible but shaped right"}},
		},
		{
			name: "duplicate dates preserved in order",
			raw:  "2024-03-01: first\n2024-03-01: second",
			want: []types.TaskRecord{
				{Date: "2024-03-01", Task: "first"},
				{Date: "2024-03-01", Task: "second"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if len(records) != len(tt.want) {
				t.Fatalf("got %d records, want %d: %+v", len(records), len(tt.want), records)
			}
			for i := range tt.want {
				if records[i] != tt.want[i] {
					t.Errorf("record %d = %+v, want %+v", i, records[i], tt.want[i])
				}
			}
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "\n\n\n", "no colons here at all", "not-a-date: task"} {
		_, err := Parse(raw)
		if !errors.Is(err, ErrEmptySchedule) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptySchedule", raw, err)
		}
	}
}
