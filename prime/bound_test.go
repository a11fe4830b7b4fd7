package prime

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/kbukum/primekit/errors"
)

// spy records whether Generate was called.
type spy struct {
	calls int
	Generator
}

func (s *spy) Generate(min, max uint64) []uint64 {
	s.calls++
	return s.Generator.Generate(min, max)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		start, end Bound
		min, max   uint64
		ok         bool
		code       errors.ErrorCode
	}{
		{"included both", Included(10), Included(50), 10, 50, true, ""},
		{"excluded end", Included(10), Excluded(50), 10, 49, true, ""},
		{"excluded start", Excluded(10), Included(50), 11, 50, true, ""},
		{"unbounded start", Unbounded(), Included(30), 0, 30, true, ""},
		{"end excluded at zero", Unbounded(), Excluded(0), 0, 0, false, ""},
		{"start past end", Included(50), Included(10), 50, 10, false, ""},
		{"single value", Included(7), Included(7), 7, 7, true, ""},
		{"top of domain", Included(math.MaxUint64), Included(math.MaxUint64), math.MaxUint64, math.MaxUint64, true, ""},
		{"unbounded end", Included(10), Unbounded(), 0, 0, false, errors.ErrCodeInvalidRange},
		{"exclusive start overflow", Excluded(math.MaxUint64), Included(math.MaxUint64), 0, 0, false, errors.ErrCodeOverflow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			min, max, ok, err := Resolve(tc.start, tc.end)
			if tc.code != "" {
				if !errors.HasCode(err, tc.code) {
					t.Fatalf("expected %s, got %v", tc.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.ok {
				t.Errorf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && (min != tc.min || max != tc.max) {
				t.Errorf("got [%d, %d], want [%d, %d]", min, max, tc.min, tc.max)
			}
		})
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end Bound
		want       []uint64
	}{
		{"inclusive", Included(10), Included(29), []uint64{11, 13, 17, 19, 23, 29}},
		{"exclusive end", Included(10), Excluded(29), []uint64{11, 13, 17, 19, 23}},
		{"exclusive start", Excluded(11), Included(20), []uint64{13, 17, 19}},
		{"unbounded start", Unbounded(), Included(10), []uint64{2, 3, 5, 7}},
		{"empty", Included(24), Included(28), []uint64{}},
		{"reversed", Included(30), Included(10), []uint64{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Range(NewNaive(), tc.start, tc.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Range(%v, %v) mismatch (-want +got):\n%s", tc.start, tc.end, diff)
			}
		})
	}
}

func TestRangeUnboundedEndComputesNothing(t *testing.T) {
	s := &spy{Generator: NewIncremental()}
	got, err := Range(s, Included(10), Unbounded())
	if !errors.HasCode(err, errors.ErrCodeInvalidRange) {
		t.Fatalf("expected INVALID_RANGE, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no result, got %v", got)
	}
	if s.calls != 0 {
		t.Errorf("expected no generator calls, got %d", s.calls)
	}
	if inc := s.Generator.(*Incremental); inc.MaxTested() != 1 || inc.Known() != 0 {
		t.Errorf("expected untouched generator, got max_tested=%d known=%d", inc.MaxTested(), inc.Known())
	}
}

func TestRangeEmptySkipsGenerator(t *testing.T) {
	s := &spy{Generator: NewNaive()}
	got, err := Range(s, Unbounded(), Excluded(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected a non-nil empty slice, got %#v", got)
	}
	if s.calls != 0 {
		t.Errorf("expected no generator calls, got %d", s.calls)
	}
}

func TestUpTo(t *testing.T) {
	want := []uint64{2, 3, 5, 7, 11, 13}
	if diff := cmp.Diff(want, UpTo(NewNaive(), 13)); diff != "" {
		t.Errorf("UpTo(13) mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundAccessors(t *testing.T) {
	tests := []struct {
		b     Bound
		kind  BoundKind
		value uint64
		str   string
	}{
		{Included(5), KindIncluded, 5, "included(5)"},
		{Excluded(9), KindExcluded, 9, "excluded(9)"},
		{Unbounded(), KindUnbounded, 0, "unbounded"},
		{Bound{}, KindUnbounded, 0, "unbounded"},
	}
	for _, tc := range tests {
		if tc.b.Kind() != tc.kind || tc.b.Value() != tc.value || tc.b.String() != tc.str {
			t.Errorf("got (%v, %d, %q), want (%v, %d, %q)",
				tc.b.Kind(), tc.b.Value(), tc.b.String(), tc.kind, tc.value, tc.str)
		}
	}
}
