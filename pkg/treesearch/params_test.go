package treesearch

import (
	"errors"
	"testing"
)

func TestParams_ValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		opts []Option[int]
	}{
		{"zero pool size", []Option[int]{WithMaxPoolSize[int](0)}},
		{"negative pool size", []Option[int]{WithMaxPoolSize[int](-3)}},
		{"negative time limit", []Option[int]{WithTimeLimit[int](-1)}},
		{"zero minimum queue size", []Option[int]{WithQueueSize[int](0, 8)}},
		{"max queue below min", []Option[int]{WithQueueSize[int](8, 4)}},
		{"growth factor below one", []Option[int]{WithGrowthFactor[int](0.5)}},
		{"zero column size", []Option[int]{WithColumnSize[int](0, 2)}},
		{"column growth below one", []Option[int]{WithColumnSize[int](1, 0.9)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := New(tc.opts...).Validate()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Validate() = %v, want ErrInvalidParameter", err)
			}
		})
	}

	if err := New[int]().Validate(); err != nil {
		t.Fatalf("default Params should validate, got %v", err)
	}
}

func TestParams_ValidationFailsFastAtAlgorithmEntry(t *testing.T) {
	bad := New(WithMaxPoolSize[int](0))
	if _, err := BestFirstSearch[int](intScheme{}, bad); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("BestFirstSearch with invalid params = %v, want ErrInvalidParameter", err)
	}
}

func TestNextWidth_GrowthSequence(t *testing.T) {
	// With minimum queue size 1 and growth factor 1.5, the widths
	// attempted are 1, 2, 3, 4, 6, 9, ..., each obtained as
	// max(prev+1, floor(prev*1.5)).
	got := []int{1}
	w := 1
	for i := 0; i < 5; i++ {
		w = nextWidth(w, 1.5)
		got = append(got, w)
	}
	want := []int{1, 2, 3, 4, 6, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("widths = %v, want %v", got, want)
		}
	}

	// Growth factor 2 doubles outright once the floor exceeds prev+1.
	if w := nextWidth(4, 2); w != 8 {
		t.Fatalf("nextWidth(4, 2) = %d, want 8", w)
	}
}
