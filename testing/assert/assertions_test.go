package assert

import (
	"strings"
	"testing"

	"github.com/chests-genuine/zk-slot-timeline-soundness/testing/mock"
	"github.com/pkg/errors"
)

func TestAssert_Equal(t *testing.T) {
	tests := []struct {
		name        string
		expected    interface{}
		actual      interface{}
		msg         []interface{}
		expectedErr string
	}{
		{
			name:     "equal values",
			expected: 42,
			actual:   42,
		},
		{
			name:        "non-equal values",
			expected:    42,
			actual:      41,
			expectedErr: "Values are not equal",
		},
		{
			name:        "custom error message",
			expected:    42,
			actual:      41,
			msg:         []interface{}{"Custom message"},
			expectedErr: "Custom message",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := &mock.TBMock{}
			Equal(tb, tt.expected, tt.actual, tt.msg...)
			if !strings.Contains(tb.ErrMsg, tt.expectedErr) {
				t.Errorf("got: %q, want: %q", tb.ErrMsg, tt.expectedErr)
			}
		})
	}
}

func TestAssert_DeepEqual(t *testing.T) {
	tb := &mock.TBMock{}
	DeepEqual(tb, struct{ i int }{42}, struct{ i int }{42})
	if tb.ErrMsg != "" {
		t.Errorf("unexpected failure: %q", tb.ErrMsg)
	}
	DeepEqual(tb, struct{ i int }{42}, struct{ i int }{41})
	if !strings.Contains(tb.ErrMsg, "Values are not equal") {
		t.Errorf("got: %q, want deep equality failure", tb.ErrMsg)
	}
}

func TestAssert_NoError(t *testing.T) {
	tb := &mock.TBMock{}
	NoError(tb, nil)
	if tb.ErrMsg != "" {
		t.Errorf("unexpected failure: %q", tb.ErrMsg)
	}
	NoError(tb, errors.New("failed"))
	if !strings.Contains(tb.ErrMsg, "Unexpected error") {
		t.Errorf("got: %q, want unexpected error failure", tb.ErrMsg)
	}
}

func TestAssert_ErrorContains(t *testing.T) {
	tb := &mock.TBMock{}
	ErrorContains(tb, "timeout", errors.New("rpc timeout exceeded"))
	if tb.ErrMsg != "" {
		t.Errorf("unexpected failure: %q", tb.ErrMsg)
	}
	ErrorContains(tb, "timeout", errors.New("connection refused"))
	if !strings.Contains(tb.ErrMsg, "Expected error not returned") {
		t.Errorf("got: %q, want missing error failure", tb.ErrMsg)
	}
}
