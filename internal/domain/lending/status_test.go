package lending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    LoanStatus
		to      LoanStatus
		wantErr bool
	}{
		{"disbursed to regular", StatusDisbursed, StatusRegular, false},
		{"disbursed to overdue", StatusDisbursed, StatusOverdue, false},
		{"regular to overdue", StatusRegular, StatusOverdue, false},
		{"overdue back to regular", StatusOverdue, StatusRegular, false},
		{"regular to closed", StatusRegular, StatusClosed, false},
		{"overdue to closed", StatusOverdue, StatusClosed, false},
		{"same status is a no-op", StatusOverdue, StatusOverdue, false},
		{"closed is terminal", StatusClosed, StatusRegular, true},
		{"closed cannot reopen to overdue", StatusClosed, StatusOverdue, true},
		{"regular cannot revert to disbursed", StatusRegular, StatusDisbursed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.from, got, "failed transition must not move the status")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestTransitionOther(t *testing.T) {
	got, err := TransitionOther(OtherStatusIssued, OtherStatusOverdue)
	require.NoError(t, err)
	assert.Equal(t, OtherStatusOverdue, got)

	got, err = TransitionOther(OtherStatusOverdue, OtherStatusIssued)
	require.NoError(t, err)
	assert.Equal(t, OtherStatusIssued, got)

	_, err = TransitionOther(OtherStatusClosed, OtherStatusIssued)
	require.Error(t, err)
}
