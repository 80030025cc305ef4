package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"source unavailable", NewLedgerError(ErrCodeSourceUnavailable, "parser missing", ErrSourceUnavailable), true},
		{"malformed record", fmt.Errorf("row 3: %w", ErrMalformedRecord), true},
		{"missing column", ErrMissingColumn, true},
		{"write failure", NewLedgerError(ErrCodeLedgerWriteFailed, "rename failed", ErrLedgerWriteFailed), false},
		{"unrelated", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverable(tt.err); got != tt.want {
				t.Errorf("IsRecoverable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLedgerError_ErrorAndUnwrap(t *testing.T) {
	err := NewLedgerError(ErrCodeMissingColumn, "freight column absent", ErrMissingColumn)

	if err.Error() != "freight column absent: missing column" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, ErrMissingColumn) {
		t.Error("expected errors.Is to find ErrMissingColumn")
	}

	bare := NewLedgerError(ErrCodeMalformedRecord, "bad row", nil)
	if bare.Error() != "bad row" {
		t.Errorf("unexpected message: %q", bare.Error())
	}
}
