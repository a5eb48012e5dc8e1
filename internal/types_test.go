package internal

import (
	"errors"
	"os"
	"testing"
)

func TestParseKeepPolicy(t *testing.T) {
	testCases := []struct {
		input    string
		expected KeepPolicy
		hasError bool
	}{
		{"", KeepNewest, false},
		{"newest", KeepNewest, false},
		{"Oldest", KeepOldest, false},
		{" oldest ", KeepOldest, false},
		{"middle", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			policy, err := ParseKeepPolicy(tc.input)
			if tc.hasError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if policy != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, policy)
			}
		})
	}
}

func TestRunStats_Summarize(t *testing.T) {
	stats := RunStats{
		FilesMoved:        3,
		FilesDeleted:      2,
		DuplicatesRemoved: 2,
		BytesFreed:        3*BytesPerMB + BytesPerMB/2,
	}

	summary := stats.Summarize(7)

	if summary.SpaceFreedMB != 3.5 {
		t.Errorf("Expected 3.5 MB freed, got %v", summary.SpaceFreedMB)
	}
	if summary.TotalOperations != 7 {
		t.Errorf("Expected 7 operations, got %d", summary.TotalOperations)
	}
	if summary.FilesMoved != 3 || summary.FilesDeleted != 2 || summary.DuplicatesRemoved != 2 {
		t.Errorf("Unexpected counters: %+v", summary)
	}
}

func TestBytesToMB_Rounding(t *testing.T) {
	if got := BytesToMB(1234567); got != 1.18 {
		t.Errorf("Expected 1.18, got %v", got)
	}
	if got := BytesToMB(0); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
}

func TestFileError_Unwrap(t *testing.T) {
	err := &FileError{Op: OpMove, Path: "/tmp/a.txt", Err: os.ErrPermission}

	if !errors.Is(err, os.ErrPermission) {
		t.Error("Expected FileError to unwrap to the underlying error")
	}
	if err.Error() != "move /tmp/a.txt: permission denied" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
