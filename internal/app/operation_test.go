package app

import "testing"

func TestNewOperation(t *testing.T) {
	tests := []struct {
		name       string
		operation  string
		args       []string
		wantParams string
		wantString string
	}{
		{
			name:       "with parameters",
			operation:  "Upload",
			args:       []string{"docs", "/docs", "report.pdf"},
			wantParams: "docs /docs report.pdf",
			wantString: "Upload(docs /docs report.pdf)",
		},
		{
			name:       "no parameters",
			operation:  "CreateSnapshot",
			wantParams: "",
			wantString: "CreateSnapshot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation(tt.operation, tt.args...)
			if op.Operation != tt.operation {
				t.Errorf("Operation = %q, want %q", op.Operation, tt.operation)
			}
			if op.Parameters != tt.wantParams {
				t.Errorf("Parameters = %q, want %q", op.Parameters, tt.wantParams)
			}
			if op.Status != statusSuccess {
				t.Errorf("Status = %q, want %q", op.Status, statusSuccess)
			}
			if op.Persisted() {
				t.Error("new operation should not be persisted")
			}
			if got := op.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
		})
	}
}

func TestOperation_Fail(t *testing.T) {
	op := NewOperation("Delete")
	op.Fail()
	if op.Status != statusError {
		t.Errorf("Status = %q, want %q", op.Status, statusError)
	}
	op.ID = 7
	if !op.Persisted() {
		t.Error("operation with ID should be persisted")
	}
}
