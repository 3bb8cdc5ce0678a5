package drive

import (
	"reflect"
	"testing"
)

func TestNormalizeIDs(t *testing.T) {
	got := normalizeIDs([]string{" a", "b", "", "a", "  ", "c "})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeIDs() = %v, want %v", got, want)
	}
	if got := normalizeIDs(nil); len(got) != 0 {
		t.Errorf("normalizeIDs(nil) = %v, want empty", got)
	}
}

func TestNormalizeEmails(t *testing.T) {
	got := normalizeEmails([]string{"b@x", " a@x ", "b@x", ""})
	want := []string{"b@x", "a@x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeEmails() = %v, want %v", got, want)
	}
}
