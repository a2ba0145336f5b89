package cli

import "testing"

func TestDueLabel(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-3, "Overdue"},
		{0, "Due today"},
		{1, "Due tomorrow"},
		{5, "In 5 days"},
	}
	for _, tt := range tests {
		if got := DueLabel(tt.days); got != tt.want {
			t.Errorf("DueLabel(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short, 10) = %q", got)
	}
	if got := Truncate("a longer name", 8); got != "a longe…" {
		t.Errorf("Truncate = %q", got)
	}
}
