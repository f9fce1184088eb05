package agent

import "testing"

func TestExtractFullNameFromNameIsPhrase(t *testing.T) {
	got := ExtractFullName("Hi, my name is Jane Smith and my account number is 12345678", "12345678")
	if got != "Jane Smith" {
		t.Fatalf("ExtractFullName = %q, want %q", got, "Jane Smith")
	}
}

func TestExtractFullNameBeforeAccountNumber(t *testing.T) {
	got := ExtractFullName("John Doe 98765432", "98765432")
	if got != "John Doe" {
		t.Fatalf("ExtractFullName = %q, want %q", got, "John Doe")
	}
}

func TestExtractFullNameNoSignal(t *testing.T) {
	if got := ExtractFullName("verify my account please", ""); got != "" {
		t.Fatalf("ExtractFullName = %q, want empty", got)
	}
	if got := ExtractFullName("12345678", "12345678"); got != "" {
		t.Fatalf("ExtractFullName = %q, want empty", got)
	}
}

func TestExtractFullNameStripsPunctuation(t *testing.T) {
	got := ExtractFullName("my name is Jane Smith.", "")
	if got != "Jane Smith" {
		t.Fatalf("ExtractFullName = %q, want %q", got, "Jane Smith")
	}
}
