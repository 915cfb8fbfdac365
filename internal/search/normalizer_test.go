package search

import "testing"

func TestExpand_FullPhraseTakesPriority(t *testing.T) {
	// The two tokens also exist individually; the phrase entry must win
	result := Expand("سماعة بلوتوث")
	if result != "bluetooth headphones" {
		t.Errorf("Expected 'bluetooth headphones', got '%s'", result)
	}
}

func TestExpand_TokenByToken(t *testing.T) {
	result := Expand("شاحن ايفون")
	if result != "charger iphone" {
		t.Errorf("Expected 'charger iphone', got '%s'", result)
	}
}

func TestExpand_MixedScriptQuery(t *testing.T) {
	result := Expand("شاحن samsung")
	if result != "charger samsung" {
		t.Errorf("Expected 'charger samsung', got '%s'", result)
	}
}

func TestExpand_UnmappedTokensPassThrough(t *testing.T) {
	result := Expand("gaming لابتوب cheap")
	if result != "gaming laptop cheap" {
		t.Errorf("Expected 'gaming laptop cheap', got '%s'", result)
	}
}

func TestExpand_NoMappingReturnsOriginal(t *testing.T) {
	original := "Wireless Charger"
	if result := Expand(original); result != original {
		t.Errorf("Expected original string back, got '%s'", result)
	}
}

func TestExpand_EmptyAndWhitespaceInput(t *testing.T) {
	if result := Expand(""); result != "" {
		t.Errorf("Expected empty string, got '%s'", result)
	}
	if result := Expand("   "); result != "   " {
		t.Errorf("Expected whitespace back unchanged, got '%s'", result)
	}
}

func TestExpand_Idempotent(t *testing.T) {
	inputs := []string{"لابتوب", "شاحن ايفون", "bluetooth headphones", "charger"}
	for _, input := range inputs {
		once := Expand(input)
		twice := Expand(once)
		if once != twice {
			t.Errorf("Expand not idempotent for '%s': '%s' != '%s'", input, once, twice)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"charger", "charger"},
		{"50%,off", "50 off"},
		{"  phone  ", "phone"},
		{"a,b,c", "a b c"},
		{"100%", "100"},
	}

	for _, tt := range tests {
		if result := Sanitize(tt.input); result != tt.expected {
			t.Errorf("Sanitize(%q): expected %q, got %q", tt.input, tt.expected, result)
		}
	}
}
