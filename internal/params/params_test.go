package params

import (
	"testing"
)

func TestEncodeDeterministic(t *testing.T) {
	values := map[string]string{
		"USER":       "7Vbv...",
		"PID":        "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
		"TWITTER_ID": "1730464228400631814",
	}

	first, err := Encode(values)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	want := "PID=TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA,TWITTER_ID=1730464228400631814,USER=7Vbv..."
	if first != want {
		t.Fatalf("Encode = %q, want %q", first, want)
	}

	second, err := Encode(values)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if second != first {
		t.Fatal("Encode is not deterministic")
	}
}

func TestEncodeRejectsSeparators(t *testing.T) {
	if _, err := Encode(map[string]string{"A,B": "1"}); err == nil {
		t.Fatal("Encode accepted a key containing a comma")
	}
	if _, err := Encode(map[string]string{"A=B": "1"}); err == nil {
		t.Fatal("Encode accepted a key containing an equals sign")
	}
	if _, err := Encode(map[string]string{"A": "1,2"}); err == nil {
		t.Fatal("Encode accepted a value containing a comma")
	}
	if _, err := Encode(map[string]string{"": "1"}); err == nil {
		t.Fatal("Encode accepted an empty key")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	values := map[string]string{
		"PID":  "abc",
		"USER": "def",
	}

	encoded, err := Encode(values)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	decoded := Decode(encoded)
	if len(decoded) != len(values) {
		t.Fatalf("Decode returned %d entries, want %d", len(decoded), len(values))
	}
	for k, v := range values {
		if decoded[k] != v {
			t.Fatalf("decoded[%s] = %q, want %q", k, decoded[k], v)
		}
	}
}

func TestDecodeSkipsMalformedEntries(t *testing.T) {
	decoded := Decode("PID=abc,garbage,USER=def,=empty")

	if len(decoded) != 2 {
		t.Fatalf("Decode returned %d entries, want 2: %v", len(decoded), decoded)
	}
	if decoded["PID"] != "abc" || decoded["USER"] != "def" {
		t.Fatalf("Decode = %v", decoded)
	}
}

func TestDecodeValueWithEquals(t *testing.T) {
	decoded := Decode("TOKEN=a=b")
	if decoded["TOKEN"] != "a=b" {
		t.Fatalf("decoded[TOKEN] = %q, want %q", decoded["TOKEN"], "a=b")
	}
}

func TestValidate(t *testing.T) {
	values := map[string]string{"PID": "abc", "USER": ""}

	if err := Validate(values, "PID"); err != nil {
		t.Fatalf("Validate rejected present key: %v", err)
	}

	err := Validate(values, "PID", "USER")
	if err == nil {
		t.Fatal("Validate accepted an empty required key")
	}
	if got := err.Error(); got != "invalid parameters: USER cannot be undefined" {
		t.Fatalf("Validate error = %q", got)
	}

	if err := Validate(values, "REALM_PDA"); err == nil {
		t.Fatal("Validate accepted a missing required key")
	}
}
