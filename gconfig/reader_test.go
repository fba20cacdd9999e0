package gconfig

import "testing"

const validDoc = `
name: demo
start_symbol: S
rules:
  S:
    - "( S )"
    - "x"
tokens:
  num: "[0-9]+"
  kw: ["if", "then"]
  "+": "[+]"
ignore:
  ws: " +"
actions:
  "+": shift
`

func TestDecodeValidDocument(t *testing.T) {
	spec, err := Decode([]byte(validDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if spec.Name != "demo" {
		t.Fatalf("Name = %q, want %q", spec.Name, "demo")
	}
	if spec.StartSymbol != "S" {
		t.Fatalf("StartSymbol = %q, want %q", spec.StartSymbol, "S")
	}
	if len(spec.ruleOrder) != 2 {
		t.Fatalf("ruleOrder has %d entries, want 2: %+v", len(spec.ruleOrder), spec.ruleOrder)
	}
	if spec.ruleOrder[0].head != "S" || len(spec.ruleOrder[0].body) != 3 {
		t.Fatalf("ruleOrder[0] = %+v, want head S with 3 body symbols", spec.ruleOrder[0])
	}
	if spec.ruleOrder[1].head != "S" || len(spec.ruleOrder[1].body) != 1 || spec.ruleOrder[1].body[0] != "x" {
		t.Fatalf("ruleOrder[1] = %+v, want head S with body [x]", spec.ruleOrder[1])
	}

	if len(spec.Tokens["num"]) != 1 || spec.Tokens["num"][0] != "[0-9]+" {
		t.Fatalf("Tokens[num] = %v, want a single regex", spec.Tokens["num"])
	}
	if len(spec.Tokens["kw"]) != 2 || spec.Tokens["kw"][0] != "if" || spec.Tokens["kw"][1] != "then" {
		t.Fatalf("Tokens[kw] = %v, want [if then]", spec.Tokens["kw"])
	}
	if spec.Ignore["ws"] != " +" {
		t.Fatalf("Ignore[ws] = %q, want %q", spec.Ignore["ws"], " +")
	}
	if spec.Actions["+"] != "shift" {
		t.Fatalf("Actions[+] = %q, want %q", spec.Actions["+"], "shift")
	}
}

func TestDecodeMissingNameFails(t *testing.T) {
	_, err := Decode([]byte(`
rules:
  S: "x"
`))
	if err == nil {
		t.Fatalf("Decode should fail without a name")
	}
}

func TestDecodeMissingRulesFails(t *testing.T) {
	_, err := Decode([]byte(`
name: demo
`))
	if err == nil {
		t.Fatalf("Decode should fail without rules")
	}
}

func TestDecodeEmptyDocumentFails(t *testing.T) {
	if _, err := Decode([]byte("")); err == nil {
		t.Fatalf("Decode should fail on an empty document")
	}
}

func TestDecodeNonMappingTopLevelFails(t *testing.T) {
	if _, err := Decode([]byte("- just\n- a\n- list\n")); err == nil {
		t.Fatalf("Decode should fail when the top level isn't a mapping")
	}
}

func TestDecodeDuplicateRuleHeadFails(t *testing.T) {
	_, err := Decode([]byte(`
name: demo
rules:
  S: "x"
  S: "y"
`))
	if err == nil {
		t.Fatalf("Decode should fail on a repeated rule head key")
	}
}

func TestSplitBodyOnWhitespace(t *testing.T) {
	got := splitBody("  a   b\tc\n")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitBody() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitBody() = %v, want %v", got, want)
		}
	}
}

func TestSplitBodyEmptyStringYieldsNoSymbols(t *testing.T) {
	if got := splitBody("   "); got != nil {
		t.Fatalf("splitBody(whitespace only) = %v, want nil", got)
	}
}
