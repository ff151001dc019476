package toml

import (
	"strings"
	"testing"
)

func TestDecode_UnexportedFieldPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Recovered from panic: %v. Logic should skip unexported fields.", r)
		}
	}()

	data := map[string]any{"secret": "hacker"}
	type Security struct {
		secret string
		Public string `toml:"secret"`
	}

	var s Security
	_ = decode(data, &s)
}

func TestLexer_InvalidNumbers(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"1.0a", true},    // Not valid TOML document structure
		{"1.-0", true},    // Not valid TOML document structure
		{"0xG1", true},    // Invalid hex digit
		{"+", true},       // Lone + is invalid TOML
		{"[1.2.3]", true}, // Multi-dot in numeric context
	}

	for _, tc := range tests {
		p := newReader([]byte(tc.input))
		_, err := p.read()
		if tc.wantErr && err == nil {
			t.Errorf("Input %q should have failed parsing", tc.input)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("Input %q unexpected error: %v", tc.input, err)
		}
	}
}

func TestDecode_DeepPointers(t *testing.T) {
	data := map[string]any{"val": 42}
	type T struct {
		Val ******int `toml:"val"`
	}
	var tgt T
	if err := decode(data, &tgt); err != nil {
		t.Fatalf("Deep pointer decode failed: %v", err)
	}
	if ******tgt.Val != 42 {
		t.Errorf("Expected 42, got %d", ******tgt.Val)
	}
}

func TestDecode_LargeIntPrecision(t *testing.T) {
	largeVal := int64(4611686018427387905)
	data := map[string]any{"id": int(largeVal)}

	type T struct {
		ID int64 `toml:"id"`
	}
	var tgt T
	_ = decode(data, &tgt)

	if tgt.ID != largeVal {
		t.Errorf("Precision loss detected: got %d, want %d", tgt.ID, largeVal)
	}
}

func TestParser_NumericKeyRejection(t *testing.T) {
	inputs := [][]byte{
		[]byte(`123 = "value"`),
		[]byte(`[123]`),
		[]byte(`[a.123.b]`),
	}

	for _, in := range inputs {
		p := newReader(in)
		if _, err := p.read(); err == nil {
			t.Errorf("Parser should have rejected numeric key in: %s", string(in))
		}
	}
}

func TestPanic_LexerInfinity(t *testing.T) {
	input := []byte("key = \"\x00\xff\"\n[table\x00]")
	l := newScanner(input)
	for i := 0; i < 100; i++ {
		tok := l.next()
		if tok.kind == tokEOF {
			return
		}
	}
	t.Error("Lexer likely stuck in infinite loop on invalid input")
}

func TestPanic_DeepNesting(t *testing.T) {
	depth := 1000
	input := strings.Repeat("a.", depth) + "b = 1"
	p := newReader([]byte(input))
	_, err := p.read()
	if err != nil && !strings.Contains(err.Error(), "key path conflict") {
		t.Logf("Caught expected deep nesting error: %v", err)
	}
}

func TestBreak_TableRedefinition(t *testing.T) {
	input := []byte(`
anchor = 1
[anchor]
sub = 2
`)
	p := newReader(input)
	_, err := p.read()
	if err == nil {
		t.Error("Parser failed to catch redefinition of a value as a table")
	}
}

func TestBreak_MalformedScientificNotation(t *testing.T) {
	tests := []string{
		"val = 1e",
		"val = 1e+",
		"val = .5",
		"val = 1.e2",
	}
	for _, tc := range tests {
		p := newReader([]byte(tc))
		_, err := p.read()
		if err == nil {
			t.Errorf("Should have failed to parse malformed float: %s", tc)
		}
	}
}

func TestBreak_SliceTypeMismatch(t *testing.T) {
	data := map[string]any{
		"list": []any{1, "string", 3},
	}
	type Target struct {
		List []int `toml:"list"`
	}
	var tgt Target
	err := decode(data, &tgt)
	if err == nil {
		t.Error("Decoder should have failed converting string to int inside slice")
	}
}

func TestBreak_InvalidDottedKeyInInlineTable(t *testing.T) {
	input := []byte(`config = { valid.123 = "fail" }`)
	p := newReader(input)
	_, err := p.read()
	if err == nil {
		t.Error("Parser allowed numeric segment in dotted inline table key")
	}
}

func TestPanic_NilInterfaceAssignment(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Panic during nil interface decoding: %v", r)
		}
	}()
	var target any
	data := map[string]any{"a": 1}
	_ = decode(data, &target)
}

func TestStructural_NestedReentry(t *testing.T) {
	input := []byte(`
[a.b.c]
depth = 3
[a]
root_val = 1
[a.b]
mid_val = 2
`)
	p := newReader(input)
	res, err := p.read()
	if err != nil {
		t.Fatalf("Valid nested reentry failed: %v", err)
	}

	a := res["a"].(map[string]any)
	if a["root_val"] != 1 {
		t.Errorf("Missing root_val: %v", a["root_val"])
	}
	b := a["b"].(map[string]any)
	if b["mid_val"] != 2 {
		t.Errorf("Missing mid_val: %v", b["mid_val"])
	}
}

func TestBreak_KeyCollisionDotted(t *testing.T) {
	input := []byte(`
a.b = 1
[a.b]
c = 2
`)
	p := newReader(input)
	_, err := p.read()
	if err == nil {
		t.Error("Should have failed: redefining scalar a.b as a table")
	}
}

func TestBreak_IntegerOverflow(t *testing.T) {
	input := []byte(`val = 9223372036854775808`)
	p := newReader(input)
	_, err := p.read()
	if err == nil {
		t.Error("Parser should have errored on int64 overflow")
	}
}

func TestBreak_ArrayTableShadowing(t *testing.T) {
	input := []byte(`
[conflict]
sub = 1
[[conflict]]
sub = 2
`)
	p := newReader(input)
	_, err := p.read()
	if err == nil {
		t.Error("Should have failed: [conflict] followed by [[conflict]]")
	}
}

func TestBreak_RecursiveDecoder(t *testing.T) {
	type Recursive struct {
		Next *Recursive `toml:"next"`
	}
	data := map[string]any{
		"next": map[string]any{
			"next": map[string]any{
				"next": map[string]any{},
			},
		},
	}
	var target Recursive
	err := decode(data, &target)
	if err != nil {
		t.Fatalf("Recursive decode failed: %v", err)
	}
	if target.Next.Next.Next == nil {
		t.Error("Recursive decoding depth mismatch")
	}
}

func TestBreak_DottedKeyConflictWithTable(t *testing.T) {
	input := []byte(`
[a]
b.c = 1
[a.b]
c = 2
`)
	p := newReader(input)
	_, err := p.read()
	if err == nil {
		t.Error("Should have failed: duplicate definition of a.b.c")
	}
}

func TestLexer_CommentEdgeCases(t *testing.T) {
	input := []byte(`
key = "value # not a comment" # this is a comment
# Empty line with comment
   # indented comment
[table] # comment after table
`)
	p := newReader(input)
	res, err := p.read()
	if err != nil {
		t.Fatalf("Lexer failed on valid comments: %v", err)
	}
	if res["key"] != "value # not a comment" {
		t.Errorf("Comment in string was incorrectly truncated: %v", res["key"])
	}
}

func TestLexer_StrictNumericValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokKind
	}{
		{
			"Multiple dots error",
			"1.1.1",
			[]tokKind{tokErr},
		},
		{
			"Octal is valid",
			"val = 0123",
			[]tokKind{tokIdent, tokEqual, tokInt, tokEOF},
		},
		{
			"Negative with leading zero valid",
			"val = -01",
			[]tokKind{tokIdent, tokEqual, tokInt, tokEOF},
		},
		{
			"Float then dot then int",
			"1e1.5",
			[]tokKind{tokFloat, tokDot, tokInt, tokEOF},
		},
		{
			"Float then ident",
			"1e1e1",
			[]tokKind{tokFloat, tokIdent, tokEOF},
		},
		{
			"Float then ident with dots",
			"1.00a00",
			[]tokKind{tokFloat, tokIdent, tokEOF},
		},
		{
			"Incomplete exponent error",
			"val = 1e+",
			[]tokKind{tokIdent, tokEqual, tokInt, tokIdent, tokErr},
		},
		{
			"Zero valid",
			"val = 0",
			[]tokKind{tokIdent, tokEqual, tokInt, tokEOF},
		},
		{
			"Negative zero valid",
			"val = -0",
			[]tokKind{tokIdent, tokEqual, tokInt, tokEOF},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newScanner([]byte(tc.input))
			var got []tokKind
			for {
				tok := l.next()
				got = append(got, tok.kind)
				if tok.kind == tokEOF || tok.kind == tokErr {
					break
				}
			}
			if len(got) != len(tc.expected) {
				t.Errorf("[%s] token count: got %d %v, want %d %v", tc.input, len(got), got, len(tc.expected), tc.expected)
				return
			}
			for i, exp := range tc.expected {
				if got[i] != exp {
					t.Errorf("[%s] token[%d]: got %v, want %v", tc.input, i, got[i], exp)
				}
			}
		})
	}
}

func TestParser_KeyPathDeepExhaustion(t *testing.T) {
	input := []byte(`
a.b.c.d.e = 1
a.b.c.f = 2
[a.b.c]
g = 3
[a.b.c.d]
h = 4
[a.b]
i = 5
`)
	p := newReader(input)
	res, err := p.read()
	if err != nil {
		t.Fatalf("Failed on complex but valid nested reentry: %v", err)
	}

	a := res["a"].(map[string]any)
	b := a["b"].(map[string]any)
	if b["i"] != 5 {
		t.Errorf("Value 'i' lost in table reentry. Got %v", b["i"])
	}
	if _, ok := b["c"].(map[string]any); !ok {
		t.Errorf("Sub-map 'c' lost during parent reentry")
	}
}

func TestParser_FloatParsingErrors(t *testing.T) {
	tests := []string{
		"f = .5",
		"f = 1.",
	}

	for _, tc := range tests {
		p := newReader([]byte(tc))
		_, err := p.read()
		if err == nil {
			t.Errorf("Should have failed to parse: %s", tc)
		}
	}
}

func TestLexer_HexWithE(t *testing.T) {
	// 0xDEAD must be Integer, not misclassified as Float due to 'E'
	input := "val = 0xDEAD"
	l := newScanner([]byte(input))

	tok := l.next() // val
	if tok.kind != tokIdent {
		t.Errorf("Expected Ident, got %v", tok.kind)
	}
	tok = l.next() // =
	if tok.kind != tokEqual {
		t.Errorf("Expected Equal, got %v", tok.kind)
	}
	tok = l.next() // 0xDEAD
	if tok.kind != tokInt {
		t.Errorf("Expected Integer for hex, got %v (%s)", tok.kind, tok.literal)
	}
	if tok.literal != "0xDEAD" {
		t.Errorf("Literal mismatch: %q", tok.literal)
	}
}

func TestLexer_IPAddressAndVersion(t *testing.T) {
	// IP-like or semver must error on multi-dot
	input := "version = 1.2.3"
	l := newScanner([]byte(input))

	tok := l.next() // version
	if tok.kind != tokIdent {
		t.Errorf("Expected Ident, got %v", tok.kind)
	}
	tok = l.next() // =
	if tok.kind != tokEqual {
		t.Errorf("Expected Equal, got %v", tok.kind)
	}
	tok = l.next() // 1.2.3 should error
	if tok.kind != tokErr {
		t.Errorf("Expected Error for multi-dot, got %v (%s)", tok.kind, tok.literal)
	}
}

func TestParser_StrictNoNumericKeys(t *testing.T) {
	tests := []struct {
		input string
		name  string
	}{
		{`123 = "val"`, "Bare integer key"},
		{`[123]`, "Integer table header"},
		{`["456"]`, "Quoted integer key"},
		{`a.1.b = "val"`, "Numeric segment in dotted key"},
	}

	for _, tc := range tests {
		p := newReader([]byte(tc.input))
		_, err := p.read()
		if err == nil {
			t.Errorf("Failed %s: should have rejected numeric key", tc.name)
		}
	}
}

func TestLexer_AmbiguousNumericDotted(t *testing.T) {
	tests := []struct {
		input    string
		expected []tokKind
	}{
		{"1.a", []tokKind{tokInt, tokDot, tokIdent, tokEOF}},
		{"1.0.0", []tokKind{tokErr}}, // Multi-dot
		{"1e1.5", []tokKind{tokFloat, tokDot, tokInt, tokEOF}},
	}

	for _, tc := range tests {
		l := newScanner([]byte(tc.input))
		var got []tokKind
		for {
			tok := l.next()
			got = append(got, tok.kind)
			if tok.kind == tokEOF || tok.kind == tokErr {
				break
			}
		}
		if len(got) != len(tc.expected) {
			t.Errorf("%s: got %v, want %v", tc.input, got, tc.expected)
			continue
		}
		for i, exp := range tc.expected {
			if got[i] != exp {
				t.Errorf("%s[%d]: got %v, want %v", tc.input, i, got[i], exp)
			}
		}
	}
}

func TestParser_KeyValueContext(t *testing.T) {
	input := `key = 1.1`
	p := newReader([]byte(input))
	_, err := p.read()
	if err != nil {
		t.Errorf("Valid float value failed: %v", err)
	}

	input2 := `1.1 = "value"`
	p2 := newReader([]byte(input2))
	_, err = p2.read()
	if err == nil {
		t.Error("Float key should have been rejected")
	}
}