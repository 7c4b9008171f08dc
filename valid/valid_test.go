package valid

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/genelet/skyline/diag"
)

// expectation is one line of an .expect file: "line:col:byte message".
type expectation struct {
	line, col, byteOffset int
	message               string
}

// Each testdata pair is an .hcl input and an .expect file listing the
// diagnostics it must produce, in order, with exact start positions. An
// empty .expect file means the input is valid. Extra trailing diagnostics
// are allowed; missing or misplaced ones are not.
func TestFixtures(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*.hcl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".hcl")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(input)
			if err != nil {
				t.Fatal(err)
			}
			expected, err := readExpectations(strings.TrimSuffix(input, ".hcl") + ".expect")
			if err != nil {
				t.Fatal(err)
			}

			result := Validate(src, filepath.Base(input))
			if result.Valid != (len(expected) == 0) {
				t.Errorf("valid = %t with %d expected diagnostics", result.Valid, len(expected))
			}
			if len(result.Diagnostics) < len(expected) {
				t.Fatalf("got %d diagnostics, want at least %d:\n%s",
					len(result.Diagnostics), len(expected), render(result))
			}
			for i, want := range expected {
				got := result.Diagnostics[i]
				start := got.Range.Start
				if start.Line != want.line || start.Column != want.col || start.Byte != want.byteOffset {
					t.Errorf("diagnostic %d at %d:%d byte %d, want %d:%d byte %d",
						i, start.Line, start.Column, start.Byte, want.line, want.col, want.byteOffset)
				}
				if !strings.Contains(got.Message, want.message) {
					t.Errorf("diagnostic %d message %q, want %q", i, got.Message, want.message)
				}
			}
		})
	}
}

func readExpectations(fn string) ([]expectation, error) {
	raw, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	var out []expectation
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pos, message, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("malformed expectation %q", line)
		}
		parts := strings.SplitN(pos, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed position %q", pos)
		}
		var e expectation
		if e.line, err = strconv.Atoi(parts[0]); err != nil {
			return nil, err
		}
		if e.col, err = strconv.Atoi(parts[1]); err != nil {
			return nil, err
		}
		if e.byteOffset, err = strconv.Atoi(parts[2]); err != nil {
			return nil, err
		}
		e.message = message
		out = append(out, e)
	}
	return out, nil
}

func render(result ValidationResult) string {
	var sb strings.Builder
	for _, d := range result.Diagnostics {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestValidateNeverFails(t *testing.T) {
	// hostile inputs produce diagnostics, not panics or errors
	inputs := []string{
		"",
		"}}}}",
		"{{{{",
		"a = ((((",
		"\x00\xff\xfe",
		"svc \"a\" \"b\" \"c\" \"d\" {",
		"= = = =",
	}
	for _, src := range inputs {
		result := ValidateString(src)
		_ = result.Valid
	}
}

func TestValidMultibyteRanges(t *testing.T) {
	// columns are codepoints, byte offsets are UTF-8 bytes
	result := ValidateString("π = 1, q = 2\n")
	if result.Valid {
		t.Fatal("expected invalid")
	}
	start := result.Diagnostics[0].Range.Start
	if start.Line != 1 || start.Column != 6 || start.Byte != 6 {
		t.Errorf("start %d:%d byte %d", start.Line, start.Column, start.Byte)
	}
}

func TestSingleLineBlockWithOneAttribute(t *testing.T) {
	result := ValidateString("svc { a = 1 }\n")
	if !result.Valid {
		t.Errorf("diagnostics: %v", result.Diagnostics)
	}
}

func TestInterpolatedLabel(t *testing.T) {
	result := ValidateString("svc \"${l}\" {\n}\n")
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !strings.Contains(result.Diagnostics[0].Message, "static strings") {
		t.Errorf("message %q", result.Diagnostics[0].Message)
	}
}

func TestUnclosedValueBrackets(t *testing.T) {
	inputs := []string{
		"a = (1 + 2\n",
		"a = [1, 2\n",
		"a = {\n",
	}
	for _, src := range inputs {
		result := ValidateString(src)
		if result.Valid {
			t.Errorf("%q: expected invalid", src)
			continue
		}
		if !strings.Contains(result.Diagnostics[0].Message, "unclosed") {
			t.Errorf("%q: message %q", src, result.Diagnostics[0].Message)
		}
	}
}

func TestDuplicateAttributeWarning(t *testing.T) {
	result := ValidateString("a = 1\nb = 2\na = 3\n")
	if !result.Valid {
		t.Fatalf("duplicates are advisory, diagnostics: %v", result.Diagnostics)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	d := result.Diagnostics[0]
	if d.Severity != diag.Warning {
		t.Errorf("severity %s, want warning", d.Severity)
	}
	start := d.Range.Start
	if start.Line != 3 || start.Column != 1 || start.Byte != 12 {
		t.Errorf("start %d:%d byte %d", start.Line, start.Column, start.Byte)
	}

	// the same name in sibling blocks is fine
	result = ValidateString("svc \"a\" { x = 1 }\nsvc \"b\" { x = 1 }\n")
	if len(result.Diagnostics) != 0 {
		t.Errorf("diagnostics: %v", result.Diagnostics)
	}
}
