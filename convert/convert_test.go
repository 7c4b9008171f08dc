package convert

import (
	"os"
	"strings"
	"testing"
)

func TestYAMLConversions(t *testing.T) {
	testCases := []string{"x", "y", "z"}
	for _, tc := range testCases {
		t.Run(tc, func(t *testing.T) {
			yaml2(t, tc)
		})
	}
}

func yaml2(t *testing.T, fn string) {
	raw := readFixture(t, fn+".yaml")

	jsn, err := YAMLToJSON(raw)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	expectFixture(t, fn+".json", jsn)

	hcl, err := YAMLToHCL(raw)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	expectFixture(t, fn+".hcl", hcl)
}

func TestJSONConversions(t *testing.T) {
	testCases := []string{"x", "y", "z"}
	for _, tc := range testCases {
		t.Run(tc, func(t *testing.T) {
			json2(t, tc)
		})
	}
}

func json2(t *testing.T, fn string) {
	raw := readFixture(t, fn+".json")

	yml, err := JSONToYAML(raw)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	expectFixture(t, fn+".yaml", yml)

	hcl, err := JSONToHCL(raw)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	expectFixture(t, fn+".hcl", hcl)
}

func TestHCLConversions(t *testing.T) {
	testCases := []string{"x", "y", "z"}
	for _, tc := range testCases {
		t.Run(tc, func(t *testing.T) {
			hcl2(t, tc)
		})
	}
}

func hcl2(t *testing.T, fn string) {
	raw := readFixture(t, fn+".hcl")

	jsn, err := HCLToJSON(raw)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	expectFixture(t, fn+".json", jsn)

	yml, err := HCLToYAML(raw)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	expectFixture(t, fn+".yaml", yml)
}

func TestEmptyInput(t *testing.T) {
	convs := map[string]func([]byte) ([]byte, error){
		"JSONToYAML": JSONToYAML,
		"YAMLToJSON": YAMLToJSON,
		"JSONToHCL":  JSONToHCL,
		"HCLToJSON":  HCLToJSON,
		"YAMLToHCL":  YAMLToHCL,
		"HCLToYAML":  HCLToYAML,
	}
	for name, conv := range convs {
		if _, err := conv(nil); err == nil {
			t.Errorf("%s accepted empty input", name)
		}
	}
}

func readFixture(t *testing.T, fn string) []byte {
	t.Helper()
	raw, err := os.ReadFile(fn)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	return raw
}

func expectFixture(t *testing.T, fn string, got []byte) {
	t.Helper()
	want := readFixture(t, fn)
	if strings.TrimSpace(string(got)) != strings.TrimSpace(string(want)) {
		t.Errorf("got: %s\n", got)
		t.Errorf("want: %s\n", want)
	}
}
