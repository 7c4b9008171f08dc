package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/mitchellh/go-homedir"

	"github.com/genelet/skyline/convert"
	"github.com/genelet/skyline/valid"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [options] <filename or glob> ...\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nSupported formats: json, yaml, hcl\n")
	fmt.Fprintf(os.Stderr, "Patterns support ** globs and a leading ~.\n\n")
	flag.PrintDefaults()
	os.Exit(1)
}

// conversionFunc represents a format conversion function
type conversionFunc func([]byte) ([]byte, error)

// conversions maps "from->to" format pairs to their conversion functions
var conversions = map[string]conversionFunc{
	"json->yaml": convert.JSONToYAML,
	"json->hcl":  convert.JSONToHCL,
	"yaml->json": convert.YAMLToJSON,
	"yaml->hcl":  convert.YAMLToHCL,
	"hcl->json":  convert.HCLToJSON,
	"hcl->yaml":  convert.HCLToYAML,
}

func main() {
	var from string
	var to string
	var check bool
	flag.StringVar(&from, "from", "json", "from format")
	flag.StringVar(&to, "to", "hcl", "to format")
	flag.BoolVar(&check, "check", false, "validate HCL files and print diagnostics instead of converting")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
	}

	filenames, err := expandArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(filenames) == 0 {
		fmt.Fprintf(os.Stderr, "error: no files match\n")
		os.Exit(1)
	}

	if check {
		os.Exit(checkFiles(filenames))
	}

	if from == to {
		fmt.Fprintf(os.Stderr, "error: from and to format are the same\n")
		os.Exit(1)
	}
	convertFunc, ok := conversions[from+"->"+to]
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unsupported conversion from %s to %s\n", from, to)
		os.Exit(1)
	}

	for _, filename := range filenames {
		raw, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		raw, err = convertFunc(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", raw)
	}
}

// expandArgs resolves ~ prefixes and ** glob patterns to concrete files.
// An argument without glob characters passes through untouched.
func expandArgs(args []string) ([]string, error) {
	var filenames []string
	for _, arg := range args {
		expanded, err := homedir.Expand(arg)
		if err != nil {
			return nil, err
		}
		if !strings.ContainsAny(expanded, "*?[{") {
			filenames = append(filenames, expanded)
			continue
		}
		matches, err := doublestar.Glob(expanded)
		if err != nil {
			return nil, err
		}
		filenames = append(filenames, matches...)
	}
	return filenames, nil
}

// checkFiles validates each file and prints its diagnostics.
// The exit code is the number of invalid files.
func checkFiles(filenames []string) int {
	bad := 0
	for _, filename := range filenames {
		raw, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			bad++
			continue
		}
		result := valid.Validate(raw, filename)
		if result.Valid {
			fmt.Printf("%s: ok\n", filename)
			continue
		}
		bad++
		for _, d := range result.Diagnostics {
			fmt.Printf("%s\n", d)
		}
	}
	return bad
}
