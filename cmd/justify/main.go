// Command justify validates a JSON instance against a Draft-07 JSON
// Schema, streaming the instance rather than loading it into memory.
//
// Usage:
//
//	justify validate <schema> [<instance>]
//
// With only a schema argument, the schema document is validated against
// the Draft-07 meta-schema instead of an instance.
//
// Flags:
//
//	-h, --help            show this help message
//	-v, --version         print the version and exit
//	-r, --strict-format   reject unknown "format" names at compile time
//	-l, --locale          locale to render problems in (default: environment)
//	    --color           force colored output on or off
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/go-json-experiment/json"
	"github.com/goccy/go-yaml"
	"github.com/kaptinlin/go-i18n"

	"github.com/fatih/color"
	"golang.org/x/text/language"

	"github.com/letui/justify"
	"github.com/letui/justify/internal/metaschema"
	"github.com/letui/justify/tokenizer"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("justify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	help := fs.Bool("help", false, "show this help message")
	fs.BoolVar(help, "h", false, "show this help message")
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.BoolVar(showVersion, "v", false, "print the version and exit")
	strictFormat := fs.Bool("strict-format", false, "reject unknown \"format\" names at compile time")
	fs.BoolVar(strictFormat, "r", false, "reject unknown \"format\" names at compile time")
	locale := fs.String("locale", "", "locale to render problems in")
	fs.StringVar(locale, "l", "", "locale to render problems in")
	forceColor := fs.String("color", "", "force colored output: \"always\" or \"never\"")

	fs.Usage = func() { printUsage(fs) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		printUsage(fs)
		return 0
	}
	if *showVersion {
		fmt.Println("justify", version)
		return 0
	}

	switch *forceColor {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	rest := fs.Args()
	if len(rest) == 0 || rest[0] != "validate" {
		printUsage(fs)
		return 2
	}
	rest = rest[1:]
	if len(rest) < 1 || len(rest) > 2 {
		printUsage(fs)
		return 2
	}

	localizer := resolveLocalizer(*locale)

	schemaPath := rest[0]
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "justify:", err)
		return 2
	}

	builder := justify.NewBuilder()
	builder.SetStrictFormat(*strictFormat)

	schema, err := builder.Compile(schemaBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "justify: schema error:", err)
		return 2
	}

	var instancePath string
	if len(rest) == 2 {
		instancePath = rest[1]
	}

	if instancePath == "" {
		metaSchemaJSON, err := metaschema.Draft07()
		if err != nil {
			fmt.Fprintln(os.Stderr, "justify:", err)
			return 2
		}
		metaBuilder := justify.NewBuilder()
		metaSchema, err := metaBuilder.Compile(metaSchemaJSON)
		if err != nil {
			fmt.Fprintln(os.Stderr, "justify:", err)
			return 2
		}
		return validateBytes(metaSchema, schemaBytes, schemaPath, localizer)
	}

	instanceBytes, err := os.ReadFile(instancePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "justify:", err)
		return 2
	}
	if isYAML(instancePath) {
		instanceBytes, err = yaml.YAMLToJSON(instanceBytes)
		if err != nil {
			fmt.Fprintln(os.Stderr, "justify: invalid YAML instance:", err)
			return 2
		}
	}

	return validateBytes(schema, instanceBytes, instancePath, localizer)
}

// validateBytes runs schema against the JSON document raw, reporting
// every problem through the CLI's formatted sink, and returns the CLI
// exit code this run earned.
func validateBytes(schema *justify.Schema, raw []byte, label string, localizer *i18n.Localizer) int {
	src := tokenizer.New(strings.NewReader(string(raw)))

	var problems []*justify.Problem
	err := justify.Validate(schema, src, func(p *justify.Problem) {
		problems = append(problems, p)
		printProblem(p, localizer)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "justify:", label+":", err)
		return 2
	}

	summary, marshalErr := gojson.Marshal(struct {
		Valid bool   `json:"valid"`
		Count int    `json:"problemCount"`
		File  string `json:"file"`
	}{Valid: len(problems) == 0, Count: len(problems), File: label})
	if marshalErr == nil {
		fmt.Println(string(summary))
	}

	if len(problems) > 0 {
		return 1
	}
	return 0
}

// printProblem renders one problem via justify.RenderProblems, then
// recolors its location prefix for a terminal.
func printProblem(p *justify.Problem, localizer *i18n.Localizer) {
	var buf bytes.Buffer
	justify.RenderProblems(&buf, []*justify.Problem{p}, localizer)
	line := strings.TrimSuffix(buf.String(), "\n")
	loc, msg, found := strings.Cut(line, " ")
	if !found {
		fmt.Println(line)
		return
	}
	red := color.New(color.FgRed).SprintFunc()
	fmt.Printf("%s %s\n", red(loc), msg)
}

func resolveLocalizer(flagLocale string) *i18n.Localizer {
	bundle, err := justify.GetI18n()
	if err != nil {
		return nil
	}

	candidate := flagLocale
	if candidate == "" {
		candidate = firstNonEmpty(os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
	}
	if candidate == "" {
		return bundle.NewLocalizer("en")
	}

	matcher := language.NewMatcher([]language.Tag{language.English, language.Japanese})
	tag, _, _ := language.ParseAcceptLanguage(normalizeLocale(candidate))
	_, index, _ := matcher.Match(tag...)
	tags := []string{"en", "ja"}
	return bundle.NewLocalizer(tags[index])
}

func normalizeLocale(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func isYAML(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: justify validate <schema> [<instance>]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "With only a schema argument, the schema is validated against the")
	fmt.Fprintln(os.Stderr, "Draft-07 meta-schema instead of an instance.")
	fmt.Fprintln(os.Stderr)
	fs.PrintDefaults()
}
