package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"lukechampine.com/uint128"

	"github.com/bitweave/bitweave"
	"github.com/bitweave/bitweave/engine"
	"github.com/bitweave/bitweave/gen"
)

func main() {
	var (
		op          = flag.String("op", "split", "Operation: split, one, combine, replace, weave")
		tmpl        = flag.String("t", "", "Template string")
		hexBase     = flag.Bool("hex", false, "Hex template, four bits per character")
		value       = flag.String("v", "", "Input value (0x/0b prefixes accepted)")
		baseVal     = flag.String("base", "", "Base value for replace")
		argStr      = flag.String("args", "", "Field arguments (a=5,b=0x3,...)")
		inStr       = flag.String("in", "", "Weave inputs (template=value;template=value)")
		policyStr   = flag.String("overflow", "", "Overflow policy: truncate, panic, corrupt, saturate")
		exact       = flag.Bool("exact", false, "Keep exact field widths instead of rounding up")
		minStr      = flag.String("min", "", "Minimum field type: u8, u16, u32, u64")
		manifest    = flag.String("gen", "", "Generate Go source from a YAML manifest")
		outFile     = flag.String("o", "", "Output file for generated source (default stdout)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			engine.SetLogger(logger)
			gen.SetLogger(logger)
		}
	}

	if *interactive {
		if err := runExplorer(*tmpl, *value, *hexBase); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *manifest != "" {
		if err := generate(*manifest, *outFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *tmpl == "" && *inStr == "" {
		fmt.Fprintln(os.Stderr, "Usage: bitweave -op split -t <template> -v <value>")
		fmt.Fprintln(os.Stderr, "       bitweave -op combine -t <template> -args a=5,b=0x3")
		fmt.Fprintln(os.Stderr, "       bitweave -op replace -t <template> -base <value> -args a=5")
		fmt.Fprintln(os.Stderr, "       bitweave -op weave -in 'tmpl=value;tmpl=value' -t <output template>")
		fmt.Fprintln(os.Stderr, "       bitweave -gen manifest.yaml [-o out.go]")
		fmt.Fprintln(os.Stderr, "       bitweave -i [-t template] [-v value]  (interactive mode)")
		os.Exit(1)
	}

	opts, err := buildOptions(*policyStr, *exact, *minStr)
	if err == nil {
		err = run(*op, *tmpl, *hexBase, *value, *baseVal, *argStr, *inStr, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildOptions(policyStr string, exact bool, minStr string) ([]bitweave.Option, error) {
	var opts []bitweave.Option

	policy, ok := engine.ParseOverflow(policyStr)
	if !ok {
		return nil, fmt.Errorf("unknown overflow policy %q", policyStr)
	}
	if policy != bitweave.Truncate {
		opts = append(opts, bitweave.WithOverflow(policy))
	}

	if exact {
		opts = append(opts, bitweave.WithExactWidths())
	}

	switch minStr {
	case "":
	case "u8":
		opts = append(opts, bitweave.WithMin(bitweave.U8))
	case "u16":
		opts = append(opts, bitweave.WithMin(bitweave.U16))
	case "u32":
		opts = append(opts, bitweave.WithMin(bitweave.U32))
	case "u64":
		opts = append(opts, bitweave.WithMin(bitweave.U64))
	default:
		return nil, fmt.Errorf("unknown min type %q", minStr)
	}

	return opts, nil
}

func run(op, tmpl string, hexBase bool, value, baseVal, argStr, inStr string, opts []bitweave.Option) error {
	switch op {
	case "split":
		v, err := parseValue(value)
		if err != nil {
			return err
		}
		fields, err := splitFn(hexBase)(v, tmpl, opts...)
		if err != nil {
			return err
		}
		printFields(fields)
		return nil

	case "one":
		v, err := parseValue(value)
		if err != nil {
			return err
		}
		oneFn := bitweave.One
		if hexBase {
			oneFn = bitweave.OneHex
		}
		f, err := oneFn(v, tmpl, opts...)
		if err != nil {
			return err
		}
		printFields(bitweave.Fields{f})
		return nil

	case "combine":
		args, err := parseArgs(argStr)
		if err != nil {
			return err
		}
		combineFn := bitweave.Combine
		if hexBase {
			combineFn = bitweave.CombineHex
		}
		out, err := combineFn(tmpl, args, opts...)
		if err != nil {
			return err
		}
		printResult(out)
		return nil

	case "replace":
		base, err := parseValue(baseVal)
		if err != nil {
			return err
		}
		args, err := parseArgs(argStr)
		if err != nil {
			return err
		}
		replaceFn := bitweave.Replace
		if hexBase {
			replaceFn = bitweave.ReplaceHex
		}
		out, err := replaceFn(base, tmpl, args, opts...)
		if err != nil {
			return err
		}
		printResult(out)
		return nil

	case "weave":
		inputs, err := parseInputs(inStr)
		if err != nil {
			return err
		}
		weaveFn := bitweave.SplitThenCombine
		if hexBase {
			weaveFn = bitweave.SplitHexThenCombine
		}
		out, err := weaveFn(inputs, tmpl, opts...)
		if err != nil {
			return err
		}
		printResult(out)
		return nil

	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

func splitFn(hexBase bool) func(uint64, string, ...bitweave.Option) (bitweave.Fields, error) {
	if hexBase {
		return bitweave.SplitHex
	}
	return bitweave.Split
}

func parseValue(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parse value %q: %w", s, err)
	}
	return v, nil
}

// parseArgs decodes "a=5,b=0x3" into field arguments.
func parseArgs(s string) (bitweave.Args, error) {
	args := make(bitweave.Args)
	if s == "" {
		return args, nil
	}
	for _, kv := range strings.Split(s, ",") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || len([]rune(parts[0])) != 1 {
			return nil, fmt.Errorf("malformed argument %q, want letter=value", kv)
		}
		v, err := parseValue(parts[1])
		if err != nil {
			return nil, err
		}
		args[[]rune(parts[0])[0]] = bitweave.AU64(v)
	}
	return args, nil
}

// parseInputs decodes "template=value;template=value" weave inputs.
func parseInputs(s string) ([]bitweave.Input, error) {
	if s == "" {
		return nil, fmt.Errorf("weave needs -in inputs")
	}
	var inputs []bitweave.Input
	for _, pair := range strings.Split(s, ";") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed input %q, want template=value", pair)
		}
		v, err := parseValue(parts[1])
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, bitweave.In(v, parts[0]))
	}
	return inputs, nil
}

func printFields(fields bitweave.Fields) {
	for _, f := range fields {
		if f.Type.IsBool() {
			fmt.Printf("%c: bool = %v\n", f.Name, f.Bool())
			continue
		}
		fmt.Printf("%c: %s = %s\n", f.Name, f.Type, formatWord(f.Uint128(), f.Width))
	}
}

func printResult(v uint64) {
	fmt.Printf("0x%x (0b%b, %d)\n", v, v, v)
}

// formatWord renders a value in binary, hex, and decimal.
func formatWord(v uint128.Uint128, width uint8) string {
	b := v.Big()
	return fmt.Sprintf("0b%0*s (0x%0*s, %s)", int(width), b.Text(2), int(width+3)/4, b.Text(16), b.Text(10))
}

func generate(manifestFile, outFile string) error {
	m, err := gen.LoadManifest(manifestFile)
	if err != nil {
		return err
	}

	src, err := gen.Generate(m)
	if err != nil {
		return err
	}

	if outFile == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	if err := os.WriteFile(outFile, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outFile, err)
	}
	fmt.Printf("Generated %s: package %s, %d entries\n", outFile, m.Package, len(m.Entries))
	return nil
}
