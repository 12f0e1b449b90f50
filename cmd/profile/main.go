// Command profile draws reaction energy profile diagrams from JSON.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sgostarter/i/l"

	"github.com/ha1tch/profile-toolkit/pkg/palette"
	"github.com/ha1tch/profile-toolkit/pkg/profilefile"
	"github.com/ha1tch/profile-toolkit/pkg/render"
	"github.com/ha1tch/profile-toolkit/pkg/style"
)

const usage = `profile - reaction energy profile diagrams

Usage:
  profile --input <file.json> [options]

Options:
  -i, --input <path>           JSON file with the energy sets (required)
  -o, --output <name>          Output name without extension (default reaction_profile)
  -f, --format <fmt>           png, svg, pdf or eps
      --point-type <type>      dot, hollow or bar
      --curviness <c>          Bezier handle fraction (0 draws straight lines)
      --labels, --no-labels    Enable or disable value labels
      --desaturate-curve       Stroke curves in a lighter shade of the marker colour
      --no-desaturate          Stroke curves in the marker colour
      --desaturate-factor <f>  Strength of the lighter shade
      --dashed <i|name>...     Pathways drawn dashed, by index or name
      --style <name>           Style preset (see --list-styles)
      --style-file <path>      YAML file with extra style presets
      --axes <axes>            none, x, y, both or box
      --colors <spec>          Palette or colormap name, or comma separated colours
      --legend                 Show the legend
      --dpi <n>                Raster resolution
      --point-labels <path>    JSON file with per point texts
      --print-json             Print the parsed input as JSON and exit
      --list-styles            List style presets and palettes
  -v, --verbose                Log progress to stderr

Examples:
  profile --input energies.json
  profile --input energies.json --format svg --point-type bar --dashed 1
  profile --input energies.json --style presentation --legend --axes y
`

type cliOptions struct {
	input       string
	output      string
	style       string
	styleFile   string
	pointLabels string
	printJSON   bool
	listStyles  bool
	verbose     bool
	overrides   map[string]any
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if opts == nil {
		fmt.Print(usage)
		return
	}

	logger := l.NewNopLoggerWrapper()
	if opts.verbose {
		logger = l.NewConsoleLoggerWrapper()
	}

	if err := run(opts, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs reads the command line. A nil result without error means help
// was requested.
func parseArgs(args []string) (*cliOptions, error) {
	opts := &cliOptions{
		output:    "reaction_profile",
		overrides: map[string]any{},
	}

	value := func(i *int, flag string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s needs a value", flag)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		var err error
		var v string
		switch arg {
		case "-h", "--help":
			return nil, nil
		case "-i", "--input":
			opts.input, err = value(&i, arg)
		case "-o", "--output":
			opts.output, err = value(&i, arg)
		case "-f", "--format":
			if v, err = value(&i, arg); err == nil {
				opts.overrides["format"] = v
			}
		case "--point-type":
			if v, err = value(&i, arg); err == nil {
				opts.overrides["point_type"] = v
			}
		case "--curviness":
			if v, err = value(&i, arg); err == nil {
				opts.overrides["curviness"] = v
			}
		case "--labels":
			opts.overrides["labels"] = true
		case "--no-labels":
			opts.overrides["labels"] = false
		case "--desaturate-curve":
			opts.overrides["desaturate"] = true
		case "--no-desaturate":
			opts.overrides["desaturate"] = false
		case "--desaturate-factor":
			if v, err = value(&i, arg); err == nil {
				opts.overrides["desaturate_factor"] = v
			}
		case "--dashed":
			// takes every following argument up to the next flag
			var dashed []string
			for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				dashed = append(dashed, args[i])
			}
			opts.overrides["dashed"] = dashed
		case "--style":
			opts.style, err = value(&i, arg)
		case "--style-file":
			opts.styleFile, err = value(&i, arg)
		case "--axes":
			if v, err = value(&i, arg); err == nil {
				opts.overrides["axes"] = v
			}
		case "--colors":
			if v, err = value(&i, arg); err == nil {
				opts.overrides["colors"] = v
			}
		case "--legend":
			opts.overrides["show_legend"] = true
		case "--dpi":
			if v, err = value(&i, arg); err == nil {
				opts.overrides["dpi"] = v
			}
		case "--point-labels":
			opts.pointLabels, err = value(&i, arg)
		case "--print-json":
			opts.printJSON = true
		case "--list-styles":
			opts.listStyles = true
		case "-v", "--verbose":
			opts.verbose = true
		default:
			return nil, fmt.Errorf("unknown option: %s", arg)
		}
		if err != nil {
			return nil, err
		}
	}

	if opts.input == "" && !opts.listStyles {
		return nil, fmt.Errorf("--input is required")
	}
	return opts, nil
}

func run(opts *cliOptions, stdout io.Writer, logger l.Wrapper) error {
	table := style.DefaultTable()
	if opts.styleFile != "" {
		data, err := os.ReadFile(opts.styleFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", opts.styleFile, err)
		}
		custom, err := style.ParseTable(data)
		if err != nil {
			return fmt.Errorf("%s: %w", opts.styleFile, err)
		}
		table = table.Merge(custom)
	}

	if opts.listStyles {
		fmt.Fprintf(stdout, "Styles:   %s\n", strings.Join(table.Names(), ", "))
		fmt.Fprintf(stdout, "Palettes: %s\n", strings.Join(palette.Names(), ", "))
		return nil
	}

	pathways, err := profilefile.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("loading %s: %w", opts.input, err)
	}

	if opts.printJSON {
		data, err := profilefile.ToJSON(pathways, true)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	if opts.pointLabels != "" {
		data, err := os.ReadFile(opts.pointLabels)
		if err != nil {
			return fmt.Errorf("reading %s: %w", opts.pointLabels, err)
		}
		labels, err := profilefile.ParsePointLabels(data)
		if err != nil {
			return fmt.Errorf("%s: %w", opts.pointLabels, err)
		}
		opts.overrides["point_labels"] = labels
	}

	r := render.NewRenderer(table, logger)
	o, err := r.Options(opts.style, opts.overrides)
	if err != nil {
		return err
	}

	path, err := r.Render(pathways, o, opts.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Written: %s\n", path)
	return nil
}
