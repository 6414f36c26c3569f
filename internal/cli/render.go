package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/scatter"
	"github.com/matzehuels/typescatter/pkg/scatter/sink"
)

// Output formats.
const (
	formatHTML = "html"
	formatSVG  = "svg"
	formatJSON = "json"
	formatPNG  = "png"
	formatPDF  = "pdf"
)

var validFormats = []string{formatHTML, formatSVG, formatJSON, formatPNG, formatPDF}

// renderOpts holds the flags shared by render and print.
type renderOpts struct {
	input    string  // file to read text from ("-" for stdin)
	width    float64 // container width in pixels
	seed     uint64  // 0 = unseeded
	shapes   string  // decorative asset source
	noShapes bool    // disable decorative shapes
	noCache  bool    // bypass the asset cache
}

// bindRenderFlags registers the shared flags with defaults from config.
func (c *CLI) bindRenderFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", `read text from file ("-" for stdin)`)
	cmd.Flags().Float64VarP(&opts.width, "width", "w", 0, "container width in pixels (default from config, 800)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible layout (0 = random)")
	cmd.Flags().StringVar(&opts.shapes, "shapes", "", `decorative asset: path, URL or "builtin" (default from config)`)
	cmd.Flags().BoolVar(&opts.noShapes, "no-shapes", false, "disable decorative shapes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not cache fetched assets")
}

// resolve fills unset flags from the loaded configuration and validates the
// result.
func (c *CLI) resolve(cmd *cobra.Command, opts *renderOpts) error {
	if !cmd.Flags().Changed("width") {
		opts.width = c.cfg.Width
	}
	if !cmd.Flags().Changed("seed") {
		opts.seed = c.cfg.Seed
	}
	if !cmd.Flags().Changed("shapes") {
		opts.shapes = c.cfg.Shapes.Source
	}
	if opts.noShapes {
		opts.shapes = ""
	}
	return errors.ValidateWidth(opts.width)
}

type renderCmdOpts struct {
	renderOpts
	output  string
	formats string
	scale   float64
	table   bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderCmdOpts

	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Lay out text and export it as HTML, SVG, JSON, PNG or PDF",
		Example: `  typescatter render "the quick brown fox"
  typescatter render -f svg,png -o fox "the quick brown fox"
  echo "from stdin" | typescatter render -i - -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolve(cmd, &opts.renderOpts); err != nil {
				return err
			}
			formats := parseFormats(opts.formats)
			if err := validateFormats(formats); err != nil {
				return err
			}
			text, err := readText(cmd.InOrStdin(), args, opts.input)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), text, formats, &opts)
		},
	}

	c.bindRenderFlags(cmd, &opts.renderOpts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); stdout when empty")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): html (default), svg, json, png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a table of the placed words")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, text string, formats []string, opts *renderCmdOpts) error {
	c.Logger.Debug("render", "formats", formats, "width", opts.width, "seed", opts.seed, "shapes", opts.shapes)
	prog := newProgress(c.Logger)

	e, err := c.newEnv(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer e.Close()
	e.loadShapes(ctx, opts.shapes)

	comp := e.newRenderer(opts.seed).Render(ctx, scatter.NewMemorySurface(opts.width), text)
	if comp == nil {
		printInfo(c.out(), "Nothing to render: input is blank")
		return nil
	}
	prog.done("Laid out composition", "words", len(comp.Words), "height", comp.MinHeight)

	if opts.table {
		printWordTable(c.out(), comp)
	}

	toStdout := opts.output == "" && len(formats) == 1 && !opts.table
	for _, format := range formats {
		data, err := encode(comp, format, e, opts)
		if err != nil {
			return err
		}
		if toStdout {
			_, err := c.out().Write(data)
			return err
		}
		path := outputPath(opts.output, format, len(formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		printFile(c.out(), path)
	}
	return nil
}

// encode renders comp in one output format.
func encode(comp *scatter.Composition, format string, e *env, opts *renderCmdOpts) ([]byte, error) {
	switch format {
	case formatHTML:
		return sink.RenderHTML(comp), nil
	case formatSVG:
		return sink.RenderSVG(comp, sink.WithBackground("#fff")), nil
	case formatJSON:
		return sink.RenderJSON(comp, sink.WithJSONSeed(opts.seed), sink.WithJSONIndent())
	case formatPNG:
		return sink.RenderPNG(comp, pngOptions(comp, e, opts.scale)...)
	case formatPDF:
		return sink.RenderPDF(comp, sink.WithPDFSVGOptions(sink.WithBackground("#fff")))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}

// pngOptions draws natively unless the composition has shapes and
// rsvg-convert can rasterize them.
func pngOptions(comp *scatter.Composition, e *env, scale float64) []sink.PNGOption {
	opts := []sink.PNGOption{sink.WithScale(scale), sink.WithFonts(e.fonts)}
	if len(comp.Shapes()) > 0 && sink.RSVGAvailable() {
		opts = append(opts, sink.WithRSVG(sink.WithBackground("#fff")))
	}
	return opts
}

// outputPath returns the file for format. With multiple formats, output is
// a base path that gets the format extension; it defaults to "typescatter".
func outputPath(output, format string, multi bool) string {
	if output == "" {
		return appName + "." + format
	}
	if !multi {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
}

// parseFormats splits the --format flag; empty means html.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatHTML}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(validFormats, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be %s)", f, strings.Join(validFormats, ", "))
		}
	}
	return nil
}

// readText returns the input from --input or the positional arguments.
func readText(stdin io.Reader, args []string, input string) (string, error) {
	if input != "" && len(args) > 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "pass text either as arguments or with --input, not both")
	}
	var text string
	switch input {
	case "":
		text = strings.Join(args, " ")
	case "-":
		data, err := io.ReadAll(io.LimitReader(stdin, errors.MaxTextLength+1))
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		text = string(data)
	default:
		data, err := os.ReadFile(input)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", input)
		}
		text = string(data)
	}
	if err := errors.ValidateText(text); err != nil {
		return "", err
	}
	return text, nil
}
