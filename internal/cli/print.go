package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/host"
	"github.com/matzehuels/typescatter/pkg/printer"
	"github.com/matzehuels/typescatter/pkg/scatter"
	"github.com/matzehuels/typescatter/pkg/scatter/sink"
)

type printCmdOpts struct {
	renderOpts
	output string
	delay  time.Duration
}

func (c *CLI) printCommand() *cobra.Command {
	var opts printCmdOpts

	cmd := &cobra.Command{
		Use:   "print [text...]",
		Short: "Lay out text and open it in the browser's print dialog",
		Long: `Lay out text and print it. The composition is wrapped in a standalone print
document which is opened in the system browser; the print dialog appears
shortly after the page has loaded. With --output the document is written to a
file instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolve(cmd, &opts.renderOpts); err != nil {
				return err
			}
			if !cmd.Flags().Changed("delay") {
				opts.delay = c.cfg.Print.Delay.Duration
			}
			text, err := readText(cmd.InOrStdin(), args, opts.input)
			if err != nil {
				return err
			}
			return c.runPrint(cmd.Context(), cmd.ErrOrStderr(), text, &opts)
		},
	}

	c.bindRenderFlags(cmd, &opts.renderOpts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the print document to a file instead of opening it")
	cmd.Flags().DurationVar(&opts.delay, "delay", printer.DefaultDelay, "wait between loading the document and printing")

	return cmd
}

func (c *CLI) runPrint(ctx context.Context, alerts io.Writer, text string, opts *printCmdOpts) error {
	e, err := c.newEnv(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer e.Close()
	e.loadShapes(ctx, opts.shapes)

	autoPrint := printer.WithAutoPrint(opts.delay)
	p := printer.New(
		printer.BrowserOpener{},
		printer.NotifierFunc(func(msg string) { printAlert(alerts, msg) }),
		printer.WithDelay(opts.delay),
		printer.WithDocOptions(autoPrint),
		printer.WithLogger(c.Logger),
	)
	h := host.New(e.newRenderer(opts.seed), scatter.NewMemorySurface(opts.width),
		host.WithPrinter(p),
		host.WithLogger(c.Logger),
		host.WithContext(ctx),
	)
	defer h.Close()

	h.Load(ctx, text)
	comp := h.Composition()
	if comp == nil {
		printInfo(c.out(), "Nothing to print: input is blank")
		return nil
	}

	if opts.output != "" {
		doc := printer.Document(sink.RenderHTML(comp), autoPrint)
		if err := os.WriteFile(opts.output, doc, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
		}
		printSuccess(c.out(), "Wrote print document")
		printFile(c.out(), opts.output)
		return nil
	}

	if err := h.Print(ctx); err != nil {
		return err
	}
	printSuccess(c.out(), "Sent %d words to the browser for printing", len(comp.Words))
	return nil
}
