package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/typescatter/pkg/cache"
	"github.com/matzehuels/typescatter/pkg/config"
	"github.com/matzehuels/typescatter/pkg/errors"
)

// cacheCommand manages the on-disk cache of fetched decorative assets.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the decorative asset cache",
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// fileCache opens the configured file cache. Other backends keep nothing on
// local disk, so the subcommands have nothing to act on.
func (c *CLI) fileCache() (*cache.FileCache, error) {
	if c.cfg.Cache.Backend != config.CacheFile {
		return nil, errors.New(errors.ErrCodeUnsupported, "cache backend %q keeps no local files", c.cfg.Cache.Backend)
	}
	dir, err := c.cfg.CacheDir()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache directory")
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open cache %s", dir)
	}
	return fc.(*cache.FileCache), nil
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cached entry counts and sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			st, err := fc.Stats()
			if err != nil {
				return err
			}
			printKeyValue(c.out(), "directory", fc.Dir())
			printKeyValue(c.out(), "entries", strconv.Itoa(st.Entries))
			printKeyValue(c.out(), "expired", strconv.Itoa(st.Expired))
			printKeyValue(c.out(), "size", fmtBytes(st.Bytes))
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var expired bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			if expired {
				n, err := fc.Prune()
				if err != nil {
					return err
				}
				printSuccess(c.out(), "Removed %d expired entries", n)
				return nil
			}
			if err := fc.Clear(); err != nil {
				return err
			}
			printSuccess(c.out(), "Cleared asset cache")
			printDetail(c.out(), "Directory: %s", fc.Dir())
			return nil
		},
	}

	cmd.Flags().BoolVar(&expired, "expired", false, "only remove expired or damaged entries")
	return cmd
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cfg.CacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out(), dir)
			return nil
		},
	}
}

func fmtBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
