package shapes

import (
	"bytes"
	"context"
	_ "embed"
	"os"

	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/httputil"
)

// DefaultSource is the relative path the asset is looked up at.
const DefaultSource = "Shapes01.svg"

// BuiltinSource selects the asset compiled into the binary.
const BuiltinSource = "builtin"

//go:embed assets/Shapes01.svg
var builtinSVG []byte

// Loader reads the decorative asset from a local path, an http(s) URL or
// the embedded copy.
type Loader struct {
	Fetcher *httputil.Fetcher
}

// NewLoader returns a loader using f for remote sources. A nil fetcher gets
// an uncached default.
func NewLoader(f *httputil.Fetcher) *Loader {
	if f == nil {
		f = httputil.NewFetcher(nil, 0)
	}
	return &Loader{Fetcher: f}
}

// Load reads and parses source.
func (l *Loader) Load(ctx context.Context, source string) (*Library, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}
	lib, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetUnavailable, err, "invalid decorative asset %s", source)
	}
	return lib, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	switch {
	case source == BuiltinSource:
		return builtinSVG, nil
	case errors.IsURL(source):
		if err := errors.ValidateURL(source); err != nil {
			return nil, err
		}
		data, err := l.Fetcher.Get(ctx, source)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAssetUnavailable, err, "fetch %s", source)
		}
		return data, nil
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAssetUnavailable, err, "read %s", source)
		}
		return data, nil
	}
}
