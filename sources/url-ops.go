package sources

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/lodestone-launcher/lodestone/core"
)

// NewURLLocalMod records a mod hosted at a plain download URL. The file is
// fetched once to pin its hash; there is no update source to check against
// later, so the mod stays at this exact file until removed.
func NewURLLocalMod(name, rawURL string) (*core.LocalMod, error) {
	dl, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %v", err)
	}
	if dl.Scheme != "http" && dl.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s", dl.Scheme)
	}

	filename, err := url.PathUnescape(path.Base(dl.Path))
	if err != nil {
		return nil, err
	}
	if filename == "." || filename == "/" || filename == "" {
		return nil, errors.New("unable to determine a filename from the URL")
	}

	hash, err := fetchSha256(rawURL)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = strings.TrimSuffix(filename, path.Ext(filename))
	}

	download := core.ModDownload{
		URL:        rawURL,
		HashFormat: "sha256",
		Hash:       hash,
	}

	mod := core.NewLocalMod(
		core.SlugifyName(name),
		name,
		filename,
		core.UniversalSide,
		false,
		nil,
		download,
		nil,
	)

	return mod, nil
}
