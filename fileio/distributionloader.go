package fileio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lodestone-launcher/lodestone/core"
)

// LoadDistributionFile reads a distribution manifest from disk and gates its
// format version.
func LoadDistributionFile(path string) (core.Distribution, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return core.Distribution{}, err
	}
	return parseDistribution(raw)
}

func parseDistribution(raw []byte) (core.Distribution, error) {
	var dist core.Distribution
	if err := json.Unmarshal(raw, &dist); err != nil {
		return core.Distribution{}, fmt.Errorf("invalid distribution manifest: %w", err)
	}

	// Check format
	if len(dist.Format) == 0 {
		fmt.Println("Distribution manifest has no format field; assuming " + core.CurrentDistributionFormat)
		dist.Format = core.CurrentDistributionFormat
	}
	// Auto-migrate versions
	if dist.Format == "lodestone:1.0.0" {
		dist.Format = core.CurrentDistributionFormat
	}
	ver, err := core.ParseFormatVersion(dist.Format)
	if err != nil {
		return core.Distribution{}, err
	}
	if !core.DistributionFormatConstraintAccepted.Check(ver) {
		return core.Distribution{}, errors.New("the distribution is incompatible with this version of lodestone; please update")
	}
	if !core.DistributionFormatConstraintSuggestUpgrade.Check(ver) {
		fmt.Println("Distribution has a newer feature number than is supported by this version of lodestone. Update to the latest version of lodestone for new features and bugfixes!")
	}

	return dist, nil
}

// FetchDistribution downloads the distribution manifest, caching the raw
// bytes beside the instance. When the fetch fails and a cached copy exists,
// the cache is used so a player can still launch offline. The bool result is
// true when the returned manifest came from cache.
func FetchDistribution(url, cachePath string) (core.Distribution, bool, error) {
	resp, err := core.GetWithUA(url, "application/json")
	if err != nil {
		return loadCachedDistribution(cachePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return loadCachedDistribution(cachePath, fmt.Errorf("distribution fetch returned status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return loadCachedDistribution(cachePath, err)
	}

	dist, err := parseDistribution(raw)
	if err != nil {
		return core.Distribution{}, false, err
	}

	f, err := CreateFile(cachePath)
	if err == nil {
		_, err = f.Write(raw)
		f.Close()
	}
	if err != nil {
		// launching can continue without the cache; the next offline start
		// just loses its fallback
		fmt.Println("Warning: failed to cache distribution manifest: " + err.Error())
	}

	return dist, false, nil
}

func loadCachedDistribution(cachePath string, cause error) (core.Distribution, bool, error) {
	dist, err := LoadDistributionFile(cachePath)
	if err != nil {
		return core.Distribution{}, false, fmt.Errorf("failed to fetch distribution and no usable cache: %w", cause)
	}
	return dist, true, nil
}
