package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/lodestone-launcher/lodestone/core"
)

// DefaultWorkers bounds the fetch pool. Asset syncs touch thousands of tiny
// files; more parallelism than this mostly burns connections.
const DefaultWorkers = 8

// Downloader fetches a plan with a bounded worker pool, validating every
// item that declares a hash. Files already on disk with a matching hash are
// skipped.
type Downloader struct {
	Workers  int
	Client   *http.Client
	Logger   hclog.Logger
	Progress Progress

	// Ledger, when set, records every validated artifact.
	Ledger *core.Ledger

	mu sync.Mutex
}

// ItemError pairs a failed item with its cause.
type ItemError struct {
	Item Item
	Err  error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Item.Name, e.Err)
}

// Report summarizes one run.
type Report struct {
	Fetched int
	Skipped int
	Failed  []ItemError
}

// Err collapses the failures into a single error, nil when everything
// landed.
func (r Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d downloads failed; first failure: %w",
		len(r.Failed), r.Fetched+r.Skipped+len(r.Failed), r.Failed[0].Err)
}

func (d *Downloader) logger() hclog.Logger {
	if d.Logger == nil {
		return hclog.NewNullLogger()
	}
	return d.Logger
}

func (d *Downloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return &http.Client{Timeout: 10 * time.Minute}
}

func (d *Downloader) progress() Progress {
	if d.Progress != nil {
		return d.Progress
	}
	return NopProgress{}
}

// Run fetches every item. Failures are collected per item rather than
// aborting the pool; cancellation stops workers between items.
func (d *Downloader) Run(ctx context.Context, items []Item) Report {
	workers := d.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	report := Report{}
	if len(items) == 0 {
		return report
	}

	var total int64
	for _, item := range items {
		total += item.Size
	}
	progress := d.progress()
	progress.Start(len(items), total)
	defer progress.Finish()

	queue := make(chan Item)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range queue {
				skipped, err := d.fetchOne(ctx, item, progress)

				d.mu.Lock()
				switch {
				case err != nil:
					report.Failed = append(report.Failed, ItemError{Item: item, Err: err})
				case skipped:
					report.Skipped++
				default:
					report.Fetched++
				}
				d.mu.Unlock()

				progress.ItemDone(item, skipped, err)
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case queue <- item:
		}
	}
	close(queue)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		d.mu.Lock()
		report.Failed = append(report.Failed, ItemError{Err: err})
		d.mu.Unlock()
	}
	return report
}

// fetchOne downloads a single item unless the destination already validates.
func (d *Downloader) fetchOne(ctx context.Context, item Item, progress Progress) (bool, error) {
	if item.Dest == "" {
		return false, fmt.Errorf("no destination resolved")
	}
	if item.URL == "" {
		return false, fmt.Errorf("no url resolved")
	}

	if d.existingValid(item) {
		d.logger().Debug("already valid, skipping", "name", item.Name, "dest", item.Dest)
		return true, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", core.UserAgent)

	resp, err := d.client().Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return false, fmt.Errorf("status %d from %s", resp.StatusCode, item.URL)
	}

	if err := os.MkdirAll(filepath.Dir(item.Dest), os.ModePerm); err != nil {
		return false, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(item.Dest), ".fetch-*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	body := progress.Reader(item, resp.Body)

	size, hasher, err := d.copyHashed(tmp, body, item)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return false, err
	}

	var hash string
	if hasher != nil {
		hash = hasher.String()
		if !core.MatchesHash(hasher, item.Hash) {
			return false, fmt.Errorf("hash mismatch: manifest declares %s %s, downloaded %s", item.HashFormat, item.Hash, hash)
		}
	}

	if err := os.Rename(tmp.Name(), item.Dest); err != nil {
		return false, err
	}

	d.record(item, hash, size)
	d.logger().Debug("fetched", "name", item.Name, "bytes", size)
	return false, nil
}

func (d *Downloader) copyHashed(dst io.Writer, src io.Reader, item Item) (int64, core.HashStringer, error) {
	if item.Hash == "" {
		n, err := io.Copy(dst, src)
		return n, nil, err
	}

	hasher, err := core.GetHashImpl(item.HashFormat)
	if err != nil {
		return 0, nil, fmt.Errorf("unusable hash format %q: %w", item.HashFormat, err)
	}
	n, err := io.Copy(io.MultiWriter(dst, hasher), src)
	if err != nil {
		return n, nil, err
	}
	return n, hasher, nil
}

// existingValid rehashes a present destination file against the declared
// hash. Undeclared hashes only skip when the size matches.
func (d *Downloader) existingValid(item Item) bool {
	info, err := os.Stat(item.Dest)
	if err != nil {
		return false
	}

	if item.Hash == "" {
		return item.Size == 0 || info.Size() == item.Size
	}

	hasher, err := fileHasher(item.Dest, item.HashFormat)
	if err != nil {
		return false
	}
	if !core.MatchesHash(hasher, item.Hash) {
		return false
	}

	d.record(item, hasher.String(), info.Size())
	return true
}

func (d *Downloader) record(item Item, hash string, size int64) {
	if d.Ledger == nil || hash == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.Ledger.Record(item.Dest, item.HashFormat, hash, size); err != nil {
		d.logger().Warn("failed to record artifact in ledger", "dest", item.Dest, "error", err)
	}
}

// HashFile computes a file's hash with an algorithm from the registry.
func HashFile(path, format string) (string, error) {
	hasher, err := fileHasher(path, format)
	if err != nil {
		return "", err
	}
	return hasher.String(), nil
}

func fileHasher(path, format string) (core.HashStringer, error) {
	hasher, err := core.GetHashImpl(format)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := io.Copy(hasher, f); err != nil {
		return nil, err
	}
	return hasher, nil
}
