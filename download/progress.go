package download

import (
	"fmt"
	"io"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// Progress receives download lifecycle events. The CLI renders a bar; the
// launch path stays silent.
type Progress interface {
	Start(items int, totalBytes int64)
	// Reader may wrap an item's body to observe transferred bytes.
	Reader(item Item, r io.Reader) io.Reader
	ItemDone(item Item, skipped bool, err error)
	Finish()
}

// NopProgress discards all events.
type NopProgress struct{}

func (NopProgress) Start(int, int64) {}

func (NopProgress) Reader(_ Item, r io.Reader) io.Reader { return r }

func (NopProgress) ItemDone(Item, bool, error) {}

func (NopProgress) Finish() {}

// BarProgress renders one mpb progress bar counting completed items, the
// way syncs surface in the CLI. Failures print immediately above the bar so
// they stay visible after it completes.
type BarProgress struct {
	Label string

	container *mpb.Progress
	bar       *mpb.Bar
}

func NewBarProgress(label string) *BarProgress {
	return &BarProgress{Label: label}
}

func (b *BarProgress) Start(items int, totalBytes int64) {
	b.container = mpb.New(mpb.WithWidth(64))
	b.bar = b.container.AddBar(int64(items),
		mpb.PrependDecorators(
			decor.Name(b.Label+" "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(), "done"),
		),
	)
}

func (b *BarProgress) Reader(_ Item, r io.Reader) io.Reader {
	return r
}

func (b *BarProgress) ItemDone(item Item, skipped bool, err error) {
	if err != nil {
		fmt.Printf("failed: %s: %v\n", item.Name, err)
	}
	if b.bar != nil {
		b.bar.IncrBy(1)
	}
}

func (b *BarProgress) Finish() {
	if b.container != nil {
		b.container.Wait()
	}
}
