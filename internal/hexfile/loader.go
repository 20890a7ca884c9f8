package hexfile

import (
	"context"
	"time"

	"github.com/PulseRain/M10-high-speed-config-software/internal/codemem"
	"github.com/PulseRain/M10-high-speed-config-software/internal/ocdproto"
)

// settleDelay is how long the loader waits after resetting the CPU
// before streaming code-memory writes, giving the reset pulse time to
// take effect.
const settleDelay = 500 * time.Millisecond

// Loader drives an Intel HEX load: pause, reset, stream each coalesced
// record to code memory while reporting progress, then resume and reset
// again so the freshly loaded program starts from its entry point.
type Loader struct {
	Link *ocdproto.Link
	Code *codemem.IO
}

// Load writes records to code memory and returns the total number of
// bytes written. progress, if non-nil, is called with a percentage
// (0-100) after each record, using the address just past the final
// record as the denominator.
func (l *Loader) Load(ctx context.Context, records []Record, progress func(percent int)) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	if err := l.Link.Pause(ctx, true); err != nil {
		return 0, err
	}
	if err := l.Link.Reset(ctx); err != nil {
		return 0, err
	}
	time.Sleep(settleDelay)

	last := records[len(records)-1]
	total := int(last.Address) + len(last.Data)

	completed := 0
	for _, r := range records {
		if err := l.Code.Write(ctx, r.Address, r.Data); err != nil {
			return completed, err
		}
		completed += len(r.Data)
		if progress != nil && total > 0 {
			pct := (completed*100 + total - 1) / total // ceil(100*completed/total)
			if pct > 100 {
				pct = 100
			}
			progress(pct)
		}
	}

	if err := l.Link.Pause(ctx, false); err != nil {
		return completed, err
	}
	if err := l.Link.Reset(ctx); err != nil {
		return completed, err
	}
	return completed, nil
}
