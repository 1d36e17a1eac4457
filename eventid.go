package structlog

import (
	"fmt"
	"sync/atomic"
	"time"
)

// eventSeq is the process-wide record counter. It is incremented before
// use, so the first event identity carries sequence 1.
var eventSeq uint64

// nextEventID returns a process-unique event identity of the form
// evt_<epoch_millis>_<sequence>. Safe for concurrent use.
func nextEventID(now time.Time) string {
	seq := atomic.AddUint64(&eventSeq, 1)
	return fmt.Sprintf("evt_%d_%d", now.UnixMilli(), seq)
}
