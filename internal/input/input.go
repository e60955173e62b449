// Package input implements the immutable byte region the scanner reads
// from: plain in-memory buffers, memory-mapped files, and the
// append-only buffer fed by a streaming source. It also maintains the
// lazy offset -> (line, column) table diagnostics and tokens rely on.
package input

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	tok "github.com/atomkit/yamlkit/internal/token"
	"golang.org/x/sys/unix"
)

// Kind identifies how an Input's bytes were obtained, which determines
// how Close releases them.
type Kind int

const (
	// KindBorrowed wraps a caller-owned slice; Close is a no-op.
	KindBorrowed Kind = iota
	// KindOwned holds a private copy allocated by this package.
	KindOwned
	// KindMapped holds a memory-mapped file region.
	KindMapped
	// KindStreamed holds an append-only buffer fed in chunks.
	KindStreamed
)

// Input is a shared, reference-counted byte region with line/column
// metadata. Any atom (scanner token, event, node) that borrows a range
// of Bytes keeps the Input alive by holding a Retain until it is done;
// Release drops that hold. A memory-mapped Input is only unmapped once
// the reference count reaches zero.
type Input struct {
	kind Kind
	name string

	mu   sync.RWMutex
	data []byte // for streamed inputs this grows; never shrinks or reallocates a previously returned slice in place

	mapped []byte // raw mmap region, for Munmap on release; nil unless kind == KindMapped

	refs int32

	lineMu     sync.Mutex
	lineStarts []int // byte offsets of line 0, line 1, ... built lazily as PositionAt is asked about increasing offsets
	scanned    int   // data[:scanned] has already been folded into lineStarts
}

// FromBytes wraps data without copying it. The caller must not mutate
// data for as long as any Input atom might still reference it.
func FromBytes(name string, data []byte) *Input {
	return &Input{kind: KindBorrowed, name: name, data: data, refs: 1, lineStarts: []int{0}}
}

// FromBytesCopy copies data into a private buffer.
func FromBytesCopy(name string, data []byte) *Input {
	owned := append([]byte(nil), data...)
	return &Input{kind: KindOwned, name: name, data: owned, refs: 1, lineStarts: []int{0}}
}

// NewStream returns an Input whose bytes are supplied incrementally via
// Append, for sources that do not offer the whole document up front.
func NewStream(name string) *Input {
	return &Input{kind: KindStreamed, name: name, refs: 1, lineStarts: []int{0}}
}

// Append grows a streamed Input. It is an error to call Append on any
// other kind.
func (in *Input) Append(chunk []byte) error {
	if in.kind != KindStreamed {
		return fmt.Errorf("input: Append called on a non-streamed input %q", in.name)
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	in.data = append(in.data, chunk...)
	return nil
}

// disableMmap is a process-wide override used by tests and by
// ParseConfig.DisableMmap to force the buffered-read fallback §4.1
// allows.
var disableMmap int32

// SetMmapDisabled toggles the global mmap fallback switch described by
// ParseConfig.DisableMmap.
func SetMmapDisabled(disabled bool) {
	if disabled {
		atomic.StoreInt32(&disableMmap, 1)
	} else {
		atomic.StoreInt32(&disableMmap, 0)
	}
}

// Open reads path, memory-mapping it when possible. On any mmap failure,
// or when mmap has been disabled, it falls back to a buffered read of
// the whole file.
func Open(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %q: %w", path, err)
	}
	defer f.Close()

	if atomic.LoadInt32(&disableMmap) == 0 {
		if in, ok := tryMmap(path, f); ok {
			return in, nil
		}
	}

	data, err := readAll(f)
	if err != nil {
		return nil, fmt.Errorf("input: read %q: %w", path, err)
	}
	return &Input{kind: KindOwned, name: path, data: data, refs: 1, lineStarts: []int{0}}, nil
}

func tryMmap(path string, f *os.File) (*Input, bool) {
	st, err := f.Stat()
	if err != nil || st.Size() == 0 {
		return nil, false
	}
	region, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, false
	}
	return &Input{kind: KindMapped, name: path, data: region, mapped: region, refs: 1, lineStarts: []int{0}}, true
}

func readAll(f *os.File) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(f)
	return buf.Bytes(), err
}

// Retain increments the reference count. Every Retain must be matched by
// a Release.
func (in *Input) Retain() {
	atomic.AddInt32(&in.refs, 1)
}

// Release decrements the reference count, unmapping a memory-mapped
// region once the last reference is gone.
func (in *Input) Release() error {
	if atomic.AddInt32(&in.refs, -1) > 0 {
		return nil
	}
	if in.kind == KindMapped && in.mapped != nil {
		region := in.mapped
		in.mapped = nil
		return unix.Munmap(region)
	}
	return nil
}

// Name returns the Input's origin, for diagnostics (a path, or a
// synthetic name for in-memory/streamed sources).
func (in *Input) Name() string { return in.name }

// Bytes returns the full committed buffer. For a streamed Input this is
// a snapshot; positions already handed out remain valid even as more is
// appended, per the §4.1 contract.
func (in *Input) Bytes() []byte {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.data
}

// Range returns data[start:end]. It panics on an out-of-range request,
// matching the "caller already validated this offset against a token or
// atom" contract the scanner relies on.
func (in *Input) Range(start, end int) []byte {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.data[start:end]
}

// Len returns the number of committed bytes.
func (in *Input) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.data)
}

// PositionAt maps a byte offset to a 0-based (line, column), extending
// the lazily built line-start table as needed. Amortised O(1) per call
// for offsets visited in non-decreasing order, which is how the scanner
// and diagnostics consume it.
func (in *Input) PositionAt(offset int) tok.Position {
	in.lineMu.Lock()
	defer in.lineMu.Unlock()

	data := in.Bytes()
	if offset > len(data) {
		offset = len(data)
	}
	for in.scanned < offset {
		if data[in.scanned] == '\n' {
			in.lineStarts = append(in.lineStarts, in.scanned+1)
		}
		in.scanned++
	}

	line := len(in.lineStarts) - 1
	for line > 0 && in.lineStarts[line] > offset {
		line--
	}
	return tok.Position{
		Index:  offset,
		Line:   line,
		Column: offset - in.lineStarts[line],
	}
}
