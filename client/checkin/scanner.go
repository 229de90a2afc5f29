package checkin

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"
	"time"
)

// State is the scanner lifecycle state.
type State int

const (
	// StatePermissionPending means camera access has not been decided yet.
	StatePermissionPending State = iota

	// StatePermissionDenied is terminal; only manual entry works from here.
	StatePermissionDenied

	// StateScanning means the loop is sampling frames.
	StateScanning

	// StateAwaitingConfirmation means a detection is waiting on the user.
	// Frame sampling is paused until the detection is resolved.
	StateAwaitingConfirmation

	// StateStopped means the loop has exited.
	StateStopped
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case StatePermissionPending:
		return "permission_pending"
	case StatePermissionDenied:
		return "permission_denied"
	case StateScanning:
		return "scanning"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source records how a barcode entered the workflow.
type Source string

const (
	// SourceScan means the barcode was decoded from a camera frame.
	SourceScan Source = "scan"

	// SourceManual means the barcode was typed in.
	SourceManual Source = "manual"
)

// Detection is a barcode awaiting quantity confirmation.
type Detection struct {
	Barcode string
	Source  Source
}

// FrameSource supplies camera frames. Open asks for camera permission and
// must be called before NextFrame; a permission refusal is returned from
// Open. NextFrame returns io.EOF when the source is exhausted.
type FrameSource interface {
	Open(ctx context.Context) error
	NextFrame(ctx context.Context) (image.Image, error)
	Close() error
}

// ErrPermissionDenied is returned by Run when the frame source refuses to open.
var ErrPermissionDenied = errors.New("camera permission denied")

// Scanner drives the scan loop. One detection at a time: after a barcode is
// detected the loop pauses until Resolve is called. A detection equal to the
// last confirmed barcode is suppressed so holding an item in front of the
// camera does not re-trigger; a different code re-arms it.
type Scanner struct {
	src      Detector
	frames   FrameSource
	interval time.Duration
	onPulse  func(barcode string)

	mu            sync.Mutex
	state         State
	lastConfirmed string
	closed        bool

	detections chan Detection
}

// ScannerOption customizes a Scanner.
type ScannerOption func(*Scanner)

// WithInterval sets the frame sampling interval (default 200ms).
func WithInterval(d time.Duration) ScannerOption {
	return func(s *Scanner) { s.interval = d }
}

// WithPulse registers a callback fired on every accepted detection, for
// transient UI feedback.
func WithPulse(fn func(barcode string)) ScannerOption {
	return func(s *Scanner) { s.onPulse = fn }
}

// NewScanner builds a Scanner. A nil detector returns ErrDetectorUnsupported;
// the caller should fall back to NewManualScanner instead.
func NewScanner(frames FrameSource, detector Detector, opts ...ScannerOption) (*Scanner, error) {
	if detector == nil {
		return nil, ErrDetectorUnsupported
	}
	return newScanner(frames, detector, opts), nil
}

// NewManualScanner builds a Scanner without a camera or detector. Run refuses
// to start; ManualEntry and Resolve drive the confirmation handoff alone.
func NewManualScanner(opts ...ScannerOption) *Scanner {
	return newScanner(nil, nil, opts)
}

func newScanner(frames FrameSource, detector Detector, opts []ScannerOption) *Scanner {
	s := &Scanner{
		src:        detector,
		frames:     frames,
		interval:   200 * time.Millisecond,
		state:      StatePermissionPending,
		detections: make(chan Detection, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Scanner) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Detections delivers barcodes awaiting confirmation. The channel is closed
// when the scan loop exits cleanly; a permission denial leaves it open so
// manual entry keeps working.
func (s *Scanner) Detections() <-chan Detection {
	return s.detections
}

// Run opens the frame source and samples frames until ctx is cancelled or
// the source is exhausted. Returns ErrPermissionDenied (wrapped) when the
// source refuses to open.
func (s *Scanner) Run(ctx context.Context) error {
	if s.frames == nil || s.src == nil {
		return ErrDetectorUnsupported
	}
	if err := s.frames.Open(ctx); err != nil {
		// Terminal for scanning, but manual entry must keep working, so the
		// detections channel stays open.
		s.setState(StatePermissionDenied)
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	defer s.frames.Close() //nolint:errcheck
	defer s.closeDetections()
	defer s.setState(StateStopped)
	s.setState(StateScanning)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if s.State() != StateScanning {
			continue
		}

		frame, err := s.frames.NextFrame(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		code, err := s.src.Detect(frame)
		if err != nil {
			continue
		}
		s.offer(Detection{Barcode: code, Source: SourceScan})
	}
}

// ManualEntry feeds a typed barcode through the same confirmation handoff as
// a scan. Works even when the scanner never ran (no camera). Rejects blank
// input.
func (s *Scanner) ManualEntry(barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return fmt.Errorf("barcode must not be empty")
	}
	s.offer(Detection{Barcode: barcode, Source: SourceManual})
	return nil
}

// Resolve finishes the pending detection. A confirmed barcode becomes the
// suppression reference; a cancelled one does not, so re-scanning it works
// immediately. Scanning resumes either way.
func (s *Scanner) Resolve(d Detection, confirmed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if confirmed {
		s.lastConfirmed = d.Barcode
	}
	if s.state == StateAwaitingConfirmation {
		s.state = StateScanning
	}
}

func (s *Scanner) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Scanner) closeDetections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.detections)
	}
}

// offer hands a detection to the consumer unless it repeats the last
// confirmed value, another detection is already pending, or the channel has
// been closed. The send happens under the mutex so closeDetections cannot
// race it.
func (s *Scanner) offer(d Detection) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if d.Source == SourceScan && d.Barcode == s.lastConfirmed {
		s.mu.Unlock()
		return
	}
	if s.state == StateAwaitingConfirmation {
		s.mu.Unlock()
		return
	}
	if s.state == StateScanning || s.state == StatePermissionPending {
		s.state = StateAwaitingConfirmation
	}
	select {
	case s.detections <- d:
	default:
	}
	pulse := s.onPulse
	s.mu.Unlock()

	if pulse != nil {
		pulse(d.Barcode)
	}
}
