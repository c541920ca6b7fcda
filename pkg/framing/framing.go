package framing

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/snproto/mqttsn-go/pkg/wire"
)

// DefaultMaxFrameSize is the default maximum accepted frame size: the
// largest frame the extended length header can describe.
const DefaultMaxFrameSize = wire.MaxFrameLen

// Framing errors.
var (
	// ErrFrameTooLarge indicates a frame exceeding the configured maximum.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrFrameTruncated indicates the stream ended mid-frame.
	ErrFrameTruncated = errors.New("frame truncated")

	// ErrInvalidFrame indicates a length header that cannot describe a
	// well-formed frame.
	ErrInvalidFrame = errors.New("invalid frame")
)

// FrameReader reads length-delimited MQTT-SN frames from a byte stream.
type FrameReader struct {
	r            io.Reader
	maxFrameSize int
	hdr          [3]byte
}

// NewFrameReader creates a frame reader with the default maximum size.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r, maxFrameSize: DefaultMaxFrameSize}
}

// NewFrameReaderWithMaxSize creates a frame reader with a custom maximum
// frame size, for memory-constrained receivers.
func NewFrameReaderWithMaxSize(r io.Reader, maxSize int) *FrameReader {
	return &FrameReader{r: r, maxFrameSize: maxSize}
}

// ReadFrame reads exactly one frame, including its length header, so the
// result can be handed to wire.Decode unmodified. A clean end of stream
// between frames returns io.EOF; an end of stream inside a frame returns
// ErrFrameTruncated.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	if _, err := io.ReadFull(fr.r, fr.hdr[:1]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read length header: %w", err)
	}

	headerLen := 1
	total := int(fr.hdr[0])
	if fr.hdr[0] == 0x01 {
		// Extended header: 0x01 escape followed by a 16-bit length.
		if _, err := io.ReadFull(fr.r, fr.hdr[1:3]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFrameTruncated, err)
		}
		headerLen = 3
		total = int(fr.hdr[1])<<8 | int(fr.hdr[2])
	}

	if total < wire.MinFrameLen || total < headerLen+1 {
		return nil, fmt.Errorf("%w: declared length %d", ErrInvalidFrame, total)
	}
	if total > fr.maxFrameSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, total, fr.maxFrameSize)
	}

	frame := make([]byte, total)
	copy(frame, fr.hdr[:headerLen])
	if _, err := io.ReadFull(fr.r, frame[headerLen:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || err == io.EOF {
			return nil, ErrFrameTruncated
		}
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}

	// A forwarder envelope's length field covers only the envelope; the
	// encapsulated frame follows on the stream and belongs to this read.
	if wire.MsgType(frame[headerLen]) == wire.TypeForward {
		inner, err := fr.ReadFrame()
		if err != nil {
			if err == io.EOF {
				err = ErrFrameTruncated
			}
			return nil, fmt.Errorf("forward envelope: %w", err)
		}
		frame = append(frame, inner...)
	}
	return frame, nil
}

// ReadMessage reads one frame and decodes it.
func (fr *FrameReader) ReadMessage() (wire.Message, error) {
	frame, err := fr.ReadFrame()
	if err != nil {
		return nil, err
	}
	return wire.Decode(frame)
}

// SetMaxFrameSize updates the maximum accepted frame size.
func (fr *FrameReader) SetMaxFrameSize(size int) {
	fr.maxFrameSize = size
}

// FrameWriter writes MQTT-SN frames to a byte stream.
type FrameWriter struct {
	w  io.Writer
	mu sync.Mutex
}

// NewFrameWriter creates a frame writer.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// WriteFrame writes an already-encoded frame. The frame must carry a
// length header matching its size, as wire.Encode produces.
// Thread-safe: can be called from multiple goroutines.
func (fw *FrameWriter) WriteFrame(frame []byte) error {
	total, _, err := wire.ReadFrameLength(frame)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	if total > len(frame) {
		return fmt.Errorf("%w: declared length %d, have %d octets", ErrInvalidFrame, total, len(frame))
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if _, err := fw.w.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// WriteMessage encodes msg and writes the resulting frame.
func (fw *FrameWriter) WriteMessage(msg wire.Message) error {
	return fw.WriteFrame(wire.Encode(msg))
}

// Framer combines frame reading and writing on one stream.
type Framer struct {
	*FrameReader
	*FrameWriter
}

// NewFramer creates a framer for bidirectional communication.
func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{
		FrameReader: NewFrameReader(rw),
		FrameWriter: NewFrameWriter(rw),
	}
}
