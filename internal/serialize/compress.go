package serialize

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// MaxDecodedSize bounds the output of Decompress. Persisted filter state
// is small; anything larger is treated as corrupt.
const MaxDecodedSize = 16 << 20

// Compressor handles ZStandard compression of persisted filter state.
// Create once and reuse.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a reusable ZStandard compressor at SpeedDefault.
// Caller must call Close() when done to release resources.
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	return &Compressor{encoder: encoder}, nil
}

// Compress compresses data. Safe for concurrent use.
func (c *Compressor) Compress(data []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Close releases compressor resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor handles ZStandard decompression.
// Create once and reuse.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a reusable ZStandard decompressor whose output
// is limited to MaxDecodedSize.
// Caller must call Close() when done to release resources.
func NewDecompressor() (*Decompressor, error) {
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(MaxDecodedSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Decompressor{decoder: decoder}, nil
}

// Decompress decompresses data. Safe for concurrent use.
func (d *Decompressor) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}

	decompressed, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return decompressed, nil
}

// Close releases decompressor resources.
func (d *Decompressor) Close() {
	if d.decoder != nil {
		d.decoder.Close()
	}
}

var (
	sharedOnce         sync.Once
	sharedCompressor   *Compressor
	sharedDecompressor *Decompressor
	sharedErr          error
)

func shared() (*Compressor, *Decompressor, error) {
	sharedOnce.Do(func() {
		sharedCompressor, sharedErr = NewCompressor()
		if sharedErr != nil {
			return
		}
		sharedDecompressor, sharedErr = NewDecompressor()
	})
	return sharedCompressor, sharedDecompressor, sharedErr
}

// Compress compresses data with a process-wide compressor.
func Compress(data []byte) ([]byte, error) {
	c, _, err := shared()
	if err != nil {
		return nil, err
	}
	return c.Compress(data), nil
}

// Decompress decompresses data with a process-wide decompressor.
func Decompress(data []byte) ([]byte, error) {
	_, d, err := shared()
	if err != nil {
		return nil, err
	}
	return d.Decompress(data)
}
