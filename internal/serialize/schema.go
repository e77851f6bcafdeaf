// Package serialize provides the binary encodings of persisted filter
// state: Arrow IPC for table schemas and ZStandard compression.
package serialize

import (
	"bytes"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// EncodeSchema writes schema as an Arrow IPC stream without record
// batches.
func EncodeSchema(schema *arrow.Schema, allocator memory.Allocator) ([]byte, error) {
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(schema), ipc.WithAllocator(allocator))
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to write IPC schema: %w", err)
	}

	return buf.Bytes(), nil
}

// ReadSchema reads the schema at the head of an Arrow IPC stream.
// Record batches that follow it are not read.
func ReadSchema(r io.Reader, allocator memory.Allocator) (*arrow.Schema, error) {
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}

	reader, err := ipc.NewReader(r, ipc.WithAllocator(allocator))
	if err != nil {
		return nil, fmt.Errorf("failed to read IPC schema: %w", err)
	}
	defer reader.Release()

	return reader.Schema(), nil
}
