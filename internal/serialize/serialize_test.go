package serialize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
)

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("quick filter state ", 64))

	compressed, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if len(compressed) >= len(data) {
		t.Errorf("expected compression, got %d >= %d bytes", len(compressed), len(data))
	}

	got, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch")
	}

	if _, err := Decompress([]byte("not zstd")); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestCompressEmpty(t *testing.T) {
	c, err := NewCompressor()
	if err != nil {
		t.Fatalf("NewCompressor failed: %v", err)
	}
	defer c.Close()

	if got := c.Compress(nil); len(got) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(got))
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	data, err := EncodeSchema(schema, nil)
	if err != nil {
		t.Fatalf("EncodeSchema failed: %v", err)
	}

	got, err := ReadSchema(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("ReadSchema failed: %v", err)
	}
	if !got.Equal(schema) {
		t.Errorf("expected %s, got %s", schema, got)
	}
}
