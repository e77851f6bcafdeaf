// Package msgpack provides the MessagePack encoding used for persisted
// filter state.
package msgpack

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Decode deserializes MessagePack data into a Go value.
// The v parameter should be a pointer to the target structure.
//
// Values decoded into interface{} fields are loosened: every signed
// integer becomes int64, every unsigned integer uint64 and every float
// float64, whatever width the encoder chose.
func Decode(data []byte, v interface{}) error {
	if len(data) == 0 {
		return errors.New("empty MessagePack data")
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}

	return nil
}

// Encode serializes a Go value into MessagePack format.
// Integers are written in the smallest representation that holds them.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	return buf.Bytes(), nil
}
