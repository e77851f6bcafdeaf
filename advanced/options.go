package advanced

import (
	"fmt"
	"math/big"

	"github.com/hugr-lab/tablefilter/internal/msgpack"
	"github.com/hugr-lab/tablefilter/internal/serialize"
)

// storedOptions is the persisted form of Options. It has no methods, so
// MessagePack encodes it field by field.
type storedOptions Options

// MarshalBinary encodes the options as zstd-compressed MessagePack for
// persistence. Arbitrary precision integers among the selected values are
// stored as decimal strings; long columns read them back unchanged.
func (o Options) MarshalBinary() ([]byte, error) {
	stored := storedOptions(o)
	if len(o.SelectedValues) > 0 {
		stored.SelectedValues = make([]any, len(o.SelectedValues))
		for i, v := range o.SelectedValues {
			if n, ok := v.(*big.Int); ok && n != nil {
				v = n.String()
			}
			stored.SelectedValues[i] = v
		}
	}

	data, err := msgpack.Encode(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode advanced filter options: %w", err)
	}
	return serialize.Compress(data)
}

// UnmarshalOptions decodes options written by Options.MarshalBinary.
// Integers among the selected values decode as int64 or uint64.
func UnmarshalOptions(data []byte) (Options, error) {
	raw, err := serialize.Decompress(data)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read advanced filter options: %w", err)
	}

	var stored storedOptions
	if err := msgpack.Decode(raw, &stored); err != nil {
		return Options{}, fmt.Errorf("failed to read advanced filter options: %w", err)
	}
	return Options(stored), nil
}
