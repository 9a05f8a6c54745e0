package chain

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/trebuchet-org/katapult/internal/usecase"
)

// Codec converts string-form constructor arguments to their ABI encoding and
// back. The encoded hex carries no 0x prefix, matching what explorer APIs
// expect in the constructorArguements field.
type Codec struct{}

// NewCodec creates a constructor argument codec.
func NewCodec() *Codec {
	return &Codec{}
}

// EncodeConstructorArgs ABI-encodes values per the declared types.
func (c *Codec) EncodeConstructorArgs(types []string, values []string) (string, error) {
	if len(types) != len(values) {
		return "", fmt.Errorf("constructor expects %d arguments, got %d", len(types), len(values))
	}
	if len(types) == 0 {
		return "", nil
	}

	arguments, goValues, err := buildArguments(types, values)
	if err != nil {
		return "", err
	}

	encoded, err := arguments.Pack(goValues...)
	if err != nil {
		return "", fmt.Errorf("failed to ABI-encode constructor args: %w", err)
	}

	return hex.EncodeToString(encoded), nil
}

// DecodeConstructorArgs reverses EncodeConstructorArgs, returning the values
// in their string form.
func (c *Codec) DecodeConstructorArgs(types []string, encoded string) ([]string, error) {
	if len(types) == 0 {
		return []string{}, nil
	}

	data, err := hex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid constructor args hex: %w", err)
	}

	arguments := make(abi.Arguments, 0, len(types))
	for _, typeName := range types {
		abiType, err := abi.NewType(typeName, "", nil)
		if err != nil {
			return nil, fmt.Errorf("unsupported ABI type %q: %w", typeName, err)
		}
		arguments = append(arguments, abi.Argument{Type: abiType})
	}

	unpacked, err := arguments.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to ABI-decode constructor args: %w", err)
	}

	values := make([]string, 0, len(unpacked))
	for i, v := range unpacked {
		values = append(values, stringify(arguments[i].Type, v))
	}
	return values, nil
}

// buildArguments converts string values to the Go representations
// go-ethereum's packer expects for each ABI type.
func buildArguments(types []string, values []string) (abi.Arguments, []interface{}, error) {
	arguments := make(abi.Arguments, 0, len(types))
	goValues := make([]interface{}, 0, len(values))

	for i, typeName := range types {
		abiType, err := abi.NewType(typeName, "", nil)
		if err != nil {
			return nil, nil, fmt.Errorf("unsupported ABI type %q: %w", typeName, err)
		}
		value, err := convertValue(abiType, values[i])
		if err != nil {
			return nil, nil, fmt.Errorf("argument %d (%s): %w", i, typeName, err)
		}
		arguments = append(arguments, abi.Argument{Type: abiType})
		goValues = append(goValues, value)
	}

	return arguments, goValues, nil
}

func convertValue(t abi.Type, raw string) (interface{}, error) {
	switch t.T {
	case abi.UintTy:
		n, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, fmt.Errorf("invalid unsigned integer %q", raw)
		}
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %q for unsigned type", raw)
		}
		return sizedUint(t.Size, n)

	case abi.IntTy:
		n, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		return sizedInt(t.Size, n)

	case abi.BoolTy:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", raw)
		}
		return b, nil

	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %w", raw, err)
		}
		return data, nil

	case abi.FixedBytesTy:
		if t.Size == 32 {
			data, err := hexutil.Decode(raw)
			if err != nil || len(data) != 32 {
				return nil, fmt.Errorf("invalid bytes32 %q", raw)
			}
			var fixed [32]byte
			copy(fixed[:], data)
			return fixed, nil
		}
		return nil, fmt.Errorf("unsupported fixed bytes size %d", t.Size)

	default:
		return nil, fmt.Errorf("unsupported constructor argument type %s", t.String())
	}
}

// sizedUint returns the native width go-ethereum's packer expects; sizes
// outside 8/16/32/64 pack as *big.Int.
func sizedUint(size int, n *big.Int) (interface{}, error) {
	switch size {
	case 8:
		if !n.IsUint64() || n.Uint64() > 0xff {
			return nil, fmt.Errorf("value %s overflows uint8", n)
		}
		return uint8(n.Uint64()), nil
	case 16:
		if !n.IsUint64() || n.Uint64() > 0xffff {
			return nil, fmt.Errorf("value %s overflows uint16", n)
		}
		return uint16(n.Uint64()), nil
	case 32:
		if !n.IsUint64() || n.Uint64() > 0xffffffff {
			return nil, fmt.Errorf("value %s overflows uint32", n)
		}
		return uint32(n.Uint64()), nil
	case 64:
		if !n.IsUint64() {
			return nil, fmt.Errorf("value %s overflows uint64", n)
		}
		return n.Uint64(), nil
	default:
		return n, nil
	}
}

func sizedInt(size int, n *big.Int) (interface{}, error) {
	switch size {
	case 8:
		if !n.IsInt64() || n.Int64() < -128 || n.Int64() > 127 {
			return nil, fmt.Errorf("value %s overflows int8", n)
		}
		return int8(n.Int64()), nil
	case 16:
		if !n.IsInt64() || n.Int64() < -32768 || n.Int64() > 32767 {
			return nil, fmt.Errorf("value %s overflows int16", n)
		}
		return int16(n.Int64()), nil
	case 32:
		if !n.IsInt64() || n.Int64() < -2147483648 || n.Int64() > 2147483647 {
			return nil, fmt.Errorf("value %s overflows int32", n)
		}
		return int32(n.Int64()), nil
	case 64:
		if !n.IsInt64() {
			return nil, fmt.Errorf("value %s overflows int64", n)
		}
		return n.Int64(), nil
	default:
		return n, nil
	}
}

// stringify renders an unpacked ABI value in the same string form the CLI
// accepts, so encode/decode round-trips.
func stringify(t abi.Type, v interface{}) string {
	switch t.T {
	case abi.AddressTy:
		return v.(common.Address).Hex()
	case abi.BytesTy:
		return hexutil.Encode(v.([]byte))
	case abi.FixedBytesTy:
		if b, ok := v.([32]byte); ok {
			return hexutil.Encode(b[:])
		}
	}
	return fmt.Sprintf("%v", v)
}

var _ usecase.ConstructorEncoder = (*Codec)(nil)
