package callspec

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/offload/types"
)

// elemSize is the stride of typ in a buffer. Void buffers are raw bytes.
func elemSize(typ types.TypeID) int {
	if typ == types.Void {
		return 1
	}
	size, err := types.Size(typ)
	if err != nil {
		return 1
	}
	return size
}

func encodeValues(typ types.TypeID, values []string, buf []byte) error {
	stride := elemSize(typ)
	if n := len(buf) / stride; len(values) > n {
		return fmt.Errorf("%d values for %d elements", len(values), n)
	}
	for i, v := range values {
		if err := encodeValue(typ, v, buf[i*stride:(i+1)*stride]); err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
	}
	return nil
}

func encodeValue(typ types.TypeID, v string, dst []byte) error {
	le := binary.LittleEndian
	switch typ {
	case types.Char:
		if r, size := utf8.DecodeRuneInString(v); size == len(v) && r < utf8.RuneSelf && (r < '0' || r > '9') {
			dst[0] = byte(r)
			return nil
		}
		n, err := strconv.ParseUint(v, 0, 8)
		if err != nil {
			return err
		}
		dst[0] = byte(n)
	case types.I8:
		n, err := strconv.ParseInt(v, 0, 8)
		if err != nil {
			return err
		}
		dst[0] = byte(int8(n))
	case types.U8, types.Void:
		n, err := strconv.ParseUint(v, 0, 8)
		if err != nil {
			return err
		}
		dst[0] = byte(n)
	case types.I16:
		n, err := strconv.ParseInt(v, 0, 16)
		if err != nil {
			return err
		}
		le.PutUint16(dst, uint16(int16(n)))
	case types.U16:
		n, err := strconv.ParseUint(v, 0, 16)
		if err != nil {
			return err
		}
		le.PutUint16(dst, uint16(n))
	case types.I32:
		n, err := strconv.ParseInt(v, 0, 32)
		if err != nil {
			return err
		}
		le.PutUint32(dst, uint32(int32(n)))
	case types.U32:
		n, err := strconv.ParseUint(v, 0, 32)
		if err != nil {
			return err
		}
		le.PutUint32(dst, uint32(n))
	case types.I64:
		n, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return err
		}
		le.PutUint64(dst, uint64(n))
	case types.U64:
		n, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return err
		}
		le.PutUint64(dst, n)
	case types.F32:
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return err
		}
		le.PutUint32(dst, math.Float32bits(float32(f)))
	case types.F64:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		le.PutUint64(dst, math.Float64bits(f))
	case types.C32:
		c, err := strconv.ParseComplex(v, 64)
		if err != nil {
			return err
		}
		le.PutUint32(dst, math.Float32bits(float32(real(c))))
		le.PutUint32(dst[4:], math.Float32bits(float32(imag(c))))
	case types.C64:
		c, err := strconv.ParseComplex(v, 128)
		if err != nil {
			return err
		}
		le.PutUint64(dst, math.Float64bits(real(c)))
		le.PutUint64(dst[8:], math.Float64bits(imag(c)))
	default:
		return fmt.Errorf("cannot encode %s", typ)
	}
	return nil
}

func decodeValues(typ types.TypeID, buf []byte) ([]string, error) {
	stride := elemSize(typ)
	out := make([]string, 0, len(buf)/stride)
	for off := 0; off+stride <= len(buf); off += stride {
		s, err := decodeValue(typ, buf[off:off+stride])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeValue(typ types.TypeID, src []byte) (string, error) {
	le := binary.LittleEndian
	switch typ {
	case types.Char:
		if src[0] >= 0x20 && src[0] < 0x7f && (src[0] < '0' || src[0] > '9') {
			return string(rune(src[0])), nil
		}
		return strconv.Itoa(int(src[0])), nil
	case types.I8:
		return strconv.Itoa(int(int8(src[0]))), nil
	case types.U8:
		return strconv.Itoa(int(src[0])), nil
	case types.Void:
		return fmt.Sprintf("0x%02x", src[0]), nil
	case types.I16:
		return strconv.Itoa(int(int16(le.Uint16(src)))), nil
	case types.U16:
		return strconv.Itoa(int(le.Uint16(src))), nil
	case types.I32:
		return strconv.Itoa(int(int32(le.Uint32(src)))), nil
	case types.U32:
		return strconv.FormatUint(uint64(le.Uint32(src)), 10), nil
	case types.I64:
		return strconv.FormatInt(int64(le.Uint64(src)), 10), nil
	case types.U64:
		return strconv.FormatUint(le.Uint64(src), 10), nil
	case types.F32:
		return strconv.FormatFloat(float64(math.Float32frombits(le.Uint32(src))), 'g', -1, 32), nil
	case types.F64:
		return strconv.FormatFloat(math.Float64frombits(le.Uint64(src)), 'g', -1, 64), nil
	case types.C32:
		c := complex(math.Float32frombits(le.Uint32(src)), math.Float32frombits(le.Uint32(src[4:])))
		return strconv.FormatComplex(complex128(c), 'g', -1, 64), nil
	case types.C64:
		c := complex(math.Float64frombits(le.Uint64(src)), math.Float64frombits(le.Uint64(src[8:])))
		return strconv.FormatComplex(c, 'g', -1, 128), nil
	}
	return "", fmt.Errorf("cannot decode %s", typ)
}
