package anker

import (
	"encoding/binary"

	"github.com/mr-tron/base58"
)

func putDiscriminator(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:], v)
	*offset += 8
}
func getDiscriminator(src []byte, dst *[]byte, offset *int) {
	*dst = make([]byte, 8)
	copy(*dst, src[*offset:])
	*offset += 8
}

func putUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}
func getUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

// Borsh encodes Option<T> as a single tag byte, followed by the value when
// the tag is 1.
func putOptionalBool(dst []byte, v *bool, offset *int) {
	if v == nil {
		dst[*offset] = 0
		*offset += 1
		return
	}

	dst[*offset] = 1
	if *v {
		dst[*offset+1] = 1
	}
	*offset += 2
}

func putOptionalUint64(dst []byte, v *uint64, offset *int) {
	if v == nil {
		dst[*offset] = 0
		*offset += 1
		return
	}

	dst[*offset] = 1
	binary.LittleEndian.PutUint64(dst[*offset+1:], *v)
	*offset += 9
}

func optionalBoolSize(v *bool) int {
	if v == nil {
		return 1
	}
	return 2
}

func optionalUint64Size(v *uint64) int {
	if v == nil {
		return 1
	}
	return 9
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
