package pdfdoc

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
)

// DecodeInfo turns every metadata value into a string. Strings are kept with
// invalid UTF-8 dropped. Raw byte values are decoded as UTF-8, or as UTF-16
// when they start with a byte order mark. Other values are formatted.
func DecodeInfo(info map[string]any) (map[string]string, error) {
	decoded := make(map[string]string, len(info))

	keys := make([]string, 0, len(info))
	for key := range info {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		value, err := DecodeValue(info[key])
		if err != nil {
			return nil, &DecodeError{Key: key, Err: err}
		}

		decoded[key] = value
	}

	return decoded, nil
}

// DecodeValue converts one metadata value to text.
func DecodeValue(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return strings.ToValidUTF8(v, ""), nil
	case []byte:
		return decodeBytes(v)
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func decodeBytes(b []byte) (string, error) {
	switch {
	case bytes.HasPrefix(b, bomUTF16BE), bytes.HasPrefix(b, bomUTF16LE):
		if len(b)%2 != 0 {
			return "", fmt.Errorf("odd length UTF-16 string (%d bytes)", len(b))
		}

		out, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}

		return strings.ToValidUTF8(string(out), ""), nil
	case bytes.HasPrefix(b, bomUTF8):
		b = b[len(bomUTF8):]
	}

	return strings.ToValidUTF8(string(b), ""), nil
}
