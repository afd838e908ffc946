// Package sparsekey encodes sentence indices as fixed-width keys of the form
// "k_<zero-padded index>". All keys produced for one export share the same
// width, so a plain string sort of the keys matches their numeric order.
package sparsekey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the literal prefix of every sparse key.
const Prefix = "k_"

// Sentinel errors.
var (
	// ErrIndexOutOfRange is returned when an index is negative or exceeds the export maximum.
	ErrIndexOutOfRange = errors.New("sparse key index out of range")
	// ErrMalformedKey is returned when a key does not match "k_<digits>".
	ErrMalformedKey = errors.New("malformed sparse key")
)

// MaxIndex returns the largest valid index for an export of count entries.
// An empty export has no valid index; MaxIndex returns 0 so the width stays 1.
func MaxIndex(count int) int {
	if count <= 0 {
		return 0
	}

	return count - 1
}

// Width returns the number of decimal digits in maxIndex, never less than 1.
func Width(maxIndex int) int {
	if maxIndex <= 0 {
		return 1
	}

	return len(strconv.Itoa(maxIndex))
}

// Encode returns the key for index, padded to the width of maxIndex.
func Encode(index, maxIndex int) (string, error) {
	if index < 0 || index > maxIndex {
		return "", fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, maxIndex)
	}

	digits := strconv.Itoa(index)
	pad := Width(maxIndex) - len(digits)

	return Prefix + strings.Repeat("0", pad) + digits, nil
}

// Decode parses key and returns its index. The index must not exceed maxIndex.
func Decode(key string, maxIndex int) (int, error) {
	digits, ok := strings.CutPrefix(key, Prefix)
	if !ok || digits == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedKey, key)
		}
	}

	index, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrMalformedKey, key, err)
	}

	if index > maxIndex {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, maxIndex)
	}

	return index, nil
}
