package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	MinLength     = 6
	MaxLength     = 50
	DefaultLength = 16

	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+~`|}{[]:;?><,./-="
)

// Options selects the character classes of a generated password. Lowercase
// letters are always included.
type Options struct {
	Length    int
	Uppercase bool
	Numbers   bool
	Symbols   bool
}

// DefaultOptions enables every character class at the default length.
func DefaultOptions() Options {
	return Options{Length: DefaultLength, Uppercase: true, Numbers: true, Symbols: true}
}

// ClampLength forces n into [MinLength, MaxLength]; zero yields DefaultLength.
func ClampLength(n int) int {
	switch {
	case n == 0:
		return DefaultLength
	case n < MinLength:
		return MinLength
	case n > MaxLength:
		return MaxLength
	default:
		return n
	}
}

// Alphabet returns the characters a password with opts may contain.
func (o Options) Alphabet() string {
	var b strings.Builder
	b.WriteString(lowercaseChars)
	if o.Uppercase {
		b.WriteString(uppercaseChars)
	}
	if o.Numbers {
		b.WriteString(numberChars)
	}
	if o.Symbols {
		b.WriteString(symbolChars)
	}
	return b.String()
}

// Generate draws a random password from the alphabet of opts.
func Generate(opts Options) (string, error) {
	chars := opts.Alphabet()
	length := ClampLength(opts.Length)
	size := big.NewInt(int64(len(chars)))

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		out[i] = chars[n.Int64()]
	}
	return string(out), nil
}
