package link

import "github.com/jaevor/go-nanoid"

// Alphabet is the 62-character set short identifiers are drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength yields 62^6 possible identifiers.
const DefaultLength = 6

// Generator produces random short identifier candidates.
type Generator func() string

// NewGenerator creates a generator drawing uniformly from Alphabet.
func NewGenerator(length int) (Generator, error) {
	if length <= 0 {
		length = DefaultLength
	}

	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, err
	}

	return Generator(gen), nil
}
