package idgen

import (
	crand "crypto/rand"
	"math/rand"
)

const (
	consonants = "bcdfghjklmnpqrstvwxz"
	vowels     = "aeiouy"

	// Generated identifiers are minPairs to maxPairs consonant/vowel pairs,
	// so 6 to 10 characters.
	minPairs = 3
	maxPairs = 5

	fallbackLen      = 6
	fallbackAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// New returns a short pronounceable paste identifier: alternating
// consonant/vowel pairs drawn from crypto/rand, variable length within a
// fixed bound. If the entropy source fails it falls back to six uniform
// alphanumeric characters, so New always returns a usable identifier.
//
// New does not check for collisions against live pastes; that is the
// caller's concern.
func New() string {
	buf := make([]byte, 1+2*maxPairs)
	if _, err := crand.Read(buf); err != nil {
		return fallbackID()
	}

	pairs := minPairs + int(buf[0])%(maxPairs-minPairs+1)
	id := make([]byte, 0, 2*pairs)
	for i := 0; i < pairs; i++ {
		id = append(id,
			consonants[int(buf[1+2*i])%len(consonants)],
			vowels[int(buf[2+2*i])%len(vowels)],
		)
	}
	return string(id)
}

// fallbackID builds an identifier without touching the crypto entropy
// source. math/rand is fine here: the identifier space only needs to be
// large, not unpredictable, and this path never fails.
func fallbackID() string {
	id := make([]byte, fallbackLen)
	for i := range id {
		id[i] = fallbackAlphabet[rand.Intn(len(fallbackAlphabet))]
	}
	return string(id)
}
