// Package codes holds the pure helpers for company join codes and master
// provisioning codes: normalization, shape checks and candidate generation.
package codes

import (
	"math/rand"
	"strings"
)

const (
	// CompanyPrefix is the fixed prefix of every public join code.
	CompanyPrefix = "ECO-"

	// Alphabet excludes characters easily confused when read aloud or
	// handwritten: no 0/O and no 1/I.
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	companySuffixLen = 4
	maxMasterCodeLen = 32
)

// Normalize uppercases and trims a user-supplied code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsCompanyCode reports whether a normalized code has the ECO-XXXX shape,
// with the suffix drawn from the restricted alphabet.
func IsCompanyCode(code string) bool {
	if !strings.HasPrefix(code, CompanyPrefix) {
		return false
	}
	suffix := code[len(CompanyPrefix):]
	if len(suffix) != companySuffixLen {
		return false
	}
	for _, r := range suffix {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

// IsMasterCode performs the cheap shape check done before any database
// round trip: non-empty, bounded length, uppercase alphanumerics and dashes.
func IsMasterCode(code string) bool {
	if code == "" || len(code) > maxMasterCodeLen {
		return false
	}
	for _, r := range code {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

// Generator produces candidate company codes from an injectable random
// source, so tests can force collisions deterministically.
type Generator struct {
	rnd *rand.Rand
}

func NewGenerator(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Next returns one candidate code. Uniqueness is the caller's problem.
func (g *Generator) Next() string {
	var b strings.Builder
	b.WriteString(CompanyPrefix)
	for i := 0; i < companySuffixLen; i++ {
		b.WriteByte(Alphabet[g.rnd.Intn(len(Alphabet))])
	}
	return b.String()
}
