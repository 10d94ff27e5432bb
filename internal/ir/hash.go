package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainProgram = "axis/program/v1"
	DomainTarget  = "axis/target/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProgramHash identifies a generated program by its content: the job name,
// the dialect and the instruction lines in order. Two builds of the same job
// hash equal regardless of when or where they ran.
func ProgramHash(name, manufacturer string, lines []string) (string, error) {
	obj := IRObject{
		"name":         IRString(name),
		"manufacturer": IRString(manufacturer),
		"lines":        Strings(lines),
		"ir_version":   IRString(IRVersion),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ProgramHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainProgram, canonical), nil
}

// TargetID identifies one instruction within a program.
func TargetID(programHash string, seq int64, code string) (string, error) {
	obj := IRObject{
		"program_hash": IRString(programHash),
		"seq":          IRInt(seq),
		"code":         IRString(code),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("TargetID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTarget, canonical), nil
}

// MustProgramHash is like ProgramHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustProgramHash(name, manufacturer string, lines []string) string {
	h, err := ProgramHash(name, manufacturer, lines)
	if err != nil {
		panic(err)
	}
	return h
}
