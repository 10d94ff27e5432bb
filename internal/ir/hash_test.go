package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleLines = []string{
	`MoveAbsJ [[0, -1.5708, 1.5708, 0, 1.5708, 0], [9E9, 9E9, 9E9, 9E9, 9E9, 9E9]], v200, DefaultZone, tool0;`,
	`MoveL [[500, 0, 600],[1, 0, 0, 0], cData, eAxis], v200, DefaultZone, DefaultTool \Wobj:=Default;`,
}

func TestProgramHashDeterminism(t *testing.T) {
	h1, err := ProgramHash("pick", "ABB", sampleLines)
	require.NoError(t, err)
	h2, err := ProgramHash("pick", "ABB", sampleLines)
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "ProgramHash must be deterministic")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestProgramHashChangesWithInput(t *testing.T) {
	base := MustProgramHash("pick", "ABB", sampleLines)

	assert.NotEqual(t, base, MustProgramHash("place", "ABB", sampleLines), "name")
	assert.NotEqual(t, base, MustProgramHash("pick", "KUKA", sampleLines), "manufacturer")
	assert.NotEqual(t, base, MustProgramHash("pick", "ABB", sampleLines[:1]), "lines")

	reordered := []string{sampleLines[1], sampleLines[0]}
	assert.NotEqual(t, base, MustProgramHash("pick", "ABB", reordered), "line order")
}

func TestTargetID(t *testing.T) {
	program := MustProgramHash("pick", "ABB", sampleLines)

	id1, err := TargetID(program, 1, sampleLines[0])
	require.NoError(t, err)
	id2, err := TargetID(program, 2, sampleLines[0])
	require.NoError(t, err)
	id3, err := TargetID(MustProgramHash("other", "ABB", sampleLines), 1, sampleLines[0])
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2, "seq is part of the identity")
	assert.NotEqual(t, id1, id3, "program is part of the identity")
}

func TestHashWithDomainNullSeparator(t *testing.T) {
	got := hashWithDomain("ab", []byte("c"))

	sum := sha256.Sum256([]byte("ab\x00c"))
	assert.Equal(t, hex.EncodeToString(sum[:]), got)

	// Moving the boundary must change the hash.
	assert.NotEqual(t, got, hashWithDomain("a", []byte("bc")))
}

func TestDomainSeparationPreventsCrossTypeCollision(t *testing.T) {
	data := []byte(`{"seq":1}`)
	assert.NotEqual(t, hashWithDomain(DomainProgram, data), hashWithDomain(DomainTarget, data))
}

func TestDomainConstants(t *testing.T) {
	assert.Equal(t, "axis/program/v1", DomainProgram)
	assert.Equal(t, "axis/target/v1", DomainTarget)
}
