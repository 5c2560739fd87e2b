package idgen_test

import (
	"regexp"
	"testing"

	"github.com/blizon/ops-dashboard/internal/idgen"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var suffixPattern = regexp.MustCompile(`^[0-9a-z]{9}$`)

func TestGenerate_PrefixAndSuffix(t *testing.T) {
	g := idgen.New()

	for _, prefix := range []string{"client", "project", "team", "intern", "contract", "milestone"} {
		id := g.Generate(prefix)
		assert.True(t, len(id) == len(prefix)+idgen.SuffixLength, "unexpected length for %s", id)
		assert.Equal(t, prefix, id[:len(prefix)])
		assert.Regexp(t, suffixPattern, id[len(prefix):])
	}
}

func TestGenerate_NoCollisionsWithinProcess(t *testing.T) {
	g := idgen.New()
	seen := make(map[string]struct{}, 10000)

	for i := 0; i < 10000; i++ {
		id := g.Generate("client")
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerate_ZeroSourceIsPadded(t *testing.T) {
	g := idgen.NewWithSource(func() uuid.UUID { return uuid.Nil })

	assert.Equal(t, "milestone000000000", g.Generate("milestone"))
}
