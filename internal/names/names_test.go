package names

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/survey-seed/internal/model"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestNew_PicksBuiltinForSpanishLocales(t *testing.T) {
	gen, src, loc := New([]string{"es_CL", "es_ES", "es_MX", "es"}, newRand(1))
	assert.Equal(t, SourceBuiltin, src)
	assert.Empty(t, loc)
	assert.IsType(t, &Builtin{}, gen)
}

func TestNew_PicksCorpusInPreferenceOrder(t *testing.T) {
	gen, src, loc := New([]string{"es_CL", "en-US", "en"}, newRand(1))
	assert.Equal(t, SourceCorpus, src)
	assert.Equal(t, "en-US", loc)
	assert.IsType(t, &Corpus{}, gen)
}

func TestNew_EmptyPreferences(t *testing.T) {
	_, src, _ := New(nil, newRand(1))
	assert.Equal(t, SourceBuiltin, src)
}

func TestBuiltin_ConditionedOnSex(t *testing.T) {
	gen := NewBuiltin(newRand(7))
	for i := 0; i < 200; i++ {
		male := strings.SplitN(gen.Name(model.SexMale), " ", 2)
		require.Len(t, male, 2)
		assert.True(t, slices.Contains(maleNames, male[0]), "unexpected male name %q", male[0])
		assert.True(t, slices.Contains(surnames, male[1]), "unexpected surname %q", male[1])

		female := strings.SplitN(gen.Name(model.SexFemale), " ", 2)
		require.Len(t, female, 2)
		assert.True(t, slices.Contains(femaleNames, female[0]), "unexpected female name %q", female[0])
	}
}

func TestBuiltin_Deterministic(t *testing.T) {
	a, b := NewBuiltin(newRand(321)), NewBuiltin(newRand(321))
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Name(model.SexFemale), b.Name(model.SexFemale))
	}
}

func TestCorpus_ProducesNames(t *testing.T) {
	a, b := NewCorpus(newRand(321)), NewCorpus(newRand(321))
	for i := 0; i < 20; i++ {
		name := a.Name(model.SexMale)
		assert.Contains(t, name, " ")
		assert.Equal(t, name, b.Name(model.SexMale))
	}
}
