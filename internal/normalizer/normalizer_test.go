package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gonzaloriv/travelsearch/internal/trace"
)

func newTestNormalizer() *Normalizer {
	return New(DefaultVocabulary(), trace.NewNopRecorder())
}

func TestNormalizeAirline(t *testing.T) {
	n := newTestNormalizer()

	t.Run("exact code match is case-insensitive", func(t *testing.T) {
		a, ok := n.NormalizeAirline("ar")
		assert.True(t, ok)
		assert.Equal(t, "AR", a.Code)
		assert.Equal(t, "Aerolíneas Argentinas", a.Name)
	})

	t.Run("exact name match", func(t *testing.T) {
		a, ok := n.NormalizeAirline("Iberia")
		assert.True(t, ok)
		assert.Equal(t, "IB", a.Code)
	})

	t.Run("alias contained in input", func(t *testing.T) {
		a, ok := n.NormalizeAirline("con aerolineas argentinas por favor")
		assert.True(t, ok)
		assert.Equal(t, "AR", a.Code)
	})

	t.Run("input contained in alias", func(t *testing.T) {
		a, ok := n.NormalizeAirline("europa")
		assert.True(t, ok)
		assert.Equal(t, "UX", a.Code)
	})

	t.Run("duplicate canonical name resolves to first declared", func(t *testing.T) {
		a, ok := n.NormalizeAirline("latam")
		assert.True(t, ok)
		assert.Equal(t, "LA", a.Code, "first declaration order must win")
	})

	t.Run("unresolved input echoes uppercased", func(t *testing.T) {
		a, ok := n.NormalizeAirline("zz")
		assert.False(t, ok)
		assert.Equal(t, "ZZ", a.Code)
		assert.Empty(t, a.Name)
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := n.NormalizeAirline("  ")
		assert.False(t, ok)
	})
}

func TestDetectChains(t *testing.T) {
	n := newTestNormalizer()

	t.Run("marker phrase cadena", func(t *testing.T) {
		chains := n.DetectChains("quiero la cadena iberostar en punta cana")
		assert.Equal(t, []string{"Iberostar"}, chains)
	})

	t.Run("marker phrase chain", func(t *testing.T) {
		chains := n.DetectChains("only chain hilton please")
		assert.Equal(t, []string{"Hilton"}, chains)
	})

	t.Run("hotel phrase", func(t *testing.T) {
		chains := n.DetectChains("hoteles riu en cancun")
		assert.Equal(t, []string{"RIU"}, chains)
	})

	t.Run("direct alias scan", func(t *testing.T) {
		chains := n.DetectChains("algo tipo barcelo estaría bien")
		assert.Equal(t, []string{"Barcelo"}, chains)
	})

	t.Run("longest alias wins over shorter prefix", func(t *testing.T) {
		chains := n.DetectChains("quiero el riu palace")
		assert.Equal(t, []string{"RIU"}, chains)
	})

	t.Run("word boundary prevents substring false positive", func(t *testing.T) {
		// "nh" must not match inside an unrelated word.
		chains := n.DetectChains("vuelo sin hotel anhelado")
		assert.NotContains(t, chains, "NH")
	})

	t.Run("multi-chain with separator y", func(t *testing.T) {
		chains := n.DetectChains("cadena riu y iberostar en cancun")
		assert.Equal(t, []string{"RIU", "Iberostar"}, chains)
	})

	t.Run("multi-chain with comma", func(t *testing.T) {
		chains := n.DetectChains("cadenas melia, barcelo para enero")
		assert.Equal(t, []string{"Melia", "Barcelo"}, chains)
	})

	t.Run("unknown name-like part is kept capitalized", func(t *testing.T) {
		chains := n.DetectChains("cadena solymar en varadero")
		assert.Equal(t, []string{"Solymar"}, chains)
	})

	t.Run("search term overrides display name", func(t *testing.T) {
		chains := n.DetectChains("hoteles melia en madrid")
		assert.Equal(t, []string{"Melia"}, chains)
	})

	t.Run("no chains in text", func(t *testing.T) {
		chains := n.DetectChains("vuelo a madrid el 15 de diciembre")
		assert.Empty(t, chains)
	})
}

func TestLongestAliasFirstIsOrderIndependent(t *testing.T) {
	// The property must hold for any declaration order of the aliases.
	vocabs := []Vocabulary{
		{Chains: []ChainEntry{{Name: "RIU", Aliases: []string{"riu", "riu palace"}}}},
		{Chains: []ChainEntry{{Name: "RIU", Aliases: []string{"riu palace", "riu"}}}},
	}

	for _, vocab := range vocabs {
		n := New(vocab, trace.NewNopRecorder())
		chains := n.DetectChains("quiero el riu palace")
		assert.Equal(t, []string{"RIU"}, chains)
	}
}

func TestChainScanRecordsPattern(t *testing.T) {
	rec := trace.NewRecording()
	n := New(DefaultVocabulary(), rec)

	n.DetectChains("cadena riu en cancun")

	ev, found := rec.Find("normalizer.chains_detected")
	assert.True(t, found)
	assert.Equal(t, "marker", ev.Fields["pattern"])
}
