package normalizer

import (
	"sort"
	"strings"

	"github.com/gonzaloriv/travelsearch/internal/trace"
)

// Normalizer maps free-text and abbreviated tokens onto the canonical
// vocabularies used by the rest of the pipeline. Resolution never fails:
// unknown input degrades to a best-effort literal echo so the pipeline is
// never blocked by a vocabulary gap.
type Normalizer struct {
	vocab Vocabulary
	rec   trace.Recorder

	// chain aliases flattened and sorted longest-first so a short alias can
	// never shadow a longer distinct one ("riu" vs "riu palace").
	chainAliases []chainAlias
}

type chainAlias struct {
	alias string
	entry ChainEntry
}

func New(vocab Vocabulary, rec trace.Recorder) *Normalizer {
	if rec == nil {
		rec = trace.NewNopRecorder()
	}

	n := &Normalizer{vocab: vocab, rec: rec}
	for _, chain := range vocab.Chains {
		for _, alias := range chain.Aliases {
			n.chainAliases = append(n.chainAliases, chainAlias{alias: alias, entry: chain})
		}
	}
	sort.SliceStable(n.chainAliases, func(i, j int) bool {
		return len(n.chainAliases[i].alias) > len(n.chainAliases[j].alias)
	})

	return n
}

// Airline is a resolved carrier.
type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NormalizeAirline resolves a 2-character code or a free-text airline name.
// Matching order: exact code, exact name, bidirectional substring alias.
// Unresolved input echoes back uppercased with ok=false.
func (n *Normalizer) NormalizeAirline(input string) (Airline, bool) {
	cleaned := strings.TrimSpace(input)
	if cleaned == "" {
		return Airline{}, false
	}
	lower := strings.ToLower(cleaned)

	for _, a := range n.vocab.Airlines {
		if strings.EqualFold(a.Code, cleaned) {
			return Airline{Code: a.Code, Name: a.Name}, true
		}
	}

	for _, a := range n.vocab.Airlines {
		if strings.EqualFold(a.Name, cleaned) {
			return Airline{Code: a.Code, Name: a.Name}, true
		}
	}

	for _, a := range n.vocab.Airlines {
		for _, alias := range a.Aliases {
			if strings.Contains(lower, alias) || strings.Contains(alias, lower) {
				n.rec.Event("normalizer.airline_alias_match", map[string]interface{}{
					"input": input,
					"alias": alias,
					"code":  a.Code,
				})
				return Airline{Code: a.Code, Name: a.Name}, true
			}
		}
	}

	return Airline{Code: strings.ToUpper(cleaned)}, false
}

// chainValue is the value handed downstream for a resolved chain.
func chainValue(c ChainEntry) string {
	if c.SearchTerm != "" {
		return c.SearchTerm
	}
	return c.Name
}

var chainSeparators = []string{",", "/", "&", " y ", " e ", " o ", " and ", " or "}

// DetectChains extracts hotel-chain mentions from free text. Three patterns
// are tried in order, first non-empty result wins: an explicit marker phrase
// ("cadena X" / "chain X"), a "hotel(es) X" phrase, and a direct scan of all
// known aliases longest-first with word-boundary matching. Unresolved
// name-like parts are retained capitalized rather than dropped.
func (n *Normalizer) DetectChains(text string) []string {
	lower := strings.ToLower(text)

	if span := captureAfterMarker(lower, []string{"cadena ", "cadenas ", "chain "}); span != "" {
		if chains := n.resolveSpan(span); len(chains) > 0 {
			n.rec.Event("normalizer.chains_detected", map[string]interface{}{
				"pattern": "marker",
				"span":    span,
				"chains":  chains,
			})
			return chains
		}
	}

	if span := captureAfterMarker(lower, []string{"hoteles ", "hotel "}); span != "" {
		if chains := n.resolveSpan(span); len(chains) > 0 {
			n.rec.Event("normalizer.chains_detected", map[string]interface{}{
				"pattern": "hotel-phrase",
				"span":    span,
				"chains":  chains,
			})
			return chains
		}
	}

	if chains := n.scanAliases(lower); len(chains) > 0 {
		n.rec.Event("normalizer.chains_detected", map[string]interface{}{
			"pattern": "alias-scan",
			"chains":  chains,
		})
		return chains
	}

	return nil
}

// captureAfterMarker returns the raw span following the first marker found,
// truncated at the first stopword. The span keeps its punctuation so
// separator splitting still sees commas and slashes.
func captureAfterMarker(lower string, markers []string) string {
	for _, marker := range markers {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		rest := lower[idx+len(marker):]

		end := len(rest)
		searchFrom := 0
		for _, w := range strings.Fields(rest) {
			pos := strings.Index(rest[searchFrom:], w) + searchFrom
			bare := strings.Trim(w, ".,;:!?")
			if stopwords[bare] {
				end = pos
				break
			}
			searchFrom = pos + len(w)
		}

		span := strings.Trim(rest[:end], " .,;:!?")
		if span != "" {
			return span
		}
	}
	return ""
}

// resolveSpan splits a captured span on separators and resolves each part
// independently.
func (n *Normalizer) resolveSpan(span string) []string {
	parts := splitOnSeparators(span)

	var chains []string
	seen := make(map[string]bool)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if resolved, ok := n.resolvePart(part); ok {
			if !seen[resolved] {
				seen[resolved] = true
				chains = append(chains, resolved)
			}
			continue
		}

		// Lenient fallback: an unknown-but-plausible chain name is kept so
		// real chains missing from the table are not silently lost.
		if looksLikeName(part) {
			cap := capitalize(part)
			if !seen[cap] {
				seen[cap] = true
				chains = append(chains, cap)
			}
		}
	}
	return chains
}

func splitOnSeparators(span string) []string {
	parts := []string{span}
	for _, sep := range chainSeparators {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}
	return parts
}

func (n *Normalizer) resolvePart(part string) (string, bool) {
	for _, ca := range n.chainAliases {
		if part == ca.alias {
			return chainValue(ca.entry), true
		}
	}
	for _, ca := range n.chainAliases {
		if strings.Contains(part, ca.alias) && hasWordBoundary(part, ca.alias) {
			return chainValue(ca.entry), true
		}
	}
	return "", false
}

// scanAliases looks for any known alias directly in the text, longest alias
// first. Matched spans are blanked so a chain matched via its long alias is
// not matched again via a shorter one.
func (n *Normalizer) scanAliases(lower string) []string {
	var chains []string
	seen := make(map[string]bool)

	remaining := lower
	for _, ca := range n.chainAliases {
		idx := boundaryIndex(remaining, ca.alias)
		if idx < 0 {
			continue
		}
		value := chainValue(ca.entry)
		if !seen[value] {
			seen[value] = true
			chains = append(chains, value)
		}
		remaining = remaining[:idx] + strings.Repeat(" ", len(ca.alias)) + remaining[idx+len(ca.alias):]
	}
	return chains
}

// boundaryIndex returns the index of needle in haystack when it sits on word
// boundaries, or -1.
func boundaryIndex(haystack, needle string) int {
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return -1
		}
		idx += offset
		if isBoundary(haystack, idx, len(needle)) {
			return idx
		}
		offset = idx + 1
		if offset >= len(haystack) {
			return -1
		}
	}
}

func isBoundary(s string, idx, length int) bool {
	if idx > 0 && isWordChar(s[idx-1]) {
		return false
	}
	end := idx + length
	if end < len(s) && isWordChar(s[end]) {
		return false
	}
	return true
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func hasWordBoundary(s, sub string) bool {
	return boundaryIndex(s, sub) >= 0
}

// looksLikeName reports whether an unresolved part is plausible as a real
// chain name: 2-20 characters, not a stopword.
func looksLikeName(part string) bool {
	if len(part) < 2 || len(part) > 20 {
		return false
	}
	return !stopwords[part]
}

func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
