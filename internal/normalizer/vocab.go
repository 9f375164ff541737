package normalizer

// AirlineEntry declares one carrier in the vocabulary. Declaration order is
// the tie-break contract: when the same canonical name exists under several
// regional codes, the first declared entry wins.
type AirlineEntry struct {
	Code    string
	Name    string
	Aliases []string
}

// ChainEntry declares one hotel chain. Aliases are lowercase. SearchTerm,
// when set, overrides the display name as the value handed to providers.
type ChainEntry struct {
	Name       string
	SearchTerm string
	Aliases    []string
}

// Vocabulary groups the alias tables the Normalizer resolves against. It is
// injected at construction so tests can substitute alternate vocabularies.
type Vocabulary struct {
	Airlines []AirlineEntry
	Chains   []ChainEntry
}

// DefaultVocabulary returns the built-in tables tuned for the Latin American
// leisure market.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Airlines: defaultAirlines(),
		Chains:   defaultChains(),
	}
}

func defaultAirlines() []AirlineEntry {
	return []AirlineEntry{
		{Code: "AR", Name: "Aerolíneas Argentinas", Aliases: []string{"aerolineas", "aerolineas argentinas", "austral"}},
		{Code: "LA", Name: "LATAM", Aliases: []string{"latam", "lan", "tam"}},
		{Code: "4M", Name: "LATAM", Aliases: []string{"latam argentina"}}, // same group, regional code
		{Code: "IB", Name: "Iberia", Aliases: []string{"iberia"}},
		{Code: "UX", Name: "Air Europa", Aliases: []string{"air europa", "aireuropa"}},
		{Code: "AA", Name: "American Airlines", Aliases: []string{"american", "american airlines"}},
		{Code: "UA", Name: "United Airlines", Aliases: []string{"united"}},
		{Code: "DL", Name: "Delta Air Lines", Aliases: []string{"delta"}},
		{Code: "AM", Name: "Aeroméxico", Aliases: []string{"aeromexico"}},
		{Code: "CM", Name: "Copa Airlines", Aliases: []string{"copa"}},
		{Code: "AV", Name: "Avianca", Aliases: []string{"avianca", "taca"}},
		{Code: "G3", Name: "GOL", Aliases: []string{"gol"}},
		{Code: "AD", Name: "Azul", Aliases: []string{"azul"}},
		{Code: "FO", Name: "Flybondi", Aliases: []string{"flybondi"}},
		{Code: "JA", Name: "JetSMART", Aliases: []string{"jetsmart", "jet smart"}},
		{Code: "H2", Name: "SKY Airline", Aliases: []string{"sky", "sky airline"}},
		{Code: "OB", Name: "Boliviana de Aviación", Aliases: []string{"boa", "boliviana"}},
		{Code: "ZP", Name: "Paranair", Aliases: []string{"paranair"}},
		{Code: "AF", Name: "Air France", Aliases: []string{"air france"}},
		{Code: "KL", Name: "KLM", Aliases: []string{"klm"}},
		{Code: "LH", Name: "Lufthansa", Aliases: []string{"lufthansa"}},
		{Code: "TK", Name: "Turkish Airlines", Aliases: []string{"turkish"}},
		{Code: "EK", Name: "Emirates", Aliases: []string{"emirates"}},
	}
}

func defaultChains() []ChainEntry {
	return []ChainEntry{
		{Name: "RIU", Aliases: []string{"riu", "riu palace", "riu republica"}},
		{Name: "Iberostar", Aliases: []string{"iberostar"}},
		{Name: "Meliá", SearchTerm: "Melia", Aliases: []string{"melia", "sol melia", "paradisus"}},
		{Name: "Barceló", SearchTerm: "Barcelo", Aliases: []string{"barcelo", "occidental"}},
		{Name: "Bahía Príncipe", SearchTerm: "Bahia Principe", Aliases: []string{"bahia principe", "bahia"}},
		{Name: "Palladium", Aliases: []string{"palladium", "grand palladium", "trs"}},
		{Name: "Catalonia", Aliases: []string{"catalonia"}},
		{Name: "Hard Rock", Aliases: []string{"hard rock"}},
		{Name: "Royalton", Aliases: []string{"royalton"}},
		{Name: "Decameron", Aliases: []string{"decameron"}},
		{Name: "Hyatt", Aliases: []string{"hyatt", "hyatt zilara", "hyatt ziva"}},
		{Name: "Hilton", Aliases: []string{"hilton", "doubletree", "conrad"}},
		{Name: "Marriott", Aliases: []string{"marriott", "jw marriott", "courtyard"}},
		{Name: "Sheraton", Aliases: []string{"sheraton"}},
		{Name: "NH", Aliases: []string{"nh", "nh collection"}},
		{Name: "Wyndham", Aliases: []string{"wyndham", "ramada", "howard johnson"}},
		{Name: "InterContinental", Aliases: []string{"intercontinental", "holiday inn", "crowne plaza"}},
		{Name: "Accor", Aliases: []string{"accor", "ibis", "novotel", "sofitel", "mercure"}},
		{Name: "Oasis", Aliases: []string{"oasis", "grand oasis"}},
		{Name: "Sandos", Aliases: []string{"sandos"}},
	}
}

// stopwords terminate a capture span after a marker phrase. Separator words
// (y, e, o, and, or) are deliberately excluded: they split multi-chain spans
// instead of ending them.
var stopwords = map[string]bool{
	"en":       true,
	"para":     true,
	"con":      true,
	"de":       true,
	"del":      true,
	"la":       true,
	"el":       true,
	"los":      true,
	"las":      true,
	"un":       true,
	"una":      true,
	"por":      true,
	"cerca":    true,
	"zona":     true,
	"desde":    true,
	"hasta":    true,
	"que":      true,
	"cuando":   true,
	"donde":    true,
	"todo":     true,
	"incluido": true,
	"hotel":    true,
	"hoteles":  true,
	"in":       true,
	"for":      true,
	"with":     true,
	"near":     true,
	"from":     true,
	"to":       true,
	"the":      true,
}
