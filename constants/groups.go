package constants

// Point-of-sale grouping values understood by the downstream importer.
// The LLM is instructed to emit exactly these; the renderer copies them
// through verbatim.
const (
	HauptgruppeKueche = "KÜCHE"
	HauptgruppeTheke  = "THEKE"

	OrdergruppeKuecheWarm = "KÜCHE WARM"
	OrdergruppeTheke      = "THEKE"

	SteuersatzFood     = 7  // reduced rate, food
	SteuersatzBeverage = 19 // full rate, beverages
)

// RequiredItemKeys are the keys every structured record must carry.
// A parsed element missing any of them is dropped, never defaulted.
var RequiredItemKeys = []string{
	"name", "price", "warengruppe", "hauptgruppe", "steuersatz", "ordergruppe", "ausser_haus",
}
