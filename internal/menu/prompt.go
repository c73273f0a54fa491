package menu

import (
	"fmt"
	"strings"

	"github.com/mlindemann/menucard-importer/constants"
)

// BuildPrompt composes the extraction prompt for one chunk of menu text.
// The prompt is deterministic given the chunk: same chunk, same prompt.
func BuildPrompt(chunkText string) string {
	parts := []string{
		"You are a restaurant menu parser.",
		"Extract every food and beverage line item from the menu text below.",
		"For each item provide these fields:",
		"- name: shorten to max 20 characters, remove filler words, keep the main words",
		"- quantity: if stated, else 1",
		"- price: integer in cents, no decimals or separators (e.g. 7.20 EUR -> 720)",
		"- warengruppe: product group inferred from the item or menu context",
		fmt.Sprintf("- hauptgruppe: '%s' for food, '%s' for beverages",
			constants.HauptgruppeKueche, constants.HauptgruppeTheke),
		fmt.Sprintf("- steuersatz: %d for food, %d for beverages",
			constants.SteuersatzFood, constants.SteuersatzBeverage),
		fmt.Sprintf("- ordergruppe: '%s' for food, '%s' for beverages",
			constants.OrdergruppeKuecheWarm, constants.OrdergruppeTheke),
		"- ausser_haus: 1 for food, 0 for drinks",
		"If one entry lists several sizes or volumes with separate prices (e.g. two volumes of the same drink), emit one item per size with the size prefixed to the name.",
		fmt.Sprintf("Output ONLY a JSON array of objects with exactly these keys: %s, quantity.",
			strings.Join(constants.RequiredItemKeys, ", ")),
		"No markdown, no explanations, no extra text.",
		"",
		"Menu text:",
		`"""`,
		chunkText,
		`"""`,
	}
	return strings.Join(parts, "\n")
}
