package menu

import "github.com/santhosh-tekuri/jsonschema/v5"

// itemSchemaJSON is validated per array element. Presence of the seven
// required keys is the drop contract; the type constraints additionally keep
// un-unmarshalable elements (string prices and the like) out of the result.
const itemSchemaJSON = `{
  "type": "object",
  "required": ["name", "price", "warengruppe", "hauptgruppe", "steuersatz", "ordergruppe", "ausser_haus"],
  "properties": {
    "name":        {"type": "string", "minLength": 1},
    "quantity":    {"type": "integer", "minimum": 1},
    "price":       {"type": "integer"},
    "warengruppe": {"type": "string"},
    "hauptgruppe": {"type": "string"},
    "steuersatz":  {"type": "integer", "enum": [7, 19]},
    "ordergruppe": {"type": "string"},
    "ausser_haus": {"type": "integer", "enum": [0, 1]}
  }
}`

var itemSchema = jsonschema.MustCompileString("item.schema.json", itemSchemaJSON)
