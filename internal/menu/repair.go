package menu

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mlindemann/menucard-importer/internal/common"
)

// rawPreviewLimit bounds how much of a broken response ends up in an error.
const rawPreviewLimit = 500

var (
	reTrailingComma = regexp.MustCompile(`,\s*([}\]])`)
	reObjBoundary   = regexp.MustCompile(`}\s*{`)
	reFence         = regexp.MustCompile("^```[a-zA-Z]*\\s*|\\s*```$")
)

// RepairJSON applies an ordered list of textual transforms that fix the
// common ways a model mangles a JSON array. It is a best-effort defense
// against non-determinism, not a lenient parser: the output still goes
// through the strict parser.
func RepairJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = reFence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	// Trailing commas before } or ].
	s = reTrailingComma.ReplaceAllString(s, "$1")

	// Missing array-separator comma between adjacent objects.
	s = reObjBoundary.ReplaceAllString(s, "},{")

	// Missing array brackets (single object, or truncated tail).
	if !strings.HasPrefix(s, "[") {
		s = "[" + s
	}
	if !strings.HasSuffix(s, "]") {
		s = s + "]"
	}

	// Odd quote parity means the output was cut off mid-string. Keep the
	// complete objects and discard the dangling partial one.
	if strings.Count(s, `"`)%2 == 1 {
		if i := strings.LastIndex(s, "}"); i >= 0 {
			s = s[:i+1] + "]"
		}
	}
	return s
}

// ParseItems repairs and parses one completion response into raw array
// elements. A response that stays unparseable after repair yields a
// ResponseParseError carrying a bounded preview of the raw text.
func ParseItems(raw string) ([]json.RawMessage, error) {
	repaired := RepairJSON(raw)

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(repaired), &elems); err != nil {
		msg := fmt.Sprintf("response is not a JSON array after repair: %v; raw: %s", err, preview(raw))
		if syn, ok := err.(*json.SyntaxError); ok {
			msg = fmt.Sprintf("response is not a JSON array after repair (offset %d): %v; raw: %s", syn.Offset, err, preview(raw))
		}
		return nil, common.NewAppError("RESPONSE_PARSE", msg, common.ErrResponseParse)
	}
	return elems, nil
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= rawPreviewLimit {
		return s
	}
	return s[:rawPreviewLimit] + "...(truncated)"
}
