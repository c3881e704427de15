package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/avral/tessera/pkg/domain"
)

// cacheKey derives the response cache key from the negotiated arguments,
// the program name and the response mimetype. JSON marshalling gives a
// canonical sorted-key representation; arguments that cannot be
// marshalled fall back to their string form.
func cacheKey(args domain.Args, programName, mimetype string) string {
	repr, err := json.Marshal(map[string]any(args))
	if err != nil {
		return fmt.Sprintf("%v(%s)(%s)", args, programName, mimetype)
	}
	return fmt.Sprintf("%s(%s)(%s)", repr, programName, mimetype)
}
