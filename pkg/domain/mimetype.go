package domain

// superformats maps short non-MIME renderer names to full mimetypes.
// A superformat in an invocation ("/user/profile.json") overrides content
// negotiation for that request.
var superformats = map[string]string{
	"json": "application/json",
	"html": "text/html",
	"xml":  "application/xml",
	"txt":  "text/plain",
	"md":   "text/markdown",
	"cmd":  "text/x-cmd",
	"irc":  "text/x-irc",
}

// MimetypeForSuperformat returns the full mimetype for a superformat name
// ("json" -> "application/json"), or "" if the name is not a known
// superformat.
func MimetypeForSuperformat(name string) string {
	return superformats[name]
}

// KnownSuperformat reports whether name maps to a mimetype.
func KnownSuperformat(name string) bool {
	_, ok := superformats[name]
	return ok
}
