package domain

// Primitive is a named placeholder used as a model parameter default.
// During data negotiation the dispatcher asks the active controller to
// resolve it into a concrete request-derived value instead of using it
// literally.
type Primitive string

// Well-known primitives. Controllers are free to resolve additional names.
const (
	// LoggedInUser resolves to the authenticated principal of the request,
	// or nil for anonymous requests.
	LoggedInUser Primitive = "LOGGED_IN_USER"

	// RawInvocation resolves to the full invocation string.
	RawInvocation Primitive = "RAW_INVOCATION"

	// AllData resolves to the complete raw data map of the request.
	AllData Primitive = "ALL_DATA"
)

func (p Primitive) String() string { return string(p) }
