package domain

// Control is an in-band signal produced by middleware or renderers to
// short-circuit normal flow. Controls are deliberately not errors: a
// redirection is a successful outcome, it just skips the model.
type Control interface {
	// ControlName identifies the signal kind for logging and transports.
	ControlName() string
}

// Redirection tells the transport to send the client somewhere else.
// HTTP adapters translate it into a 302; the command-line adapter prints
// the target path.
type Redirection struct {
	Path string
}

func (r Redirection) ControlName() string { return "redirection" }

// AsControl reports whether v is a control signal.
func AsControl(v any) (Control, bool) {
	c, ok := v.(Control)
	return c, ok
}
