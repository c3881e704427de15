package cmdline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avral/tessera/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Emitter writes dispatch responses to a terminal. Markdown bodies are
// rendered with glamour when stdout is an interactive terminal; errors go
// to stderr with a styled prefix when stderr supports color.
type Emitter struct {
	Stdout io.Writer
	Stderr io.Writer

	// ForcePlain disables markdown rendering and styling, as does a
	// non-terminal stdout.
	ForcePlain bool
}

// NewEmitter creates an emitter on the process stdout/stderr.
func NewEmitter() *Emitter {
	return &Emitter{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Emit writes the response body. Redirections print their target path;
// structured bodies are JSON-encoded.
func (e *Emitter) Emit(resp *domain.Response) error {
	if signal, ok := resp.Signal(); ok {
		if redir, ok := signal.(domain.Redirection); ok {
			fmt.Fprintln(e.Stdout, redir.Path)
			return nil
		}
		return fmt.Errorf("unhandled control signal: %s", signal.ControlName())
	}

	switch body := resp.Body.(type) {
	case string:
		if resp.Mimetype == "text/markdown" && e.interactive() {
			return e.renderMarkdown(body)
		}
		fmt.Fprintln(e.Stdout, strings.TrimRight(body, "\n"))
	case []byte:
		e.Stdout.Write(body)
	default:
		enc := json.NewEncoder(e.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(body)
	}
	return nil
}

// EmitError writes err to stderr, colorized when the terminal allows it.
func (e *Emitter) EmitError(err error) {
	prefix := "error:"
	if !e.ForcePlain {
		out := termenv.NewOutput(os.Stderr)
		prefix = out.String("error:").Foreground(out.Color("1")).Bold().String()
	}
	fmt.Fprintf(e.Stderr, "%s %v\n", prefix, err)
}

func (e *Emitter) interactive() bool {
	if e.ForcePlain {
		return false
	}
	f, ok := e.Stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (e *Emitter) renderMarkdown(body string) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Fprintln(e.Stdout, body)
		return nil
	}
	rendered, err := r.Render(body)
	if err != nil {
		fmt.Fprintln(e.Stdout, body)
		return nil
	}
	fmt.Fprint(e.Stdout, rendered)
	return nil
}
