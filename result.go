package mvc

import "strings"

// View directives understood in a view name.
const (
	viewSeparator     = ":"
	directiveForward  = "forward"
	directiveRedirect = "redirect"
)

// ResultKind classifies a handler result.
type ResultKind int

const (
	ResultNone ResultKind = iota // nothing to do; the handler wrote the response itself
	ResultView                   // a view name, optionally "forward:" or "redirect:" prefixed
	ResultBody                   // a value serialized into the body by direct-body routes
)

func (k ResultKind) String() string {
	switch k {
	case ResultView:
		return "view"
	case ResultBody:
		return "body"
	default:
		return "none"
	}
}

// Result is the value a handler returns. The zero Result is None.
type Result struct {
	kind ResultKind
	view string
	body any
}

// None is the result of a handler that needs no further response action.
func None() Result { return Result{} }

// View returns a view-name result. A name without a directive is forwarded.
func View(name string) Result { return Result{kind: ResultView, view: name} }

// Forward returns a result forwarding internally to path.
func Forward(path string) Result { return View(directiveForward + viewSeparator + path) }

// Redirect returns a result redirecting the client to url.
func Redirect(url string) Result { return View(directiveRedirect + viewSeparator + url) }

// Body returns a result whose value is written as the response body on
// routes registered WithResponseBody.
func Body(v any) Result { return Result{kind: ResultBody, body: v} }

// Kind reports the variant of r.
func (r Result) Kind() ResultKind { return r.kind }

// ViewName returns the view name of a ResultView.
func (r Result) ViewName() string { return r.view }

// Value returns the body value of a ResultBody.
func (r Result) Value() any { return r.body }

// splitView splits a view name on the first separator. A name without a
// separator has no directive.
func splitView(name string) (directive, target string, ok bool) {
	return strings.Cut(name, viewSeparator)
}

// Outcome is the terminal state of one dispatch.
type Outcome int

const (
	OutcomeNoOp Outcome = iota
	OutcomeForwarded
	OutcomeRedirected
	OutcomeBodyWritten
	OutcomeNotFound
	OutcomeFailed
	OutcomeLimited
)

func (o Outcome) String() string {
	switch o {
	case OutcomeForwarded:
		return "forwarded"
	case OutcomeRedirected:
		return "redirected"
	case OutcomeBodyWritten:
		return "body"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailed:
		return "failed"
	case OutcomeLimited:
		return "limited"
	default:
		return "noop"
	}
}
