package mvc

import (
	"net/http"
	"reflect"
)

// Args is the bound argument vector of one invocation. It is positionally
// aligned to the handler's declared parameters: a request slot holds the
// *http.Request, a response slot the *Response, and a value slot a string
// ("" when the request supplied no matching key).
type Args []any

// Request returns the *http.Request at position i, or nil.
func (a Args) Request(i int) *http.Request {
	r, _ := a[i].(*http.Request)
	return r
}

// Response returns the *Response at position i, or nil.
func (a Args) Response(i int) *Response {
	r, _ := a[i].(*Response)
	return r
}

// String returns the string at position i, or "".
func (a Args) String(i int) string {
	s, _ := a[i].(string)
	return s
}

// Target is an invocable handler together with its declared parameters.
// The set of targets is closed: build one with Method0..Method4 or MethodN.
type Target interface {
	params() []Param
	types() []reflect.Type
	invoke(args Args) (Result, error)
}

type method0 struct {
	fn func() (Result, error)
}

// Method0 adapts a handler without parameters.
func Method0(fn func() (Result, error)) Target {
	return method0{fn: fn}
}

func (m method0) params() []Param            { return nil }
func (m method0) types() []reflect.Type       { return []reflect.Type{} }
func (m method0) invoke(Args) (Result, error) { return m.fn() }

type method1[A any] struct {
	fn func(A) (Result, error)
	p  []Param
}

// Method1 adapts a one-parameter handler. A must be the Go type of pa's kind.
func Method1[A any](fn func(A) (Result, error), pa Param) Target {
	return method1[A]{fn: fn, p: []Param{pa}}
}

func (m method1[A]) params() []Param { return m.p }

func (m method1[A]) types() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A]()}
}

func (m method1[A]) invoke(args Args) (Result, error) {
	a, _ := args[0].(A)
	return m.fn(a)
}

type method2[A, B any] struct {
	fn func(A, B) (Result, error)
	p  []Param
}

// Method2 adapts a two-parameter handler.
func Method2[A, B any](fn func(A, B) (Result, error), pa, pb Param) Target {
	return method2[A, B]{fn: fn, p: []Param{pa, pb}}
}

func (m method2[A, B]) params() []Param { return m.p }

func (m method2[A, B]) types() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

func (m method2[A, B]) invoke(args Args) (Result, error) {
	a, _ := args[0].(A)
	b, _ := args[1].(B)
	return m.fn(a, b)
}

type method3[A, B, C any] struct {
	fn func(A, B, C) (Result, error)
	p  []Param
}

// Method3 adapts a three-parameter handler.
func Method3[A, B, C any](fn func(A, B, C) (Result, error), pa, pb, pc Param) Target {
	return method3[A, B, C]{fn: fn, p: []Param{pa, pb, pc}}
}

func (m method3[A, B, C]) params() []Param { return m.p }

func (m method3[A, B, C]) types() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
}

func (m method3[A, B, C]) invoke(args Args) (Result, error) {
	a, _ := args[0].(A)
	b, _ := args[1].(B)
	c, _ := args[2].(C)
	return m.fn(a, b, c)
}

type method4[A, B, C, D any] struct {
	fn func(A, B, C, D) (Result, error)
	p  []Param
}

// Method4 adapts a four-parameter handler.
func Method4[A, B, C, D any](fn func(A, B, C, D) (Result, error), pa, pb, pc, pd Param) Target {
	return method4[A, B, C, D]{fn: fn, p: []Param{pa, pb, pc, pd}}
}

func (m method4[A, B, C, D]) params() []Param { return m.p }

func (m method4[A, B, C, D]) types() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
}

func (m method4[A, B, C, D]) invoke(args Args) (Result, error) {
	a, _ := args[0].(A)
	b, _ := args[1].(B)
	c, _ := args[2].(C)
	d, _ := args[3].(D)
	return m.fn(a, b, c, d)
}

type methodN struct {
	fn func(Args) (Result, error)
	p  []Param
}

// MethodN adapts a handler of any arity that reads its arguments through
// the Args accessors.
func MethodN(fn func(Args) (Result, error), params ...Param) Target {
	return methodN{fn: fn, p: params}
}

func (m methodN) params() []Param                  { return m.p }
func (m methodN) types() []reflect.Type             { return nil }
func (m methodN) invoke(args Args) (Result, error) { return m.fn(args) }
