package mvc

import (
	"fmt"
	"net/http"
	"reflect"
)

// ParamKind identifies how a handler parameter is bound.
type ParamKind int

const (
	_            ParamKind = iota
	KindRequest            // the *http.Request handle, injected by type
	KindResponse           // the *Response handle, injected by type
	KindValue              // a string bound by name from the request parameters
)

func (k ParamKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindResponse:
		return "response"
	case KindValue:
		return "value"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// Param declares one formal parameter of a handler.
//
// Name is the parameter's identifier. Binding, when set, is the explicit
// request parameter name the value is bound from; a bound parameter matches
// its Binding exclusively and never its Name.
type Param struct {
	Kind    ParamKind
	Name    string
	Binding string
}

// RequestParam declares a parameter receiving the *http.Request.
func RequestParam() Param { return Param{Kind: KindRequest, Name: "request"} }

// ResponseParam declares a parameter receiving the *Response.
func ResponseParam() Param { return Param{Kind: KindResponse, Name: "response"} }

// NamedParam declares a string parameter matched by its identifier.
func NamedParam(name string) Param { return Param{Kind: KindValue, Name: name} }

// BoundParam declares a string parameter matched by an explicit binding name.
func BoundParam(name, binding string) Param {
	return Param{Kind: KindValue, Name: name, Binding: binding}
}

// matchName is the request parameter key this param accepts.
func (p Param) matchName() string {
	if p.Binding != "" {
		return p.Binding
	}
	return p.Name
}

// goType is the Go type a handler must declare for this kind.
func (k ParamKind) goType() reflect.Type {
	switch k {
	case KindRequest:
		return reflect.TypeFor[*http.Request]()
	case KindResponse:
		return reflect.TypeFor[*Response]()
	case KindValue:
		return reflect.TypeFor[string]()
	default:
		return nil
	}
}

// descriptor is the immutable parameter metadata of a registered handler.
type descriptor struct {
	params []Param

	// slots maps a request parameter key to the first value slot that
	// accepts it, in declaration order.
	slots map[string]int
}

// newDescriptor validates params and precomputes the key-to-slot table.
func newDescriptor(params []Param, types []reflect.Type) (*descriptor, error) {
	d := &descriptor{
		params: append([]Param(nil), params...),
		slots:  make(map[string]int, len(params)),
	}

	var haveReq, haveResp bool
	for i, p := range params {
		switch p.Kind {
		case KindRequest:
			if haveReq {
				return nil, fmt.Errorf("%w: param %d: more than one request parameter", ErrInvalidParam, i)
			}
			haveReq = true
		case KindResponse:
			if haveResp {
				return nil, fmt.Errorf("%w: param %d: more than one response parameter", ErrInvalidParam, i)
			}
			haveResp = true
		case KindValue:
			if p.Name == "" && p.Binding == "" {
				return nil, fmt.Errorf("%w: param %d: value parameter without a name", ErrInvalidParam, i)
			}
		default:
			return nil, fmt.Errorf("%w: param %d: unknown kind %s", ErrInvalidParam, i, p.Kind)
		}

		if p.Kind != KindValue && p.Binding != "" {
			return nil, fmt.Errorf("%w: param %d: binding %q on %s parameter", ErrInvalidParam, i, p.Binding, p.Kind)
		}

		if types != nil {
			if want := p.Kind.goType(); types[i] != want {
				return nil, fmt.Errorf("%w: param %d (%s): handler declares %s, want %s", ErrParamType, i, p.Kind, types[i], want)
			}
		}

		if p.Kind == KindValue {
			if _, taken := d.slots[p.matchName()]; !taken {
				d.slots[p.matchName()] = i
			}
		}
	}

	return d, nil
}
