package mvc

import (
	"net/http"
	"net/url"
)

// resolveArgs builds the bound argument vector for one invocation.
//
// Request and response slots are filled by type first. Then every request
// parameter key binds its first value to the first value slot, in declaration
// order, whose binding name (or identifier, when unbound) equals the key.
// Keys without a matching slot are dropped and counted in dropped. Value
// slots no key reached stay "".
func resolveArgs(d *descriptor, values url.Values, r *http.Request, w *Response) (args Args, dropped int) {
	args = make(Args, len(d.params))

	for i, p := range d.params {
		switch p.Kind {
		case KindRequest:
			args[i] = r
		case KindResponse:
			args[i] = w
		case KindValue:
			args[i] = ""
		}
	}

	for key, vals := range values {
		// Multi-valued parameters are not supported; only the first value binds.
		if len(vals) == 0 {
			continue
		}
		idx, ok := d.slots[key]
		if !ok {
			dropped++
			continue
		}
		args[idx] = vals[0]
	}

	return args, dropped
}
