package mvc

// Controller groups handler methods under a shared path prefix, the way a
// controller type maps all of its methods below one base path.
type Controller struct {
	dispatcher *Dispatcher
	prefix     string
	name       string
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithControllerName names the controller in logs and route listings.
func WithControllerName(name string) ControllerOption {
	return func(c *Controller) {
		c.name = name
	}
}

// Controller creates a registrar whose routes are mounted below prefix.
func (d *Dispatcher) Controller(prefix string, opts ...ControllerOption) *Controller {
	c := &Controller{
		dispatcher: d,
		prefix:     prefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// addRoute implements Registrar for Controller.
func (c *Controller) addRoute(rt *route) {
	if rt.err == nil {
		rt.err = checkPrefix("controller prefix", c.prefix)
	}
	rt.path = c.prefix + rt.path
	if rt.controller == "" {
		rt.controller = c.name
	}
	c.dispatcher.addRoute(rt)
}
