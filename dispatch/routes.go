package dispatch

import "gopkg.in/yaml.v3"

// RouteInfo describes one registered route for introspection. Static is
// true for literal patterns with no parameters or wildcard.
type RouteInfo struct {
	Method string   `json:"method" yaml:"method"`
	Path   string   `json:"path" yaml:"path"`
	Params []string `json:"params,omitempty" yaml:"params,omitempty"`
	Static bool     `json:"static" yaml:"static"`
}

// Routes returns the registered routes in registration order.
func (d *Dispatcher) Routes() []RouteInfo {
	infos := make([]RouteInfo, 0, len(d.order))

	for _, route := range d.order {
		infos = append(infos, RouteInfo{
			Method: route.method,
			Path:   route.pattern,
			Params: route.ParamNames(),
			Static: route.static(),
		})
	}

	return infos
}

// RoutesYAML renders the route table as YAML, one document listing all
// routes in registration order. Useful for startup logging and
// operational inspection.
func (d *Dispatcher) RoutesYAML() ([]byte, error) {
	return yaml.Marshal(d.Routes())
}
