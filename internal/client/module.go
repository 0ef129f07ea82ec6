package client

import (
	"net/url"
	"sort"
)

// Module selects the upstream sub-resource a query term addresses.
type Module struct {
	Name string
	path string
}

// EndpointPath returns the API path for a query term, relative to the
// configured base URL.
func (m Module) EndpointPath(query string) string {
	return m.path + "/" + url.PathEscape(query)
}

// Cookie looks up C2 beacons by tracking cookie identifier.
var Cookie = Module{Name: "cookie", path: "c2/cookie_id"}

var modules = map[string]Module{
	Cookie.Name: Cookie,
}

// ModuleNames lists the supported module names, sorted.
func ModuleNames() []string {
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
