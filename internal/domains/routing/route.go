package routing

import "strings"

// RouteKind names the capability a dispatch resolves to.
type RouteKind string

const (
	RouteChat     RouteKind = "Chat"
	RoutePlan     RouteKind = "Plan"
	RouteQuery    RouteKind = "Query"
	RouteDatabase RouteKind = "Database"
	// RouteRoute marks an agent able to dispatch prompts to other routes.
	RouteRoute RouteKind = "Route"
)

const routeMarker = "Route:"

// RouteDescriptor is a parsed route choice. Query and Database carry
// the engine or dataset name as target; the zero value is invalid, use
// ChatRoute or ParseRouteOutput.
type RouteDescriptor struct {
	kind   RouteKind
	target string
}

func (r RouteDescriptor) Kind() RouteKind { return r.kind }

func (r RouteDescriptor) Target() string { return r.target }

func (r RouteDescriptor) String() string {
	if r.target == "" {
		return string(r.kind)
	}
	return string(r.kind) + ":" + r.target
}

// ChatRoute is the fallback route for unparseable or ambiguous intent.
func ChatRoute() RouteDescriptor {
	return RouteDescriptor{kind: RouteChat}
}

// ParseRouteOutput scans model output for the first line carrying the
// route marker and validates it. Anything missing or malformed
// degrades to the chat route; dispatch never fails on a confused
// model.
func ParseRouteOutput(output string) RouteDescriptor {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < len(routeMarker) || !strings.EqualFold(line[:len(routeMarker)], routeMarker) {
			continue
		}
		return parseRouteValue(line[len(routeMarker):])
	}
	return ChatRoute()
}

func parseRouteValue(value string) RouteDescriptor {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, "[]")

	kindPart, target, _ := strings.Cut(value, ":")
	kind, ok := matchKind(strings.TrimSpace(kindPart))
	if !ok {
		return ChatRoute()
	}
	target = strings.TrimSpace(target)

	switch kind {
	case RouteQuery, RouteDatabase:
		if target == "" {
			return ChatRoute()
		}
		return RouteDescriptor{kind: kind, target: target}
	case RoutePlan:
		return RouteDescriptor{kind: RoutePlan}
	default:
		return ChatRoute()
	}
}

func matchKind(s string) (RouteKind, bool) {
	for _, kind := range []RouteKind{RouteChat, RoutePlan, RouteQuery, RouteDatabase} {
		if strings.EqualFold(s, string(kind)) {
			return kind, true
		}
	}
	return "", false
}
