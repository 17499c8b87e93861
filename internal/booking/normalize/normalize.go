// Package normalize maps the heterogeneous booking/venue/user payload
// shapes produced by the platform's different origins (admin console,
// organizer console, public booking form, legacy imports) into one
// canonical view model. Every canonical field carries an ordered fallback
// chain of candidate source paths encoded as data, so chains are testable
// and extensible without touching each other.
//
// Normalization is pure, idempotent and total: it never performs I/O and
// never fails for any JSON-compatible input. Unexpected shapes degrade to
// the field's documented default.
package normalize

import "strings"

type Kind string

const (
	KindBooking Kind = "booking"
	KindVenue   Kind = "venue"
	KindUser    Kind = "user"
)

type fieldType int

const (
	typeString fieldType = iota
	typeInt
	typeFloat
)

// field is one canonical output field: its name, the ordered candidate
// source paths, and the default applied when every candidate is missing.
// The canonical name is always the first candidate so normalizing an
// already-normalized record is the identity.
type field struct {
	name    string
	paths   []string
	typ     fieldType
	def     any
	resolve func(raw map[string]any) (any, bool)
}

var chains = map[Kind][]field{
	KindBooking: {
		{name: "bookingRef", paths: []string{"bookingRef", "id", "_id", "bookingId"}, def: ""},
		{name: "customerName", paths: []string{"customerName", "user.name", "userName", "customer.name"}, def: "Unknown Customer"},
		{name: "customerEmail", paths: []string{"customerEmail", "user.email", "email", "customer.email"}, def: ""},
		{name: "customerPhone", paths: []string{"customerPhone", "user.phone", "phone", "customer.phone"}, def: ""},
		{name: "amount", paths: []string{"amount", "totalAmount", "price", "totalPrice"}, typ: typeInt, def: int64(0)},
		{name: "status", paths: []string{"status", "bookingStatus"}, def: "Unknown"},
		{name: "guestCount", paths: []string{"guestCount", "numberOfGuests", "guests"}, typ: typeInt, def: int64(1)},
		{name: "venueName", paths: []string{"venueName", "venue.name", "eventName"}, def: ""},
		{name: "startDate", paths: []string{"startDate", "checkIn", "date"}, def: ""},
		{name: "endDate", paths: []string{"endDate", "checkOut", "date"}, def: ""},
		{name: "organizer", resolve: resolveOrganizer, def: "Event Organizer"},
	},
	KindVenue: {
		{name: "id", paths: []string{"id", "_id", "venueId"}, def: ""},
		{name: "name", paths: []string{"name", "venueName", "title"}, def: ""},
		{name: "description", paths: []string{"description", "about"}, def: ""},
		{name: "location", paths: []string{"location", "address", "city"}, def: ""},
		{name: "image", paths: []string{"image", "images.0", "eventImage"}, def: ""},
		{name: "price", paths: []string{"price", "basePrice", "amount"}, typ: typeInt, def: int64(0)},
		{name: "capacity", paths: []string{"capacity", "capacityText", "maxCapacity"}, def: ""},
		{name: "serviceFee", paths: []string{"serviceFee", "service_fee"}, typ: typeInt, def: int64(3000)},
		{name: "gstPercent", paths: []string{"gstPercent", "gst"}, typ: typeFloat, def: float64(18)},
		{name: "organizer", resolve: resolveOrganizer, def: "Event Organizer"},
	},
	KindUser: {
		{name: "id", paths: []string{"id", "_id", "userId"}, def: ""},
		{name: "name", resolve: resolveUserName, def: "Unknown User"},
		{name: "email", paths: []string{"email", "userEmail"}, def: ""},
		{name: "phone", paths: []string{"phone", "mobile", "contact"}, def: ""},
		{name: "role", paths: []string{"role", "userType"}, def: "customer"},
	},
}

// Normalize maps a raw payload of the given kind into the canonical shape.
// The output always carries every canonical field, never nil values.
func Normalize(raw map[string]any, kind Kind) map[string]any {
	fields, ok := chains[kind]
	if !ok {
		fields = chains[KindBooking]
	}

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.name] = f.value(raw)
	}
	return out
}

func (f field) value(raw map[string]any) any {
	if f.resolve != nil {
		if v, ok := f.resolve(raw); ok {
			return v
		}
		return f.def
	}
	for _, path := range f.paths {
		candidate, ok := lookup(raw, path)
		if !ok {
			continue
		}
		switch f.typ {
		case typeInt:
			if n, ok := asInt64(candidate); ok {
				return n
			}
		case typeFloat:
			if n, ok := asFloat64(candidate); ok {
				return n
			}
		default:
			if s, ok := asString(candidate); ok {
				return s
			}
		}
	}
	return f.def
}

// lookup walks a dotted path through nested maps; a numeric segment indexes
// a slice ("images.0").
func lookup(raw map[string]any, path string) (any, bool) {
	var current any = raw
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[segment]
			if !ok || v == nil {
				return nil, false
			}
			current = v
		case []any:
			idx, ok := sliceIndex(segment)
			if !ok || idx >= len(node) || node[idx] == nil {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func sliceIndex(segment string) (int, bool) {
	idx := 0
	if segment == "" {
		return 0, false
	}
	for i := 0; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return 0, false
		}
		idx = idx*10 + int(segment[i]-'0')
	}
	return idx, true
}

// resolveOrganizer reproduces the display-name rule for organizers: an
// already-human organizer string wins; otherwise a populated userId object
// yields "firstName lastName".
func resolveOrganizer(raw map[string]any) (any, bool) {
	if s, ok := raw["organizer"].(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed, true
		}
	}
	if userID, ok := raw["userId"].(map[string]any); ok {
		first, _ := userID["firstName"].(string)
		last, _ := userID["lastName"].(string)
		joined := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
		if joined != "" {
			return joined, true
		}
	}
	return nil, false
}

// resolveUserName prefers an explicit name and falls back to joining the
// split first/last name fields some origins send.
func resolveUserName(raw map[string]any) (any, bool) {
	for _, key := range []string{"name", "fullName", "userName"} {
		if v, ok := lookup(raw, key); ok {
			if s, ok := asString(v); ok {
				return s, true
			}
		}
	}
	first, _ := raw["firstName"].(string)
	last, _ := raw["lastName"].(string)
	joined := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if joined != "" {
		return joined, true
	}
	return nil, false
}
