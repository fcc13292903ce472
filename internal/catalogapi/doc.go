// Package catalogapi defines the wire format of the catalog HTTP API.
//
// The REST catalog client decodes these payloads and the fixture server
// encodes them, so both sides agree on paths, query parameters and the
// loosely typed product fields the catalog emits.
//
// # Endpoints
//
//	GET /categories               []string
//	GET /makes?term=              []string (entries may be comma-joined)
//	GET /models?make=&year=       []string
//	GET /years-range?make=        {"minYear": n, "maxYear": n}
//	GET /suggestions?term=        []string
//	GET /products?make&model&...  []Product
//	GET /products/{id}            Product
package catalogapi
