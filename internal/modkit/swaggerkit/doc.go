// Package swaggerkit builds the OpenAPI document served at /api/docs/doc.json
// and mounts the Swagger UI over it
package swaggerkit

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/benya7/rss3-widget/internal/core/version"
	"github.com/benya7/rss3-widget/internal/platform/config"
	pnet "github.com/benya7/rss3-widget/internal/platform/net"
)

// Doc is the OpenAPI document as generic JSON
type Doc = map[string]any

// Mutator edits the document before it is served
type Mutator func(Doc)

var (
	mu       sync.Mutex
	mutators []Mutator
)

// Register adds m to every future document
func Register(m Mutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// Operation is one documented route
type Operation struct {
	Method  string
	Path    string
	Summary string
	Tag     string
	// Body, when set, is a value of the JSON request body type
	Body any
}

// Build assembles the document: base info, registered operations and the shared error responses
func Build() Doc {
	info := version.Info()
	title := "RSS3 Feed API"
	if s := config.New().Prefix("FEED_API_").MayString("DOCS_TITLE_SUFFIX", ""); s != "" {
		title += " " + s
	}
	doc := Doc{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": title, "version": info.Version},
		"servers": []any{map[string]any{"url": "/api/v1"}},
		"paths":   map[string]any{},
	}
	schemas(doc)["ErrorResponse"] = SchemaOf(pnet.Envelope{})

	mu.Lock()
	ms := append([]Mutator(nil), mutators...)
	mu.Unlock()
	for _, m := range ms {
		m(doc)
	}
	addErrorResponses(doc)
	return doc
}

// AddOperations writes ops under doc.paths and registers their body schemas
func AddOperations(doc Doc, ops ...Operation) {
	paths, _ := doc["paths"].(map[string]any)
	if paths == nil {
		paths = map[string]any{}
		doc["paths"] = paths
	}
	for _, op := range ops {
		node, _ := paths[op.Path].(map[string]any)
		if node == nil {
			node = map[string]any{}
			paths[op.Path] = node
		}
		entry := map[string]any{
			"summary":   op.Summary,
			"responses": map[string]any{"200": map[string]any{"description": "OK"}},
		}
		if op.Tag != "" {
			entry["tags"] = []any{op.Tag}
		}
		if params := pathParams(op.Path); len(params) > 0 {
			entry["parameters"] = params
		}
		if op.Body != nil {
			name := reflect.TypeOf(op.Body).Name()
			schemas(doc)[name] = SchemaOf(op.Body)
			entry["requestBody"] = map[string]any{
				"required": true,
				"content":  jsonContent(map[string]any{"$ref": "#/components/schemas/" + name}),
			}
		}
		node[strings.ToLower(op.Method)] = entry
	}
}

func schemas(doc Doc) map[string]any {
	comps, _ := doc["components"].(map[string]any)
	if comps == nil {
		comps = map[string]any{}
		doc["components"] = comps
	}
	s, _ := comps["schemas"].(map[string]any)
	if s == nil {
		s = map[string]any{}
		comps["schemas"] = s
	}
	return s
}

func jsonContent(schema map[string]any) map[string]any {
	return map[string]any{"application/json": map[string]any{"schema": schema}}
}

// pathParams turns {name} segments into required string parameters
func pathParams(path string) []any {
	var out []any
	for _, seg := range strings.Split(path, "/") {
		if len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			out = append(out, map[string]any{
				"name":     seg[1 : len(seg)-1],
				"in":       "path",
				"required": true,
				"schema":   map[string]any{"type": "string"},
			})
		}
	}
	return out
}

// addErrorResponses gives every operation the envelope for 400, 404 and 500 unless it declares its own
func addErrorResponses(doc Doc) {
	ref := jsonContent(map[string]any{"$ref": "#/components/schemas/ErrorResponse"})
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range paths {
		node, _ := p.(map[string]any)
		for _, o := range node {
			op, _ := o.(map[string]any)
			if op == nil {
				continue
			}
			resps, _ := op["responses"].(map[string]any)
			if resps == nil {
				resps = map[string]any{}
				op["responses"] = resps
			}
			for _, code := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
				key := strconv.Itoa(code)
				if _, ok := resps[key]; !ok {
					resps[key] = map[string]any{"description": http.StatusText(code), "content": ref}
				}
			}
		}
	}
}
