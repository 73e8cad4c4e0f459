// ABOUTME: JSON-LD structured-data scanning helpers
// ABOUTME: Collects field values from ld+json blocks including nested mainEntity/@graph objects

package classify

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"
)

// scanJSONLD collects string values for the named fields from every
// application/ld+json block in the document, in document order. Nested
// mainEntity and @graph objects are walked too. Malformed blocks are
// skipped, never fatal.
func scanJSONLD(doc *goquery.Document, fields ...string) []string {
	var values []string

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var data interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return
		}
		collectJSONLDFields(data, fields, &values, 0)
	})

	return values
}

// collectJSONLDFields walks a decoded JSON-LD value looking for the given
// field names. Depth is bounded to keep pathological documents cheap.
func collectJSONLDFields(data interface{}, fields []string, out *[]string, depth int) {
	if depth > 6 {
		return
	}

	switch v := data.(type) {
	case map[string]interface{}:
		for _, field := range fields {
			if s, ok := v[field].(string); ok && s != "" {
				*out = append(*out, s)
			}
		}
		// Publish dates on social pages often live on the nested entity
		if nested, ok := v["mainEntity"]; ok {
			collectJSONLDFields(nested, fields, out, depth+1)
		}
		if graph, ok := v["@graph"]; ok {
			collectJSONLDFields(graph, fields, out, depth+1)
		}
	case []interface{}:
		for _, item := range v {
			collectJSONLDFields(item, fields, out, depth+1)
		}
	}
}
