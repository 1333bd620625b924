// Package content populates notebook pages.
//
// Page data comes in two shapes: literal markup (a string, stored verbatim)
// or a structured description (a Node tree, or the loose maps and slices
// produced by decoding YAML or JSON). Apply dispatches on the concrete shape
// and silently ignores anything else.
//
//	content.Apply(page, "<p>hello</p>")
//	content.Apply(page, map[string]any{
//	    "tag": "ul",
//	    "children": []any{
//	        map[string]any{"tag": "li", "text": "one"},
//	    },
//	})
package content
