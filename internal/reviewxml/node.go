package reviewxml

import (
	"encoding/xml"
	"io"
	"strings"
)

// element is a minimal parsed XML node. Agent output never uses
// attributes or namespaces, so the tree keeps only tags, text, and
// child order.
type element struct {
	tag      string
	text     string
	children []*element
}

// child returns the first direct child with the given tag, or nil.
func (e *element) child(tag string) *element {
	for _, c := range e.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// childText returns the trimmed text of the named child, "" when absent.
func (e *element) childText(tag string) string {
	c := e.child(tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.text)
}

// eachChild returns every direct child with the given tag.
func (e *element) eachChild(tag string) []*element {
	var out []*element
	for _, c := range e.children {
		if c.tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// parseElement parses s into an element tree rooted at the first start
// element, ignoring any text before it. Malformed markup yields a
// *SchemaError.
func parseElement(s string) (*element, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	var stack []*element
	var root *element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, schemaErrorf("invalid XML format: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{tag: t.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, schemaErrorf("invalid XML format: unexpected </%s>", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return root, nil
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, schemaErrorf("invalid XML format: no elements found")
	}
	if len(stack) > 0 {
		return nil, schemaErrorf("invalid XML format: unclosed <%s>", stack[len(stack)-1].tag)
	}
	return root, nil
}
