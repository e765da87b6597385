package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrInvalidChar is returned when text holds a character XML 1.0 cannot represent,
// such as a C0 control other than tab, newline or carriage return.
var ErrInvalidChar = errors.New("character not allowed in XML")

// Node is one item of a parsed XML part: *Element, CharData, Comment, ProcInst or
// Directive.
type Node any

// Element keeps names exactly as written (prefix in Name.Space) so a part can be written
// back without namespace rewriting.
type Element struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []Node
}

type CharData string

type Comment string

type ProcInst struct {
	Target string
	Inst   string
}

type Directive string

// Is reports whether e has the given prefix and local name.
func (e *Element) Is(prefix, local string) bool {
	return e.Name.Space == prefix && e.Name.Local == local
}

// Child returns the first child element named prefix:local.
func (e *Element) Child(prefix, local string) *Element {
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok && el.Is(prefix, local) {
			return el
		}
	}
	return nil
}

// AttrValue returns the value of the attribute named prefix:local.
func (e *Element) AttrValue(prefix, local string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Space == prefix && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func parseXML(data []byte) ([]Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		top   []Node
		stack []*Element
	)
	add := func(n Node) {
		if len(stack) == 0 {
			top = append(top, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Attr: append([]xml.Attr(nil), t.Attr...)}
			add(el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 || stack[len(stack)-1].Name != t.Name {
				return nil, fmt.Errorf("unexpected end element </%s>", qualified(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			add(CharData(t))
		case xml.Comment:
			add(Comment(t))
		case xml.ProcInst:
			add(ProcInst{Target: t.Target, Inst: string(t.Inst)})
		case xml.Directive:
			add(Directive(t))
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed element <%s>", qualified(stack[len(stack)-1].Name))
	}
	return top, nil
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;")
)

func writeXML(buf *bytes.Buffer, nodes []Node) error {
	for _, node := range nodes {
		switch n := node.(type) {
		case *Element:
			buf.WriteByte('<')
			buf.WriteString(qualified(n.Name))
			for _, a := range n.Attr {
				if err := checkChars(a.Value); err != nil {
					return fmt.Errorf("attribute %s: %w", qualified(a.Name), err)
				}
				buf.WriteByte(' ')
				buf.WriteString(qualified(a.Name))
				buf.WriteString(`="`)
				buf.WriteString(attrEscaper.Replace(a.Value))
				buf.WriteByte('"')
			}
			if len(n.Children) == 0 {
				buf.WriteString("/>")
				continue
			}
			buf.WriteByte('>')
			if err := writeXML(buf, n.Children); err != nil {
				return err
			}
			buf.WriteString("</")
			buf.WriteString(qualified(n.Name))
			buf.WriteByte('>')
		case CharData:
			if err := checkChars(string(n)); err != nil {
				return err
			}
			buf.WriteString(textEscaper.Replace(string(n)))
		case Comment:
			buf.WriteString("<!--")
			buf.WriteString(string(n))
			buf.WriteString("-->")
		case ProcInst:
			buf.WriteString("<?")
			buf.WriteString(n.Target)
			if n.Inst != "" {
				buf.WriteByte(' ')
				buf.WriteString(n.Inst)
			}
			buf.WriteString("?>")
		case Directive:
			buf.WriteString("<!")
			buf.WriteString(string(n))
			buf.WriteByte('>')
		}
	}
	return nil
}

func checkChars(s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || !isXMLChar(r) {
			return fmt.Errorf("%w: %q at byte %d", ErrInvalidChar, s[i:i+size], i)
		}
		i += size
	}
	return nil
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
