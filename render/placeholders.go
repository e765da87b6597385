package render

import "strings"

type Placeholder struct {
	Key   string
	Value string
}

// Token is the literal marker replaced by Value.
func (p Placeholder) Token() string {
	return "{{" + p.Key + "}}"
}

// PlaceholderMap is applied in order.
type PlaceholderMap []Placeholder

// NewPlaceholderMap orders values by keys. Keys without a value are skipped.
func NewPlaceholderMap(keys []string, values map[string]string) PlaceholderMap {
	m := make(PlaceholderMap, 0, len(keys))
	for _, key := range keys {
		value, ok := values[key]
		if !ok {
			continue
		}
		m = append(m, Placeholder{Key: key, Value: value})
	}
	return m
}

// Apply replaces every token in text.
func (m PlaceholderMap) Apply(text string) string {
	for _, p := range m {
		token := p.Token()
		if strings.Contains(text, token) {
			text = strings.ReplaceAll(text, token, p.Value)
		}
	}
	return text
}
