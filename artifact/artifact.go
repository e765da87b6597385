// Package artifact names rendered documents: a random file name for storage and a
// readable name for the user.
package artifact

import (
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultPrefix   = "№"
	DefaultSuffix   = " Рахунок на оплату"
	DefaultFallback = "без_номеру"
	DefaultExt      = ".docx"
)

var unsafeChars = strings.NewReplacer(":", ".", "/", ".", `\`, ".")

type Namer struct {
	PrimaryKey string `yaml:"-"`
	Prefix     string `yaml:"prefix"`
	Suffix     string `yaml:"suffix"`
	Fallback   string `yaml:"fallback"`
	Ext        string `yaml:"ext"`
}

func NewNamer(primaryKey string) Namer {
	return Namer{
		PrimaryKey: primaryKey,
		Prefix:     DefaultPrefix,
		Suffix:     DefaultSuffix,
		Fallback:   DefaultFallback,
		Ext:        DefaultExt,
	}
}

// FileName returns 32 lowercase hex characters from a v4 UUID plus the extension.
func (n Namer) FileName() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "") + n.ext()
}

// DisplayName builds the name shown to the user from the primary field. Path
// separators and colons become dots. An absent primary value uses the fallback label.
func (n Namer) DisplayName(collected map[string]string) string {
	label, ok := collected[n.PrimaryKey]
	if !ok || n.PrimaryKey == "" {
		label = n.Fallback
	}
	return n.Prefix + unsafeChars.Replace(label) + n.Suffix + n.ext()
}

func (n Namer) ext() string {
	if n.Ext == "" {
		return DefaultExt
	}
	return n.Ext
}
