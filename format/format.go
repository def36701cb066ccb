// Package format holds the text codecs shared by the code model and the
// command line: an indenting source printer and a tab-separated line format
// for class metadata.
package format

import (
	"encoding"

	"github.com/dhamidi/jcm/java"
)

// Encoder writes class models; jcm inspect prints through one.
type Encoder interface {
	encoding.TextMarshaler
	Encode(model *java.ClassModel) error
}

var _ Encoder = (*LineModelEncoder)(nil)
