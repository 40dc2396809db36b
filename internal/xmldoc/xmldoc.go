// SPDX-License-Identifier: MPL-2.0

// Package xmldoc holds the decoding rules shared by the XML documents xmvn
// reads: legacy character sets are transcoded and a document must have
// exactly one root element.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ErrTrailingContent is returned by ExpectEnd when anything other than
// whitespace, comments or processing instructions follows the root element.
var ErrTrailingContent = errors.New("unexpected content after root element")

// NewDecoder returns an xml.Decoder that accepts documents declaring a
// legacy encoding such as US-ASCII or ISO-8859-1.
func NewDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

// ExpectEnd consumes the rest of the input after the root element has been
// decoded. A second root element or stray text is an ErrTrailingContent.
func ExpectEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return fmt.Errorf("%w: text %q", ErrTrailingContent, bytes.TrimSpace(t))
			}
		case xml.StartElement:
			return fmt.Errorf("%w: element <%s>", ErrTrailingContent, t.Name.Local)
		default:
			return fmt.Errorf("%w: %T", ErrTrailingContent, t)
		}
	}
}
