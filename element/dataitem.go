/*
Copyright © 2025 the xdmf authors.
This file is part of xdmf.

xdmf is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

xdmf is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with xdmf.  If not, see <http://www.gnu.org/licenses/>.
*/

package element

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// NumberType is the kind of the numbers held by a DataItem.
type NumberType string

// Number types understood by XDMF readers.
const (
	Float NumberType = "Float"
	Int   NumberType = "Int"
	UInt  NumberType = "UInt"
	Char  NumberType = "Char"
	UChar NumberType = "UChar"
)

// Format is the way the heavy data of a DataItem is stored.
type Format string

// Heavy data formats.
const (
	XML    Format = "XML"
	HDF    Format = "HDF"
	Binary Format = "Binary"
)

// DataItem describes where and how a single numeric payload is stored.
//
// When Content is a Reference, the DataItem takes its shape, number type,
// format and precision from the referenced DataItem, so those fields are
// not written.
type DataItem struct {
	Name       string
	Dimensions Dimensions
	NumberType NumberType
	Format     Format
	Precision  int // bytes per value, e.g. 8 for float64
	Content    Content
}

// NewReference returns a DataItem that refers to the domain-level
// DataItem with the given name.
func NewReference(name string) DataItem {
	return DataItem{Content: Reference(name)}
}

// IsReference reports whether d refers to another DataItem.
func (d DataItem) IsReference() bool {
	_, ok := d.Content.(Reference)
	return ok
}

// Content is the payload of a DataItem: literal Text, an XInclude of an
// external file, or a Reference to another DataItem.
type Content interface {
	innerXML() string
}

// Text is data stored inline in the document.
type Text string

// XInclude pulls the data in from an external file using XInclude.
type XInclude struct {
	Href string
	// AsText makes the included file be parsed as text instead of XML.
	AsText bool
}

// Reference is the name of a domain-level DataItem.
type Reference string

// ReferencePath is the XPath prefix used to locate domain-level DataItems.
const ReferencePath = "/Xdmf/Domain/DataItem"

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func (t Text) innerXML() string { return textEscaper.Replace(string(t)) }

func (r Reference) innerXML() string {
	return textEscaper.Replace(ReferencePath + `[@Name="` + string(r) + `"]`)
}

func (x XInclude) innerXML() string {
	var b bytes.Buffer
	b.WriteString(`<xi:include href="`)
	xml.EscapeText(&b, []byte(x.Href))
	b.WriteByte('"')
	if x.AsText {
		b.WriteString(` parse="text"`)
	}
	b.WriteString(`/>`)
	return b.String()
}

type dataItemXML struct {
	Name       string     `xml:"Name,attr,omitempty"`
	Dimensions Dimensions `xml:"Dimensions,attr,omitempty"`
	NumberType NumberType `xml:"NumberType,attr,omitempty"`
	Format     Format     `xml:"Format,attr,omitempty"`
	Precision  int        `xml:"Precision,attr,omitempty"`
	Reference  string     `xml:"Reference,attr,omitempty"`
	Inner      string     `xml:",innerxml"`
}

// MarshalXML implements xml.Marshaler.
func (d DataItem) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "DataItem"}
	var o dataItemXML
	if d.IsReference() {
		o.Reference = "XML"
	} else {
		o.Name = d.Name
		o.Dimensions = d.Dimensions
		o.NumberType = d.NumberType
		o.Format = d.Format
		o.Precision = d.Precision
	}
	if d.Content != nil {
		o.Inner = d.Content.innerXML()
	}
	return e.EncodeElement(o, start)
}
