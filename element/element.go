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

// Package element holds the XDMF document tree and its XML serialization.
//
// The element names and attributes follow the XDMF model described at
// https://www.xdmf.org/index.php/XDMF_Model_and_Format.
// DataItems that are shared between grids live at the Domain level and are
// referred to by name from anywhere else in the document.
package element

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
)

// Version is the XDMF format version written to the root element.
const Version = "2.0"

// XIncludeNamespace is the namespace of the xi:include elements used to
// pull heavy data in from external text files.
const XIncludeNamespace = "http://www.w3.org/2001/XInclude"

// indent is the indentation used for each level of the document.
const indent = "    "

// Xdmf is the root element of a document. It holds the domain(s) and
// free-form metadata.
type Xdmf struct {
	XMLName  xml.Name `xml:"Xdmf"`
	Version  string   `xml:"Version,attr"`
	XInclude string   `xml:"xmlns:xi,attr,omitempty"`

	Domains     []Domain      `xml:"Domain"`
	Information []Information `xml:"Information"`
}

// New returns a document holding a single domain.
func New(d Domain) *Xdmf {
	return &Xdmf{
		Version: Version,
		Domains: []Domain{d},
	}
}

// Information stores application-specific metadata that readers are free
// to ignore.
type Information struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:"Value,attr"`
}

// NewInformation returns a new Information element.
func NewInformation(name, value string) Information {
	return Information{Name: name, Value: value}
}

// Domain is the top-level container for grids. DataItems held directly by
// the domain can be referenced from any grid by their name.
type Domain struct {
	Grids     []Grid     `xml:"Grid"`
	DataItems []DataItem `xml:"DataItem"`
}

// DataItem returns the domain-level DataItem with the given name.
func (d *Domain) DataItem(name string) (DataItem, bool) {
	for _, di := range d.DataItems {
		if di.Name != "" && di.Name == name {
			return di, true
		}
	}
	return DataItem{}, false
}

// checkReferences makes sure that every reference in the domain's grids
// points to a DataItem held by the domain.
func (d *Domain) checkReferences() error {
	var check func(items []DataItem) error
	check = func(items []DataItem) error {
		for _, di := range items {
			ref, ok := di.Content.(Reference)
			if !ok {
				continue
			}
			if _, ok := d.DataItem(string(ref)); !ok {
				return fmt.Errorf("xdmf/element: DataItem reference to '%s' does not match any DataItem in the domain", ref)
			}
		}
		return nil
	}
	var walk func(g *Grid) error
	walk = func(g *Grid) error {
		var items []DataItem
		if g.Geometry != nil {
			items = append(items, g.Geometry.DataItem)
		}
		if g.Topology != nil {
			items = append(items, g.Topology.DataItem)
		}
		for _, a := range g.Attributes {
			items = append(items, a.DataItems...)
		}
		if err := check(items); err != nil {
			return err
		}
		for i := range g.Grids {
			if err := walk(&g.Grids[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for i := range d.Grids {
		if err := walk(&d.Grids[i]); err != nil {
			return err
		}
	}
	return nil
}

// Marshal returns the indented XML representation of the document,
// terminated by a newline.
func (x *Xdmf) Marshal() ([]byte, error) {
	for i := range x.Domains {
		if err := x.Domains[i].checkReferences(); err != nil {
			return nil, err
		}
	}
	var b bytes.Buffer
	e := xml.NewEncoder(&b)
	e.Indent("", indent)
	if err := e.Encode(x); err != nil {
		return nil, fmt.Errorf("xdmf/element: %v", err)
	}
	if err := e.Close(); err != nil {
		return nil, fmt.Errorf("xdmf/element: %v", err)
	}
	out := selfClose(b.Bytes())
	return append(out, '\n'), nil
}

// emptyElement matches an element without content. Attribute values never
// contain '<' or '>' because the encoder escapes them.
var emptyElement = regexp.MustCompile(`<([A-Za-z_][\w.:-]*)((?:\s[^<>]*)?)></([A-Za-z_][\w.:-]*)>`)

// selfClose rewrites empty elements as empty-element tags, which
// encoding/xml does not produce on its own.
func selfClose(b []byte) []byte {
	return emptyElement.ReplaceAllFunc(b, func(m []byte) []byte {
		sub := emptyElement.FindSubmatch(m)
		if !bytes.Equal(sub[1], sub[3]) {
			return m
		}
		out := make([]byte, 0, len(sub[1])+len(sub[2])+3)
		out = append(out, '<')
		out = append(out, sub[1]...)
		out = append(out, sub[2]...)
		return append(out, '/', '>')
	})
}

// WriteTo writes the serialized document to w.
func (x *Xdmf) WriteTo(w io.Writer) (int64, error) {
	b, err := x.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}
