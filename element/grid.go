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

// GridType is the kind of a grid.
type GridType string

// Grid types.
const (
	Uniform    GridType = "Uniform"
	Collection GridType = "Collection"
	Tree       GridType = "Tree"
	SubSet     GridType = "SubSet"
)

// CollectionType specifies how the children of a Collection grid relate
// to each other.
type CollectionType string

// Collection types.
const (
	Spatial  CollectionType = "Spatial"
	Temporal CollectionType = "Temporal"
)

// Grid is either a uniform grid holding one Geometry and one Topology, or
// a composition (Collection or Tree) of other grids.
type Grid struct {
	Name           string         `xml:"Name,attr"`
	GridType       GridType       `xml:"GridType,attr"`
	CollectionType CollectionType `xml:"CollectionType,attr,omitempty"`

	Geometry   *Geometry   `xml:"Geometry"`
	Topology   *Topology   `xml:"Topology"`
	Grids      []Grid      `xml:"Grid"`
	Time       *Time       `xml:"Time"`
	Attributes []Attribute `xml:"Attribute"`
}

// NewUniform returns a uniform grid.
func NewUniform(name string, geometry Geometry, topology Topology) Grid {
	return Grid{
		Name:     name,
		GridType: Uniform,
		Geometry: &geometry,
		Topology: &topology,
	}
}

// NewCollection returns a collection of grids.
func NewCollection(name string, collectionType CollectionType, grids ...Grid) Grid {
	return Grid{
		Name:           name,
		GridType:       Collection,
		CollectionType: collectionType,
		Grids:          grids,
	}
}

// NewTree returns a hierarchical tree of grids.
func NewTree(name string, grids ...Grid) Grid {
	return Grid{
		Name:     name,
		GridType: Tree,
		Grids:    grids,
	}
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	o := g
	if g.Geometry != nil {
		geo := *g.Geometry
		geo.DataItem = geo.DataItem.clone()
		o.Geometry = &geo
	}
	if g.Topology != nil {
		top := *g.Topology
		top.DataItem = top.DataItem.clone()
		o.Topology = &top
	}
	if g.Time != nil {
		t := *g.Time
		o.Time = &t
	}
	if g.Grids != nil {
		o.Grids = make([]Grid, len(g.Grids))
		for i, c := range g.Grids {
			o.Grids[i] = c.Clone()
		}
	}
	if g.Attributes != nil {
		o.Attributes = make([]Attribute, len(g.Attributes))
		for i, a := range g.Attributes {
			o.Attributes[i] = a.clone()
		}
	}
	return o
}

func (d DataItem) clone() DataItem {
	if d.Dimensions != nil {
		d.Dimensions = append(Dimensions(nil), d.Dimensions...)
	}
	return d
}

// Time holds the time value of a grid. The value is kept as text so the
// caller decides how it is formatted.
type Time struct {
	Value string `xml:"Value,attr"`
}

// NewTime returns a new Time element.
func NewTime(value string) *Time { return &Time{Value: value} }

// GeometryType specifies the layout of the point coordinates.
type GeometryType string

// Geometry types.
const (
	XYZ GeometryType = "XYZ"
	XY  GeometryType = "XY"
)

// Geometry describes the coordinates of the points of a mesh.
type Geometry struct {
	GeometryType GeometryType `xml:"GeometryType,attr"`
	DataItem     DataItem     `xml:"DataItem"`
}

// TopologyType is the type of the elements of a mesh. Mixed allows
// elements of different types, each prefixed by its type.
type TopologyType string

// Topology types.
const (
	Mixed         TopologyType = "Mixed"
	Triangle      TopologyType = "Triangle"
	Quadrilateral TopologyType = "Quadrilateral"
)

// Topology describes how the points are connected to form elements.
type Topology struct {
	TopologyType     TopologyType `xml:"TopologyType,attr"`
	NumberOfElements int          `xml:"NumberOfElements,attr"`
	DataItem         DataItem     `xml:"DataItem"`
}

// AttributeType is the shape of the values of an attribute.
type AttributeType string

// Attribute types.
const (
	Scalar  AttributeType = "Scalar"
	Vector  AttributeType = "Vector"
	Tensor  AttributeType = "Tensor"
	Tensor6 AttributeType = "Tensor6"
	Matrix  AttributeType = "Matrix"
)

// Center is the location on the mesh where attribute values are defined.
type Center string

// Attribute centers.
const (
	Node       Center = "Node"
	Edge       Center = "Edge"
	Face       Center = "Face"
	Cell       Center = "Cell"
	GridCenter Center = "Grid"
	Other      Center = "Other"
)

// DataTag returns the name used to group data with this center in
// external storage, e.g. "point_data" for Node.
func (c Center) DataTag() string {
	switch c {
	case Node:
		return "point_data"
	case Cell:
		return "cell_data"
	case Edge:
		return "edge_data"
	case Face:
		return "face_data"
	case GridCenter:
		return "grid_data"
	case Other:
		return "other_data"
	default:
		panic("xdmf/element: invalid center '" + string(c) + "'")
	}
}

// Attribute holds values associated with the mesh, e.g. a field result.
type Attribute struct {
	Name          string        `xml:"Name,attr"`
	AttributeType AttributeType `xml:"AttributeType,attr"`
	Center        Center        `xml:"Center,attr"`
	DataItems     []DataItem    `xml:"DataItem"`
}

func (a Attribute) clone() Attribute {
	if a.DataItems != nil {
		items := make([]DataItem, len(a.DataItems))
		for i, d := range a.DataItems {
			items[i] = d.clone()
		}
		a.DataItems = items
	}
	return a
}
