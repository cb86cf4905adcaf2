package domain

import "math"

// BIMObjectType identifies the kind of building element.
type BIMObjectType string

const (
	ObjectBeam      BIMObjectType = "beam"
	ObjectColumn    BIMObjectType = "column"
	ObjectWall      BIMObjectType = "wall"
	ObjectDuct      BIMObjectType = "duct"
	ObjectPipe      BIMObjectType = "pipe"
	ObjectConduit   BIMObjectType = "conduit"
	ObjectSlab      BIMObjectType = "slab"
	ObjectEquipment BIMObjectType = "equipment"
)

// Discipline identifies which trade owns a building element.
type Discipline string

const (
	DisciplineStructural    Discipline = "Structural"
	DisciplineMechanical    Discipline = "Mechanical"
	DisciplineElectrical    Discipline = "Electrical"
	DisciplinePlumbing      Discipline = "Plumbing"
	DisciplineArchitectural Discipline = "Architectural"
)

// BIMObject is a positioned building element. It is owned by the
// drawing/BIM subsystem; the engine only reads it.
type BIMObject struct {
	// ID is the unique identifier for the object.
	ID string

	// Name is the human-readable name (e.g. "Beam B-12").
	Name string

	// Type identifies the kind of element.
	Type BIMObjectType

	// Discipline identifies the owning trade.
	Discipline Discipline

	// Position is the centre of the object's bounding box, in metres.
	Position Point3D

	// Dimensions is the extent of the bounding box, in metres.
	Dimensions Dimensions

	// Rotation is the yaw about the vertical axis, in degrees.
	Rotation float64

	// Visible reports whether the object is shown in the current view.
	// Hidden objects are still checked for clashes.
	Visible bool
}

// HalfExtents returns half the object's bounding box dimensions.
func (o *BIMObject) HalfExtents() Point3D {
	return Point3D{
		X: o.Dimensions.Width / 2,
		Y: o.Dimensions.Depth / 2,
		Z: o.Dimensions.Height / 2,
	}
}

// ToLocal transforms a world point into the object's local frame,
// undoing the object's position offset and yaw rotation.
func (o *BIMObject) ToLocal(p Point3D) Point3D {
	translated := Point3D{
		X: p.X - o.Position.X,
		Y: p.Y - o.Position.Y,
		Z: p.Z - o.Position.Z,
	}
	if o.Rotation == 0 {
		return translated
	}

	rad := -o.Rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Point3D{
		X: translated.X*cos - translated.Y*sin,
		Y: translated.X*sin + translated.Y*cos,
		Z: translated.Z,
	}
}

// ToWorld transforms a point in the object's local frame back into
// world coordinates.
func (o *BIMObject) ToWorld(p Point3D) Point3D {
	rotated := p
	if o.Rotation != 0 {
		rad := o.Rotation * math.Pi / 180
		sin, cos := math.Sin(rad), math.Cos(rad)
		rotated = Point3D{
			X: p.X*cos - p.Y*sin,
			Y: p.X*sin + p.Y*cos,
			Z: p.Z,
		}
	}
	return Point3D{
		X: rotated.X + o.Position.X,
		Y: rotated.Y + o.Position.Y,
		Z: rotated.Z + o.Position.Z,
	}
}
