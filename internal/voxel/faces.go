package voxel

import "github.com/go-gl/mathgl/mgl32"

// Face indexes the six directions of a cube. The order is shared by every table
// in this package and by the atlas layout.
type Face int

const (
	FaceFront  Face = iota // +Z
	FaceBack               // -Z
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceRight              // +X
	FaceLeft               // -X

	NumFaces = 6
)

func (f Face) Valid() bool {
	return f >= 0 && f < NumFaces
}

// Lateral reports whether the face points along X or Z.
func (f Face) Lateral() bool {
	return f != FaceTop && f != FaceBottom && f.Valid()
}

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "+Z"
	case FaceBack:
		return "-Z"
	case FaceTop:
		return "+Y"
	case FaceBottom:
		return "-Y"
	case FaceRight:
		return "+X"
	case FaceLeft:
		return "-X"
	}
	return "invalid"
}

// FaceOffsets holds the unit neighbour offset, which is also the outward normal, per face.
var FaceOffsets = [NumFaces][3]int{
	{0, 0, 1},
	{0, 0, -1},
	{0, 1, 0},
	{0, -1, 0},
	{1, 0, 0},
	{-1, 0, 0},
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	o := FaceOffsets[f]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

// CubeCorners are the eight corners of the unit cube.
var CubeCorners = [8]mgl32.Vec3{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 1},
	{0, 1, 1},
}

// FaceCorners selects the four CubeCorners of each face. Combined with the
// (0,3,2),(0,2,1) triangle order every face winds clockwise seen from outside.
var FaceCorners = [NumFaces][4]int{
	{4, 5, 6, 7},
	{0, 3, 2, 1},
	{3, 7, 6, 2},
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{4, 7, 3, 0},
}
