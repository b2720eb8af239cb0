package voxel

import (
	"fmt"
	"strings"
)

type BlockType uint8

const (
	Air BlockType = iota
	Grass
	Dirt
	Stone

	NumBlockTypes = 4
)

// Valid reports whether b belongs to the registered block set.
func (b BlockType) Valid() bool {
	return b < NumBlockTypes
}

func (b BlockType) String() string {
	if !b.Valid() {
		return fmt.Sprintf("BlockType(%d)", uint8(b))
	}
	return blockProperties[b].Name
}

// BlockProperties describes a registered block type.
type BlockProperties struct {
	Name      string
	Solid     bool
	Placeable bool
}

var blockProperties = [NumBlockTypes]BlockProperties{
	Air:   {Name: "air", Solid: false, Placeable: false},
	Grass: {Name: "grass", Solid: true, Placeable: true},
	Dirt:  {Name: "dirt", Solid: true, Placeable: true},
	Stone: {Name: "stone", Solid: true, Placeable: true},
}

// Properties returns the registered properties of b. Unknown ids report air.
func (b BlockType) Properties() BlockProperties {
	if !b.Valid() {
		return blockProperties[Air]
	}
	return blockProperties[b]
}

// ParseBlockType resolves a block name such as "dirt" to its id.
func ParseBlockType(name string) (BlockType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, props := range blockProperties {
		if props.Name == name {
			return BlockType(i), nil
		}
	}
	return Air, fmt.Errorf("unknown block type %q", name)
}

// AtlasCoord is a tile position in the texture atlas, in tiles.
type AtlasCoord struct {
	X, Y int
}

const DefaultAtlasTiles = 4

// Catalog maps every block type and face to a tile of the texture atlas.
type Catalog struct {
	atlasTiles int
	faces      [NumBlockTypes][NumFaces]AtlasCoord
}

// NewCatalog returns the default block catalog for an atlas of atlasTiles x atlasTiles tiles.
func NewCatalog(atlasTiles int) *Catalog {
	if atlasTiles <= 0 {
		atlasTiles = DefaultAtlasTiles
	}

	grassSide := AtlasCoord{1, 0}
	grassTop := AtlasCoord{0, 0}
	dirt := AtlasCoord{2, 0}
	stone := AtlasCoord{3, 0}

	c := &Catalog{atlasTiles: atlasTiles}
	c.faces[Grass] = [NumFaces]AtlasCoord{
		FaceFront:  grassSide,
		FaceBack:   grassSide,
		FaceTop:    grassTop,
		FaceBottom: dirt,
		FaceRight:  grassSide,
		FaceLeft:   grassSide,
	}
	for f := range c.faces[Dirt] {
		c.faces[Dirt][f] = dirt
		c.faces[Stone][f] = stone
	}
	return c
}

// DefaultCatalog returns the catalog for the default 4x4 atlas.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultAtlasTiles)
}

func (c *Catalog) AtlasTiles() int {
	return c.atlasTiles
}

// TileSize is the width of one atlas tile in normalized texture space.
func (c *Catalog) TileSize() float32 {
	return 1 / float32(c.atlasTiles)
}

// FaceAtlasCoord returns the atlas tile used for a face of a block. It is total:
// unknown blocks and faces resolve to the air row.
func (c *Catalog) FaceAtlasCoord(b BlockType, f Face) AtlasCoord {
	if !b.Valid() || !f.Valid() {
		return AtlasCoord{}
	}
	return c.faces[b][f]
}
