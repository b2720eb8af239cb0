package voxel

import "testing"

func TestGridSetGet(t *testing.T) {
	g := NewGrid(ChunkWidth, ChunkHeight)

	blocks := []BlockType{Air, Grass, Dirt, Stone}
	coords := [][3]int{{0, 0, 0}, {15, 127, 15}, {3, 64, 9}, {15, 0, 0}}
	for _, c := range coords {
		for _, b := range blocks {
			if !g.Set(c[0], c[1], c[2], b) {
				t.Fatalf("Set(%v, %v) reported out of range", c, b)
			}
			if got := g.Get(c[0], c[1], c[2]); got != b {
				t.Errorf("Get(%v) = %v, want %v", c, got, b)
			}
		}
	}
}

func TestGridOutOfRange(t *testing.T) {
	g := NewGrid(ChunkWidth, ChunkHeight)
	g.Fill(Stone)

	outside := [][3]int{
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		{ChunkWidth, 0, 0}, {0, ChunkHeight, 0}, {0, 0, ChunkWidth},
	}
	for _, c := range outside {
		if g.Set(c[0], c[1], c[2], Dirt) {
			t.Errorf("Set(%v) should be a no-op", c)
		}
		if got := g.Get(c[0], c[1], c[2]); got != Air {
			t.Errorf("Get(%v) = %v, want air", c, got)
		}
	}

	if g.Count(Dirt) != 0 {
		t.Error("out of range Set leaked into the grid")
	}
	if g.Solid() != ChunkWidth*ChunkHeight*ChunkWidth {
		t.Errorf("Solid() = %d after Fill(Stone)", g.Solid())
	}
}

func TestGridRejectsUnknownBlock(t *testing.T) {
	g := NewGrid(4, 4)
	if g.Set(1, 1, 1, BlockType(200)) {
		t.Fatal("Set accepted an unregistered block id")
	}
	if g.Get(1, 1, 1) != Air {
		t.Error("unregistered id was stored")
	}
}

func TestGridEqualAndBytes(t *testing.T) {
	a := NewGrid(4, 8)
	b := NewGrid(4, 8)
	a.Set(1, 2, 3, Grass)
	if a.Equal(b) {
		t.Fatal("grids with different content compare equal")
	}
	b.Set(1, 2, 3, Grass)
	if !a.Equal(b) {
		t.Fatal("identical grids compare different")
	}

	raw := a.Bytes()
	raw[0] = byte(Stone)
	if a.Get(0, 0, 0) != Air {
		t.Error("Bytes must return a copy")
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}
	for _, c := range cases {
		if got := FloorDiv(c.a, c.b); got != c.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestChunkCoordNeighbor(t *testing.T) {
	c := ChunkCoord{2, 0, 5}
	if got := c.Neighbor(FaceLeft); got != (ChunkCoord{1, 0, 5}) {
		t.Errorf("Neighbor(-X) = %v", got)
	}
	if got := c.Neighbor(FaceFront); got != (ChunkCoord{2, 0, 6}) {
		t.Errorf("Neighbor(+Z) = %v", got)
	}
	if got := c.Neighbor(FaceTop); got != (ChunkCoord{2, 1, 5}) {
		t.Errorf("Neighbor(+Y) = %v", got)
	}
}

func TestLessCoord(t *testing.T) {
	if !LessCoord(ChunkCoord{0, 0, 5}, ChunkCoord{1, 0, 0}) {
		t.Error("X must order first")
	}
	if !LessCoord(ChunkCoord{1, 3, 0}, ChunkCoord{1, 0, 1}) {
		t.Error("Z must order before Y")
	}
	if LessCoord(ChunkCoord{1, 1, 1}, ChunkCoord{1, 1, 1}) {
		t.Error("equal coordinates are not less")
	}
}
