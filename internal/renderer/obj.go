package renderer

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes model as a Wavefront OBJ in world space. Each vertex shares
// its index across v, vt and vn.
func WriteOBJ(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "o %s\n", model.Name)
	if model.Material != nil && model.Material.Name != "" {
		fmt.Fprintf(bw, "usemtl %s\n", model.Material.Name)
	}
	for i := 0; i < model.VertexCount(); i++ {
		v := model.WorldVertex(i)
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for i := 0; i+1 < len(model.TextureCoords); i += 2 {
		fmt.Fprintf(bw, "vt %g %g\n", model.TextureCoords[i], model.TextureCoords[i+1])
	}
	for i := 0; i+2 < len(model.Normals); i += 3 {
		fmt.Fprintf(bw, "vn %g %g %g\n", model.Normals[i], model.Normals[i+1], model.Normals[i+2])
	}
	// .obj indices start at 1
	for i := 0; i+2 < len(model.Faces); i += 3 {
		a, b, c := model.Faces[i]+1, model.Faces[i+1]+1, model.Faces[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}
