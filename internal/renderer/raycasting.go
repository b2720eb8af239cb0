package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit is the nearest surface a ray touched. Point and Normal are what an edit
// request needs.
type Hit struct {
	Model    *Model
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// RayIntersectSphere tests if a ray intersects a sphere
// Returns: (intersected, distance, intersection point)
func RayIntersectSphere(ray Ray, sphereCenter mgl32.Vec3, radius float32) (bool, float32, mgl32.Vec3) {
	oc := ray.Origin.Sub(sphereCenter)

	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false, 0, mgl32.Vec3{}
	}

	sqrtDisc := float32(math.Sqrt(float64(discriminant)))
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	// Smallest non-negative t; an origin inside the sphere counts as a hit at 0.
	var t float32
	switch {
	case t1 >= 0:
		t = t1
	case t2 >= 0:
		t = 0
	default:
		return false, 0, mgl32.Vec3{}
	}

	return true, t, ray.At(t)
}

// RayIntersectModel tests if a ray intersects a model using bounding sphere
func RayIntersectModel(ray Ray, model *Model) (bool, float32, mgl32.Vec3) {
	return RayIntersectSphere(ray, model.BoundingSphereCenter, model.BoundingSphereRadius)
}

// RayIntersectTriangle tests if a ray intersects a triangle
// Returns: (intersected, distance, intersection point)
// Uses Möller-Trumbore algorithm
func RayIntersectTriangle(ray Ray, v0, v1, v2 mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	const epsilon = 0.0000001

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -epsilon && a < epsilon {
		return false, 0, mgl32.Vec3{} // Ray is parallel to triangle
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	t := f * edge2.Dot(q)
	if t > epsilon {
		return true, t, ray.At(t)
	}

	return false, 0, mgl32.Vec3{} // Line intersection but not ray intersection
}

// RaycastModel returns the nearest triangle of model hit within maxDist.
func RaycastModel(ray Ray, model *Model, maxDist float32) (Hit, bool) {
	best := Hit{Distance: maxDist}
	found := false

	for i := 0; i+2 < len(model.Faces); i += 3 {
		i0, i1, i2 := int(model.Faces[i]), int(model.Faces[i+1]), int(model.Faces[i+2])
		ok, t, p := RayIntersectTriangle(ray, model.WorldVertex(i0), model.WorldVertex(i1), model.WorldVertex(i2))
		if !ok || t > best.Distance {
			continue
		}
		best = Hit{
			Model:    model,
			Distance: t,
			Point:    p,
			Normal:   model.Normal(i0),
		}
		found = true
	}
	return best, found
}

// Raycast returns the nearest surface of any model in the scene hit within
// maxDist of the ray origin. Direction need not be normalised; distances are
// measured in multiples of it.
func (s *Scene) Raycast(ray Ray, maxDist float32) (Hit, bool) {
	var best Hit
	found := false

	for _, m := range s.Models() {
		ok, t, _ := RayIntersectModel(ray, m)
		if !ok || t > maxDist {
			continue
		}
		if found && t > best.Distance {
			continue
		}
		limit := maxDist
		if found {
			limit = best.Distance
		}
		if hit, ok := RaycastModel(ray, m, limit); ok {
			best = hit
			found = true
		}
	}
	return best, found
}
