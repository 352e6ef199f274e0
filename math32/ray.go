// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Ray represents an oriented 3D line segment defined by an origin point and a direction vector.
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay creates and returns a pointer to a Ray object with
// the specified origin and direction vectors.
// The direction is normalized.
func NewRay(origin, dir Vector3) Ray {
	return Ray{Origin: origin, Dir: dir.Normal()}
}

func (ray Ray) String() string {
	return fmt.Sprintf("ray %v -> %v", ray.Origin, ray.Dir)
}

// IsValid returns whether the ray has a non-zero direction.
func (ray Ray) IsValid() bool {
	return !ray.Dir.IsNil()
}

// At calculates the point in the ray which is at the specified t distance from the origin
// along its direction.
func (ray Ray) At(t float32) Vector3 {
	return ray.Dir.MulScalar(t).Add(ray.Origin)
}

// IntersectBox calculates the point which is the intersection of this ray with the specified box.
// The second return value is false when there is no intersection.
func (ray Ray) IntersectBox(box Box3) (Vector3, bool) {
	tmin := -Infinity
	tmax := Infinity
	for dim := 0; dim < 3; dim++ {
		o := ray.Origin.Dim(dim)
		d := ray.Dir.Dim(dim)
		lo := box.Min.Dim(dim)
		hi := box.Max.Dim(dim)
		if d == 0 {
			if o < lo || o > hi {
				return Vector3{}, false
			}
			continue
		}
		inv := 1 / d
		t0 := (lo - o) * inv
		t1 := (hi - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = Max(tmin, t0)
		tmax = Min(tmax, t1)
		if tmin > tmax {
			return Vector3{}, false
		}
	}
	// box is behind the ray
	if tmax < 0 {
		return Vector3{}, false
	}
	if tmin >= 0 {
		return ray.At(tmin), true
	}
	return ray.At(tmax), true
}
