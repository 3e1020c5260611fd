package collision

import "github.com/andrerochasouza/view3d/geom"

// Slide removes the component of m along the normal n.
func Slide(m, n geom.Vector3) geom.Vector3 {
	return m.Sub(n.Mul(m.Dot(n)))
}

// Slider moves a sphere of the given radius through static obstacles without
// mass or impulses: a blocked move is retried once along the contact plane
// and otherwise dropped.
type Slider struct {
	Radius    float64
	Obstacles []Collider
}

// Overlap returns the first obstacle contact for a sphere at pos.
func (s *Slider) Overlap(pos geom.Vector3) Info {
	probe := Sphere{Center: pos, Radius: s.Radius}
	for _, o := range s.Obstacles {
		if info := Check(&probe, o); info.Hit {
			return info
		}
	}
	return Info{}
}

// Move returns where the sphere ends up after trying to move by m from pos,
// and the contact that blocked the requested move (Hit false when free).
// Only contacts that oppose the motion block it, so a sphere resting on a
// floor can still move along it.
func (s *Slider) Move(pos, m geom.Vector3) (geom.Vector3, Info) {
	target := pos.Add(m)
	hit := s.blocking(target, m)
	if !hit.Hit {
		return target, Info{}
	}

	along := Slide(m, hit.Normal)
	slid := pos.Add(along)
	if !s.blocking(slid, along).Hit {
		return slid, hit
	}
	return pos, hit
}

func (s *Slider) blocking(pos, m geom.Vector3) Info {
	probe := Sphere{Center: pos, Radius: s.Radius}
	for _, o := range s.Obstacles {
		if info := Check(&probe, o); info.Hit && info.Normal.Dot(m) < 0 {
			return info
		}
	}
	return Info{}
}
