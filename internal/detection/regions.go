package detection

import (
	"image"
	"sort"

	"github.com/dfdean/imageLib/internal/imaging"
)

// Bounds represents a bounding box
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Region is a connected component of edge pixels.
type Region struct {
	Bounds     Bounds  `json:"bounds"`
	Centroid   Point   `json:"centroid"`
	PixelCount int     `json:"pixel_count"`
	FillColor  string  `json:"fill_color,omitempty"`
}

// RegionsResult contains extracted shape regions
type RegionsResult struct {
	Regions []Region `json:"regions"`
	Count   int      `json:"count"`
}

// minRegionPixels drops speckle components too small to be a shape.
const minRegionPixels = 10

// ExtractRegions groups 8-connected edge pixels of the luminance map into
// shape regions.
//
// Connectivity is resolved with a disjoint-set union over linear cell ids:
// the grid entry holds at most one component id, and merging two touching
// components is a single union. A Region reports summary stats only, not
// its pixel list. img supplies the sampled fill color at each region's centroid; it
// may be nil.
//
// Regions are returned largest first.
func ExtractRegions(img image.Image, lum *imaging.LuminanceMap, minPixels int) (*RegionsResult, error) {
	if lum == nil {
		return nil, ErrInvalidInput
	}
	if minPixels <= 0 {
		minPixels = minRegionPixels
	}
	width, height := lum.Dims()

	ds := newDisjointSet(width * height)

	// Union each edge pixel with its already-visited neighbors. Scanning in
	// raster order, those are the left neighbor and the three above.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !lum.IsEdge(x, y) {
				continue
			}
			id := y*width + x
			if x > 0 && lum.IsEdge(x-1, y) {
				ds.union(id, id-1)
			}
			if y > 0 {
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx >= 0 && nx < width && lum.IsEdge(nx, y-1) {
						ds.union(id, id-width+dx)
					}
				}
			}
		}
	}

	// Fold each component's pixels into its running stats.
	type stats struct {
		minX, minY, maxX, maxY int
		sumX, sumY             int
		count                  int
	}
	components := make(map[int]*stats)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !lum.IsEdge(x, y) {
				continue
			}
			root := ds.find(y*width + x)
			st, ok := components[root]
			if !ok {
				st = &stats{minX: x, minY: y, maxX: x, maxY: y}
				components[root] = st
			}
			if x < st.minX {
				st.minX = x
			}
			if x > st.maxX {
				st.maxX = x
			}
			if y < st.minY {
				st.minY = y
			}
			if y > st.maxY {
				st.maxY = y
			}
			st.sumX += x
			st.sumY += y
			st.count++
		}
	}

	regions := make([]Region, 0, len(components))
	for _, st := range components {
		if st.count < minPixels {
			continue
		}
		centroid := Point{X: st.sumX / st.count, Y: st.sumY / st.count}
		r := Region{
			Bounds:     Bounds{X1: st.minX, Y1: st.minY, X2: st.maxX, Y2: st.maxY},
			Centroid:   centroid,
			PixelCount: st.count,
		}
		if img != nil {
			r.FillColor = imaging.HexAt(img, centroid.X, centroid.Y)
		}
		regions = append(regions, r)
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].PixelCount > regions[j].PixelCount
	})

	return &RegionsResult{Regions: regions, Count: len(regions)}, nil
}

// disjointSet is a union-find over linear grid ids with path halving and
// union by size.
type disjointSet struct {
	parent []int32
	size   []int32
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{
		parent: make([]int32, n),
		size:   make([]int32, n),
	}
	for i := range ds.parent {
		ds.parent[i] = int32(i)
		ds.size[i] = 1
	}
	return ds
}

func (ds *disjointSet) find(id int) int {
	x := int32(id)
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return int(x)
}

func (ds *disjointSet) union(a, b int) {
	ra, rb := int32(ds.find(a)), int32(ds.find(b))
	if ra == rb {
		return
	}
	if ds.size[ra] < ds.size[rb] {
		ra, rb = rb, ra
	}
	ds.parent[rb] = ra
	ds.size[ra] += ds.size[rb]
}
