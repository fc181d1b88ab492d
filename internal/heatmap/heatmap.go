// Package heatmap turns the simulation's node list into map-ready data: a GeoJSON
// stress overlay and a coarse zone grid for the 3D skyline view.
package heatmap

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/etwin/twinboard/internal/models"
)

var (
	ErrInvalidCellSize = errors.New("cell size must be between 1e-6 and 180 degrees")
	ErrInvalidZones    = errors.New("zone count must be between 1 and 64")
)

const (
	maxZones   = 64
	minCellDeg = 1e-6
	maxCellDeg = 180
)

type cellKey struct {
	row, col int
}

type cell struct {
	bound     orb.Bound
	count     int
	sumStress float64
	maxStress float64
}

// Overlay bins nodes into a cellDeg x cellDeg lat/lon grid. The collection holds
// one Point feature per node and one Polygon feature per occupied cell. Every
// feature carries a "weight" in [0,1] relative to the most stressed node or cell.
func Overlay(nodes []models.NodeReading, cellDeg float64) (*geojson.FeatureCollection, error) {
	// also rejects NaN and Inf
	if !(cellDeg >= minCellDeg && cellDeg <= maxCellDeg) {
		return nil, ErrInvalidCellSize
	}
	fc := geojson.NewFeatureCollection()
	if len(nodes) == 0 {
		return fc, nil
	}

	cells := make(map[cellKey]*cell)
	var order []cellKey
	maxNode := 0.0
	for _, n := range nodes {
		maxNode = math.Max(maxNode, n.Stress)

		key := cellKey{
			row: int(math.Floor(n.Lat / cellDeg)),
			col: int(math.Floor(n.Lon / cellDeg)),
		}
		c, ok := cells[key]
		if !ok {
			sw := orb.Point{float64(key.col) * cellDeg, float64(key.row) * cellDeg}
			c = &cell{bound: orb.Bound{Min: sw, Max: orb.Point{sw[0] + cellDeg, sw[1] + cellDeg}}}
			cells[key] = c
			order = append(order, key)
		}
		c.count++
		c.sumStress += n.Stress
		c.maxStress = math.Max(c.maxStress, n.Stress)
	}

	maxCell := 0.0
	for _, c := range cells {
		maxCell = math.Max(maxCell, c.sumStress/float64(c.count))
	}

	for _, key := range order {
		c := cells[key]
		mean := c.sumStress / float64(c.count)
		f := geojson.NewFeature(c.bound.ToPolygon())
		f.Properties["kind"] = "cell"
		f.Properties["row"] = key.row
		f.Properties["col"] = key.col
		f.Properties["count"] = c.count
		f.Properties["mean_stress"] = round4(mean)
		f.Properties["max_stress"] = round4(c.maxStress)
		f.Properties["weight"] = normalize(mean, maxCell)
		fc.Append(f)
	}

	for _, n := range nodes {
		f := geojson.NewFeature(orb.Point{n.Lon, n.Lat})
		f.ID = n.ID
		f.Properties["kind"] = "node"
		f.Properties["stress"] = n.Stress
		f.Properties["emissions"] = n.Emissions
		f.Properties["vulnerability"] = n.Vulnerability
		f.Properties["weight"] = normalize(n.Stress, maxNode)
		fc.Append(f)
	}
	return fc, nil
}

// Zone is one tile of the skyline grid.
type Zone struct {
	Row               int     `json:"row"`
	Col               int     `json:"col"`
	MinLat            float64 `json:"min_lat"`
	MinLon            float64 `json:"min_lon"`
	MaxLat            float64 `json:"max_lat"`
	MaxLon            float64 `json:"max_lon"`
	Count             int     `json:"count"`
	MeanStress        float64 `json:"mean_stress"`
	MeanEmissions     float64 `json:"mean_emissions"`
	MeanVulnerability float64 `json:"mean_vulnerability"`
	Height            float64 `json:"height"`
}

// Zones splits the nodes' bounding box into n x n tiles, row-major from the
// south-west corner. Height is the tile's mean stress relative to the most
// stressed tile; empty tiles are flat.
func Zones(nodes []models.NodeReading, n int) ([]Zone, error) {
	if n < 1 || n > maxZones {
		return nil, ErrInvalidZones
	}
	if len(nodes) == 0 {
		return []Zone{}, nil
	}

	mp := make(orb.MultiPoint, 0, len(nodes))
	for _, node := range nodes {
		mp = append(mp, orb.Point{node.Lon, node.Lat})
	}
	box := mp.Bound()
	lonStep := (box.Max[0] - box.Min[0]) / float64(n)
	latStep := (box.Max[1] - box.Min[1]) / float64(n)

	zones := make([]Zone, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			zones[r*n+c] = Zone{
				Row:    r,
				Col:    c,
				MinLat: box.Min[1] + float64(r)*latStep,
				MinLon: box.Min[0] + float64(c)*lonStep,
				MaxLat: box.Min[1] + float64(r+1)*latStep,
				MaxLon: box.Min[0] + float64(c+1)*lonStep,
			}
		}
	}

	for _, node := range nodes {
		r := index(node.Lat, box.Min[1], latStep, n)
		c := index(node.Lon, box.Min[0], lonStep, n)
		z := &zones[r*n+c]
		z.Count++
		z.MeanStress += node.Stress
		z.MeanEmissions += node.Emissions
		z.MeanVulnerability += node.Vulnerability
	}

	maxStress := 0.0
	for i := range zones {
		z := &zones[i]
		if z.Count == 0 {
			continue
		}
		k := float64(z.Count)
		z.MeanStress = round4(z.MeanStress / k)
		z.MeanEmissions = round4(z.MeanEmissions / k)
		z.MeanVulnerability = round4(z.MeanVulnerability / k)
		maxStress = math.Max(maxStress, z.MeanStress)
	}
	for i := range zones {
		zones[i].Height = normalize(zones[i].MeanStress, maxStress)
	}
	return zones, nil
}

// index maps v onto one of n steps starting at origin; the upper edge belongs to the last step.
func index(v, origin, step float64, n int) int {
	if step <= 0 {
		return 0
	}
	i := int((v - origin) / step)
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func normalize(v, top float64) float64 {
	if top <= 0 {
		return 0
	}
	return round4(math.Min(1, math.Max(0, v/top)))
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
