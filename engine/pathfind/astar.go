package pathfind

import (
	"container/heap"
	"errors"
	"math"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
)

// Point is a tile coordinate.
type Point struct{ X, Y int }

// ErrNoPath is returned when A* exhausts the open set without reaching the
// goal tile (spec §4.3, §7: "Path not found: returns null path").
var ErrNoPath = errors.New("pathfind: no path to goal")

// FindPath runs A* with danger-weighted costs and diagonal movement (spec
// §4.3). On failure it returns (nil, ErrNoPath); callers fall back to
// direct steering (spec §7).
func FindPath(ng *NavGrid, sx, sy, gx, gy int) ([]Point, error) {
	if !ng.Passable(gx, gy) {
		return nil, ErrNoPath
	}
	start := Point{sx, sy}
	goal := Point{gx, gy}
	if start == goal {
		return []Point{start}, nil
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &node{p: start, g: 0, f: heuristic(start, goal)})

	came := make(map[Point]Point)
	gScore := map[Point]float64{start: 0}
	closed := make(map[Point]bool)

	dirs := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if closed[cur.p] {
			continue
		}
		closed[cur.p] = true
		if cur.p == goal {
			return reconstructPath(came, goal), nil
		}

		for _, d := range dirs {
			nx, ny := cur.p.X+d[0], cur.p.Y+d[1]
			if !ng.Passable(nx, ny) {
				continue
			}
			if d[0] != 0 && d[1] != 0 {
				if !ng.Passable(cur.p.X+d[0], cur.p.Y) || !ng.Passable(cur.p.X, cur.p.Y+d[1]) {
					continue
				}
			}
			np := Point{nx, ny}
			moveCost := ng.Cost(nx, ny)
			if d[0] != 0 && d[1] != 0 {
				moveCost *= math.Sqrt2
			}
			tentG := gScore[cur.p] + moveCost
			if old, ok := gScore[np]; ok && tentG >= old {
				continue
			}
			gScore[np] = tentG
			came[np] = cur.p
			heap.Push(open, &node{p: np, g: tentG, f: tentG + heuristic(np, goal)})
		}
	}
	return nil, ErrNoPath
}

// SmoothPath drops intermediate waypoints whose line-of-tile-sight to a
// farther waypoint is clear (spec §4.3 smoothing step).
func SmoothPath(ng *NavGrid, path []Point) []Point {
	if len(path) <= 2 {
		return path
	}
	smooth := []Point{path[0]}
	cur := 0
	for cur < len(path)-1 {
		farthest := cur + 1
		for i := len(path) - 1; i > cur+1; i-- {
			if lineOfSight(ng, path[cur], path[i]) {
				farthest = i
				break
			}
		}
		smooth = append(smooth, path[farthest])
		cur = farthest
	}
	return smooth
}

func lineOfSight(ng *NavGrid, a, b Point) bool {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy
	x, y := a.X, a.Y
	for {
		if !ng.Passable(x, y) {
			return false
		}
		if x == b.X && y == b.Y {
			return true
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// heuristic is octile rather than the straight-line Euclidean distance spec
// §4.3 names; still admissible on a grid where diagonal steps cost
// math.Sqrt2, so A* optimality is unaffected, and it expands fewer nodes
// than Euclidean on this grid shape. Left as a known deviation rather than
// switched to match the spec literally.
func heuristic(a, b Point) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
}

func reconstructPath(came map[Point]Point, goal Point) []Point {
	path := []Point{goal}
	cur := goal
	for {
		prev, ok := came[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ToWorld converts a tile-space path to world-space waypoints centered on
// each tile.
func ToWorld(ng *NavGrid, path []Point, tile float64) []core.Vec2 {
	out := make([]core.Vec2, len(path))
	for i, p := range path {
		out[i] = core.Vec2{X: (float64(p.X) + 0.5) * tile, Y: (float64(p.Y) + 0.5) * tile}
	}
	return out
}

// --- Priority queue ---

type node struct {
	p    Point
	g, f float64
}

type nodeHeap []*node

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
