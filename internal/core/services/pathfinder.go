// Package services implements the engine's core behaviour behind the
// driving ports: pathfinding, route conversion, clash detection,
// compliance evaluation, cost estimation, and version history.
package services

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driving"
	"github.com/sitewire-labs/cableroute/internal/logger"
)

// Ensure GridPathfinder implements the interface.
var _ driving.Pathfinder = (*GridPathfinder)(nil)

// diagonalPenalty biases search towards orthogonal, trunking-friendly
// runs over diagonal shortcuts.
const diagonalPenalty = 1.4

// defaultMaxNodes caps search on a single-floor plane. Hitting the cap
// is treated the same as exhausting the open set.
const defaultMaxNodes = 200000

// GridPathfinder runs A* over an implicit grid covering the routing
// plane. All search state is local to one FindPath call, so a single
// instance is safe for concurrent use.
type GridPathfinder struct {
	width     float64
	height    float64
	gridSize  float64
	obstacles []driving.Obstacle
	maxNodes  int
}

// NewGridPathfinder creates a pathfinder for a plane of the given
// bounds. A non-positive gridSize falls back to the default of 50.
func NewGridPathfinder(width, height float64, obstacles []driving.Obstacle, gridSize float64) *GridPathfinder {
	if gridSize <= 0 {
		gridSize = 50
	}
	return &GridPathfinder{
		width:     width,
		height:    height,
		gridSize:  gridSize,
		obstacles: obstacles,
		maxNodes:  defaultMaxNodes,
	}
}

// gridNode is one search state. Costs are float64 because diagonal
// steps are not integer multiples of the grid size.
type gridNode struct {
	x, y   float64
	gCost  float64
	hCost  float64
	fCost  float64
	parent *gridNode
	index  int
}

// cellKey identifies a grid cell for map lookups.
type cellKey struct {
	col, row int
}

// nodeQueue is a priority queue of search states.
type nodeQueue []*gridNode

func (nq nodeQueue) Len() int { return len(nq) }

func (nq nodeQueue) Less(i, j int) bool {
	if nq[i].fCost != nq[j].fCost {
		return nq[i].fCost < nq[j].fCost
	}
	// Tie-break on heuristic, then coordinates, so equal-cost pops are
	// deterministic across runs.
	if nq[i].hCost != nq[j].hCost {
		return nq[i].hCost < nq[j].hCost
	}
	if nq[i].x != nq[j].x {
		return nq[i].x < nq[j].x
	}
	return nq[i].y < nq[j].y
}

func (nq nodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].index = i
	nq[j].index = j
}

func (nq *nodeQueue) Push(x any) {
	node := x.(*gridNode)
	node.index = len(*nq)
	*nq = append(*nq, node)
}

func (nq *nodeQueue) Pop() any {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*nq = old[:n-1]
	return node
}

// neighbourOffsets are the 8 grid directions: N, E, S, W and the four
// diagonals, as unit cell steps.
var neighbourOffsets = [8][2]float64{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// FindPath computes an obstacle-avoiding polyline from start to end.
// Start and end are snapped to the grid before searching; returned
// points lie on the plane with Z = 0. If the search exhausts without
// reaching the end, the direct two-point line is returned instead of
// an error.
func (p *GridPathfinder) FindPath(_ context.Context, start, end domain.Point3D) ([]domain.Point3D, error) {
	if !p.inBounds(start.X, start.Y) || !p.inBounds(end.X, end.Y) {
		return nil, fmt.Errorf("pathfinding from (%g,%g) to (%g,%g): %w",
			start.X, start.Y, end.X, end.Y, domain.ErrOutOfBounds)
	}

	sx, sy := p.snap(start.X), p.snap(start.Y)
	ex, ey := p.snap(end.X), p.snap(end.Y)
	endKey := p.key(ex, ey)

	openSet := &nodeQueue{}
	heap.Init(openSet)
	closedSet := make(map[cellKey]bool)
	nodeMap := make(map[cellKey]*gridNode)

	startNode := &gridNode{x: sx, y: sy, hCost: euclidean(sx, sy, ex, ey)}
	startNode.fCost = startNode.hCost
	heap.Push(openSet, startNode)
	nodeMap[p.key(sx, sy)] = startNode

	nodesExplored := 0

	for openSet.Len() > 0 {
		nodesExplored++
		if nodesExplored > p.maxNodes {
			break
		}

		current := heap.Pop(openSet).(*gridNode)
		currentKey := p.key(current.x, current.y)

		if currentKey == endKey {
			return domain.SimplifyCollinear(reconstruct(current)), nil
		}

		closedSet[currentKey] = true

		for i, offset := range neighbourOffsets {
			nx := current.x + offset[0]*p.gridSize
			ny := current.y + offset[1]*p.gridSize
			neighbourKey := p.key(nx, ny)

			if closedSet[neighbourKey] {
				continue
			}
			if !p.inBounds(nx, ny) || p.blocked(nx, ny) {
				continue
			}

			stepCost := euclidean(current.x, current.y, nx, ny)
			if i >= 4 {
				stepCost *= diagonalPenalty
			}
			tentativeG := current.gCost + stepCost

			existing, seen := nodeMap[neighbourKey]
			if !seen {
				node := &gridNode{
					x:      nx,
					y:      ny,
					gCost:  tentativeG,
					hCost:  euclidean(nx, ny, ex, ey),
					parent: current,
				}
				node.fCost = node.gCost + node.hCost
				heap.Push(openSet, node)
				nodeMap[neighbourKey] = node
			} else if tentativeG < existing.gCost {
				existing.gCost = tentativeG
				existing.fCost = existing.gCost + existing.hCost
				existing.parent = current
				heap.Fix(openSet, existing.index)
			}
		}
	}

	// No obstacle-free path: fall back to the direct line. The caller
	// flags a direct line through an obstacle as a downstream clash.
	logger.Debug("no routable path from (%g,%g) to (%g,%g), returning direct line", start.X, start.Y, end.X, end.Y)
	return []domain.Point3D{
		{X: start.X, Y: start.Y},
		{X: end.X, Y: end.Y},
	}, nil
}

// snap rounds a coordinate to the nearest grid-aligned value.
func (p *GridPathfinder) snap(v float64) float64 {
	return math.Round(v/p.gridSize) * p.gridSize
}

// key maps a grid-aligned coordinate to its cell.
func (p *GridPathfinder) key(x, y float64) cellKey {
	return cellKey{
		col: int(math.Round(x / p.gridSize)),
		row: int(math.Round(y / p.gridSize)),
	}
}

func (p *GridPathfinder) inBounds(x, y float64) bool {
	return x >= 0 && x <= p.width && y >= 0 && y <= p.height
}

func (p *GridPathfinder) blocked(x, y float64) bool {
	for _, obs := range p.obstacles {
		if obs.Contains(x, y) {
			return true
		}
	}
	return false
}

func euclidean(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// reconstruct walks parent pointers from the goal back to the start
// and returns the path in travel order.
func reconstruct(goal *gridNode) []domain.Point3D {
	var points []domain.Point3D
	for node := goal; node != nil; node = node.parent {
		points = append(points, domain.Point3D{X: node.x, Y: node.y})
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points
}
