package path

import (
	"container/heap"
	"math"
)

/*
function Dijkstra(Graph, source):
      dist[source] ← 0
      create vertex priority queue Q
      Q.add_with_priority(source, 0)

      while Q is not empty:
          u ← Q.extract_min()
          if u was settled before: continue
          for each neighbor v of u:
              alt ← dist[u] + Graph.Edges(u, v)
              if alt < dist[v]:
                  dist[v] ← alt
                  prev[v] ← u
                  Q.add_with_priority(v, alt)

      return dist, prev
*/

type DijkstraSource[T any] interface {
	GetNeighbors(node T) []T
	GetCost(currentNode T, neighbor T) float64
}

// Dijkstra settles every node reachable from source within maxCost.
// Stale queue entries are skipped when popped instead of being decreased in place.
func Dijkstra[T comparable](source T, maxCost float64, dataSource DijkstraSource[T]) (dist map[T]float64, prev map[T]T) {
	dist = make(map[T]float64)
	prev = make(map[T]T)
	settled := make(map[T]bool)
	dist[source] = 0
	getDist := func(n T) float64 {
		if d, ok := dist[n]; ok {
			return d
		}
		return math.MaxFloat64
	}

	Q := NewPriorityQueue([]PathNode[T]{NewNode(source)})
	for Q.Len() > 0 {
		current := heap.Pop(&Q).(PathNode[T]).GetValue()
		if settled[current] {
			continue
		}
		settled[current] = true
		for _, neighbor := range dataSource.GetNeighbors(current) {
			if settled[neighbor] {
				continue
			}
			neighborDist := getDist(current) + dataSource.GetCost(current, neighbor)
			if neighborDist <= maxCost && neighborDist < getDist(neighbor) {
				dist[neighbor] = neighborDist
				prev[neighbor] = current
				node := NewNode(neighbor)
				node.SetPriority(neighborDist)
				heap.Push(&Q, node)
			}
		}
	}
	return
}

// Backtrack follows prev from end to start and returns the nodes after start.
func Backtrack[T comparable](prev map[T]T, start, end T) ([]T, bool) {
	if start == end {
		return []T{}, true
	}
	var reversed []T
	current := end
	for current != start {
		reversed = append(reversed, current)
		next, ok := prev[current]
		if !ok {
			return nil, false
		}
		current = next
	}
	points := make([]T, len(reversed))
	for i, node := range reversed {
		points[len(reversed)-1-i] = node
	}
	return points, true
}
