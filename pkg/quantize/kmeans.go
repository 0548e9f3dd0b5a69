package quantize

import (
	"math"
	"sort"
	"sync"

	"github.com/jmylchreest/tonal/pkg/argb"
)

// parallelThreshold is the histogram size below which the assignment step
// always runs on the calling goroutine.
const parallelThreshold = 4096

// point is a histogram entry in L*a*b* with its weight.
type point struct {
	lab    argb.Lab
	weight float64
}

func squaredDistance(a, b argb.Lab) float64 {
	dL := a.L - b.L
	dA := a.A - b.A
	dB := a.B - b.B
	return dL*dL + dA*dA + dB*dB
}

// centroidDistances returns the squared distance between every pair of
// centroids.
func centroidDistances(centroids []argb.Lab) [][]float64 {
	distances := make([][]float64, len(centroids))
	for i := range centroids {
		distances[i] = make([]float64, len(centroids))
	}
	for i := range centroids {
		for j := i + 1; j < len(centroids); j++ {
			d := squaredDistance(centroids[i], centroids[j])
			distances[i][j] = d
			distances[j][i] = d
		}
	}
	return distances
}

// nearest returns the index of the centroid closest to lab. Ties resolve to
// the lowest index. When previous is a valid cluster, centroids more than
// twice as far from it as lab is are skipped: by the triangle inequality
// they are strictly farther from lab than the previous centroid.
func nearest(lab argb.Lab, centroids []argb.Lab, distances [][]float64, previous int) int {
	limit := math.Inf(1)
	if previous >= 0 {
		limit = 4 * squaredDistance(lab, centroids[previous])
	}

	best := 0
	bestDistance := math.MaxFloat64
	for i, c := range centroids {
		if previous >= 0 && distances[previous][i] > limit {
			continue
		}
		if d := squaredDistance(lab, c); d < bestDistance {
			bestDistance = d
			best = i
		}
	}
	return best
}

// Refine runs a population-weighted k-means over the histogram in CIE
// L*a*b*, starting from seeds. Clusters that end up empty are dropped and
// representatives that land on the same packed colour are merged.
func Refine(h Histogram, seeds []argb.Color, opts Options) Result {
	if h.Len() == 0 || len(seeds) == 0 {
		return nil
	}

	points := make([]point, h.Len())
	for i, e := range h.entries {
		points[i] = point{lab: e.Color.Lab(), weight: float64(e.Population)}
	}

	centroids := make([]argb.Lab, len(seeds))
	for i, s := range seeds {
		centroids[i] = s.Lab()
	}

	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	maxIterations := max(opts.MaxIterations, 1)
	for iter := 0; iter < maxIterations; iter++ {
		// Assign each point to its nearest centroid
		changed := assign(points, centroids, assignments, opts.Workers)
		if changed == 0 {
			break
		}

		// Move each non-empty centroid to the weighted mean of its points
		sums := make([]argb.Lab, len(centroids))
		weights := make([]float64, len(centroids))
		for i, p := range points {
			cluster := assignments[i]
			sums[cluster].L += p.lab.L * p.weight
			sums[cluster].A += p.lab.A * p.weight
			sums[cluster].B += p.lab.B * p.weight
			weights[cluster] += p.weight
		}
		for i := range centroids {
			if weights[i] == 0 {
				continue
			}
			centroids[i] = argb.Lab{
				L: sums[i].L / weights[i],
				A: sums[i].A / weights[i],
				B: sums[i].B / weights[i],
			}
		}
	}

	return collect(h, centroids, assignments)
}

// assign updates assignments in place and returns how many changed. Large
// inputs are split across workers; each worker owns a disjoint range, so the
// outcome matches a sequential pass.
func assign(points []point, centroids []argb.Lab, assignments []int, workers int) int {
	distances := centroidDistances(centroids)
	if workers < 2 || len(points) < parallelThreshold {
		return assignRange(points, centroids, distances, assignments, 0, len(points))
	}

	workers = min(workers, len(points))
	changes := make([]int, workers)

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		start, end := splitRange(len(points), workers, worker)
		wg.Add(1)
		go func(workerIndex, start, end int) {
			defer wg.Done()
			changes[workerIndex] = assignRange(points, centroids, distances, assignments, start, end)
		}(worker, start, end)
	}
	wg.Wait()

	total := 0
	for _, c := range changes {
		total += c
	}
	return total
}

func assignRange(points []point, centroids []argb.Lab, distances [][]float64, assignments []int, start, end int) int {
	changed := 0
	for i := start; i < end; i++ {
		n := nearest(points[i].lab, centroids, distances, assignments[i])
		if assignments[i] != n {
			assignments[i] = n
			changed++
		}
	}
	return changed
}

// splitRange returns the half-open range of length handled by workerIndex
// when length items are shared between workers.
func splitRange(length, workers, workerIndex int) (int, int) {
	chunkSize := length / workers
	remainder := length % workers
	start := workerIndex*chunkSize + min(workerIndex, remainder)
	end := start + chunkSize
	if workerIndex < remainder {
		end++
	}
	return start, end
}

// collect turns cluster assignments into a Result.
func collect(h Histogram, centroids []argb.Lab, assignments []int) Result {
	type cluster struct {
		color      argb.Color
		population int
		first      int
	}

	clusters := make([]cluster, 0, len(centroids))
	byColor := make(map[argb.Color]int, len(centroids))
	byCentroid := make([]int, len(centroids))
	for i := range byCentroid {
		byCentroid[i] = -1
	}

	// Entries are visited in first appearance order, so the first entry
	// seen for a cluster fixes its tie-break position.
	for i, e := range h.entries {
		c := assignments[i]
		idx := byCentroid[c]
		if idx < 0 {
			color := argb.FromLab(centroids[c])
			if existing, ok := byColor[color]; ok {
				idx = existing
			} else {
				idx = len(clusters)
				clusters = append(clusters, cluster{color: color, first: i})
				byColor[color] = idx
			}
			byCentroid[c] = idx
		}
		clusters[idx].population += e.Population
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].population != clusters[j].population {
			return clusters[i].population > clusters[j].population
		}
		return clusters[i].first < clusters[j].first
	})

	result := make(Result, len(clusters))
	for i, c := range clusters {
		result[i] = QuantizedColor{Color: c.color, Population: c.population}
	}
	return result
}
