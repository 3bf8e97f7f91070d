package renderer

import (
	"image"
	"math/rand"
	"runtime"
	"sync"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	// Deterministic generator derived from the tile ID; +42 avoids seed 0
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(int64(id + 42))),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// tileTask is a unit of work for the worker pool
type tileTask struct {
	taskID int
	tile   *Tile
}

// tileResult carries the outcome of rendering one tile
type tileResult struct {
	taskID  int
	samples int
	err     error
}

// workerPool renders tiles in parallel. Tiles have disjoint bounds, so
// workers write to the image sink without locking.
type workerPool struct {
	taskQueue   chan tileTask
	resultQueue chan tileResult
	numWorkers  int
	wg          sync.WaitGroup
}

// newWorkerPool creates a pool; numWorkers <= 0 uses the CPU count
func newWorkerPool(numWorkers, queueSize int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &workerPool{
		taskQueue:   make(chan tileTask, queueSize),
		resultQueue: make(chan tileResult, queueSize),
		numWorkers:  numWorkers,
	}
}

// start launches the workers, each applying render to tasks as they arrive
func (wp *workerPool) start(render func(tileTask) tileResult) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go func() {
			defer wp.wg.Done()
			for task := range wp.taskQueue {
				wp.resultQueue <- render(task)
			}
		}()
	}
}

// submit queues a tile task
func (wp *workerPool) submit(task tileTask) {
	wp.taskQueue <- task
}

// result retrieves one completed tile result
func (wp *workerPool) result() tileResult {
	return <-wp.resultQueue
}

// stop closes the task queue and waits for the workers to drain it
func (wp *workerPool) stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}
