package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ImageSink receives the final pixel colors. It is the renderer's only
// output boundary; the core never touches files or pixel encodings. Each
// channel handed to SetPixel is already clamped to [0, 1].
type ImageSink interface {
	Width() int
	Height() int
	SetPixel(x, y int, color core.Vec3)
}

// RGBAImage adapts an in-memory RGBA image to the ImageSink interface
type RGBAImage struct {
	img *image.RGBA
}

// NewRGBAImage creates an RGBA sink with the given dimensions
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the image width
func (r *RGBAImage) Width() int { return r.img.Rect.Dx() }

// Height returns the image height
func (r *RGBAImage) Height() int { return r.img.Rect.Dy() }

// SetPixel writes a clamped color to the underlying image
func (r *RGBAImage) SetPixel(x, y int, c core.Vec3) {
	r.img.SetRGBA(x, y, color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	})
}

// Image returns the underlying RGBA image
func (r *RGBAImage) Image() *image.RGBA { return r.img }

// Config contains frame-driver configuration
type Config struct {
	TileSize   int // Size of each tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0,
	}
}

// TileUpdate describes a completed tile for progress callbacks
type TileUpdate struct {
	TileX, TileY int             // Tile coordinates (not pixel coordinates)
	Bounds       image.Rectangle // Pixel bounds of the completed tile
	TileNumber   int             // 1-based completion counter
	TotalTiles   int             // Total number of tiles in the image
}

// Renderer drives a full frame: it partitions the image into tiles, renders
// them on a worker pool and writes averaged, clamped pixels to the sink. The
// scene must not be mutated while Render runs.
type Renderer struct {
	scene  *scene.Scene
	config Config
	logger core.Logger
}

// NewRenderer creates a frame driver for the scene
func NewRenderer(s *scene.Scene, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{scene: s, config: config, logger: logger}
}

// Render renders the whole frame into the sink
func (r *Renderer) Render(ctx context.Context, sink ImageSink) (RenderStats, error) {
	return r.render(ctx, sink, nil)
}

// RenderWithTileUpdates renders the frame, invoking onTile from a single
// goroutine as each tile completes
func (r *Renderer) RenderWithTileUpdates(ctx context.Context, sink ImageSink, onTile func(TileUpdate)) (RenderStats, error) {
	return r.render(ctx, sink, onTile)
}

func (r *Renderer) render(ctx context.Context, sink ImageSink, onTile func(TileUpdate)) (RenderStats, error) {
	width, height := sink.Width(), sink.Height()
	if width <= 0 || height <= 0 {
		return RenderStats{}, fmt.Errorf("image sink must have positive dimensions, got %dx%d", width, height)
	}

	startTime := time.Now()
	camera := NewCamera(width, height, r.scene.Options)
	tiles := NewTileGrid(width, height, r.config.TileSize)

	pool := newWorkerPool(r.config.NumWorkers, len(tiles))
	r.logger.Printf("Rendering %dx%d (%d tiles, %d workers, %dx%d samples/pixel)\n",
		width, height, len(tiles), pool.numWorkers,
		r.scene.Options.AntiAliasing, r.scene.Options.AntiAliasing)

	pool.start(func(task tileTask) tileResult {
		// Cancellation is honored between tiles, never inside the kernel
		select {
		case <-ctx.Done():
			return tileResult{taskID: task.taskID, err: ctx.Err()}
		default:
		}
		samples := r.renderTile(task.tile, camera, sink)
		return tileResult{taskID: task.taskID, samples: samples}
	})

	for id, tile := range tiles {
		pool.submit(tileTask{taskID: id, tile: tile})
	}

	stats := RenderStats{TotalPixels: width * height}
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result := pool.result()
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		stats.TotalSamples += result.samples

		// Callbacks run on this goroutine only. The result-channel receive
		// orders the finished tile's SetPixel calls before the callback, so
		// reading the sink inside update.Bounds is safe; pixels outside the
		// bounds may still be written by other workers.
		if onTile != nil {
			bounds := tiles[result.taskID].Bounds
			onTile(TileUpdate{
				TileX:      bounds.Min.X / r.config.TileSize,
				TileY:      bounds.Min.Y / r.config.TileSize,
				Bounds:     bounds,
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}
	pool.stop()

	if firstErr != nil {
		return RenderStats{}, firstErr
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.Elapsed = time.Since(startTime)
	r.logger.Printf("Render completed in %v (%.1f samples/pixel)\n", stats.Elapsed, stats.AverageSamples)
	return stats, nil
}

// renderTile traces every pixel in the tile's bounds, averaging the N×N
// sub-samples and clamping before the sink write. Each tile gets its own
// tracer so random state is never shared between workers.
func (r *Renderer) renderTile(tile *Tile, camera *Camera, sink ImageSink) int {
	sampler := core.NewRandomSampler(tile.Random)
	tr := tracer.New(r.scene, sampler)

	aa := r.scene.Options.AntiAliasing
	invSamples := 1.0 / float64(aa*aa)
	samples := 0

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			var accum core.Vec3
			for j := 1; j <= aa; j++ {
				for i := 1; i <= aa; i++ {
					ray := camera.GetRay(x, y, i, j, sampler)
					accum = accum.Add(tr.Trace(ray, 0))
					samples++
				}
			}
			sink.SetPixel(x, y, accum.Multiply(invSamples).Clamp(0, 1))
		}
	}

	return samples
}
