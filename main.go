package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'cornell'")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	aa := flag.Int("aa", 0, "Anti-aliasing grid size (0 = scene default)")
	ambient := flag.Bool("ambient", false, "Enable ambient global illumination")
	workers := flag.Int("workers", 0, "Number of render workers (0 = CPU count)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default - Default scene with spheres and plane ground")
		fmt.Println("  cornell - Cornell box scene with triangle walls")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting Whitted Raytracer...")

	// Create scene based on command line argument
	selectedScene, defaultWidth, defaultHeight, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Unknown scene type: %s. Using default scene.\n", *sceneType)
		*sceneType = "default" // Normalize the scene type for directory creation
		selectedScene, defaultWidth, defaultHeight, err = createScene(*sceneType)
	}
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		return
	}

	if *width == 0 {
		*width = defaultWidth
	}
	if *height == 0 {
		*height = defaultHeight
	}
	if *aa > 0 {
		selectedScene.Options.AntiAliasing = *aa
	}
	if *ambient {
		selectedScene.Options.AmbientLight = true
	}

	// Create output directory for this scene type
	outputDir := filepath.Join("output", *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		return
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = *workers
	r := renderer.NewRenderer(selectedScene, config, renderer.NewDefaultLogger())

	sink := renderer.NewRGBAImage(*width, *height)

	startTime := time.Now()
	stats, err := r.Render(context.Background(), sink)
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		return
	}
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Samples per pixel: %.1f (%d rays total)\n",
		stats.AverageSamples, stats.TotalSamples)

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		return
	}
	defer file.Close()

	if err := png.Encode(file, sink.Image()); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		return
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene builds the named scene and returns its preferred dimensions
func createScene(sceneType string) (*scene.Scene, int, int, error) {
	switch sceneType {
	case "cornell":
		s, err := scene.NewCornellBoxScene()
		return s, 400, 400, err // Square aspect ratio for Cornell box
	case "default":
		s, err := scene.NewDefaultScene()
		return s, 400, 225, err // 16:9 aspect ratio
	default:
		return nil, 0, 0, fmt.Errorf("unknown scene type: %s", sceneType)
	}
}
