package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port     int
	upgrader websocket.Upgrader
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{
		port: port,
		upgrader: websocket.Upgrader{
			// The preview page may be served from a different origin during development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene        string `json:"scene"`        // Scene name (e.g., "cornell-box")
	Width        int    `json:"width"`        // Image width
	Height       int    `json:"height"`       // Image height
	AntiAliasing int    `json:"antiAliasing"` // Anti-aliasing grid size (n*n rays per pixel)
	Ambient      bool   `json:"ambient"`      // Enable ambient global illumination
}

// TileMessage is sent after each finished tile with that tile's pixels.
// X/Y position the tile image within the frame; the client composites.
type TileMessage struct {
	Type       string `json:"type"` // "tile"
	TileNumber int    `json:"tileNumber"`
	TotalTiles int    `json:"totalTiles"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG of the tile only
	ElapsedMs  int64  `json:"elapsedMs"`
}

// CompleteMessage is sent once when the frame is done
type CompleteMessage struct {
	Type      string `json:"type"` // "complete"
	ImageData string `json:"imageData"`
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// ErrorMessage is sent when a request is invalid or rendering fails
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
}

// Start starts the web server
func (s *Server) Start() error {
	// Serve static files
	http.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	http.HandleFunc("/api/health", s.handleHealth)
	http.HandleFunc("/api/scene-config", s.handleSceneConfig)
	http.HandleFunc("/ws/render", s.handleRenderWS)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, nil)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRenderWS streams tile updates for one render over a websocket.
// The client sends a single RenderRequest JSON message and receives a
// sequence of "tile" messages followed by one "complete" message.
func (s *Server) handleRenderWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req RenderRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(ErrorMessage{Type: "error", Message: fmt.Sprintf("Invalid request: %v", err)})
		return
	}
	if err := validateRenderRequest(&req); err != nil {
		conn.WriteJSON(ErrorMessage{Type: "error", Message: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		conn.WriteJSON(ErrorMessage{Type: "error", Message: err.Error()})
		return
	}
	sceneObj.Options.AntiAliasing = req.AntiAliasing
	if req.Ambient {
		sceneObj.Options.AmbientLight = true
	}

	// Cancel the render if the client goes away. Browsers close the socket
	// when the tab is closed or the user starts a new render.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	sink := renderer.NewRGBAImage(req.Width, req.Height)
	rt := renderer.NewRenderer(sceneObj, renderer.DefaultConfig(), nil)

	startTime := time.Now()

	// Tile callbacks arrive on a single goroutine, so writing to the
	// connection here does not race with the final message below. Only the
	// completed tile's region is encoded: other workers are still writing
	// the rest of the frame.
	stats, err := rt.RenderWithTileUpdates(ctx, sink, func(update renderer.TileUpdate) {
		msg, encErr := tileMessage(sink, update, startTime)
		if encErr != nil {
			log.Printf("Failed to encode tile snapshot: %v", encErr)
			return
		}
		if writeErr := conn.WriteJSON(msg); writeErr != nil {
			cancel()
		}
	})
	if err != nil {
		conn.WriteJSON(ErrorMessage{Type: "error", Message: fmt.Sprintf("Render error: %v", err)})
		return
	}

	imageData, err := imageToBase64PNG(sink.Image())
	if err != nil {
		conn.WriteJSON(ErrorMessage{Type: "error", Message: fmt.Sprintf("Failed to encode image: %v", err)})
		return
	}

	conn.WriteJSON(CompleteMessage{
		Type:      "complete",
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:    stats.TotalPixels,
			TotalSamples:   stats.TotalSamples,
			AverageSamples: stats.AverageSamples,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
}

// validateRenderRequest applies defaults and bounds checks
func validateRenderRequest(req *RenderRequest) error {
	if req.Scene == "" {
		req.Scene = "cornell-box"
	}
	var err error
	if req.Width, err = intInRange("width", req.Width, 400, 100, 2000); err != nil {
		return err
	}
	if req.Height, err = intInRange("height", req.Height, 400, 100, 2000); err != nil {
		return err
	}
	if req.AntiAliasing, err = intInRange("antiAliasing", req.AntiAliasing, 1, 1, 8); err != nil {
		return err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.AntiAliasing > 4 {
		log.Printf("Render warning: Large image with high anti-aliasing may render slowly")
	}
	return nil
}

// intInRange substitutes the default for a zero value and validates bounds
func intInRange(key string, value, defaultValue, min, max int) (int, error) {
	if value == 0 {
		return defaultValue, nil
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, value)
	}
	return value, nil
}

// createScene creates a scene based on the scene name
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	switch sceneName {
	case "cornell-box":
		return scene.NewCornellBoxScene()
	case "basic":
		return scene.NewDefaultScene()
	default:
		return nil, fmt.Errorf("unknown scene: %s", sceneName)
	}
}

// tileMessage encodes the completed tile's sub-image into a websocket
// message. It must only read pixels inside update.Bounds
func tileMessage(sink *renderer.RGBAImage, update renderer.TileUpdate, startTime time.Time) (TileMessage, error) {
	imageData, err := imageToBase64PNG(sink.Image().SubImage(update.Bounds))
	if err != nil {
		return TileMessage{}, err
	}
	return TileMessage{
		Type:       "tile",
		TileNumber: update.TileNumber,
		TotalTiles: update.TotalTiles,
		X:          update.Bounds.Min.X,
		Y:          update.Bounds.Min.Y,
		Width:      update.Bounds.Dx(),
		Height:     update.Bounds.Dy(),
		ImageData:  imageData,
		ElapsedMs:  time.Since(startTime).Milliseconds(),
	}, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "cornell-box"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"antiAliasing": sceneObj.Options.AntiAliasing,
			"ambient":      sceneObj.Options.AmbientLight,
		},
		"limits": map[string]interface{}{
			"width": map[string]int{
				"min": 100,
				"max": 2000,
			},
			"height": map[string]int{
				"min": 100,
				"max": 2000,
			},
			"antiAliasing": map[string]int{
				"min": 1,
				"max": 8,
			},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
