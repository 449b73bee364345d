package engine

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"reflect"
	"sync"
	"time"

	"github.com/go-drift/clockface/pkg/layout"
)

// debugTimeout bounds how long a request waits for the UI thread.
const debugTimeout = 2 * time.Second

// errUIThreadBusy is returned when the looper does not run an inspection in
// time, for example because nothing is driving it.
var errUIThreadBusy = stderrors.New("UI thread did not respond")

// DebugServer serves JSON views of an engine's render tree and frame
// counters over HTTP.
//
// Every inspection is posted to the engine's looper and runs on the UI
// thread, so handlers never race with layout or paint. The looper must be
// running for requests other than /health to succeed.
type DebugServer struct {
	engine   *Engine
	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
}

// RenderTreeNode describes the hosted render object.
// Uses SafeFloat for dimensions that may contain Inf/NaN from layout issues.
type RenderTreeNode struct {
	Type        string           `json:"type"`
	Size        SafeSize         `json:"size"`
	Constraints *SafeConstraints `json:"constraints,omitempty"`
	NeedsLayout bool             `json:"needsLayout"`
	NeedsPaint  bool             `json:"needsPaint"`
}

// SafeFloat wraps a float64 to handle Inf/NaN in JSON encoding.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// SafeSize is a JSON-safe version of graphics.Size.
type SafeSize struct {
	Width  SafeFloat `json:"width"`
	Height SafeFloat `json:"height"`
}

// SafeConstraints is a JSON-safe version of layout.Constraints.
type SafeConstraints struct {
	MinWidth  SafeFloat `json:"minWidth"`
	MaxWidth  SafeFloat `json:"maxWidth"`
	MinHeight SafeFloat `json:"minHeight"`
	MaxHeight SafeFloat `json:"maxHeight"`
}

// FrameStats summarizes the engine's frame activity.
type FrameStats struct {
	Frames         int      `json:"frames"`
	FrameScheduled bool     `json:"frameScheduled"`
	LastFrameOps   int      `json:"lastFrameOps"`
	Surface        SafeSize `json:"surface"`
	PendingTasks   int      `json:"pendingTasks"`
}

// StartDebugServer listens on addr (for example "localhost:0") and serves
// /health, /debug, /render-tree, and /frames.
func (e *Engine) StartDebugServer(addr string) (*DebugServer, error) {
	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("debug server listen: %w", err)
	}

	s := &DebugServer{engine: e, listener: listener}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/debug", s.handleDebug)
	mux.HandleFunc("/render-tree", s.handleRenderTree)
	mux.HandleFunc("/frames", s.handleFrames)
	s.server = &http.Server{Handler: mux, ReadHeaderTimeout: debugTimeout}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("debug server error: %v", err)
		}
	}()
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *DebugServer) Addr() string {
	return s.listener.Addr().String()
}

// Close gracefully shuts down the server. Closing twice does nothing.
func (s *DebugServer) Close() error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), debugTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}

// onUIThread runs fn on the engine's looper and waits for it.
func (s *DebugServer) onUIThread(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	s.engine.looper.Post(func() {
		defer close(done)
		fn()
	})
	ctx, cancel := context.WithTimeout(ctx, debugTimeout)
	defer cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errUIThreadBusy
	}
}

// handleHealth returns a simple health check response.
func (s *DebugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleDebug returns diagnostic info about the root.
func (s *DebugServer) handleDebug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var info struct {
		HasRoot  bool   `json:"hasRoot"`
		RootType string `json:"rootType,omitempty"`
		RootSize string `json:"rootSize,omitempty"`
	}
	err := s.onUIThread(r.Context(), func() {
		root := s.engine.root
		info.HasRoot = root != nil
		if root != nil {
			info.RootType = reflect.TypeOf(root).String()
			size := root.Size()
			info.RootSize = fmt.Sprintf("%.2fx%.2f", size.Width, size.Height)
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, info)
}

// handleRenderTree returns the hosted render object as JSON.
func (s *DebugServer) handleRenderTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		tree    RenderTreeNode
		hasRoot bool
	)
	err := s.onUIThread(r.Context(), func() {
		if s.engine.root == nil {
			return
		}
		hasRoot = true
		tree = serializeRenderObject(s.engine.root)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if !hasRoot {
		http.Error(w, "no render tree", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, tree)
}

// handleFrames returns frame counters as JSON.
func (s *DebugServer) handleFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var stats FrameStats
	err := s.onUIThread(r.Context(), func() {
		stats.Frames = s.engine.frames
		stats.FrameScheduled = s.engine.FrameScheduled()
		if s.engine.lastFrame != nil {
			stats.LastFrameOps = s.engine.lastFrame.Len()
		}
		stats.Surface = SafeSize{Width: SafeFloat(s.engine.size.Width), Height: SafeFloat(s.engine.size.Height)}
		// Excludes this inspection, which has already been dequeued.
		stats.PendingTasks = s.engine.looper.Pending()
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, stats)
}

func writeJSON(w http.ResponseWriter, v any) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func serializeRenderObject(ro layout.RenderObject) RenderTreeNode {
	size := ro.Size()
	node := RenderTreeNode{
		Type: reflect.TypeOf(ro).String(),
		Size: SafeSize{Width: SafeFloat(size.Width), Height: SafeFloat(size.Height)},
	}
	if state, ok := ro.(interface {
		NeedsLayout() bool
		NeedsPaint() bool
		Constraints() layout.Constraints
	}); ok {
		node.NeedsLayout = state.NeedsLayout()
		node.NeedsPaint = state.NeedsPaint()
		c := state.Constraints()
		node.Constraints = &SafeConstraints{
			MinWidth:  SafeFloat(c.MinWidth),
			MaxWidth:  SafeFloat(c.MaxWidth),
			MinHeight: SafeFloat(c.MinHeight),
			MaxHeight: SafeFloat(c.MaxHeight),
		}
	}
	return node
}
