package assets

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// writeTriangle saves a one-triangle GLB whose node is translated by offset.
func writeTriangle(t *testing.T, dir, name string, offset [3]float64, withNormals bool) string {
	t.Helper()

	doc := gltf.NewDocument()
	attrs := gltf.Attribute{
		gltf.POSITION: modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
	}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	}
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Materials = []*gltf.Material{{
		Name: "paint",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0.5, 0.25, 1, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Attributes: attrs,
			Indices:    gltf.Index(indices),
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0), Translation: offset}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(dir, name)
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("saving %s: %v", path, err)
	}
	return path
}

func TestDecode(t *testing.T) {
	path := writeTriangle(t, t.TempDir(), "tri.glb", [3]float64{2, 0, 0}, true)

	m, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(m.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(m.Meshes))
	}
	mesh := m.Meshes[0]
	if got := mesh.Positions[1]; got != [3]float32{3, 0, 0} {
		t.Errorf("translated vertex = %v, want [3 0 0]", got)
	}
	if got := mesh.Normals[0]; got != [3]float32{0, 0, 1} {
		t.Errorf("normal = %v, want [0 0 1]", got)
	}
	if len(mesh.Indices) != 3 || m.TriangleCount() != 1 {
		t.Errorf("indices = %v", mesh.Indices)
	}
	if mesh.Color != [4]float32{0.5, 0.25, 1, 1} {
		t.Errorf("color = %v", mesh.Color)
	}
	if m.Min != [3]float32{2, 0, 0} || m.Max != [3]float32{3, 1, 0} {
		t.Errorf("bounds = %v..%v", m.Min, m.Max)
	}
}

func TestDecodeComputesMissingNormals(t *testing.T) {
	path := writeTriangle(t, t.TempDir(), "flat.glb", [3]float64{}, false)

	m, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, n := range m.Meshes[0].Normals {
		if n != [3]float32{0, 0, 1} {
			t.Errorf("normal %d = %v, want [0 0 1]", i, n)
		}
	}
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "nope.glb"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestLoaderLifecycle(t *testing.T) {
	dir := t.TempDir()
	writeTriangle(t, dir, "tri.glb", [3]float64{}, true)

	l := NewLoader(dir, nil)
	if _, st := l.Get("tri.glb"); st != StateNone {
		t.Errorf("state before request = %v, want none", st)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	m, err := l.Wait(ctx, "tri.glb")
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if m == nil || len(m.Meshes) != 1 {
		t.Fatalf("unexpected model %+v", m)
	}

	got, st := l.Get("tri.glb")
	if st != StateReady || got != m {
		t.Errorf("Get = %p %v, want %p ready", got, st, m)
	}
	if !l.Ready("tri.glb") {
		t.Error("Ready should be true")
	}
	if err := l.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestLoaderFailureLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := NewLoader(t.TempDir(), zap.New(core))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := l.Wait(ctx, "radio.glb")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for i := 0; i < 5; i++ {
		l.Request("radio.glb")
	}
	if err := l.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if m, st := l.Get("radio.glb"); st != StateFailed || m != nil {
		t.Errorf("Get = %v %v, want nil failed", m, st)
	}
	if l.Ready("radio.glb") {
		t.Error("failed model must not be ready")
	}
	if n := logs.FilterMessage("model unavailable").Len(); n != 1 {
		t.Errorf("expected 1 warning, got %d", n)
	}
}

func TestLoaderCollapsesDuplicateLoads(t *testing.T) {
	l := NewLoader("models", nil)

	var calls atomic.Int32
	release := make(chan struct{})
	l.decode = func(path string) (*Model, error) {
		calls.Add(1)
		<-release
		return &Model{Name: path}, nil
	}

	for i := 0; i < 10; i++ {
		l.Request("bedDouble.glb")
	}
	if _, st := l.Get("bedDouble.glb"); st != StatePending {
		t.Errorf("state while decoding = %v, want pending", st)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Wait(ctx, "bedDouble.glb"); err != nil {
				t.Errorf("Wait: %v", err)
			}
		}()
	}

	close(release)
	wg.Wait()
	if err := l.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if n := calls.Load(); n != 1 {
		t.Errorf("decode called %d times, want 1", n)
	}
	m, st := l.Get("bedDouble.glb")
	if st != StateReady || m.Name != filepath.Join("models", "bedDouble.glb") {
		t.Errorf("Get = %+v %v", m, st)
	}
}

func TestLoaderClosedIgnoresRequests(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)
	if err := l.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	l.Request("lamp.glb")
	if _, st := l.Get("lamp.glb"); st != StateNone {
		t.Errorf("state after close = %v, want none", st)
	}
}

func TestLoaderCloseHonorsContext(t *testing.T) {
	l := NewLoader("models", nil)
	release := make(chan struct{})
	defer close(release)
	l.decode = func(string) (*Model, error) {
		<-release
		return &Model{}, nil
	}
	l.Request("slow.glb")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Close = %v, want deadline exceeded", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateNone:    "none",
		StatePending: "pending",
		StateReady:   "ready",
		StateFailed:  "failed",
	}
	for st, want := range tests {
		if st.String() != want {
			t.Errorf("%d.String() = %q, want %q", st, st.String(), want)
		}
	}
}

func TestStats(t *testing.T) {
	l := NewLoader("models", nil)
	l.decode = func(string) (*Model, error) { return &Model{}, nil }

	l.Get("missing.glb")
	if _, err := l.Wait(context.Background(), "bed.glb"); err != nil {
		t.Fatal(err)
	}
	l.Get("bed.glb")

	hits, misses := l.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats = %d hits, %d misses", hits, misses)
	}
}

// triangleDoc builds an in-memory document with one triangle node.
func triangleDoc() *gltf.Document {
	doc := gltf.NewDocument()
	attrs := gltf.Attribute{
		gltf.POSITION: modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
	}
	doc.Meshes = []*gltf.Mesh{{
		Name:       "triangle",
		Primitives: []*gltf.Primitive{{Attributes: attrs}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

func TestFromDocumentIndexRanges(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := FromDocument(triangleDoc())
		if err != nil {
			t.Fatalf("FromDocument: %v", err)
		}
		if m.TriangleCount() != 1 {
			t.Errorf("TriangleCount() = %d, want 1", m.TriangleCount())
		}
	})

	t.Run("scene out of range", func(t *testing.T) {
		doc := triangleDoc()
		doc.Scene = gltf.Index(3)
		if _, err := FromDocument(doc); err == nil {
			t.Error("expected error for missing scene")
		}
	})

	t.Run("child out of range", func(t *testing.T) {
		doc := triangleDoc()
		doc.Nodes[0].Children = []uint32{7}
		if _, err := FromDocument(doc); err == nil {
			t.Error("expected error for missing child node")
		}
	})

	t.Run("mesh out of range", func(t *testing.T) {
		doc := triangleDoc()
		doc.Nodes[0].Mesh = gltf.Index(4)
		if _, err := FromDocument(doc); err == nil {
			t.Error("expected error for missing mesh")
		}
	})

	t.Run("material out of range keeps white", func(t *testing.T) {
		doc := triangleDoc()
		doc.Meshes[0].Primitives[0].Material = gltf.Index(9)
		m, err := FromDocument(doc)
		if err != nil {
			t.Fatalf("FromDocument: %v", err)
		}
		if got := m.Meshes[0].Color; got != [4]float32{1, 1, 1, 1} {
			t.Errorf("Color = %v, want white", got)
		}
	})
}
