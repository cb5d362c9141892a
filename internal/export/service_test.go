package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"

	"github.com/photocalener/photo-calener/internal/filter"
	"github.com/photocalener/photo-calener/internal/model"
)

type fakeLoader struct {
	img   image.Image
	err   error
	panic bool
}

func (f *fakeLoader) Load(ctx context.Context, ref model.ImageReference) (image.Image, error) {
	if f.panic {
		panic("loader exploded")
	}
	return f.img, f.err
}

type fakeSurface struct {
	transform string
	drawn     int
	payload   []byte
	encodeErr error
	closed    bool
}

func (s *fakeSurface) SetTransform(transform string) error {
	s.transform = transform
	return nil
}

func (s *fakeSurface) DrawImage(img image.Image, x, y int) error {
	s.drawn++
	return nil
}

func (s *fakeSurface) Encode(ctx context.Context, mediaType string) ([]byte, error) {
	return s.payload, s.encodeErr
}

func (s *fakeSurface) Close() error {
	s.closed = true
	return nil
}

type fakeRasterizer struct {
	surface *fakeSurface
	width   int
	height  int
}

func (r *fakeRasterizer) NewSurface(width, height int) (Surface, error) {
	r.width, r.height = width, height
	return r.surface, nil
}

type fakeFetcher struct {
	payload   []byte
	mediaType string
	err       error
	calls     int
}

func (f *fakeFetcher) Fetch(ctx context.Context, ref model.ImageReference) ([]byte, string, error) {
	f.calls++
	return f.payload, f.mediaType, f.err
}

type fakeSaver struct {
	mu        sync.Mutex
	saved     map[string][]byte
	mediaType string
	err       error
}

func (s *fakeSaver) Save(ctx context.Context, payload []byte, mediaType, fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[fileName] = payload
	s.mediaType = mediaType
	return "/downloads/" + fileName, nil
}

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	return img
}

func remoteRef(t *testing.T) model.ImageReference {
	t.Helper()
	ref, err := model.NewRemoteReference("https://example.com/photo.jpg")
	if err != nil {
		t.Fatalf("NewRemoteReference: %v", err)
	}
	return ref
}

func vintage(t *testing.T) filter.Descriptor {
	t.Helper()
	d, ok := filter.Lookup(filter.KeyVintage)
	if !ok {
		t.Fatal("vintage filter missing")
	}
	return d
}

func TestExport_DirectPathAppliesFilter(t *testing.T) {
	surface := &fakeSurface{payload: []byte("png-bytes")}
	rasterizer := &fakeRasterizer{surface: surface}
	fetcher := &fakeFetcher{}
	saver := &fakeSaver{}
	service := NewService(&fakeLoader{img: testImage()}, rasterizer, fetcher, saver)

	result, err := service.Export(context.Background(), Request{
		Image:  remoteRef(t),
		Title:  "Summer Memories",
		Filter: vintage(t),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Path != model.ExportPathDirect {
		t.Errorf("Expected direct path, got %s", result.Path)
	}
	if surface.transform != "saturate(0.5) contrast(1.25) brightness(0.9)" {
		t.Errorf("Unexpected transform %q", surface.transform)
	}
	if rasterizer.width != 8 || rasterizer.height != 6 {
		t.Errorf("Expected 8x6 surface, got %dx%d", rasterizer.width, rasterizer.height)
	}
	if surface.drawn != 1 {
		t.Errorf("Expected one draw, got %d", surface.drawn)
	}
	if !surface.closed {
		t.Error("Expected surface to be closed")
	}
	if result.FileName != "summermemories.png" {
		t.Errorf("Expected summermemories.png, got %s", result.FileName)
	}
	if string(saver.saved["summermemories.png"]) != "png-bytes" {
		t.Errorf("Saved payload mismatch: %q", saver.saved["summermemories.png"])
	}
	if fetcher.calls != 0 {
		t.Errorf("Fetcher should not be called on direct path, got %d calls", fetcher.calls)
	}
}

func TestExport_IdentityFilterSetsNoTransform(t *testing.T) {
	surface := &fakeSurface{payload: []byte("x")}
	service := NewService(&fakeLoader{img: testImage()}, &fakeRasterizer{surface: surface}, &fakeFetcher{}, &fakeSaver{})

	_, err := service.Export(context.Background(), Request{Image: remoteRef(t), Title: "t", Filter: filter.Default()})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if surface.transform != "" {
		t.Errorf("Expected no transform for identity filter, got %q", surface.transform)
	}
}

func TestExport_LoadErrorFallsBackUnfiltered(t *testing.T) {
	surface := &fakeSurface{payload: []byte("filtered")}
	fetcher := &fakeFetcher{payload: []byte("original"), mediaType: "image/jpeg"}
	saver := &fakeSaver{}
	loader := &fakeLoader{err: &LoadError{Source: "x", Err: ErrCrossOriginRefused}}
	service := NewService(loader, &fakeRasterizer{surface: surface}, fetcher, saver)

	result, err := service.Export(context.Background(), Request{
		Image:  remoteRef(t),
		Title:  "Beach Day!",
		Filter: vintage(t),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Path != model.ExportPathFallback {
		t.Errorf("Expected fallback path, got %s", result.Path)
	}
	if result.Path.AppliesFilter() {
		t.Error("Fallback path must not apply the filter")
	}
	if string(result.Payload) != "original" {
		t.Errorf("Expected unfiltered original payload, got %q", result.Payload)
	}
	if surface.drawn != 0 {
		t.Error("Surface must not be drawn when load fails")
	}
	if result.FileName != "beachday.jpeg" {
		t.Errorf("Expected beachday.jpeg, got %s", result.FileName)
	}
}

func TestExport_PlainLoaderErrorIsTreatedAsLoadError(t *testing.T) {
	fetcher := &fakeFetcher{payload: []byte("original"), mediaType: "image/png"}
	service := NewService(&fakeLoader{err: errors.New("boom")}, &fakeRasterizer{surface: &fakeSurface{}}, fetcher, &fakeSaver{})

	result, err := service.Export(context.Background(), Request{Image: remoteRef(t), Title: "a"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Path != model.ExportPathFallback || fetcher.calls != 1 {
		t.Errorf("Expected one fallback fetch, got path %s calls %d", result.Path, fetcher.calls)
	}
}

func TestExport_EmptyEncodeFallsBack(t *testing.T) {
	surface := &fakeSurface{payload: nil}
	fetcher := &fakeFetcher{payload: []byte("original"), mediaType: "image/png"}
	service := NewService(&fakeLoader{img: testImage()}, &fakeRasterizer{surface: surface}, fetcher, &fakeSaver{})

	result, err := service.Export(context.Background(), Request{Image: remoteRef(t), Title: "x", Filter: vintage(t)})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Path != model.ExportPathFallback {
		t.Errorf("Expected fallback path, got %s", result.Path)
	}
	if !surface.closed {
		t.Error("Expected surface to be closed after failed encode")
	}
}

func TestExport_BothPathsFailIsNetworkError(t *testing.T) {
	fetcher := &fakeFetcher{err: &NetworkError{URL: "https://example.com/photo.jpg", StatusCode: 404}}
	saver := &fakeSaver{}
	service := NewService(&fakeLoader{err: errors.New("refused")}, &fakeRasterizer{surface: &fakeSurface{}}, fetcher, saver)

	result, err := service.Export(context.Background(), Request{Image: remoteRef(t), Title: "x"})
	if result != nil {
		t.Errorf("Expected nil result, got %+v", result)
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected NetworkError, got %v", err)
	}
	if netErr.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", netErr.StatusCode)
	}
	if len(saver.saved) != 0 {
		t.Errorf("Expected nothing saved, got %d files", len(saver.saved))
	}
}

func TestExport_TransportFailureWrappedAsNetworkError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection reset")}
	service := NewService(&fakeLoader{err: errors.New("refused")}, &fakeRasterizer{surface: &fakeSurface{}}, fetcher, &fakeSaver{})

	_, err := service.Export(context.Background(), Request{Image: remoteRef(t), Title: "x"})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected NetworkError, got %v", err)
	}
}

func TestExport_SaveFailureIsPipelineError(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	service := NewService(&fakeLoader{img: testImage()}, &fakeRasterizer{surface: &fakeSurface{payload: []byte("x")}}, &fakeFetcher{}, saver)

	_, err := service.Export(context.Background(), Request{Image: remoteRef(t), Title: "x"})
	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("Expected PipelineError, got %v", err)
	}
	if pipeErr.Stage != "save" {
		t.Errorf("Expected save stage, got %s", pipeErr.Stage)
	}
}

func TestExport_PanicIsPipelineError(t *testing.T) {
	service := NewService(&fakeLoader{panic: true}, &fakeRasterizer{surface: &fakeSurface{}}, &fakeFetcher{}, &fakeSaver{})

	_, err := service.Export(context.Background(), Request{Image: remoteRef(t), Title: "x"})
	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("Expected PipelineError, got %v", err)
	}

	tasks := service.GetAllTasks()
	if len(tasks) != 1 || tasks[0].Status != model.ExportStatusFailed {
		t.Errorf("Expected one failed task, got %+v", tasks)
	}
}

func TestExport_ZeroReferenceIsPipelineError(t *testing.T) {
	service := NewService(&fakeLoader{}, &fakeRasterizer{surface: &fakeSurface{}}, &fakeFetcher{}, &fakeSaver{})

	_, err := service.Export(context.Background(), Request{Title: "x"})
	var pipeErr *PipelineError
	if !errors.As(err, &pipeErr) {
		t.Fatalf("Expected PipelineError, got %v", err)
	}
}

func TestExport_TaskUpdatesPublished(t *testing.T) {
	service := NewService(&fakeLoader{img: testImage()}, &fakeRasterizer{surface: &fakeSurface{payload: []byte("abc")}}, &fakeFetcher{}, &fakeSaver{})

	var statuses []model.ExportStatus
	var last *model.ExportTask
	service.SetUpdateCallback(func(task *model.ExportTask) {
		statuses = append(statuses, task.Status)
		last = task
	})

	result, err := service.Export(context.Background(), Request{Image: remoteRef(t), Title: "Pic", Filter: vintage(t)})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(statuses) != 2 || statuses[0] != model.ExportStatusExporting || statuses[1] != model.ExportStatusSaved {
		t.Errorf("Unexpected status sequence %v", statuses)
	}
	if last.ID != result.TaskID {
		t.Errorf("Expected task ID %s, got %s", result.TaskID, last.ID)
	}
	if !strings.HasPrefix(last.ID, TaskIDPrefix) {
		t.Errorf("Expected ID prefix %s, got %s", TaskIDPrefix, last.ID)
	}
	if last.FilterKey != filter.KeyVintage || last.Path != model.ExportPathDirect || last.FileSize != 3 {
		t.Errorf("Unexpected final task %+v", last)
	}

	stored, ok := service.GetTask(result.TaskID)
	if !ok || stored.OutputPath != "/downloads/pic.png" {
		t.Errorf("Expected stored task with output path, got %+v", stored)
	}
}

func TestExport_PrunesOldestFinishedTasks(t *testing.T) {
	service := NewService(&fakeLoader{img: testImage()}, &fakeRasterizer{surface: &fakeSurface{payload: []byte("abc")}}, &fakeFetcher{}, &fakeSaver{})
	service.maxFinished = 2

	var ids []string
	for i := 0; i < 4; i++ {
		result, err := service.Export(context.Background(), Request{Image: remoteRef(t), Title: "Pic"})
		if err != nil {
			t.Fatalf("export %d: expected no error, got %v", i, err)
		}
		ids = append(ids, result.TaskID)
	}

	if tasks := service.GetAllTasks(); len(tasks) != 2 {
		t.Fatalf("Expected 2 retained tasks, got %d", len(tasks))
	}
	for _, id := range ids[:2] {
		if _, ok := service.GetTask(id); ok {
			t.Errorf("Expected task %s to be pruned", id)
		}
	}
	for _, id := range ids[2:] {
		if _, ok := service.GetTask(id); !ok {
			t.Errorf("Expected task %s to be kept", id)
		}
	}
}

func TestNewService_DefaultTaskLimit(t *testing.T) {
	service := NewService(&fakeLoader{}, &fakeRasterizer{}, &fakeFetcher{}, &fakeSaver{})
	if service.maxFinished != MaxFinishedTasks {
		t.Errorf("Expected limit %d, got %d", MaxFinishedTasks, service.maxFinished)
	}
}

func TestExport_InlineFallbackUsesReferenceMediaType(t *testing.T) {
	ref := model.NewInlineReference("image/webp", []byte("webp-bytes"))
	fetcher := &fakeFetcher{payload: ref.Data()}
	service := NewService(&fakeLoader{err: errors.New("no decoder")}, &fakeRasterizer{surface: &fakeSurface{}}, fetcher, &fakeSaver{})

	result, err := service.Export(context.Background(), Request{Image: ref, Title: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.FileName != "download.webp" {
		t.Errorf("Expected download.webp, got %s", result.FileName)
	}
}

func TestSetMediaType(t *testing.T) {
	service := NewService(nil, nil, nil, nil)

	service.SetMediaType(MediaTypeJPEG)
	if service.currentMediaType() != MediaTypeJPEG {
		t.Errorf("Expected jpeg, got %s", service.currentMediaType())
	}

	service.SetMediaType("image/gif")
	if service.currentMediaType() != MediaTypePNG {
		t.Errorf("Expected png for unsupported type, got %s", service.currentMediaType())
	}
}
