package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/photocalener/photo-calener/internal/filter"
	"github.com/photocalener/photo-calener/internal/model"
)

// Media types the direct path can encode
const (
	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"

	TaskIDPrefix = "export-"
	InlineSource = "inline"

	// MaxFinishedTasks bounds how many saved or failed tasks stay in memory
	MaxFinishedTasks = 20
)

// Request describes one export
type Request struct {
	Image  model.ImageReference
	Title  string
	Filter filter.Descriptor
}

// Result is produced by a successful export
type Result struct {
	TaskID     string
	Payload    []byte
	MediaType  string
	Path       model.ExportPath
	FileName   string
	OutputPath string
}

// Service runs exports and keeps their tasks in memory
type Service struct {
	loader     Loader
	rasterizer Rasterizer
	fetcher    Fetcher
	saver      Saver
	mediaType  string

	tasks       map[string]*model.ExportTask
	maxFinished int
	tasksMutex  sync.RWMutex
	onUpdate    func(*model.ExportTask) // callback for UI updates
}

// NewService creates a new export service
func NewService(loader Loader, rasterizer Rasterizer, fetcher Fetcher, saver Saver) *Service {
	return &Service{
		loader:      loader,
		rasterizer:  rasterizer,
		fetcher:     fetcher,
		saver:       saver,
		mediaType:   MediaTypePNG,
		tasks:       make(map[string]*model.ExportTask),
		maxFinished: MaxFinishedTasks,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ExportTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetMediaType sets the direct path encoding; unsupported values select PNG
func (s *Service) SetMediaType(mediaType string) {
	if mediaType != MediaTypeJPEG {
		mediaType = MediaTypePNG
	}
	s.tasksMutex.Lock()
	s.mediaType = mediaType
	s.tasksMutex.Unlock()
}

// GetTask returns a copy of the task with the given ID
func (s *Service) GetTask(id string) (*model.ExportTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// GetAllTasks returns copies of all tasks
func (s *Service) GetAllTasks() []*model.ExportTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.ExportTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		snapshot := *task
		tasks = append(tasks, &snapshot)
	}
	return tasks
}

// Export runs the pipeline for one request. Load, rasterize and encode
// failures switch to the network fallback; the returned error is always
// a *NetworkError or a *PipelineError.
func (s *Service) Export(ctx context.Context, req Request) (result *Result, err error) {
	task := s.startTask(req)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Export task %s panicked: %v", task.ID, r)
			result = nil
			err = &PipelineError{Stage: "panic", Err: fmt.Errorf("%v", r)}
		}
		s.finishTask(task, result, err)
	}()

	return s.run(ctx, req, task)
}

// run produces the payload and saves it
func (s *Service) run(ctx context.Context, req Request, task *model.ExportTask) (*Result, error) {
	if req.Image.IsZero() {
		return nil, &PipelineError{Stage: "request", Err: errors.New("no image to export")}
	}

	payload, mediaType, path, err := s.produce(ctx, req, task)
	if err != nil {
		return nil, err
	}

	fileName := FileName(req.Title, mediaType)
	outputPath, err := s.saver.Save(ctx, payload, mediaType, fileName)
	if err != nil {
		return nil, &PipelineError{Stage: "save", Err: err}
	}

	log.Printf("Export task %s saved %s via %s path", task.ID, outputPath, path)

	return &Result{
		TaskID:     task.ID,
		Payload:    payload,
		MediaType:  mediaType,
		Path:       path,
		FileName:   fileName,
		OutputPath: outputPath,
	}, nil
}

// produce tries the direct path and falls back to a fetch of the original
func (s *Service) produce(ctx context.Context, req Request, task *model.ExportTask) ([]byte, string, model.ExportPath, error) {
	payload, mediaType, err := s.direct(ctx, req)
	if err == nil {
		return payload, mediaType, model.ExportPathDirect, nil
	}

	if !isRecoverable(err) {
		return nil, "", model.ExportPathNone, &PipelineError{Stage: "direct", Err: err}
	}

	log.Printf("Direct export failed for task %s, fetching original: %v", task.ID, err)

	payload, mediaType, err = s.fallback(ctx, req)
	if err != nil {
		return nil, "", model.ExportPathNone, err
	}
	return payload, mediaType, model.ExportPathFallback, nil
}

// direct loads, rasterizes with the filter and encodes
func (s *Service) direct(ctx context.Context, req Request) ([]byte, string, error) {
	img, err := s.loader.Load(ctx, req.Image)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, "", err
		}
		return nil, "", &LoadError{Source: sourceLabel(req.Image), Err: err}
	}

	bounds := img.Bounds()
	surface, err := s.rasterizer.NewSurface(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, "", &RasterizeError{Err: err}
	}
	defer surface.Close()

	if !req.Filter.IsIdentity() {
		if err := surface.SetTransform(req.Filter.Transform()); err != nil {
			return nil, "", &RasterizeError{Err: err}
		}
	}

	if err := surface.DrawImage(img, 0, 0); err != nil {
		return nil, "", &RasterizeError{Err: err}
	}

	mediaType := s.currentMediaType()
	payload, err := surface.Encode(ctx, mediaType)
	if err != nil || len(payload) == 0 {
		return nil, "", &EncodeError{MediaType: mediaType, Err: err}
	}
	return payload, mediaType, nil
}

// fallback fetches the original bytes; the filter is not applied here
func (s *Service) fallback(ctx context.Context, req Request) ([]byte, string, error) {
	payload, mediaType, err := s.fetcher.Fetch(ctx, req.Image)
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			return nil, "", err
		}
		return nil, "", &NetworkError{URL: sourceLabel(req.Image), Err: err}
	}

	if mediaType == "" {
		mediaType = req.Image.MediaType()
	}
	return payload, mediaType, nil
}

func (s *Service) currentMediaType() string {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.mediaType
}

// startTask registers a new task in the exporting state
func (s *Service) startTask(req Request) *model.ExportTask {
	task := &model.ExportTask{
		ID:        generateTaskID(),
		Title:     req.Title,
		FilterKey: req.Filter.Key,
		Source:    sourceLabel(req.Image),
		Status:    model.ExportStatusExporting,
		StartedAt: time.Now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return task
}

// finishTask records the outcome of an export
func (s *Service) finishTask(task *model.ExportTask, result *Result, err error) {
	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.ExportStatusFailed
		task.LastError = err.Error()
	} else {
		task.Status = model.ExportStatusSaved
		task.Path = result.Path
		task.MediaType = result.MediaType
		task.FileName = result.FileName
		task.OutputPath = result.OutputPath
		task.FileSize = int64(len(result.Payload))
	}
	task.FinishedAt = time.Now()
	s.pruneFinishedLocked()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// pruneFinishedLocked drops the oldest finished tasks beyond maxFinished.
// Active tasks are never dropped.
func (s *Service) pruneFinishedLocked() {
	var finished []*model.ExportTask
	for _, task := range s.tasks {
		if task.Status.IsFinished() {
			finished = append(finished, task)
		}
	}
	if len(finished) <= s.maxFinished {
		return
	}

	sort.Slice(finished, func(i, j int) bool {
		if finished[i].FinishedAt.Equal(finished[j].FinishedAt) {
			return finished[i].ID < finished[j].ID
		}
		return finished[i].FinishedAt.Before(finished[j].FinishedAt)
	})
	for _, task := range finished[:len(finished)-s.maxFinished] {
		delete(s.tasks, task.ID)
	}
}

// notifyUpdate calls the update callback with a copy of the task
func (s *Service) notifyUpdate(task *model.ExportTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// isRecoverable reports whether the fallback should be tried
func isRecoverable(err error) bool {
	var loadErr *LoadError
	var rasterErr *RasterizeError
	var encodeErr *EncodeError
	return errors.As(err, &loadErr) || errors.As(err, &rasterErr) || errors.As(err, &encodeErr)
}

func sourceLabel(ref model.ImageReference) string {
	if ref.IsInline() {
		return InlineSource
	}
	return ref.URL()
}

// generateTaskID generates a unique task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%s%d", TaskIDPrefix, time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
