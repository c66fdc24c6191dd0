package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/config"
	"github.com/hillcountrygardens/backend/internal/pkg/imaging"
)

// ErrIdentifyQueueFull is returned when the identification queue cannot take
// another job
var ErrIdentifyQueueFull = errors.New("identification queue is full")

// IdentifyService runs the plant identification pipeline in the background:
// fetch the stored image, downscale it, ask the vision model, merge the
// answer into the gallery row. Work is queued on a bounded channel and
// handled by a small worker pool; the triggering request never waits.
type IdentifyService struct {
	cfg            *config.Config
	galleryService *GalleryService
	visionService  *VisionService
	httpClient     *http.Client

	jobs chan uuid.UUID
	wg   sync.WaitGroup
	once sync.Once
}

func NewIdentifyService(cfg *config.Config, galleryService *GalleryService, visionService *VisionService) *IdentifyService {
	s := &IdentifyService{
		cfg:            cfg,
		galleryService: galleryService,
		visionService:  visionService,
		httpClient:     &http.Client{Timeout: cfg.VisionTimeout},
		jobs:           make(chan uuid.UUID, cfg.IdentifyQueueSize),
	}
	s.startWorkers()
	return s
}

// SetHTTPClient overrides the image-fetch HTTP client, used by tests
func (s *IdentifyService) SetHTTPClient(client *http.Client) {
	s.httpClient = client
}

func (s *IdentifyService) startWorkers() {
	workers := s.cfg.IdentifyWorkers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

func (s *IdentifyService) worker(id int) {
	defer s.wg.Done()

	for imageID := range s.jobs {
		if err := s.runPipeline(imageID); err != nil {
			log.Printf("Identify worker %d: pipeline failed for image %s: %v", id, imageID, err)
			// Best-effort failure marking; a write error here is only logged
			if markErr := s.galleryService.MarkIdentifyFailed(imageID); markErr != nil {
				log.Printf("Identify worker %d: failed to mark image %s as failed: %v", id, imageID, markErr)
			}
		} else {
			log.Printf("Identify worker %d: identified image %s", id, imageID)
		}
	}
}

// Enqueue marks the image as pending and queues it for identification.
// Returns ErrNotFound when no such image exists and ErrIdentifyQueueFull
// when the queue has no room. A rejected request restores the record's
// previous task state; "pending" always means a job is actually queued or
// running.
func (s *IdentifyService) Enqueue(id uuid.UUID) error {
	image, err := s.galleryService.GetImageByID(id)
	if err != nil {
		return err
	}
	if err := s.galleryService.MarkIdentifyPending(id); err != nil {
		return err
	}

	select {
	case s.jobs <- id:
		return nil
	default:
		if err := s.galleryService.SetIdentifyStatus(id, image.IdentifyStatus); err != nil {
			log.Printf("Identify: failed to restore status for rejected image %s: %v", id, err)
		}
		return ErrIdentifyQueueFull
	}
}

func (s *IdentifyService) runPipeline(id uuid.UUID) error {
	ctx := context.Background()

	image, err := s.galleryService.GetImageByID(id)
	if err != nil {
		return fmt.Errorf("load image record: %w", err)
	}

	data, err := s.fetchImage(ctx, image.ImageURL)
	if err != nil {
		return fmt.Errorf("fetch image: %w", err)
	}

	// Downscaling is a cost/payload optimization only; if it fails the
	// original bytes go to the model as-is
	scaled, err := imaging.DownscaleJPEG(data, s.cfg.IdentifyMaxImageEdge, s.cfg.IdentifyJPEGQuality)
	if err != nil {
		log.Printf("Identify: downscale failed for image %s, sending original: %v", id, err)
		scaled = data
	}

	result, err := s.visionService.IdentifyPlant(ctx, scaled)
	if err != nil {
		return fmt.Errorf("vision call: %w", err)
	}

	if err := s.galleryService.ApplyIdentification(id, result); err != nil {
		return fmt.Errorf("persist identification: %w", err)
	}
	return nil
}

func (s *IdentifyService) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("image fetch status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Shutdown drains the queue and stops the workers
func (s *IdentifyService) Shutdown() {
	s.once.Do(func() {
		close(s.jobs)
		s.wg.Wait()
	})
}
