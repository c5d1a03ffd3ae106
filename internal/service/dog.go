package service

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

const DogErrorMessage = "Failed to fetch dog image. Please try again."

type DogImageSource interface {
	RandomImage(ctx context.Context) (string, error)
}

type DogView struct {
	ImageURL string `json:"image_url,omitempty"`
	Loading  bool   `json:"loading"`
	Error    string `json:"error,omitempty"`
}

// DogViewer holds the last random image. A failed fetch keeps the previous image.
type DogViewer struct {
	source DogImageSource

	mu   sync.Mutex
	view DogView
	seq  uint64
}

func NewDogViewer(source DogImageSource) *DogViewer {
	return &DogViewer{source: source}
}

func (d *DogViewer) Snapshot() DogView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Fetch requests a new random image and makes it current
func (d *DogViewer) Fetch(ctx context.Context) (DogView, error) {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.view.Loading = true
	d.view.Error = ""
	d.mu.Unlock()

	imageURL, err := d.source.RandomImage(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.seq {
		return d.view, ErrSuperseded
	}

	d.view.Loading = false
	if err != nil {
		log.WithError(err).Error("Failed to fetch dog image")
		d.view.Error = DogErrorMessage
		return d.view, err
	}

	d.view.ImageURL = imageURL
	return d.view, nil
}
