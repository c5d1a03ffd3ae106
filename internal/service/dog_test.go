package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDogSource struct {
	mock.Mock
}

func (m *mockDogSource) RandomImage(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func TestDogViewer_Fetch(t *testing.T) {
	source := new(mockDogSource)
	source.On("RandomImage", mock.Anything).Return("https://images.dog.ceo/breeds/hound/1.jpg", nil).Once()
	source.On("RandomImage", mock.Anything).Return("", errBoom).Once()

	d := NewDogViewer(source)

	view, err := d.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://images.dog.ceo/breeds/hound/1.jpg", view.ImageURL)
	assert.False(t, view.Loading)

	view, err = d.Fetch(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "https://images.dog.ceo/breeds/hound/1.jpg", view.ImageURL, "previous image is kept")
	assert.Equal(t, DogErrorMessage, view.Error)
	assert.False(t, view.Loading)

	source.AssertExpectations(t)
}

func TestDogViewer_LoadingDuringFetch(t *testing.T) {
	release := make(chan time.Time)
	source := new(mockDogSource)
	source.On("RandomImage", mock.Anything).WaitUntil(release).Return("https://images.dog.ceo/a.jpg", nil)

	d := NewDogViewer(source)

	done := make(chan error, 1)
	go func() {
		_, err := d.Fetch(context.Background())
		done <- err
	}()

	assert.Eventually(t, func() bool { return d.Snapshot().Loading }, time.Second, 5*time.Millisecond)
	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, DogView{ImageURL: "https://images.dog.ceo/a.jpg"}, d.Snapshot())
}
