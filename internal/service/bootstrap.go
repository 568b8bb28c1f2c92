package service

import (
	"sync"

	"github.com/amadeuio/zeronotes-backend/internal/db"
)

type (
	// Bootstrap assembles the combined snapshot a client hydrates from on
	// first load. The two fetches touch disjoint data and run concurrently;
	// either failure fails the whole call.
	Bootstrap struct {
		notes  *Notes
		labels *Labels
	}

	BootstrapResult struct {
		Notes  []db.Note
		Labels []db.Label
	}
)

func NewBootstrap(notes *Notes, labels *Labels) *Bootstrap {
	return &Bootstrap{
		notes:  notes,
		labels: labels,
	}
}

func (s *Bootstrap) FindAll(userID string) (*BootstrapResult, error) {
	var (
		wg        sync.WaitGroup
		notes     []db.Note
		labels    []db.Label
		notesErr  error
		labelsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		notes, notesErr = s.notes.FindAll(userID, nil)
	}()
	go func() {
		defer wg.Done()
		labels, labelsErr = s.labels.FindAll(userID)
	}()
	wg.Wait()

	if notesErr != nil {
		return nil, notesErr
	}
	if labelsErr != nil {
		return nil, labelsErr
	}

	return &BootstrapResult{
		Notes:  notes,
		Labels: labels,
	}, nil
}
