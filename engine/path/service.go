package path

import (
	"context"
	"fmt"
	"sync"

	"github.com/memmaker/isotactics/engine/util"
	"github.com/memmaker/isotactics/engine/voxel"
)

type Result struct {
	Key    string
	Start  voxel.Int3
	End    voxel.Int3
	Points []voxel.Int3
	Steps  []Step
	Err    error
}

type pendingSearch struct {
	cancel context.CancelFunc
}

// Service runs searches in the background. There is at most one pending
// search per key; starting another one for the same key supersedes it and
// the superseded callback is never called.
type Service struct {
	options Options
	find    func(g Grid, start, end voxel.Int3, options Options) ([]voxel.Int3, error)
	mu      sync.Mutex
	pending map[string]*pendingSearch
	wg      sync.WaitGroup
}

func NewService(options Options) *Service {
	return &Service{
		options: options,
		find:    FindPath,
		pending: make(map[string]*pendingSearch),
	}
}

// Search starts a search on g. The grid must not be modified afterwards.
// done runs on the search goroutine.
func (s *Service) Search(ctx context.Context, key string, g Grid, start, end voxel.Int3, done func(Result)) {
	searchCtx, cancel := context.WithCancel(ctx)
	me := &pendingSearch{cancel: cancel}

	s.mu.Lock()
	if previous, ok := s.pending[key]; ok {
		previous.cancel()
		util.LogPathDebug(fmt.Sprintf("[Path] search for %s superseded", key))
	}
	s.pending[key] = me
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		points, err := s.find(g, start, end, s.options)
		if !s.finish(key, me, searchCtx) {
			return
		}
		result := Result{Key: key, Start: start, End: end, Points: points, Err: err}
		if err == nil {
			result.Steps = Steps(start, points)
		}
		if done != nil {
			done(result)
		}
	}()
}

// finish removes the search from the pending set and reports whether its
// result should still be delivered.
func (s *Service) finish(key string, me *pendingSearch, ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[key] != me {
		return false
	}
	delete(s.pending, key)
	return ctx.Err() == nil
}

// Cancel drops the pending search for key, if any.
func (s *Service) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if previous, ok := s.pending[key]; ok {
		previous.cancel()
		delete(s.pending, key)
	}
}

func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Wait blocks until every started search has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}
