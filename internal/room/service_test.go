package room

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository is an in-memory Repository with the same conditional
// decrement semantics as the SQL implementation.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	rooms  map[int64]*Room
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 1, rooms: make(map[int64]*Room)}
}

func (m *memoryRepository) Create(ctx context.Context, r *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rooms {
		if existing.RoomType == r.RoomType {
			return ErrTypeAlreadyUsed
		}
	}
	r.ID = m.nextID
	r.CreatedAt = time.Now()
	m.nextID++
	cp := *r
	m.rooms[r.ID] = &cp
	return nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id int64) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memoryRepository) GetByType(ctx context.Context, roomType string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.RoomType == roomType {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRepository) GetDefault(ctx context.Context) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var def *Room
	for _, r := range m.rooms {
		if def == nil || r.ID < def.ID {
			def = r
		}
	}
	if def == nil {
		return nil, ErrNotFound
	}
	cp := *def
	return &cp, nil
}

func (m *memoryRepository) List(ctx context.Context) ([]*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Room
	for _, r := range m.rooms {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memoryRepository) Update(ctx context.Context, r *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	m.rooms[r.ID] = &cp
	return nil
}

func (m *memoryRepository) TryDecrementAvailable(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return false, ErrNotFound
	}
	if r.AvailableRooms <= 0 {
		return false, nil
	}
	r.AvailableRooms--
	return true, nil
}

func (m *memoryRepository) IncrementAvailable(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return ErrNotFound
	}
	r.AvailableRooms++
	return nil
}

func (m *memoryRepository) available(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[id].AvailableRooms
}

func setupService(t *testing.T) (Service, *memoryRepository, *Room) {
	t.Helper()
	repo := newMemoryRepository()
	svc := NewService(repo)

	room, err := svc.Create(context.Background(), CreateRequest{
		RoomType:       "Room Type 1",
		Price:          100,
		AvailableRooms: 5,
	})
	require.NoError(t, err)
	return svc, repo, room
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	svc, repo, room := setupService(t)
	ctx := context.Background()

	reserved, err := svc.Reserve(ctx, "Room Type 1")
	require.NoError(t, err)
	assert.Equal(t, room.ID, reserved.ID)
	assert.Equal(t, 4, repo.available(room.ID))

	require.NoError(t, svc.Release(ctx, reserved.ID))
	assert.Equal(t, 5, repo.available(room.ID), "release must restore the exact pre-reserve count")
}

func TestReserveCapacityExhausted(t *testing.T) {
	svc, repo, room := setupService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Reserve(ctx, "Room Type 1")
		require.NoError(t, err)
	}

	_, err := svc.Reserve(ctx, "Room Type 1")
	assert.ErrorIs(t, err, ErrNoRoomsAvailable)
	assert.Equal(t, 0, repo.available(room.ID), "count must never go negative")
}

func TestReserveConcurrentNeverOversells(t *testing.T) {
	svc, repo, room := setupService(t)
	ctx := context.Background()

	const workers = 20 // capacity is 5

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(ctx, "Room Type 1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, exhausted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrNoRoomsAvailable):
			exhausted++
		}
	}

	assert.Equal(t, 5, succeeded, "exactly K of N concurrent reserves succeed")
	assert.Equal(t, workers-5, exhausted)
	assert.Equal(t, 0, repo.available(room.ID))
}

func TestReserveUnknownTypeFallsBackToDefault(t *testing.T) {
	svc, repo, room := setupService(t)
	ctx := context.Background()

	reserved, err := svc.Reserve(ctx, "Room Type 9")
	require.NoError(t, err)
	assert.Equal(t, room.ID, reserved.ID, "unknown type reserves the default room")
	assert.Equal(t, 4, repo.available(room.ID))
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{RoomType: "  ", Price: 10, AvailableRooms: 1})
	assert.ErrorIs(t, err, ErrEmptyType)

	_, err = svc.Create(ctx, CreateRequest{RoomType: "Room Type 2", Price: -1, AvailableRooms: 1})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.Create(ctx, CreateRequest{RoomType: "Room Type 2", Price: 1, AvailableRooms: -1})
	assert.ErrorIs(t, err, ErrInvalidUnits)

	_, err = svc.Create(ctx, CreateRequest{RoomType: "Room Type 1", Price: 1, AvailableRooms: 1})
	assert.ErrorIs(t, err, ErrTypeAlreadyUsed)
}

func TestUpdateRoom(t *testing.T) {
	svc, _, room := setupService(t)
	ctx := context.Background()

	price := 150.0
	units := 10
	updated, err := svc.Update(ctx, room.ID, UpdateRequest{Price: &price, AvailableRooms: &units})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Price)
	assert.Equal(t, 10, updated.AvailableRooms)

	_, err = svc.Update(ctx, 9999, UpdateRequest{Price: &price})
	assert.ErrorIs(t, err, ErrNotFound)
}
