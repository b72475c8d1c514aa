package bookingcode

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ExistsByNumber(ctx context.Context, number int64) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

// setRepo хранилище в памяти
type setRepo struct {
	taken map[int64]bool
	calls int
}

func (r *setRepo) ExistsByNumber(_ context.Context, number int64) (bool, error) {
	r.calls++
	return r.taken[number], nil
}

// seqGenerator возвращает заранее заданные смещения по кругу
type seqGenerator struct {
	offsets []int64
	i       int
}

func (g *seqGenerator) Int63n(n int64) int64 {
	v := g.offsets[g.i%len(g.offsets)] % n
	g.i++
	return v
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestAllocate_AlwaysInRange(t *testing.T) {
	repo := &setRepo{taken: map[int64]bool{}}
	svc := NewServiceWithGenerator(repo, NewLockedRand(42), 10, nopLogger{})

	for i := 0; i < 1000; i++ {
		code, err := svc.Allocate(context.Background())
		require.NoError(t, err)
		assert.True(t, domain.IsValidBookingNumber(code), "code %d out of range", code)
	}
}

func TestAllocate_Bounds(t *testing.T) {
	span := domain.MaxBookingNumber - domain.MinBookingNumber + 1

	svc := NewServiceWithGenerator(&setRepo{}, &seqGenerator{offsets: []int64{0, span - 1}}, 10, nopLogger{})

	low, err := svc.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.MinBookingNumber, low)

	high, err := svc.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.MaxBookingNumber, high)
}

func TestAllocate_SkipsTakenCodes(t *testing.T) {
	repo := &setRepo{taken: map[int64]bool{
		domain.MinBookingNumber + 1: true,
		domain.MinBookingNumber + 2: true,
	}}
	svc := NewServiceWithGenerator(repo, &seqGenerator{offsets: []int64{1, 2, 3}}, 10, nopLogger{})

	code, err := svc.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.MinBookingNumber+3, code)
	assert.Equal(t, 3, repo.calls)
}

func TestAllocate_Exhausted(t *testing.T) {
	repo := &setRepo{taken: map[int64]bool{domain.MinBookingNumber: true}}
	svc := NewServiceWithGenerator(repo, &seqGenerator{offsets: []int64{0}}, 4, nopLogger{})

	_, err := svc.Allocate(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 4, repo.calls)
}

func TestAllocate_StoreErrorNotRetried(t *testing.T) {
	repo := &mockRepo{}
	storeErr := errors.New("connection reset")
	repo.On("ExistsByNumber", mock.Anything, domain.MinBookingNumber+5).Return(false, storeErr).Once()

	svc := NewServiceWithGenerator(repo, &seqGenerator{offsets: []int64{5}}, 10, nopLogger{})

	_, err := svc.Allocate(context.Background())
	assert.ErrorIs(t, err, ErrStore)
	repo.AssertNumberOfCalls(t, "ExistsByNumber", 1)
}

func TestAssign_RetriesOnCodeTaken(t *testing.T) {
	svc := NewServiceWithGenerator(&setRepo{}, &seqGenerator{offsets: []int64{1, 2, 3}}, 10, nopLogger{})

	var tried []int64
	code, err := svc.Assign(context.Background(), func(ctx context.Context, code int64) error {
		tried = append(tried, code)
		if len(tried) < 3 {
			return fmt.Errorf("insert: %w", ErrCodeTaken)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, domain.MinBookingNumber+3, code)
	assert.Equal(t, []int64{domain.MinBookingNumber + 1, domain.MinBookingNumber + 2, domain.MinBookingNumber + 3}, tried)
}

func TestAssign_GivesUpAfterBudget(t *testing.T) {
	svc := NewServiceWithGenerator(&setRepo{}, NewLockedRand(1), 3, nopLogger{})

	calls := 0
	_, err := svc.Assign(context.Background(), func(ctx context.Context, code int64) error {
		calls++
		return ErrCodeTaken
	})

	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 3, calls)
}

func TestAssign_SharesBudgetWithExistenceChecks(t *testing.T) {
	// Каждый второй номер уже занят в хранилище, а свободные номера перехватывает конкурент
	repo := &setRepo{taken: map[int64]bool{
		domain.MinBookingNumber + 1: true,
		domain.MinBookingNumber + 3: true,
		domain.MinBookingNumber + 5: true,
	}}
	svc := NewServiceWithGenerator(repo, &seqGenerator{offsets: []int64{1, 2, 3, 4, 5, 6}}, 4, nopLogger{})

	inserts := 0
	_, err := svc.Assign(context.Background(), func(ctx context.Context, code int64) error {
		inserts++
		return ErrCodeTaken
	})

	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 4, repo.calls)
	assert.Equal(t, 2, inserts)
}

func TestAssign_ExistenceChecksNeverExceedBudget(t *testing.T) {
	for _, maxAttempts := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("max_attempts=%d", maxAttempts), func(t *testing.T) {
			repo := &setRepo{}
			svc := NewServiceWithGenerator(repo, NewLockedRand(3), maxAttempts, nopLogger{})

			_, err := svc.Assign(context.Background(), func(ctx context.Context, code int64) error {
				return ErrCodeTaken
			})

			assert.ErrorIs(t, err, ErrExhausted)
			assert.LessOrEqual(t, repo.calls, maxAttempts)
		})
	}
}

func TestAssign_OtherInsertErrorReturnedUnchanged(t *testing.T) {
	svc := NewServiceWithGenerator(&setRepo{}, NewLockedRand(1), 3, nopLogger{})
	insertErr := errors.New("foreign key violation")

	calls := 0
	_, err := svc.Assign(context.Background(), func(ctx context.Context, code int64) error {
		calls++
		return insertErr
	})

	assert.Same(t, insertErr, err)
	assert.Equal(t, 1, calls)
}

func TestAssign_AssignedCodesAreDistinct(t *testing.T) {
	repo := &setRepo{taken: map[int64]bool{}}
	svc := NewServiceWithGenerator(repo, NewLockedRand(7), 10, nopLogger{})

	for i := 0; i < 500; i++ {
		_, err := svc.Assign(context.Background(), func(ctx context.Context, code int64) error {
			if repo.taken[code] {
				return ErrCodeTaken
			}
			repo.taken[code] = true
			return nil
		})
		require.NoError(t, err)
	}

	assert.Len(t, repo.taken, 500)
}

func TestNewService_DefaultAttempts(t *testing.T) {
	svc := NewService(&setRepo{}, 0, nopLogger{})
	assert.Equal(t, DefaultMaxAttempts, svc.maxAttempts)
}
