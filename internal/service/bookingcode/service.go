package bookingcode

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// DefaultMaxAttempts число попыток по умолчанию
const DefaultMaxAttempts = 10

// Service выдает уникальные 8-значные номера бронирований
type Service struct {
	repo        BookingRepository
	generator   Generator
	maxAttempts int
	logger      Logger
}

// NewService создает аллокатор с генератором, засеянным текущим временем
func NewService(repo BookingRepository, maxAttempts int, logger Logger) *Service {
	return NewServiceWithGenerator(repo, NewLockedRand(time.Now().UnixNano()), maxAttempts, logger)
}

// NewServiceWithGenerator создает аллокатор с заданным генератором
func NewServiceWithGenerator(repo BookingRepository, generator Generator, maxAttempts int, logger Logger) *Service {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Service{
		repo:        repo,
		generator:   generator,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Allocate выбирает номер, которого нет в хранилище.
// Ошибка хранилища не повторяется и возвращается как ErrStore.
func (s *Service) Allocate(ctx context.Context) (int64, error) {
	used := 0
	return s.allocate(ctx, &used)
}

// Assign выдает номер и вызывает insert. Если insert сообщает о занятом номере (ErrCodeTaken),
// берется новый номер. Проверки существования и вставки делят один бюджет maxAttempts,
// поэтому за один вызов выполняется не больше maxAttempts проверок ExistsByNumber.
// Остальные ошибки insert возвращаются без изменений.
func (s *Service) Assign(ctx context.Context, insert InsertFunc) (int64, error) {
	used := 0
	for {
		code, err := s.allocate(ctx, &used)
		if err != nil {
			return 0, err
		}

		err = insert(ctx, code)
		if err == nil {
			s.logger.Info("Assign: code=%d assigned on attempt %d", code, used)
			return code, nil
		}

		if !errors.Is(err, ErrCodeTaken) {
			return 0, err
		}

		s.logger.Warn("Assign: code=%d taken concurrently, attempt %d/%d", code, used, s.maxAttempts)
	}
}

// allocate тратит попытки из общего счетчика used, каждая итерация расходует хотя бы одну
func (s *Service) allocate(ctx context.Context, used *int) (int64, error) {
	for *used < s.maxAttempts {
		*used++
		code := s.draw()

		exists, err := s.repo.ExistsByNumber(ctx, code)
		if err != nil {
			s.logger.Error("Allocate: failed to check code=%d: %v", code, err)
			return 0, fmt.Errorf("%w: Allocate - exists check: %v", ErrStore, err)
		}

		if !exists {
			return code, nil
		}

		s.logger.Warn("Allocate: code=%d already taken, attempt %d/%d", code, *used, s.maxAttempts)
	}

	s.logger.Error("Allocate: no free code after %d attempts", s.maxAttempts)
	return 0, ErrExhausted
}

func (s *Service) draw() int64 {
	span := domain.MaxBookingNumber - domain.MinBookingNumber + 1
	return domain.MinBookingNumber + s.generator.Int63n(span)
}

// LockedRand *rand.Rand, безопасный для конкурентного использования
type LockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLockedRand создает генератор с заданным seed
func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rnd: rand.New(rand.NewSource(seed))}
}

// Int63n возвращает число в [0, n)
func (r *LockedRand) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Int63n(n)
}
