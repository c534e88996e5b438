package index

// sink buffers records for batched writes. When the buffer is full it is
// written out before the next record is accepted, so no record is ever
// dropped and the buffer never exceeds its capacity.
type sink[T any] struct {
	buf   []T
	limit int
	write func([]T) error
}

func newSink[T any](limit int, write func([]T) error) *sink[T] {
	return &sink[T]{
		buf:   make([]T, 0, limit),
		limit: limit,
		write: write,
	}
}

func (s *sink[T]) push(v T) error {
	if len(s.buf) >= s.limit {
		if err := s.flush(); err != nil {
			return err
		}
	}
	s.buf = append(s.buf, v)
	return nil
}

func (s *sink[T]) flush() error {
	if len(s.buf) == 0 {
		return nil
	}
	if err := s.write(s.buf); err != nil {
		return err
	}
	s.buf = s.buf[:0]
	return nil
}
