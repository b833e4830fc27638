package ws

// Storage hands out small integer slots and reuses freed ones oldest first.
type Storage[T any] struct {
	available []int
	valid     []bool
	data      []T
}

func NewStorage[T any]() *Storage[T] {
	return &Storage[T]{
		make([]int, 0),
		make([]bool, 0),
		make([]T, 0),
	}
}

func (s *Storage[T]) Emplace(v T) int {
	if len(s.available) > 0 {
		id := s.available[0]
		s.available = s.available[1:]
		s.data[id] = v
		s.valid[id] = true
		return id
	}
	id := len(s.data)
	s.data = append(s.data, v)
	s.valid = append(s.valid, true)
	return id
}

func (s *Storage[T]) Remove(id int) {
	if !s.has(id) {
		return
	}
	var zero T
	s.data[id] = zero
	s.valid[id] = false
	s.available = append(s.available, id)
}

// Each visits live slots in id order.
func (s *Storage[T]) Each(f func(id int, v T)) {
	for id, ok := range s.valid {
		if ok {
			f(id, s.data[id])
		}
	}
}

func (s *Storage[T]) Len() int {
	return len(s.data) - len(s.available)
}

func (s *Storage[T]) has(id int) bool {
	return id >= 0 && id < len(s.valid) && s.valid[id]
}
