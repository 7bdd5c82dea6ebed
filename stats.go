package tossup

// marginStats aggregates integer margins in a single pass. The zero value is
// ready to use.
type marginStats struct {
	n   int
	sum int64
	min int
	max int
}

func (s *marginStats) Push(v int) {
	if s.n == 0 || v < s.min {
		s.min = v
	}
	if s.n == 0 || v > s.max {
		s.max = v
	}
	s.sum += int64(v)
	s.n++
}

// Merge folds o into s.
func (s *marginStats) Merge(o marginStats) {
	if o.n == 0 {
		return
	}
	if s.n == 0 || o.min < s.min {
		s.min = o.min
	}
	if s.n == 0 || o.max > s.max {
		s.max = o.max
	}
	s.sum += o.sum
	s.n += o.n
}

func (s *marginStats) N() int {
	return s.n
}

func (s *marginStats) Avg() float64 {
	if s.n == 0 {
		return 0
	}
	return float64(s.sum) / float64(s.n)
}

func (s *marginStats) Min() int {
	return s.min
}

func (s *marginStats) Max() int {
	return s.max
}
