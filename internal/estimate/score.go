package estimate

// Points returns the bag's signed contribution: 3 in the hole, 1 on the
// board, positive for red and negative for blue.
func (b BeanBag) Points() int {
	return b.Color.Sign() * b.Location.Points()
}

// Score reduces beanbags to a cancellation score. A positive total is red's
// lead, a negative one blue's; a tie or an empty list is 0. Order does not
// matter.
func Score(bags []BeanBag) int {
	s := 0
	for _, b := range bags {
		s += b.Points()
	}
	return s
}
