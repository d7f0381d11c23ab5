package nn

// MSE returns the mean squared error between predictions and targets,
// paired positionally over the shorter of the two. An empty pairing
// yields 0.
//
// MSE is a monitoring helper for hosts tracking convergence; the
// update rule never uses it.
func MSE(predictions, targets []float64) float64 {
	n := min(len(predictions), len(targets))
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := predictions[i] - targets[i]
		sum += d * d
	}
	return sum / float64(n)
}
