package summary

// TasksComplete is true for an empty list, otherwise only when every task
// is done.
func TasksComplete(tasks []Task) bool {
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}
