package outbound

// TaskDispatcher submits work to a shared worker pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
