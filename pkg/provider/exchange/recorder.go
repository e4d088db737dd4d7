package exchange

// Recorder observes cache and provider activity.
type Recorder interface {
	ObserveCache(op string, hit bool)
	ObserveRequest(op string, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCache(string, bool)    {}
func (nopRecorder) ObserveRequest(string, error) {}
