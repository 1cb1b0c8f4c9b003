package ratelimiter

// Logger is a minimal logging interface. The core library never logs
// itself — it is pure and synchronous, with I/O only through Store — this
// interface exists purely for the middleware layer and the demo host to
// share a common logging seam, with adapters provided for the standard
// library's log, zap, zerolog and logrus under adapters/.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
