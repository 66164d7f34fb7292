package artifact

// no dedicated Error type: artifact writing failures are wrapped I/O
// errors, reported via github.com/pkg/errors at the call site.
