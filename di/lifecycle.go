package di

// Lifecycle determines how many instances a binding produces and how long
// they are cached.
type Lifecycle int

const (
	Instance     Lifecycle = iota + 1 // Value supplied at bind time
	Transient                         // New instance on every resolve
	Singleton                         // Built once, cached forever
	Scoped                            // Built once per scope frame
	ScopeContext                      // Context value of the current scope frame
)

// String returns the upper-case name of the lifecycle.
func (l Lifecycle) String() string {
	switch l {
	case Instance:
		return "INSTANCE"
	case Transient:
		return "TRANSIENT"
	case Singleton:
		return "SINGLETON"
	case Scoped:
		return "SCOPED"
	case ScopeContext:
		return "SCOPE_CONTEXT"
	default:
		return "UNKNOWN"
	}
}
