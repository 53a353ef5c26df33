package provision

const (
	emptyString = ""
	pathSep     = " -> "
)

// BindingKind distinguishes how a binding produces its value.
type BindingKind int

const (
	// ConstructorBinding builds a new instance on every resolution.
	ConstructorBinding BindingKind = iota
	// InstanceBinding returns a fixed value registered up front. Listeners never fire for it.
	InstanceBinding
)

func (k BindingKind) String() string {
	switch k {
	case ConstructorBinding:
		return "constructor"
	case InstanceBinding:
		return "instance"
	default:
		return "unknown"
	}
}
