package codec

// Tagged-shape keys for constructs that have no JSON analogue.
// A function call round-trips as a two-key object under these names.
const (
	// FunctionKey holds the function name.
	FunctionKey = "__function__"
	// ArgsKey holds the argument list.
	ArgsKey = "__args__"
)
