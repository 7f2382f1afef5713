package modeling

// Input usage flags
const (
	UseRequired = "required"
	UseOptional = "optional"
)

// Input UI types
const (
	TypeColormap    = "colormap"
	TypeNumeric     = "numeric"
	TypeEnumeration = "enumeration"
)

// ModelMetadata describes a model for tooling and UI layers
type ModelMetadata struct {
	Name  string
	Label string
}

// Range bounds a numeric input
type Range struct {
	Min, Max float64
}

// InputMetadata describes one declared input of a model
type InputMetadata struct {
	Name        string
	Label       string
	Type        string
	EntityTypes []string // Kinds of entities that may be bound (colors, textures)
	Items       []string // Accepted values of enumeration inputs
	Use         string
	Default     string
	Range       *Range
}
