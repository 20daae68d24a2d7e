// Package field defines the form-control descriptors the engine operates on
// and the heuristic classifier that assigns each control a semantic type.
package field

// ControlKind identifies the kind of form control a descriptor was captured
// from. Classification and filling switch exhaustively over this closed set
// instead of probing host types at runtime.
type ControlKind int

const (
	KindText ControlKind = iota
	KindTextArea
	KindSelect
	KindRadio
	KindFile
)

// String returns the lowercase name of the control kind.
func (k ControlKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTextArea:
		return "textarea"
	case KindSelect:
		return "select"
	case KindRadio:
		return "radio"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Descriptor is an immutable snapshot of one form control, taken at
// classification time. It carries the raw attributes the classifier and
// fingerprinter consume plus the eligibility flags the orchestrator filters on.
type Descriptor struct {
	// Kind is the structural kind of the control.
	Kind ControlKind

	// Type is the value of the input's type attribute ("email", "tel",
	// "password", ...). Empty for non-input controls.
	Type string

	// Raw attributes consulted by the classifier.
	Name         string
	ID           string
	Placeholder  string
	AriaLabel    string
	Autocomplete string
	Pattern      string
	Accept       string
	ClassName    string

	// Eligibility flags. Controls with any of these set are never filled.
	Disabled bool
	ReadOnly bool
	Hidden   bool

	// Position is the control's index in page enumeration order.
	Position int
}

// ControlType returns the signature component used by the form fingerprinter:
// the input type attribute when present, otherwise the structural kind name.
func (d Descriptor) ControlType() string {
	if d.Kind == KindText && d.Type != "" {
		return d.Type
	}
	return d.Kind.String()
}

// Identifier returns the control's name attribute, falling back to its id.
func (d Descriptor) Identifier() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
