package generator

// DefaultFieldValue is stored as the default value of every extracted field.
// Default values are not read from the test source.
const DefaultFieldValue = "%default%"

// GlobalNamespace is the name of the implicit namespace that holds classes
// declared outside of any "namespace" block.
const GlobalNamespace = "Global"

// APIModel is the documentation model built from one or more BDD test files.
type APIModel struct {
	Namespaces []*Namespace `json:"namespaces" yaml:"namespaces"`
}

// Namespace groups classes. Names are unique within a model.
type Namespace struct {
	Name     string   `json:"name" yaml:"name"`
	IsGlobal bool     `json:"isGlobal" yaml:"isGlobal"`
	Classes  []*Class `json:"classes" yaml:"classes"`
}

// Class represents a documented class and its public members
type Class struct {
	Name        string        `json:"name" yaml:"name"`
	BaseType    string        `json:"baseType,omitempty" yaml:"baseType,omitempty"`
	Description string        `json:"description" yaml:"description"`
	Fields      []*Field      `json:"fields" yaml:"fields"`
	Events      []*Event      `json:"eventHandlers" yaml:"eventHandlers"`
	Methods     []*Method     `json:"methods" yaml:"methods"`
	UseCases    []*Annotation `json:"useCases" yaml:"useCases"`
	Limitations []*Annotation `json:"limitations" yaml:"limitations"`
}

// Method represents a public method signature
type Method struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	ReturnType  string        `json:"returnType" yaml:"returnType"`
	Params      []Parameter   `json:"params" yaml:"params"`
	IsStatic    bool          `json:"isStatic" yaml:"isStatic"`
	UseCases    []*Annotation `json:"useCases" yaml:"useCases"`
	Limitations []*Annotation `json:"limitations" yaml:"limitations"`
}

// Parameter represents a method parameter
type Parameter struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Required bool   `json:"required" yaml:"required"`
}

// Event represents a public member whose type is an event handler
type Event struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	HandlerType string        `json:"handlerType" yaml:"handlerType"`
	UseCases    []*Annotation `json:"useCases" yaml:"useCases"`
	Limitations []*Annotation `json:"limitations" yaml:"limitations"`
}

// Field represents a public data member
type Field struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description" yaml:"description"`
	Type         string        `json:"type" yaml:"type"`
	DefaultValue string        `json:"defaultValue" yaml:"defaultValue"`
	UseCases     []*Annotation `json:"useCases" yaml:"useCases"`
	Limitations  []*Annotation `json:"limitations" yaml:"limitations"`
}

// Annotation is a use case or a limitation extracted from an "it" block.
type Annotation struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Code        string `json:"code" yaml:"code"`
}

// ClassSummary is the class projection returned by composite-key lookups
// that name no member. It carries no members.
type ClassSummary struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	BaseType    string        `json:"baseType,omitempty" yaml:"baseType,omitempty"`
	UseCases    []*Annotation `json:"useCases" yaml:"useCases"`
	Limitations []*Annotation `json:"limitations" yaml:"limitations"`
}

// MemberKind identifies the entity returned by a lookup.
type MemberKind string

const (
	KindClass  MemberKind = "class"
	KindMethod MemberKind = "method"
	KindEvent  MemberKind = "event"
	KindField  MemberKind = "field"
)

// Member is any entity a composite key can resolve to.
type Member interface {
	Kind() MemberKind
}

func (*ClassSummary) Kind() MemberKind { return KindClass }
func (*Method) Kind() MemberKind       { return KindMethod }
func (*Event) Kind() MemberKind        { return KindEvent }
func (*Field) Kind() MemberKind        { return KindField }

// annotated is implemented by every entity that owns use cases and limitations.
type annotated interface {
	addUseCase(a *Annotation)
	addLimitation(a *Annotation)
}

func (c *Class) addUseCase(a *Annotation)     { c.UseCases = append(c.UseCases, a) }
func (c *Class) addLimitation(a *Annotation)  { c.Limitations = append(c.Limitations, a) }
func (m *Method) addUseCase(a *Annotation)    { m.UseCases = append(m.UseCases, a) }
func (m *Method) addLimitation(a *Annotation) { m.Limitations = append(m.Limitations, a) }
func (e *Event) addUseCase(a *Annotation)     { e.UseCases = append(e.UseCases, a) }
func (e *Event) addLimitation(a *Annotation)  { e.Limitations = append(e.Limitations, a) }
func (f *Field) addUseCase(a *Annotation)     { f.UseCases = append(f.UseCases, a) }
func (f *Field) addLimitation(a *Annotation)  { f.Limitations = append(f.Limitations, a) }
