package generator

import (
	"regexp"
	"strings"
)

var (
	// name(params): returnType
	methodPattern = regexp.MustCompile(`(\w+)\s*\(([^\(]+)\):\s*(\w+)`)
	// name: type
	memberPattern = regexp.MustCompile(`(\w+)\s*:\s*(\w+)`)
)

const (
	staticMarker       = "static "
	eventHandlerMarker = "EventHandler"
	defaultParamType   = "object"
)

// SignatureKind tells which member a header declares.
type SignatureKind int

const (
	SignatureNone SignatureKind = iota
	SignatureMethod
	SignatureEvent
	SignatureField
)

// Signature is the parsed form of a member header. Only the fields that
// belong to Kind are set.
type Signature struct {
	Kind     SignatureKind
	Name     string
	Type     string // return type, handler type or field type
	Params   []Parameter
	IsStatic bool
}

// parseSignature parses a member header like `public foo(x: number, y?): bool`
// or `public changed: SomeEventHandler`. The method grammar wins when both match.
func parseSignature(header string) Signature {
	if m := methodPattern.FindStringSubmatch(header); m != nil {
		return Signature{
			Kind:     SignatureMethod,
			Name:     m[1],
			Type:     m[3],
			Params:   parseParams(m[2]),
			IsStatic: strings.Contains(header, staticMarker),
		}
	}

	m := memberPattern.FindStringSubmatch(header)
	if m == nil {
		return Signature{Kind: SignatureNone}
	}
	if strings.Contains(m[2], eventHandlerMarker) {
		return Signature{Kind: SignatureEvent, Name: m[1], Type: strings.TrimSpace(m[2])}
	}
	return Signature{Kind: SignatureField, Name: m[1], Type: m[2]}
}

// parseParams splits `a: T, b?: U, c` into parameters. A missing type
// becomes "object" and a trailing '?' on the name marks it optional.
func parseParams(list string) []Parameter {
	parts := strings.Split(list, ",")
	params := make([]Parameter, 0, len(parts))
	for _, p := range parts {
		nameAndType := strings.Split(p, ":")

		param := Parameter{
			Name: strings.TrimSpace(nameAndType[0]),
			Type: defaultParamType,
		}
		if len(nameAndType) > 1 && nameAndType[1] != "" {
			param.Type = strings.TrimSpace(nameAndType[1])
		}

		param.Required = !strings.HasSuffix(param.Name, "?")
		if !param.Required {
			param.Name = strings.TrimSuffix(param.Name, "?")
		}
		params = append(params, param)
	}
	return params
}
