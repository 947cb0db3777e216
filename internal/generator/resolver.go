package generator

import (
	"regexp"
	"slices"
	"strings"
)

// js-<Class>[.<Member>][.static][(<p1>,<p2>,...)]
var compositeKeyPattern = regexp.MustCompile(`js-(\w+)\.?(\w+)?\.?(static)?(\([\w\s\,]*\))?`)

// CompositeKey is the parsed form of a lookup key.
type CompositeKey struct {
	ClassName  string
	MemberName string
	IsStatic   bool
	// Params is nil when the key has no parameter list.
	Params []string
}

// ParseCompositeKey parses a key such as "js-Grid.Load.static(url,options)".
func ParseCompositeKey(key string) (CompositeKey, bool) {
	m := compositeKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return CompositeKey{}, false
	}

	ck := CompositeKey{
		ClassName:  m[1],
		MemberName: m[2],
		IsStatic:   m[3] != "",
	}
	if list := m[4]; list != "" {
		names := strings.Split(list[1:len(list)-1], ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		ck.Params = names
	}
	return ck, true
}

// FindByCompositeKey looks up a single entity in the model. Malformed keys
// and keys that match nothing both report false.
func FindByCompositeKey(model *APIModel, key string) (Member, bool) {
	if model == nil {
		return nil, false
	}
	ck, ok := ParseCompositeKey(key)
	if !ok {
		return nil, false
	}

	class := model.findGlobalClass(ck.ClassName)
	if class == nil {
		return nil, false
	}

	switch {
	case ck.Params != nil && ck.MemberName != "":
		if m := class.findMethod(ck.MemberName, ck.IsStatic, ck.Params); m != nil {
			return m, true
		}
	case ck.MemberName != "":
		for _, e := range class.Events {
			if e.Name == ck.MemberName {
				return e, true
			}
		}
		for _, f := range class.Fields {
			if f.Name == ck.MemberName {
				return f, true
			}
		}
	default:
		return class.Summary(), true
	}
	return nil, false
}

// Summary projects the class without its members.
func (c *Class) Summary() *ClassSummary {
	return &ClassSummary{
		Name:        c.Name,
		Description: c.Description,
		BaseType:    c.BaseType,
		UseCases:    c.UseCases,
		Limitations: c.Limitations,
	}
}

func (m *APIModel) findGlobalClass(name string) *Class {
	for _, ns := range m.Namespaces {
		if !ns.IsGlobal {
			continue
		}
		for _, c := range ns.Classes {
			if c.Name == name {
				return c
			}
		}
	}
	return nil
}

// findMethod returns the first method with the given name and static flag
// whose required parameters all appear in supplied.
func (c *Class) findMethod(name string, isStatic bool, supplied []string) *Method {
	for _, m := range c.Methods {
		if m.Name != name || m.IsStatic != isStatic {
			continue
		}
		if m.acceptsParams(supplied) {
			return m
		}
	}
	return nil
}

func (m *Method) acceptsParams(supplied []string) bool {
	for _, p := range m.Params {
		if p.Required && !slices.Contains(supplied, p.Name) {
			return false
		}
	}
	return true
}
