package generator

import (
	"log/slog"
	"strings"

	"github.com/gork-labs/bdd2doc/internal/bdd"
)

const (
	namespacePrefix = "namespace "
	classPrefix     = "class "
	publicPrefix    = "public "
	extendsKeyword  = " extends "
)

// Builder builds an APIModel from BDD block trees. It owns the model until
// Build hands it over.
type Builder struct {
	model  *APIModel
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used to report ignored blocks.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a builder with an empty model.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		model:  newAPIModel(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildModel builds a fresh model from the given trees, one per source file.
func BuildModel(trees ...[]*bdd.Block) *APIModel {
	b := NewBuilder()
	for _, blocks := range trees {
		b.Add(blocks)
	}
	return b.Build()
}

// Add processes the root blocks of one source file.
func (b *Builder) Add(blocks []*bdd.Block) {
	for _, block := range blocks {
		b.processRoot(block)
	}
}

// Build returns the model built so far and resets the builder to an empty
// model. The returned model is not touched by the builder again.
func (b *Builder) Build() *APIModel {
	model := b.model
	b.model = newAPIModel()
	return model
}

func (b *Builder) processRoot(block *bdd.Block) {
	if block.Type == bdd.TypeDescribe && strings.HasPrefix(block.Contents, namespacePrefix) {
		ns := b.namespace(strings.TrimPrefix(block.Contents, namespacePrefix), false)
		for _, child := range block.Blocks {
			b.processNamespaceContent(child, ns)
		}
		return
	}
	b.processNamespaceContent(block, b.namespace(GlobalNamespace, true))
}

// namespace returns the namespace with the given name, creating it on
// first use.
func (b *Builder) namespace(name string, isGlobal bool) *Namespace {
	for _, ns := range b.model.Namespaces {
		if ns.Name == name {
			return ns
		}
	}
	ns := &Namespace{Name: name, IsGlobal: isGlobal, Classes: []*Class{}}
	b.model.Namespaces = append(b.model.Namespaces, ns)
	return ns
}

func (b *Builder) processNamespaceContent(block *bdd.Block, ns *Namespace) {
	if block.Type != bdd.TypeDescribe || !strings.HasPrefix(block.Contents, classPrefix) {
		b.logger.Debug("ignoring block outside of a class", "namespace", ns.Name, "header", block.Contents)
		return
	}

	parts := strings.Split(strings.TrimPrefix(block.Contents, classPrefix), extendsKeyword)
	class := newClass(parts[0], describe(block))
	if len(parts) > 1 {
		class.BaseType = parts[1]
	}
	ns.Classes = append(ns.Classes, class)

	for _, child := range block.Blocks {
		b.processClassContent(child, class)
	}
}

func (b *Builder) processClassContent(block *bdd.Block, class *Class) {
	if block.IsStatement() {
		b.processStatement(block, class)
		return
	}
	if !strings.HasPrefix(block.Contents, publicPrefix) {
		b.logger.Debug("ignoring non-public member", "class", class.Name, "header", block.Contents)
		return
	}

	member := b.addMember(block, class)
	if member == nil {
		b.logger.Debug("ignoring unrecognized member signature", "class", class.Name, "header", block.Contents)
		return
	}
	for _, child := range block.Blocks {
		if child.IsStatement() {
			b.processStatement(child, member)
		}
	}
}

// addMember parses a member header and appends the method, event or field
// it declares. It returns nil when the header matches no signature.
func (b *Builder) addMember(block *bdd.Block, class *Class) annotated {
	sig := parseSignature(block.Contents)
	desc := describe(block)

	switch sig.Kind {
	case SignatureMethod:
		m := &Method{
			Name:        sig.Name,
			Description: desc,
			ReturnType:  sig.Type,
			Params:      sig.Params,
			IsStatic:    sig.IsStatic,
			UseCases:    []*Annotation{},
			Limitations: []*Annotation{},
		}
		class.Methods = append(class.Methods, m)
		return m
	case SignatureEvent:
		e := &Event{
			Name:        sig.Name,
			Description: desc,
			HandlerType: sig.Type,
			UseCases:    []*Annotation{},
			Limitations: []*Annotation{},
		}
		class.Events = append(class.Events, e)
		return e
	case SignatureField:
		f := &Field{
			Name:         sig.Name,
			Description:  desc,
			Type:         sig.Type,
			DefaultValue: DefaultFieldValue,
			UseCases:     []*Annotation{},
			Limitations:  []*Annotation{},
		}
		class.Fields = append(class.Fields, f)
		return f
	}
	return nil
}

func (b *Builder) processStatement(block *bdd.Block, target annotated) {
	if !applyStatement(block, target) {
		b.logger.Debug("ignoring unmarked statement", "header", block.Contents)
	}
}

func newAPIModel() *APIModel {
	return &APIModel{Namespaces: []*Namespace{}}
}

func newClass(name, description string) *Class {
	return &Class{
		Name:        name,
		Description: description,
		Fields:      []*Field{},
		Events:      []*Event{},
		Methods:     []*Method{},
		UseCases:    []*Annotation{},
		Limitations: []*Annotation{},
	}
}
