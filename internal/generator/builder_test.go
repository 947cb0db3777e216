package generator

import (
	"testing"

	"github.com/gork-labs/bdd2doc/internal/bdd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func describeBlock(contents string, children ...*bdd.Block) *bdd.Block {
	return &bdd.Block{Type: bdd.TypeDescribe, Contents: contents, Comments: []string{}, Blocks: children}
}

func itBlock(contents, code string, comments ...string) *bdd.Block {
	return &bdd.Block{Type: bdd.TypeIt, Contents: contents, Comments: comments, Code: code, Blocks: []*bdd.Block{}}
}

// sampleTree mirrors testdata/specs/MyComponentSpecTests.js.
func sampleTree() []*bdd.Block {
	event := describeBlock("public OptionChanged: SomeTypedEventHandler",
		itBlock("?Inspect the previous value", "handler();\ndone();", "The previous value is passed in the args"),
	)
	event.Comments = []string{"\n    Raised whenever an option changes\n    "}

	class := describeBlock("class MyComponent extends ComponentBase",
		itBlock("?How to get editor selection", "// create\n// select", "User story description"),
		itBlock("!Use ComponentFactory instead of new()", "// factory", "Limitation description"),
		event,
		describeBlock("public SetDataSource(dataSource?: object): void",
			itBlock("?Accepts JSON", "c.SetDataSource({});\nexpect(c.Series).toBe(1);//#skip#"),
			itBlock("!Ignored while ReadOnly is set", ""),
			describeBlock("nested describe is not a statement"),
		),
		describeBlock("public static Create(options: CreateOptions, host?: Element): MyComponent"),
		describeBlock("public Count: number",
			itBlock("?Read the count", "c.Count;"),
		),
		describeBlock("private Reset(force: boolean): void",
			itBlock("?Resets everything", "c.Reset(true);"),
		),
		describeBlock("protected Hidden: number"),
	)
	class.Comments = []string{" The component"}
	return []*bdd.Block{class}
}

func TestBuildNamespace(t *testing.T) {
	model := BuildModel([]*bdd.Block{
		describeBlock("namespace Foo", describeBlock("class Bar")),
	})

	require.Len(t, model.Namespaces, 1)
	ns := model.Namespaces[0]
	assert.Equal(t, "Foo", ns.Name)
	assert.False(t, ns.IsGlobal)
	require.Len(t, ns.Classes, 1)
	assert.Equal(t, "Bar", ns.Classes[0].Name)
	assert.Equal(t, "", ns.Classes[0].BaseType)
}

func TestBuildGlobalNamespace(t *testing.T) {
	model := BuildModel([]*bdd.Block{describeBlock("class Bar")})

	require.Len(t, model.Namespaces, 1)
	ns := model.Namespaces[0]
	assert.Equal(t, GlobalNamespace, ns.Name)
	assert.True(t, ns.IsGlobal)
	require.Len(t, ns.Classes, 1)
	assert.Equal(t, "Bar", ns.Classes[0].Name)
}

func TestBuildClassBaseType(t *testing.T) {
	model := BuildModel([]*bdd.Block{
		describeBlock("class A extends B"),
		describeBlock("class C"),
	})

	classes := model.Namespaces[0].Classes
	require.Len(t, classes, 2)
	assert.Equal(t, "A", classes[0].Name)
	assert.Equal(t, "B", classes[0].BaseType)
	assert.Equal(t, "C", classes[1].Name)
	assert.Equal(t, "", classes[1].BaseType)
}

func TestBuildClassMembers(t *testing.T) {
	model := BuildModel(sampleTree())
	class := model.Namespaces[0].Classes[0]

	assert.Equal(t, "MyComponent", class.Name)
	assert.Equal(t, "ComponentBase", class.BaseType)
	assert.Equal(t, "The component", class.Description)

	require.Len(t, class.UseCases, 1)
	assert.Equal(t, "How to get editor selection", class.UseCases[0].Title)
	assert.Equal(t, "User story description", class.UseCases[0].Description)
	assert.Equal(t, "// create\n// select", class.UseCases[0].Code)
	require.Len(t, class.Limitations, 1)
	assert.Equal(t, "Use ComponentFactory instead of new()", class.Limitations[0].Title)

	require.Len(t, class.Events, 1)
	event := class.Events[0]
	assert.Equal(t, "OptionChanged", event.Name)
	assert.Equal(t, "SomeTypedEventHandler", event.HandlerType)
	assert.Equal(t, "Raised whenever an option changes", event.Description)
	require.Len(t, event.UseCases, 1)
	assert.Equal(t, "handler();", event.UseCases[0].Code)

	require.Len(t, class.Methods, 2)
	setter := class.Methods[0]
	assert.Equal(t, "SetDataSource", setter.Name)
	assert.Equal(t, "void", setter.ReturnType)
	assert.False(t, setter.IsStatic)
	assert.Equal(t, []Parameter{{Name: "dataSource", Type: "object", Required: false}}, setter.Params)
	require.Len(t, setter.UseCases, 1)
	assert.Equal(t, "c.SetDataSource({});", setter.UseCases[0].Code)
	require.Len(t, setter.Limitations, 1)
	assert.Equal(t, "", setter.Limitations[0].Code)

	create := class.Methods[1]
	assert.Equal(t, "Create", create.Name)
	assert.True(t, create.IsStatic)
	assert.Equal(t, "MyComponent", create.ReturnType)

	require.Len(t, class.Fields, 1)
	field := class.Fields[0]
	assert.Equal(t, "Count", field.Name)
	assert.Equal(t, "number", field.Type)
	assert.Equal(t, DefaultFieldValue, field.DefaultValue)
	require.Len(t, field.UseCases, 1)
}

func TestBuildExcludesPrivateMembers(t *testing.T) {
	model := BuildModel(sampleTree())
	class := model.Namespaces[0].Classes[0]

	for _, m := range class.Methods {
		assert.NotEqual(t, "Reset", m.Name)
		for _, uc := range m.UseCases {
			assert.NotEqual(t, "Resets everything", uc.Title)
		}
	}
	for _, uc := range class.UseCases {
		assert.NotEqual(t, "Resets everything", uc.Title)
	}
	for _, f := range class.Fields {
		assert.NotEqual(t, "Hidden", f.Name)
	}
}

func TestBuildIgnoresUnrecognizedBlocks(t *testing.T) {
	model := BuildModel([]*bdd.Block{
		describeBlock("namespace UI",
			itBlock("?orphan statement", "x();"),
			describeBlock("helpers"),
			describeBlock("class Grid",
				describeBlock("public refresh(): void", itBlock("?never attached", "")),
			),
		),
	})

	require.Len(t, model.Namespaces, 1)
	require.Len(t, model.Namespaces[0].Classes, 1)
	grid := model.Namespaces[0].Classes[0]
	assert.Empty(t, grid.Methods)
	assert.Empty(t, grid.Fields)
	assert.Empty(t, grid.Events)
	assert.Empty(t, grid.UseCases)
}

func TestBuildMultipleFilesAppend(t *testing.T) {
	first := []*bdd.Block{describeBlock("namespace UI", describeBlock("class Grid"))}
	second := []*bdd.Block{
		describeBlock("namespace UI", describeBlock("class Grid")),
		describeBlock("class Button"),
	}

	model := BuildModel(first, second)

	require.Len(t, model.Namespaces, 2)
	assert.Equal(t, "UI", model.Namespaces[0].Name)
	assert.Len(t, model.Namespaces[0].Classes, 2, "same-named classes are appended, not merged")
	assert.Equal(t, GlobalNamespace, model.Namespaces[1].Name)
	assert.Equal(t, "Button", model.Namespaces[1].Classes[0].Name)
}

func TestBuildIsIdempotent(t *testing.T) {
	trees := [][]*bdd.Block{sampleTree(), {describeBlock("namespace UI", describeBlock("class Grid"))}}

	assert.Equal(t, BuildModel(trees...), BuildModel(trees...))
}

func TestBuilderBuildResets(t *testing.T) {
	b := NewBuilder()
	b.Add([]*bdd.Block{describeBlock("class A")})

	first := b.Build()
	require.Len(t, first.Namespaces, 1)

	second := b.Build()
	assert.Empty(t, second.Namespaces)
	assert.Len(t, first.Namespaces, 1, "handed-over model is left alone")
}
