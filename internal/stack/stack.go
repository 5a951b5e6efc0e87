// Package stack describes the technology stacks ez can generate code for.
package stack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eddwinpaz/ez-cli/internal/bootstrap"
)

// ErrUnknownStack is returned by Lookup for names outside the table.
var ErrUnknownStack = errors.New("unknown stack")

// Artifact maps one template to one generated file.
type Artifact struct {
	// Template is the template file name inside the stack's template directory.
	Template string

	// Output is the output path relative to the module directory. It is
	// itself a template rendered with the generation data, so file names
	// follow the class name (e.g. "Controllers/{{.ClassName}}Controller.cs").
	Output string

	// Bootstrap marks the application's startup file. It is written only
	// when missing; an existing one is patched with the module's registrations.
	Bootstrap bool
}

// Stack is one row of the stack table.
type Stack struct {
	Name        string
	Description string
	Ext         string
	Dialect     *bootstrap.Dialect // nil when the stack has no bootstrap file
	Artifacts   []Artifact
}

// TemplatePath returns the slash-separated template name for a, as the
// renderer expects it.
func (s Stack) TemplatePath(a Artifact) string {
	return s.Name + "/" + a.Template
}

// Bootstrap returns the stack's bootstrap artifact, if any.
func (s Stack) Bootstrap() (Artifact, bool) {
	for _, a := range s.Artifacts {
		if a.Bootstrap {
			return a, true
		}
	}
	return Artifact{}, false
}

func typescript(name, description string) Stack {
	return Stack{
		Name:        name,
		Description: description,
		Ext:         "ts",
		Artifacts: []Artifact{
			{Template: "controller.ts.tmpl", Output: "controllers/{{kebab .ClassName}}.controller.ts"},
			{Template: "service.ts.tmpl", Output: "services/{{kebab .ClassName}}.service.ts"},
			{Template: "repository.ts.tmpl", Output: "repositories/{{kebab .ClassName}}.repository.ts"},
			{Template: "entity.ts.tmpl", Output: "models/{{kebab .ClassName}}.entity.ts"},
			{Template: "test_controller.ts.tmpl", Output: "tests/{{kebab .ClassName}}.controller.spec.ts"},
			{Template: "test_service.ts.tmpl", Output: "tests/{{kebab .ClassName}}.service.spec.ts"},
			{Template: "test_repository.ts.tmpl", Output: "tests/{{kebab .ClassName}}.repository.spec.ts"},
			{Template: "test_entity.ts.tmpl", Output: "tests/{{kebab .ClassName}}.entity.spec.ts"},
		},
	}
}

var table = []Stack{
	{
		Name:        "netcore",
		Description: "ASP.NET Core Web API (C#)",
		Ext:         "cs",
		Dialect:     &bootstrap.NetCore,
		Artifacts: []Artifact{
			{Template: "program.cs.tmpl", Output: "../Program.cs", Bootstrap: true},
			{Template: "controller.cs.tmpl", Output: "Controllers/{{.ClassName}}Controller.cs"},
			{Template: "service.cs.tmpl", Output: "Services/{{.ClassName}}Service.cs"},
			{Template: "repository.cs.tmpl", Output: "Repositories/{{.ClassName}}Repository.cs"},
			{Template: "entity.cs.tmpl", Output: "Models/{{.ClassName}}.cs"},
			{Template: "test_controller.cs.tmpl", Output: "Tests/{{.ClassName}}ControllerTests.cs"},
			{Template: "test_service.cs.tmpl", Output: "Tests/{{.ClassName}}ServiceTests.cs"},
			{Template: "test_repository.cs.tmpl", Output: "Tests/{{.ClassName}}RepositoryTests.cs"},
			{Template: "test_entity.cs.tmpl", Output: "Tests/{{.ClassName}}Tests.cs"},
		},
	},
	typescript("nestjs", "NestJS (TypeScript)"),
	typescript("nano", "Framework-free Node.js handlers (TypeScript)"),
}

// Default is the stack offered first and used when none is chosen.
const Default = "netcore"

// All returns the stack table in display order.
func All() []Stack {
	out := make([]Stack, len(table))
	copy(out, table)
	return out
}

// Names returns the stack names in display order.
func Names() []string {
	names := make([]string, len(table))
	for i, s := range table {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a stack by name, ignoring case and surrounding space.
func Lookup(name string) (Stack, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, s := range table {
		if s.Name == want {
			return s, nil
		}
	}
	return Stack{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownStack, name, strings.Join(Names(), ", "))
}
