// Package bootstrap registers generated services and repositories in an
// application's startup file.
//
// The startup file is edited in place: two registration lines are inserted
// directly after an anchor comment. When the anchor comment is missing it is
// added just before the line that builds the application. Running the same
// registration twice leaves the file unchanged.
//
//	builder.Services.AddControllers();
//
//	// Register dependencies
//	builder.Services.AddScoped<ICustomerService, CustomerService>();
//	builder.Services.AddScoped<ICustomerRepository, CustomerRepository>();
//	var app = builder.Build();
package bootstrap

import (
	"fmt"

	"github.com/eddwinpaz/ez-cli/internal/entity"
)

// Dialect holds the literal lines of one bootstrap language.
type Dialect struct {
	// Name identifies the dialect in output (e.g., "netcore").
	Name string

	// FileName is the bootstrap file name (e.g., "Program.cs").
	FileName string

	// Marker is the anchor comment registrations follow.
	Marker string

	// EntryPoint is the statement the marker is placed before when missing.
	EntryPoint string

	// Registrations are fmt formats, one per inserted line, in insertion
	// order. %[1]s is the class stem (prefix + module + suffix).
	Registrations []string
}

// NetCore is the ASP.NET Core minimal-hosting Program.cs dialect.
var NetCore = Dialect{
	Name:       "netcore",
	FileName:   "Program.cs",
	Marker:     "// Register dependencies",
	EntryPoint: "var app = builder.Build();",
	Registrations: []string{
		"builder.Services.AddScoped<I%[1]sService, %[1]sService>();",
		"builder.Services.AddScoped<I%[1]sRepository, %[1]sRepository>();",
	},
}

// Lines returns the registration lines for names, without line terminators.
func (d Dialect) Lines(names entity.Names) []string {
	class := names.ClassName()
	lines := make([]string, len(d.Registrations))
	for i, format := range d.Registrations {
		lines[i] = fmt.Sprintf(format, class)
	}
	return lines
}

// Validate checks that the dialect can locate anchors and produce lines.
func (d Dialect) Validate() error {
	switch {
	case normalize(d.Marker) == "":
		return fmt.Errorf("dialect %q: marker is required", d.Name)
	case normalize(d.EntryPoint) == "":
		return fmt.Errorf("dialect %q: entry point is required", d.Name)
	case len(d.Registrations) == 0:
		return fmt.Errorf("dialect %q: at least one registration is required", d.Name)
	}
	return nil
}
