package main

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/avral/tessera/internal/manifestcfg"
	"github.com/avral/tessera/pkg/domain"
	"github.com/avral/tessera/pkg/manifest"
	"github.com/avral/tessera/pkg/middleware"
	"github.com/avral/tessera/pkg/ports"
	"github.com/avral/tessera/pkg/registry"
	"github.com/avral/tessera/pkg/view"
)

// demoRegistry holds the models and views the bundled manifest (and any
// user-supplied manifest.yaml) can reference by name.
func demoRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.New()

	reg.RegisterModel("status", func(ctx context.Context, args domain.Args) (any, error) {
		return map[string]any{
			"go":         runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
			"time":       time.Now().Format(time.RFC3339),
		}, nil
	})

	reg.RegisterModel("echo", func(ctx context.Context, args domain.Args) (any, error) {
		return args["message"], nil
	}, domain.Positional("message"))

	reg.RegisterModel("multiply", func(ctx context.Context, args domain.Args) (any, error) {
		var in struct {
			X int `mapstructure:"x"`
			Y int `mapstructure:"y"`
		}
		if err := ports.DecodeArgs(args, &in); err != nil {
			return nil, &domain.InvalidInput{
				Message: "x and y must be integers",
				Fields:  map[string]domain.FieldError{"x": {Message: err.Error()}},
			}
		}
		return map[string]any{"x": in.X, "y": in.Y, "product": in.X * in.Y}, nil
	}, domain.Positional("x"), domain.Optional("y", "7"))

	reg.RegisterView("basic", view.Basic())
	reg.RegisterView("json", view.ForceJSON())
	reg.RegisterView("text", view.ForceText())
	reg.RegisterMiddleware("logging", middleware.Logging(logger, "http", "cmd"))

	return reg
}

// demoManifest builds the routing tree: either from a manifest.yaml bound
// to the demo registry, or the built-in demo routes.
func demoManifest(path string, logger *slog.Logger) (*manifest.Node, error) {
	reg := demoRegistry(logger)
	if path != "" {
		f, err := manifestcfg.Load(path)
		if err != nil {
			return nil, err
		}
		return manifestcfg.Build(f, reg)
	}

	status, _ := reg.Model("status")
	echo, _ := reg.Model("echo")
	multiply, _ := reg.Model("multiply")
	logging, _ := reg.Middleware("logging")

	return manifest.New(map[string]manifest.Entry{
		"": manifest.Program(domain.MustProgram(domain.ProgramConfig{
			Name:  "status",
			Model: status.Model,
			View:  view.Basic(),
			Input: []domain.Middleware{logging},
		})),
		"echo": manifest.Program(domain.MustProgram(domain.ProgramConfig{
			Name:   "echo",
			Model:  echo.Model,
			Params: echo.Params,
			View:   view.Basic(),
		})),
		"multiply": manifest.Program(domain.MustProgram(domain.ProgramConfig{
			Name:         "multiply",
			Model:        multiply.Model,
			Params:       multiply.Params,
			View:         view.Basic(),
			CacheSeconds: 30,
		})),
		"mult": manifest.Alias("multiply"),
	})
}
