/*
Package tessera is a transport-agnostic web-application framework built
around manifest resolution and program dispatch: one routing tree serves
HTTP requests, command-line argument lists and any other slash-delimited
invocation with the same programs, models and views.

# Concept

Tessera treats an application as a manifest tree of Programs. A Program
bundles a model function, a content-negotiated view, middleware chains and
a cache policy. Controllers (one per transport) hand the dispatcher a raw
request; the dispatcher resolves the invocation to a program, negotiates
model arguments from path segments, raw request data and primitives,
executes the model, and renders the result for the requested mimetype.
This Hexagonal Architecture keeps the core free of transport details: the
same manifest answers "GET /blog/5" and "tessera run blog/5".

# Key Features

  - Longest-prefix manifest routing with nested namespaces and aliases.
  - Data negotiation with defined precedence: defaults, then positional
    path arguments, then raw request data; primitives resolve
    request-derived values such as the authenticated principal.
  - MIME-negotiated views with superformat overrides ("/user/profile.json").
  - Explicit middleware pipelines with control-signal short-circuits.
  - Pluggable response caching (in-memory, Redis).

# Usage

Build a manifest, wrap it in an App, and hand it to an adapter:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/avral/tessera"
		"github.com/avral/tessera/pkg/adapters/cmdline"
		"github.com/avral/tessera/pkg/domain"
		"github.com/avral/tessera/pkg/manifest"
		"github.com/avral/tessera/pkg/view"
	)

	func main() {
		hello := domain.MustProgram(domain.ProgramConfig{
			Name: "hello",
			Model: func(ctx context.Context, args domain.Args) (any, error) {
				return fmt.Sprintf("hello, %s", args["name"]), nil
			},
			Params: []domain.Param{domain.Optional("name", "world")},
			View:   view.Basic(),
		})

		m := manifest.MustNew(map[string]manifest.Entry{
			"hello": manifest.Program(hello),
		})

		app := tessera.New(m)
		ctrl := cmdline.NewController()
		resp, err := app.Resolve(context.Background(), ctrl, cmdline.ParseArgs([]string{"hello"}))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(resp.Body)
	}
*/
package tessera
