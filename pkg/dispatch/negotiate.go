package dispatch

import (
	"context"
	"fmt"

	"github.com/avral/tessera/pkg/domain"
	"github.com/avral/tessera/pkg/ports"
)

// dataForModel reconciles the program's declared parameters against the
// three argument sources. Precedence per parameter, later wins:
//
//  1. declared default (a Primitive default resolves through the
//     controller instead of being used literally)
//  2. positional path argument at the parameter's index
//  3. raw request data under the parameter's name
func (d *Dispatcher) dataForModel(ctx context.Context, ctrl ports.Controller, program *domain.Program, pathArgs []string, req *domain.Request) (domain.Args, error) {
	params := program.Params()

	if len(pathArgs) > len(params) {
		return nil, fmt.Errorf("%w: program %q takes %d arguments, got %d",
			domain.ErrTooManyArguments, program.Name(), len(params), len(pathArgs))
	}

	out := make(domain.Args, len(params))
	for i, param := range params {
		if param.HasDefault {
			if prim, ok := param.Default.(domain.Primitive); ok {
				value, err := ctrl.Primitive(ctx, prim.String())
				if err != nil {
					return nil, fmt.Errorf("resolve primitive %q for %q: %w", prim, param.Name, err)
				}
				out[param.Name] = value
			} else {
				out[param.Name] = param.Default
			}
		}
		if i < len(pathArgs) {
			out[param.Name] = pathArgs[i]
		}
		if value, ok := req.Value(param.Name); ok {
			out[param.Name] = value
		}
	}

	if len(out) != len(params) {
		return nil, fmt.Errorf("%w: program %q resolved %d of %d parameters",
			domain.ErrMissingArguments, program.Name(), len(out), len(params))
	}
	return out, nil
}
