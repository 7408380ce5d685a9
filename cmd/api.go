package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hanshat/infinitunes/internal/services"
	"github.com/hanshat/infinitunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet runs a raw catalog API call and prints the JSON response.
//
// Only available when the runner's catalog is the real API client; mocked
// catalogs in tests do not expose raw calls.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	call := cmd.StringArg("call")
	if call == "" {
		return fmt.Errorf("%w: API call name is required", shared.ErrMissingArgument)
	}

	saavn, ok := r.catalog.(*services.SaavnService)
	if !ok {
		return fmt.Errorf("%w: raw API calls require the catalog client", shared.ErrAPIRequest)
	}

	params := map[string]string{}
	for _, pair := range cmd.StringSlice("param") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("%w: param %q is not key=value", shared.ErrInvalidFlag, pair)
		}
		params[key] = value
	}

	r.logger.Info("raw API call", "call", call, "params", len(params))

	raw, err := saavn.Call(ctx, call, params)
	if err != nil {
		return fmt.Errorf("API call failed: %w", err)
	}

	if cmd.Bool("pretty") {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			return r.writeJSON(decoded, true)
		}
	}

	r.output.Write(raw)
	r.output.Write([]byte("\n"))
	return nil
}
