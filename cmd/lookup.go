package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tapedeck/internal/services"
	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// LookupSearch queries the configured providers for songs.
func (r *Runner) LookupSearch(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	r.logger.Info("searching providers", "query", query)

	gateway := services.NewGateway(r.providers(), r.providerTimeout(), r.config.Library.SearchLimit, r.logger)
	candidates, err := gateway.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(candidates, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", query))
	for i, c := range candidates {
		r.writePlain("%d. %s - %s [%s]\n", i+1, c.Artist, c.Title, c.Duration)
		r.writePlain("   id: %s\n", c.TrackID)
	}
	r.writePlainln("Total: %d", len(candidates))

	return nil
}

// LookupResolve resolves a track id to a playable stream URL.
func (r *Runner) LookupResolve(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	trackID := cmd.StringArg("track")
	if trackID == "" {
		return fmt.Errorf("%w: track argument is required", shared.ErrMissingArgument)
	}

	r.logger.Info("resolving track", "track", trackID)

	resolver := services.NewResolver(r.providers(), r.providerTimeout(), r.logger)
	resolution, err := resolver.Resolve(ctx, trackID)
	if err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(resolution, false)
	}

	r.writePlain("✓ Resolved via %s\n", resolution.Provider)
	r.writePlain("%s\n", resolution.URL)

	return nil
}

// ProvidersStatus probes every configured provider concurrently.
func (r *Runner) ProvidersStatus(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	statuses := services.CheckProviders(ctx, r.providers(), r.providerTimeout())

	if cmd.Bool("json") {
		return r.writeJSON(statuses, true)
	}

	r.writePlainHeader("Provider Status")
	for _, status := range statuses {
		mark := "✓"
		if !status.Healthy {
			mark = "✗"
		}
		r.writePlain("%s %s (%s)", mark, status.Provider, status.Elapsed)
		if status.Error != "" {
			r.writePlain(" - %s", status.Error)
		}
		r.writePlain("\n")
	}

	return nil
}
