package main

import (
	"github.com/rotisserie/eris"

	"github.com/datavex/leadforge/internal/catalog"
	"github.com/datavex/leadforge/internal/discovery"
	"github.com/datavex/leadforge/internal/intel"
	"github.com/datavex/leadforge/internal/recon"
	"github.com/datavex/leadforge/internal/search"
	"github.com/datavex/leadforge/pkg/anthropic"
	"github.com/datavex/leadforge/pkg/serpapi"
)

// engineEnv holds the wired collaborators the commands share.
type engineEnv struct {
	Engine     *intel.Engine
	Prospector *discovery.Orchestrator
	Drafter    *intel.Drafter
}

// initEngine builds all clients and pipeline components from config.
func initEngine() (*engineEnv, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic key is required (LEADFORGE_ANTHROPIC_KEY)")
	}
	if cfg.SerpAPI.Key == "" {
		return nil, eris.New("serpapi key is required (LEADFORGE_SERPAPI_KEY)")
	}

	cat := catalog.Load(cfg.Catalog.Path)

	aiClient := anthropic.NewClient(cfg.Anthropic.Key)

	serpOpts := []serpapi.Option{}
	if cfg.SerpAPI.BaseURL != "" {
		serpOpts = append(serpOpts, serpapi.WithBaseURL(cfg.SerpAPI.BaseURL))
	}
	serpClient := serpapi.NewClient(cfg.SerpAPI.Key, serpOpts...)

	reconOpts := []recon.Option{}
	if cfg.Recon.UserAgent != "" {
		reconOpts = append(reconOpts, recon.WithUserAgent(cfg.Recon.UserAgent))
	}

	engine := intel.NewEngine(
		recon.NewHTTPCollector(reconOpts...),
		search.NewCollector(serpClient, cfg.Search.QueriesPerSecond),
		intel.NewPreScreener(cfg.Screen.Blocklist),
		intel.NewSynthesizer(aiClient, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, cat),
		cat,
	)

	return &engineEnv{
		Engine:     engine,
		Prospector: discovery.NewOrchestrator(serpClient, aiClient, cfg.Anthropic.Model, cfg.Screen.Blocklist, cat),
		Drafter:    intel.NewDrafter(aiClient, cfg.Anthropic.Model),
	}, nil
}
