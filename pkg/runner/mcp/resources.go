package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTodayResource(srv, svc)
	registerSettingsResource(srv, svc)
	registerCycleIndex(srv, svc)
	registerCycleTemplate(srv, svc)
}

func registerTodayResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"cosmic36://today",
		"Today",
		mcp.WithResourceDescription("The current day card with cycle position and entries."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.GetToday(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func registerSettingsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"cosmic36://settings",
		"Settings",
		mcp.WithResourceDescription("The active user settings."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		s, err := svc.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, s)
	})
}

func registerCycleIndex(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"cosmic36://cycles",
		"Cycle Index",
		mcp.WithResourceDescription("Composite keys of every stored cycle under the active settings, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"keys": svc.App.CycleKeys(),
		})
	})
}

func registerCycleTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"cosmic36://cycles/{key}",
		"Cycle Record",
		mcp.WithTemplateDescription("One cycle's journal record by composite key."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		key, _ := request.Params.Arguments["key"].(string)
		if key == "" {
			return nil, fmt.Errorf("cycle key is required")
		}

		rec, ok := svc.App.Record(key)
		if !ok {
			return nil, fmt.Errorf("no record for %q", key)
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"key":    key,
			"record": rec,
		})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
