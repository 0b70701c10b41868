package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerGetTodayTool(srv, svc)
	registerWriteEntryTool(srv, svc)
	registerWriteCloseTool(srv, svc)
	registerMarkTodayTool(srv, svc)
	registerReviewTool(srv, svc)
	registerEditEntryTool(srv, svc)
	registerExportTool(srv, svc)
	registerClearCycleTool(srv, svc)
	registerGetSettingsTool(srv, svc)
	registerUpdateSettingsTool(srv, svc)
	registerPatternStartsTool(srv, svc)
}

func registerGetTodayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_today",
		mcp.WithDescription("Get the current day card: cycle position, role, phase, guidance, and today's entries."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.GetToday(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerWriteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"write_entry",
		mcp.WithDescription("Write today's note, intention, or reflection. Content presence auto-marks the day."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Which field to write."),
			mcp.Enum("note", "intention", "reflection"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Entry text; an empty string clears the field."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text := request.GetString("text", "")

		dto, err := svc.WriteEntry(ctx, kind, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerWriteCloseTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"write_close",
		mcp.WithDescription("Write the cycle close-out: lesson, carry, and release. Cycle scoped, usually done on day 36."),
		mcp.WithString("lesson",
			mcp.Description("What did this cycle teach me?"),
		),
		mcp.WithString("carry",
			mcp.Description("What stays (what I carry forward)?"),
		),
		mcp.WithString("release",
			mcp.Description("What leaves (what I release)?"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.WriteClose(ctx,
			request.GetString("lesson", ""),
			request.GetString("carry", ""),
			request.GetString("release", ""),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMarkTodayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"mark_today",
		mcp.WithDescription("Explicitly mark or unmark today. Explicit intent wins over auto-marking until the next content edit."),
		mcp.WithBoolean("done",
			mcp.Description("Mark when true (default), unmark when false."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.MarkToday(ctx, request.GetBool("done", true))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerReviewTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"review_entries",
		mcp.WithDescription("List journal entries across cycles, newest first, with optional kind filters and a search query."),
		mcp.WithString("scope",
			mcp.Description("cycle restricts to the current cycle; all spans every cycle."),
			mcp.Enum("cycle", "all"),
		),
		mcp.WithArray("kinds",
			mcp.Description("Entry families to include; all four when omitted."),
			mcp.Items(map[string]any{
				"type": "string",
				"enum": []string{"note", "intention", "reflection", "close"},
			}),
		),
		mcp.WithString("query",
			mcp.Description("Case-insensitive substring filter."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of items to return (default 50)."),
			mcp.Min(1),
			mcp.Max(500),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Scope string   `json:"scope"`
			Kinds []string `json:"kinds"`
			Query string   `json:"query"`
			Limit int      `json:"limit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		items, err := svc.ReviewItems(ctx, args.Scope, args.Kinds, args.Query, args.Limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"scope": args.Scope,
			"query": args.Query,
			"items": items,
			"count": len(items),
		})
	})
}

func registerEditEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"edit_entry",
		mcp.WithDescription("Rewrite one entry in place, in any cycle. Close-out entries are not editable here."),
		mcp.WithString("store_key",
			mcp.Required(),
			mcp.Description("Composite record key from a review item."),
		),
		mcp.WithNumber("day",
			mcp.Required(),
			mcp.Description("Cycle position of the entry."),
			mcp.Min(1),
			mcp.Max(36),
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Entry family."),
			mcp.Enum("note", "intention", "reflection"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Replacement text; empty clears the entry."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		storeKey, err := request.RequireString("store_key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		kind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day := request.GetInt("day", 0)
		text := request.GetString("text", "")

		dto, err := svc.EditEntry(ctx, storeKey, day, kind, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerExportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"export",
		mcp.WithDescription("Render a plain-text export of journal entries."),
		mcp.WithString("format",
			mcp.Description("notes, close, or full (default notes)."),
			mcp.Enum("notes", "close", "full"),
		),
		mcp.WithString("scope",
			mcp.Description("cycle or all (default cycle)."),
			mcp.Enum("cycle", "all"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := svc.Export(ctx,
			request.GetString("format", "notes"),
			request.GetString("scope", "cycle"),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func registerClearCycleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"clear_cycle",
		mcp.WithDescription("Discard every entry in the current cycle. Irreversible."),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Must be true; guards against accidental destruction."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !request.GetBool("confirm", false) {
			return mcp.NewToolResultError("confirm must be true to clear the cycle"), nil
		}
		if err := svc.ClearCycle(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("cycle cleared"), nil
	})
}

func registerGetSettingsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_settings",
		mcp.WithDescription("Read the active settings."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s, err := svc.GetSettings(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(s)
	})
}

func registerUpdateSettingsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_settings",
		mcp.WithDescription("Update settings. Changing dob or mode re-derives the cycle; prior records stay stored but stop matching."),
		mcp.WithString("dob",
			mcp.Description("Reference date, YYYY-MM-DD."),
		),
		mcp.WithString("mode",
			mcp.Description("Day boundary policy."),
			mcp.Enum("utc", "local"),
		),
		mcp.WithBoolean("gentle",
			mcp.Description("Show supportive hints."),
		),
		mcp.WithBoolean("reminders_enabled",
			mcp.Description("Arm the reminder scheduler."),
		),
		mcp.WithString("reminder_kinds",
			mcp.Description("Which day roles trigger reminders."),
			mcp.Enum("anchor", "echo", "anchor_echo"),
		),
		mcp.WithString("reminder_time",
			mcp.Description("Reminder wall-clock time, HH:MM."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		patch := SettingsPatch{}
		args := request.GetArguments()
		if v, ok := args["dob"].(string); ok {
			patch.DOB = &v
		}
		if v, ok := args["mode"].(string); ok {
			patch.Mode = &v
		}
		if v, ok := args["gentle"].(bool); ok {
			patch.Gentle = &v
		}
		if v, ok := args["reminders_enabled"].(bool); ok {
			patch.RemindersEnabled = &v
		}
		if v, ok := args["reminder_kinds"].(string); ok {
			patch.ReminderKinds = &v
		}
		if v, ok := args["reminder_time"].(string); ok {
			patch.ReminderTime = &v
		}

		s, err := svc.UpdateSettings(ctx, patch)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(s)
	})
}

func registerPatternStartsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"next_pattern_starts",
		mcp.WithDescription("Report the next day-1 and day-18 windows where a fresh pattern may start."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day1, day18, err := svc.PatternStarts(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"day1":  day1,
			"day18": day18,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
