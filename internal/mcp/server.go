// Package mcp provides a Model Context Protocol server for lichviet.
//
// It exposes the schedule assistant as MCP tools — parse a Vietnamese
// scheduling request, add it as an event, list/search/delete events, check
// due reminders — plus the upcoming schedule as an MCP resource. Uses the
// stdio transport.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pvminh/lichviet/internal/nlp"
	"github.com/pvminh/lichviet/internal/store"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Store    store.Store
	Pipeline *nlp.Pipeline
	Version  string
}

// dbMu serializes all MCP tool calls that touch the database.
// The mcp-go library dispatches handlers concurrently via goroutines.
// SQLite (even with WAL) supports only one writer at a time, and concurrent
// reads during writes can return stale results. A global mutex ensures
// correct ordering: adds complete before lists see their data.
var dbMu sync.Mutex

// NewServer creates a configured MCP server with all lichviet tools and
// resources.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"lichviet",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	pipeline := cfg.Pipeline
	if pipeline == nil {
		pipeline = nlp.New()
	}

	registerParseTool(s, pipeline)
	registerAddTool(s, pipeline, cfg.Store)
	registerListTool(s, cfg.Store)
	registerSearchTool(s, cfg.Store)
	registerDeleteTool(s, cfg.Store)
	registerDueTool(s, cfg.Store)

	registerUpcomingResource(s, cfg.Store)

	return s
}

// eventJSON is the wire shape for stored events.
type eventJSON struct {
	ID              int64  `json:"id,omitempty"`
	Event           string `json:"event"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time,omitempty"`
	Location        string `json:"location,omitempty"`
	ReminderMinutes int    `json:"reminder_minutes"`
}

func toEventJSON(e *store.Event) eventJSON {
	out := eventJSON{
		ID:              e.ID,
		Event:           e.Name,
		StartTime:       e.StartTime.Format(store.TimeLayout),
		Location:        e.Location,
		ReminderMinutes: e.ReminderMinutes,
	}
	if e.EndTime != nil {
		out.EndTime = e.EndTime.Format(store.TimeLayout)
	}
	return out
}

func resultToJSON(r *nlp.Result) eventJSON {
	out := eventJSON{
		Event:           r.EventName,
		StartTime:       r.StartTime.Format(store.TimeLayout),
		Location:        r.Location,
		ReminderMinutes: r.ReminderMinutes,
	}
	if r.EndTime != nil {
		out.EndTime = r.EndTime.Format(store.TimeLayout)
	}
	return out
}

// --- Tools ---

func registerParseTool(s *server.MCPServer, pipeline *nlp.Pipeline) {
	tool := mcp.NewTool("schedule_parse",
		mcp.WithDescription("Parse a Vietnamese scheduling request (accented or unaccented) into a structured event without storing it. Returns event name, start/end time, location, and reminder lead minutes."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The scheduling request, e.g. 'họp lúc 10h sáng mai tại phòng 302, nhắc trước 15 phút'"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil || strings.TrimSpace(text) == "" {
			return mcp.NewToolResultError("text is required"), nil
		}

		result, err := pipeline.Extract(text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(resultToJSON(result), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerAddTool(s *server.MCPServer, pipeline *nlp.Pipeline, st store.Store) {
	tool := mcp.NewTool("schedule_add",
		mcp.WithDescription("Parse a Vietnamese scheduling request and store it as an event. Returns the stored record including its id."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The scheduling request to add"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		text, err := req.RequireString("text")
		if err != nil || strings.TrimSpace(text) == "" {
			return mcp.NewToolResultError("text is required"), nil
		}

		result, err := pipeline.Extract(text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse error: %v", err)), nil
		}

		event := &store.Event{
			Name:            result.EventName,
			StartTime:       result.StartTime,
			EndTime:         result.EndTime,
			Location:        result.Location,
			ReminderMinutes: result.ReminderMinutes,
		}
		if _, err := st.AddEvent(ctx, event); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("store error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(toEventJSON(event), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerListTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("schedule_list",
		mcp.WithDescription("List stored events ordered by start time. Optionally restricted to one calendar day."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("day",
			mcp.Description("Calendar day filter in YYYY-MM-DD form. Empty = all days."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default: all)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		opts := store.ListOpts{}
		if dayStr, err := req.RequireString("day"); err == nil && dayStr != "" {
			day, err := time.ParseInLocation(store.DayLayout, dayStr, time.Local)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid day %q: want YYYY-MM-DD", dayStr)), nil
			}
			opts.Day = &day
		}
		if limitVal, err := req.RequireFloat("limit"); err == nil && limitVal > 0 {
			opts.Limit = int(limitVal)
		}

		events, err := st.ListEvents(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list error: %v", err)), nil
		}

		out := make([]eventJSON, 0, len(events))
		for _, e := range events {
			out = append(out, toEventJSON(e))
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerSearchTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("schedule_search",
		mcp.WithDescription("Search events by keyword over name and location (FTS5 with LIKE fallback)."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Search keyword"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default: 10, max: 50)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		keyword, err := req.RequireString("keyword")
		if err != nil || strings.TrimSpace(keyword) == "" {
			return mcp.NewToolResultError("keyword is required"), nil
		}

		limit := 10
		if limitVal, err := req.RequireFloat("limit"); err == nil && limitVal > 0 {
			limit = int(limitVal)
			if limit > 50 {
				limit = 50
			}
		}

		events, err := st.SearchEvents(ctx, keyword, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
		}

		out := make([]eventJSON, 0, len(events))
		for _, e := range events {
			out = append(out, toEventJSON(e))
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerDeleteTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("schedule_delete",
		mcp.WithDescription("Delete a stored event by id."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The event id to delete"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		idVal, err := req.RequireFloat("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		if err := st.DeleteEvent(ctx, int64(idVal)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("delete error: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("deleted event %d", int64(idVal))), nil
	})
}

func registerDueTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("schedule_due",
		mcp.WithDescription("Return events whose reminder window is open right now."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		events, err := st.DueReminders(ctx, time.Now())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("due error: %v", err)), nil
		}

		out := make([]eventJSON, 0, len(events))
		for _, e := range events {
			out = append(out, toEventJSON(e))
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Resources ---

func registerUpcomingResource(s *server.MCPServer, st store.Store) {
	resource := mcp.NewResource(
		"schedule://upcoming",
		"Upcoming Events",
		mcp.WithResourceDescription("The next 10 stored events ordered by start time."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		events, err := st.ListEvents(ctx, store.ListOpts{Limit: 10})
		if err != nil {
			return nil, fmt.Errorf("listing upcoming events: %w", err)
		}

		out := make([]eventJSON, 0, len(events))
		for _, e := range events {
			out = append(out, toEventJSON(e))
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling upcoming events: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "schedule://upcoming",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
