package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cassiomolin/lucene-example/internal/domain"
	"github.com/cassiomolin/lucene-example/internal/index"
	"github.com/cassiomolin/lucene-example/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Open date bounds used when a range side is omitted.
var (
	earliestDate = domain.NewDate(1, 1, 1)
	latestDate   = domain.NewDate(9999, 12, 31)
)

// FindProfilesArgument filters profiles. Every filter is optional and the
// filters that are set must all hold.
type FindProfilesArgument struct {
	Name      string `json:"name,omitempty" jsonschema:"Whole profile name (e.g. Sarah Connor)"`
	Gender    string `json:"gender,omitempty" jsonschema:"Exact gender value (e.g. female)"`
	SalaryMin *int64 `json:"salary_min,omitempty" jsonschema:"Lowest salary, inclusive"`
	SalaryMax *int64 `json:"salary_max,omitempty" jsonschema:"Highest salary, inclusive"`
	BornFrom  string `json:"born_from,omitempty" jsonschema:"Earliest date of birth, inclusive (YYYY-MM-DD)"`
	BornTo    string `json:"born_to,omitempty" jsonschema:"Latest date of birth, inclusive (YYYY-MM-DD)"`
}

// FindShoppingListsArgument filters shopping lists.
type FindShoppingListsArgument struct {
	Name     string `json:"name,omitempty" jsonschema:"Whole name of the list owner (e.g. John Doe)"`
	Item     string `json:"item,omitempty" jsonschema:"Item the list must contain, exact (e.g. Milk)"`
	DateFrom string `json:"date_from,omitempty" jsonschema:"Earliest list date, inclusive (YYYY-MM-DD)"`
	DateTo   string `json:"date_to,omitempty" jsonschema:"Latest list date, inclusive (YYYY-MM-DD)"`
}

// GetArgument identifies one record.
type GetArgument struct {
	ID string `json:"id" jsonschema:"Record ID"`
}

// ToolHandler serves the query tools from a catalog.
type ToolHandler struct {
	catalog *search.Catalog
}

// NewToolHandler creates a handler over catalog.
func NewToolHandler(catalog *search.Catalog) *ToolHandler {
	return &ToolHandler{catalog: catalog}
}

// ProfileQuery translates arguments into a profile query.
func ProfileQuery(args FindProfilesArgument) (index.Query, error) {
	var parts []index.Query
	if name := strings.TrimSpace(args.Name); name != "" {
		parts = append(parts, index.ExactTerm(domain.ProfileName, name))
	}
	if gender := strings.TrimSpace(args.Gender); gender != "" {
		parts = append(parts, index.ExactTerm(domain.ProfileGender, gender))
	}
	if args.SalaryMin != nil || args.SalaryMax != nil {
		low, high := int64(math.MinInt64), int64(math.MaxInt64)
		if args.SalaryMin != nil {
			low = *args.SalaryMin
		}
		if args.SalaryMax != nil {
			high = *args.SalaryMax
		}
		parts = append(parts, index.NumericRange(domain.ProfileSalary, low, high))
	}
	if args.BornFrom != "" || args.BornTo != "" {
		from, to, err := dateBounds(args.BornFrom, args.BornTo)
		if err != nil {
			return nil, err
		}
		parts = append(parts, index.DateRange(domain.ProfileDateOfBirth, from, to))
	}
	return index.And(parts...), nil
}

// ShoppingListQuery translates arguments into a shopping-list query.
func ShoppingListQuery(args FindShoppingListsArgument) (index.Query, error) {
	var parts []index.Query
	if name := strings.TrimSpace(args.Name); name != "" {
		parts = append(parts, index.ExactTerm(domain.ShoppingListName, name))
	}
	if args.Item != "" {
		parts = append(parts, index.ExactTerm(domain.ShoppingListItems, args.Item))
	}
	if args.DateFrom != "" || args.DateTo != "" {
		from, to, err := dateBounds(args.DateFrom, args.DateTo)
		if err != nil {
			return nil, err
		}
		parts = append(parts, index.DateRange(domain.ShoppingListDate, from, to))
	}
	return index.And(parts...), nil
}

func dateBounds(from, to string) (domain.Date, domain.Date, error) {
	low, high := earliestDate, latestDate
	var err error
	if from != "" {
		if low, err = domain.ParseDate(from); err != nil {
			return domain.Date{}, domain.Date{}, err
		}
	}
	if to != "" {
		if high, err = domain.ParseDate(to); err != nil {
			return domain.Date{}, domain.Date{}, err
		}
	}
	return low, high, nil
}

// FindProfiles handles the find_profiles tool.
func (h *ToolHandler) FindProfiles(ctx context.Context, req *mcp.CallToolRequest, args FindProfilesArgument) (*mcp.CallToolResult, any, error) {
	q, err := ProfileQuery(args)
	if err != nil {
		return errorResult("Invalid arguments: %s", err), nil, nil
	}
	profiles, err := h.catalog.Profiles.Search(ctx, q)
	if err != nil {
		return errorResult("Search failed: %s", err), nil, nil
	}
	return recordsResult("profiles", q, profiles), nil, nil
}

// FindShoppingLists handles the find_shopping_lists tool.
func (h *ToolHandler) FindShoppingLists(ctx context.Context, req *mcp.CallToolRequest, args FindShoppingListsArgument) (*mcp.CallToolResult, any, error) {
	q, err := ShoppingListQuery(args)
	if err != nil {
		return errorResult("Invalid arguments: %s", err), nil, nil
	}
	lists, err := h.catalog.ShoppingLists.Search(ctx, q)
	if err != nil {
		return errorResult("Search failed: %s", err), nil, nil
	}
	return recordsResult("shopping lists", q, lists), nil, nil
}

// GetProfile handles the get_profile tool.
func (h *ToolHandler) GetProfile(ctx context.Context, req *mcp.CallToolRequest, args GetArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.ID) == "" {
		return errorResult("ID cannot be empty"), nil, nil
	}
	p, found, err := h.catalog.Profiles.Get(ctx, args.ID)
	return recordResult("Profile", args.ID, p, found, err), nil, nil
}

// GetShoppingList handles the get_shopping_list tool.
func (h *ToolHandler) GetShoppingList(ctx context.Context, req *mcp.CallToolRequest, args GetArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.ID) == "" {
		return errorResult("ID cannot be empty"), nil, nil
	}
	l, found, err := h.catalog.ShoppingLists.Get(ctx, args.ID)
	return recordResult("Shopping list", args.ID, l, found, err), nil, nil
}

func recordsResult[R any](what string, q index.Query, records []R) *mcp.CallToolResult {
	if len(records) == 0 {
		return textResult(fmt.Sprintf("No %s match %s", what, q))
	}
	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errorResult("Failed to encode results: %s", err)
	}
	return textResult(fmt.Sprintf("Found %d %s for %s:\n\n```json\n%s\n```\n", len(records), what, q, body))
}

func recordResult[R any](what, id string, record R, found bool, err error) *mcp.CallToolResult {
	if err != nil {
		return errorResult("Read failed: %s", err)
	}
	if !found {
		return errorResult("%s not found: %s", what, id)
	}
	body, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errorResult("Failed to encode result: %s", err)
	}
	return textResult(fmt.Sprintf("```json\n%s\n```\n", body))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(format string, a ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, a...)}},
		IsError: true,
	}
}

// RegisterTools registers the query tools with an MCP server.
func RegisterTools(server *mcp.Server, catalog *search.Catalog) {
	h := NewToolHandler(catalog)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_profiles",
		Description: "Find profiles by name, gender, salary range and date-of-birth range, sorted by name",
	}, h.FindProfiles)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_shopping_lists",
		Description: "Find shopping lists by owner name, item and date range, sorted by owner name",
	}, h.FindShoppingLists)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_profile",
		Description: "Read one profile by ID",
	}, h.GetProfile)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_shopping_list",
		Description: "Read one shopping list by ID",
	}, h.GetShoppingList)
}
