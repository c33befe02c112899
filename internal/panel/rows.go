package panel

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lzjever/project-audit/internal/core"
)

const (
	RowsPerPage = 10
	DefaultPage = 1

	unknownSlug = "unknown"

	FallbackEmail  = "N/A"
	FallbackGroups = "No Groups"
	FallbackID     = "Not Set"
)

// Column describes one table column.
type Column struct {
	Key      string
	Title    string
	Sortable bool
}

// Columns is the fixed column set of the audit table.
var Columns = []Column{
	{Key: "name", Title: "User Name", Sortable: true},
	{Key: "email", Title: "Email", Sortable: true},
	{Key: "groups", Title: "Groups"},
	{Key: "sapId", Title: "SAP ID"},
	{Key: "altId", Title: "Alt ID"},
}

type Cell struct {
	Key     string
	Content string
	// Avatar is set on the user name cell only.
	Avatar string
}

type Row struct {
	Key   string
	Cells []Cell
}

// Slug lowercases s and turns spaces into hyphens. Empty input maps to
// "unknown".
func Slug(s string) string {
	if s == "" {
		return unknownSlug
	}
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

// RowKey is "row-<index>-<userId>".
func RowKey(index int, userID string) string {
	if userID == "" {
		userID = unknownSlug
	}
	return "row-" + strconv.Itoa(index) + "-" + userID
}

// BuildRows derives table rows from records in their original order. Cell
// keys are computed from the raw values, before display fallbacks.
func BuildRows(users []core.AuditRecord) []Row {
	rows := make([]Row, 0, len(users))
	for i, u := range users {
		rows = append(rows, Row{
			Key: RowKey(i, u.UserID),
			Cells: []Cell{
				{Key: Slug(u.UserName), Content: u.UserName, Avatar: Avatar(u.UserName)},
				{Key: Slug(u.Email), Content: orDefault(u.Email, FallbackEmail)},
				{Key: Slug(u.Groups), Content: orDefault(u.Groups, FallbackGroups)},
				{Key: Slug(u.SapID), Content: orDefault(u.SapID, FallbackID)},
				{Key: Slug(u.AltID), Content: orDefault(u.AltID, FallbackID)},
			},
		})
	}
	return rows
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

type SortOrder int

const (
	Unsorted SortOrder = iota
	Ascending
	Descending
)

// Sort is the active sort of the table.
type Sort struct {
	Column string
	Order  SortOrder
}

// Toggle returns the sort after clicking column: a new column sorts
// ascending, the same column flips direction.
func (s Sort) Toggle(column string) Sort {
	if s.Column == column && s.Order == Ascending {
		return Sort{Column: column, Order: Descending}
	}
	return Sort{Column: column, Order: Ascending}
}

// SortRows returns a copy of rows ordered by the cell keys of a sortable
// column. Equal keys keep their relative order. Non-sortable or unknown
// columns leave the order unchanged.
func SortRows(rows []Row, s Sort) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	idx := columnIndex(s.Column)
	if idx < 0 || !Columns[idx].Sortable || s.Order == Unsorted {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Cells[idx].Key, out[j].Cells[idx].Key
		if s.Order == Descending {
			return a > b
		}
		return a < b
	})
	return out
}

func columnIndex(key string) int {
	for i, c := range Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Page returns the rows of a 1-based page. Out of range pages are clamped.
func Page(rows []Row, page, perPage int) []Row {
	if perPage <= 0 {
		perPage = RowsPerPage
	}
	pages := PageCount(len(rows), perPage)
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageCount is at least 1 so an empty table still has a first page.
func PageCount(total, perPage int) int {
	if perPage <= 0 {
		perPage = RowsPerPage
	}
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
