package importer

import (
	"sort"
	"strings"

	"par-manager/core/catalog"
	"par-manager/core/quantity"
	"par-manager/core/utils"
)

// RawRow is one loosely typed source row keyed by header.
type RawRow map[string]any

// Row is a normalized import row. Only SKU and Name are guaranteed.
type Row struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	MaterialType string          `json:"material_type,omitempty"`
	Vendor       string          `json:"vendor,omitempty"`
	Location     string          `json:"location,omitempty"`
	Par          quantity.Tenths `json:"par"`
	// OnHand is nil when the row does not supply a value.
	OnHand *quantity.Tenths `json:"on_hand,omitempty"`
	Notes  string           `json:"notes,omitempty"`
}

// keyAliases lists alternative headers per field. When several headers of
// one field are filled, the canonical header wins, then aliases in order.
var keyAliases = map[string][]string{
	"material_type": {"material", "type", "category"},
	"on_hand":       {"qty", "quantity", "onhand"},
	"name":          {"product", "product_name"},
	"vendor":        {"supplier"},
	"sku":           {"item_number"},
	"notes":         {"note"},
}

type alias struct {
	field string
	rank  int
}

// aliasRank maps an alias to its field and precedence, 1 being highest.
var aliasRank = func() map[string]alias {
	ranks := make(map[string]alias)
	for field, aliases := range keyAliases {
		for i, name := range aliases {
			ranks[name] = alias{field: field, rank: i + 1}
		}
	}
	return ranks
}()

func foldKey(key string) string {
	key = strings.TrimSpace(strings.TrimPrefix(key, "\ufeff"))
	key = strings.ToLower(key)
	return strings.NewReplacer(" ", "_", "-", "_").Replace(key)
}

// resolveKey returns the canonical field for a header and its precedence.
func resolveKey(key string) (string, int) {
	key = foldKey(key)
	if a, ok := aliasRank[key]; ok {
		return a.field, a.rank
	}
	return key, 0
}

// NormalizeKey canonicalizes a header: trimmed, lowercased, spaces and
// hyphens turned into underscores, aliases resolved.
func NormalizeKey(key string) string {
	field, _ := resolveKey(key)
	return field
}

// Normalize is the single coercion pass applied to every row: strings are
// trimmed, the SKU uppercased and numbers rounded to tenths, with
// unparseable numbers read as zero. Rows missing sku or name are rejected.
func Normalize(raw RawRow) (Row, bool) {
	type header struct {
		raw   string
		field string
		rank  int
	}
	headers := make([]header, 0, len(raw))
	for k := range raw {
		field, rank := resolveKey(k)
		headers = append(headers, header{raw: k, field: field, rank: rank})
	}
	sort.Slice(headers, func(i, j int) bool {
		if headers[i].rank != headers[j].rank {
			return headers[i].rank < headers[j].rank
		}
		return headers[i].raw < headers[j].raw
	})

	fields := make(map[string]any, len(raw))
	for _, h := range headers {
		v := raw[h.raw]
		prev, seen := fields[h.field]
		// first filled header in precedence order wins
		if seen && (!utils.IsBlank(prev) || utils.IsBlank(v)) {
			continue
		}
		fields[h.field] = v
	}

	row := Row{
		SKU:          catalog.NormalizeSKU(utils.ToString(fields["sku"])),
		Name:         utils.ToString(fields["name"]),
		MaterialType: utils.ToString(fields["material_type"]),
		Vendor:       utils.ToString(fields["vendor"]),
		Location:     utils.ToString(fields["location"]),
		Par:          utils.ToQuantity(fields["par"]),
		Notes:        utils.ToString(fields["notes"]),
	}
	if row.SKU == "" || row.Name == "" {
		return Row{}, false
	}

	if v, ok := fields["on_hand"]; ok && !utils.IsBlank(v) {
		q := utils.ToQuantity(v)
		row.OnHand = &q
	}
	return row, true
}

// NormalizeAll normalizes raw rows, dropping rejected ones.
func NormalizeAll(raws []RawRow) []Row {
	rows := make([]Row, 0, len(raws))
	for _, raw := range raws {
		if row, ok := Normalize(raw); ok {
			rows = append(rows, row)
		}
	}
	return rows
}
