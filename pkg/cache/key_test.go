package cache

import "testing"

func TestListKey(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		category string
		search   string
		want     string
	}{
		{
			name: "defaults",
			page: 1, limit: 100,
			want: "products_public_1_100__",
		},
		{
			name: "with category",
			page: 1, limit: 100, category: "Tools",
			want: "products_public_1_100_tools_",
		},
		{
			name: "with search",
			page: 2, limit: 50, search: "Widget",
			want: "products_public_2_50__widget",
		},
		{
			name: "underscore in parameter cannot fake another field",
			page: 1, limit: 100, category: "a_b",
			want: "products_public_1_100_a%5fb_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ListKey(tt.page, tt.limit, tt.category, tt.search)
			if got != tt.want {
				t.Errorf("ListKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListKey_Deterministic(t *testing.T) {
	a := ListKey(1, 100, " Tools ", "widget")
	b := ListKey(1, 100, "tools", "Widget")
	if a != b {
		t.Errorf("equivalent queries must share a key: %q != %q", a, b)
	}
}

func TestListKey_DistinctQueriesDistinctKeys(t *testing.T) {
	base := ListKey(1, 100, "a", "b")
	variants := []string{
		ListKey(2, 100, "a", "b"),
		ListKey(1, 50, "a", "b"),
		ListKey(1, 100, "c", "b"),
		ListKey(1, 100, "a", "c"),
		ListKey(1, 100, "a_b", ""),
	}

	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base key %q", i, base)
		}
	}
}

func TestProductKey(t *testing.T) {
	if got := ProductKey(" Widget-1 "); got != "product_widget-1" {
		t.Errorf("ProductKey() = %q", got)
	}
	if ProductKey("a") == ProductKey("b") {
		t.Error("distinct ids must produce distinct keys")
	}
}

func TestProductKey_DistinctIDsNeverCollide(t *testing.T) {
	// The separator escaping must be injective: ids differing only in
	// hyphen vs underscore, or containing escape sequences literally,
	// are distinct entities and need distinct keys.
	pairs := [][2]string{
		{"a-b", "a_b"},
		{"a_b", "a%5fb"},
		{"a%b", "a%25b"},
	}

	for _, pair := range pairs {
		if ProductKey(pair[0]) == ProductKey(pair[1]) {
			t.Errorf("ids %q and %q collided on key %q", pair[0], pair[1], ProductKey(pair[0]))
		}
	}
}

func TestListKey_SameFieldVariantsDistinct(t *testing.T) {
	if ListKey(1, 100, "a-b", "") == ListKey(1, 100, "a_b", "") {
		t.Error("categories a-b and a_b must not share a key")
	}
}

func TestWellKnownKeysAreDisjoint(t *testing.T) {
	if SettingsKey == CategoriesKey {
		t.Error("settings and categories keys collide")
	}
	if ProductKey("settings") == SettingsKey {
		t.Error("product key namespace overlaps settings key")
	}
}
